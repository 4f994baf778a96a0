package storage

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pawprints/pawprints-backend/internal/config"
)

// Cloudinary talks to the Cloudinary upload API. Uploads are signed with
// the account's API secret.
type Cloudinary struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
}

type cloudinaryResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewCloudinary(cfg config.CloudinaryConfig) *Cloudinary {
	client := &http.Client{
		Timeout: 5 * time.Minute, // uploads of large originals
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Cloudinary{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   "https://api.cloudinary.com/v1_1",
		client:    client,
	}
}

// sign builds the Cloudinary request signature: SHA-1 over the sorted
// params joined as a query string, with the API secret appended.
func (c *Cloudinary) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func (c *Cloudinary) signedForm(params map[string]string) url.Values {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(params))
	return form
}

// Upload stores the image under the given public ID and returns its
// delivery URL.
func (c *Cloudinary) Upload(reader io.Reader, publicID string, folder string) (*UploadResult, error) {
	params := map[string]string{
		"public_id": publicID,
		"folder":    folder,
		"overwrite": "true",
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	form := c.signedForm(params)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k := range form {
		if err := writer.WriteField(k, form.Get(k)); err != nil {
			return nil, fmt.Errorf("failed to add form field: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequest(http.MethodPost, uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	result, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		PublicID: result.PublicID,
		URL:      result.SecureURL,
	}, nil
}

// Transform re-uploads an already hosted image with a rotation applied and
// returns the transformed delivery URL.
func (c *Cloudinary) Transform(sourceURL string, publicID string, angle int) (string, error) {
	params := map[string]string{
		"public_id":      publicID,
		"transformation": fmt.Sprintf("a_%d", angle),
		"timestamp":      strconv.FormatInt(time.Now().Unix(), 10),
	}
	form := c.signedForm(params)
	form.Set("file", sourceURL)

	uploadURL := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequest(http.MethodPost, uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := c.do(req)
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (c *Cloudinary) Delete(publicID string) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	form := c.signedForm(params)

	destroyURL := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequest(http.MethodPost, destroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = c.do(req)
	return err
}

func (c *Cloudinary) do(req *http.Request) (*cloudinaryResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cloudinary returned non-OK status: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var result cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary returned error: %s", result.Error.Message)
	}
	return &result, nil
}
