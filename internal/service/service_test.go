package service_test

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/pawprints/pawprints-backend/internal/config"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/pkg/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Tag{},
		&models.Comment{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{MaxTagsPerPhoto: 5}
}

func createPhoto(t *testing.T, repo *repository.PhotoRepository, userID uint) *models.Photo {
	t.Helper()

	photo := &models.Photo{
		UserID:   userID,
		PublicID: "image_test",
		URL:      "https://media.test/image_test.png",
		R2Key:    "photos/test",
	}
	require.NoError(t, repo.Create(photo))
	return photo
}

// fakeBlobStore stands in for R2.
type fakeBlobStore struct {
	uploadErr error
	deleteErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeBlobStore) Upload(key string, reader io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, key)
	return nil
}

func (f *fakeBlobStore) Delete(key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeMedia stands in for the image-hosting collaborator.
type fakeMedia struct {
	uploadErr    error
	deleteErr    error
	transformErr error
	uploaded     []string
	deleted      []string
}

func (f *fakeMedia) Upload(reader io.Reader, publicID string, folder string) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploaded = append(f.uploaded, publicID)
	return &storage.UploadResult{
		PublicID: publicID,
		URL:      "https://media.test/" + publicID + ".png",
	}, nil
}

func (f *fakeMedia) Delete(publicID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeMedia) Transform(sourceURL string, publicID string, angle int) (string, error) {
	if f.transformErr != nil {
		return "", f.transformErr
	}
	return "https://media.test/" + publicID + "_rotated.png", nil
}

var errUpstream = errors.New("upstream unavailable")

// makeFileHeader builds a real multipart.FileHeader the way fiber would
// hand it to the service.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
