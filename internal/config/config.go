package config

import (
	"os"
	"strconv"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type Config struct {
	R2         R2Config
	Cloudinary CloudinaryConfig

	// MaxTagsPerPhoto caps the distinct tags on a single photo.
	MaxTagsPerPhoto int

	// PublicBaseURL is the site base used for QR codes (e.g. "https://pawprints.photos/p/").
	PublicBaseURL string
}

const DefaultMaxTagsPerPhoto = 5

func LoadConfig() *Config {
	cfg := &Config{}

	// R2 config (original photo archive)
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	// Cloudinary config (serving + transforms)
	cfg.Cloudinary.CloudName = os.Getenv("CLOUDINARY_NAME")
	cfg.Cloudinary.APIKey = os.Getenv("CLOUDINARY_API_KEY")
	cfg.Cloudinary.APISecret = os.Getenv("CLOUDINARY_API_SECRET")

	cfg.MaxTagsPerPhoto = DefaultMaxTagsPerPhoto
	if v := os.Getenv("MAX_TAGS_PER_PHOTO"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTagsPerPhoto = n
		}
	}

	cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "https://pawprints.photos/p/"
	}

	return cfg
}
