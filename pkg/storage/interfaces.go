package storage

import "io"

// BlobStorage archives original uploads (R2 over the S3 API).
type BlobStorage interface {
	Upload(key string, reader io.Reader) error
	Delete(key string) error
}

// UploadResult is what the media service reports back for a stored image.
type UploadResult struct {
	PublicID string
	URL      string
}

// MediaService is the external image-hosting collaborator. It serves the
// public URLs and performs transformations; failures surface to callers
// as external-service errors.
type MediaService interface {
	Upload(reader io.Reader, publicID string, folder string) (*UploadResult, error)
	Delete(publicID string) error
	Transform(sourceURL string, publicID string, angle int) (string, error)
}
