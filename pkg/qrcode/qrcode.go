package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders share links for photos as PNG QR codes.
type QRService struct {
	baseURL string // site base, e.g. "https://pawprints.photos/p/"
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateQRCode returns a PNG QR code pointing at the photo's public page.
func (s *QRService) GenerateQRCode(photoID uint, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%d", s.baseURL, photoID)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
