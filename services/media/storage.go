// Package media uploads user-submitted images to Cloudinary.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageBytes caps accepted profile images at 10 MB.
const MaxImageBytes = 10 << 20

const profileImageFolder = "tablenow/profile-images"

// allowedImageExts lists the accepted profile image formats.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// MediaService uploads and removes user images.
type MediaService interface {
	UploadProfileImage(ctx context.Context, localFilePath string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryMediaService implements MediaService against Cloudinary.
type CloudinaryMediaService struct {
	cld *cloudinary.Cloudinary
}

// NewMediaService creates a Cloudinary-backed media service.
func NewMediaService(cld *cloudinary.Cloudinary) *CloudinaryMediaService {
	return &CloudinaryMediaService{cld: cld}
}

// ValidateImageFile checks extension and size before an upload is attempted.
func ValidateImageFile(localFilePath string) error {
	ext := strings.ToLower(filepath.Ext(localFilePath))
	if !allowedImageExts[ext] {
		return fmt.Errorf("media: unsupported image type %q; allowed types are jpg, jpeg and png", ext)
	}
	info, err := os.Stat(localFilePath)
	if err != nil {
		return fmt.Errorf("media: failed to stat image: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return fmt.Errorf("media: image exceeds the %d MB limit", MaxImageBytes>>20)
	}
	return nil
}

// UploadProfileImage validates and uploads a profile image, returning its
// delivery URL.
func (s *CloudinaryMediaService) UploadProfileImage(ctx context.Context, localFilePath string) (string, error) {
	if err := ValidateImageFile(localFilePath); err != nil {
		return "", err
	}
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: profileImageFolder,
	})
	if err != nil {
		return "", fmt.Errorf("media: failed to upload profile image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("media: no delivery URL returned")
	}
	return result.SecureURL, nil
}

// DeleteImage removes a previously uploaded image by its public ID.
func (s *CloudinaryMediaService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("media: failed to delete image: %w", err)
	}
	return nil
}
