package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	// registers the WebP decoder; imaging only covers JPEG, PNG, GIF, TIFF and BMP
	_ "golang.org/x/image/webp"

	"github.com/kjedmeade/orange-blossom-app/internal/domain"
	"github.com/kjedmeade/orange-blossom-app/internal/repository/storage"
)

const (
	MaxAvatarSize   = 5 * 1024 * 1024 // 5MB
	MinAvatarWidth  = 50
	MinAvatarHeight = 50
	ThumbnailWidth  = 200
	DisplayWidth    = 400
	JPEGQuality     = 85

	avatarURLExpiry = time.Hour
)

var (
	ErrAvatarTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrAvatarInvalidFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrAvatarTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrAvatarInvalidData          = errors.New("invalid image data")
	ErrAvatarStorageNotConfigured = errors.New("avatar storage not configured")
)

// allowedExtensions maps accepted file extensions to content types
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// AvatarMetadata contains presigned URLs for the stored avatar variants
type AvatarMetadata struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// AvatarService processes and stores profile avatar images
type AvatarService struct {
	storage  storage.ImageRepository
	profiles domain.ProfileRepository
}

// NewAvatarService creates a new AvatarService. A nil storage disables
// uploads without affecting the rest of the app.
func NewAvatarService(store storage.ImageRepository, profiles domain.ProfileRepository) *AvatarService {
	return &AvatarService{storage: store, profiles: profiles}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *AvatarService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Upload validates and resizes the image, stores thumbnail and display
// variants, and records the display object path on the profile. Any previous
// avatar's variants are removed best-effort.
func (s *AvatarService) Upload(ctx context.Context, profileID uuid.UUID, data []byte, filename string) (*AvatarMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrAvatarStorageNotConfigured
	}

	img, err := validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	previous, err := s.profiles.GetByID(profileID)
	if err != nil {
		return nil, err
	}

	imageID := uuid.New().String()
	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
	}

	paths := make(map[string]string)
	for _, variant := range variants {
		processed := img
		if img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := fmt.Sprintf("avatars/%s/%s_%s.jpg", profileID, imageID, variant.name)
		path, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			s.cleanupVariants(ctx, paths)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		paths[variant.name] = path
	}

	displayPath := paths["display"]
	if _, err := s.profiles.UpdateAvatar(profileID, &displayPath); err != nil {
		s.cleanupVariants(ctx, paths)
		return nil, err
	}

	// Old avatar variants are orphaned once the path is replaced
	if previous.AvatarPath != nil {
		s.deleteVariants(ctx, *previous.AvatarPath)
	}

	return s.metadata(ctx, displayPath)
}

// Delete removes the stored avatar variants and clears the profile field
func (s *AvatarService) Delete(ctx context.Context, profileID uuid.UUID) error {
	if !s.IsEnabled() {
		return ErrAvatarStorageNotConfigured
	}

	profile, err := s.profiles.GetByID(profileID)
	if err != nil {
		return err
	}
	if profile.AvatarPath == nil {
		return nil
	}

	s.deleteVariants(ctx, *profile.AvatarPath)

	_, err = s.profiles.UpdateAvatar(profileID, nil)
	return err
}

// URLs returns presigned variant URLs for a stored avatar path. Returns nil
// when storage is disabled so callers can degrade to path-less responses.
func (s *AvatarService) URLs(ctx context.Context, avatarPath *string) *AvatarMetadata {
	if !s.IsEnabled() || avatarPath == nil || *avatarPath == "" {
		return nil
	}
	meta, err := s.metadata(ctx, *avatarPath)
	if err != nil {
		return nil
	}
	return meta
}

func (s *AvatarService) metadata(ctx context.Context, displayPath string) (*AvatarMetadata, error) {
	displayURL, err := s.storage.GeneratePresignedURL(ctx, displayPath, avatarURLExpiry)
	if err != nil {
		return nil, err
	}
	thumbURL, err := s.storage.GeneratePresignedURL(ctx, thumbPath(displayPath), avatarURLExpiry)
	if err != nil {
		return nil, err
	}
	return &AvatarMetadata{ThumbnailURL: thumbURL, DisplayURL: displayURL}, nil
}

func (s *AvatarService) cleanupVariants(ctx context.Context, paths map[string]string) {
	for _, path := range paths {
		_ = s.storage.Delete(ctx, path)
	}
}

func (s *AvatarService) deleteVariants(ctx context.Context, displayPath string) {
	_ = s.storage.Delete(ctx, displayPath)
	_ = s.storage.Delete(ctx, thumbPath(displayPath))
}

// thumbPath maps a display object path to its thumbnail sibling
func thumbPath(displayPath string) string {
	return strings.TrimSuffix(displayPath, "_display.jpg") + "_thumb.jpg"
}

// validateAndDecode checks size, extension, decodability and minimum
// dimensions, returning the decoded image.
func validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, ErrAvatarInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrAvatarInvalidData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinAvatarWidth || bounds.Dy() < MinAvatarHeight {
		return nil, ErrAvatarTooSmall
	}

	return img, nil
}
