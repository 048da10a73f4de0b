package cover

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coverbox/service/internal/storage"
)

// KeyPrefix is where cover objects live inside the bucket.
const KeyPrefix = "covers/"

// ErrUnsupportedFormat is returned for file extensions outside the allow-set.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Store is the metadata persistence the coordinator drives. *Repository
// implements it; tests substitute a fake.
type Store interface {
	Create(ctx context.Context, pictureName, fileURL string) (*CoverPicture, error)
	GetByName(ctx context.Context, pictureName string) (*CoverPicture, error)
	ListAll(ctx context.Context) ([]CoverPicture, error)
	DeleteByName(ctx context.Context, pictureName string) error
	SetPrimary(ctx context.Context, pictureName string) error
}

// UploadResult is what a successful upload reports back.
type UploadResult struct {
	PictureName  string `json:"picture_name"`
	FileURL      string `json:"file_url"`
	PrimaryCover bool   `json:"primary_cover"`
}

// Service coordinates the cover lifecycle: resize, object storage, the
// metadata row, and the at-most-one-primary invariant. It is the sole writer
// of cover records.
type Service struct {
	store        Store
	objects      storage.Storage
	maxImageSize int
}

// NewService creates a cover Service.
func NewService(store Store, objects storage.Storage, maxImageSize int) *Service {
	return &Service{store: store, objects: objects, maxImageSize: maxImageSize}
}

// Upload validates, resizes, and stores an image, then persists its metadata
// row. generateName replaces the caller's filename with a unique generated
// one; otherwise the name is used verbatim and rejected if already taken.
// If the object is stored but the row insert fails, the object is removed
// again (best effort) so storage and metadata cannot diverge.
func (s *Service) Upload(ctx context.Context, data []byte, filename string, primary, generateName bool) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return nil, ErrUnsupportedFormat
	}

	resized := storage.Resize(data, s.maxImageSize)

	name := filename
	if generateName {
		name = generatedName(ext)
	} else {
		// caller-supplied names must not overwrite an existing cover
		if _, err := s.store.GetByName(ctx, name); err == nil {
			return nil, ErrAlreadyExists
		} else if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("check name collision: %w", err)
		}
	}

	key := KeyPrefix + name
	if err := s.objects.Put(ctx, key, resized, storage.ContentTypeFor(ext)); err != nil {
		return nil, fmt.Errorf("store cover object: %w", err)
	}

	rec, err := s.store.Create(ctx, name, s.objects.PublicURL(key))
	if err != nil {
		if derr := s.objects.Delete(ctx, key); derr != nil {
			log.Printf("cover: cleanup of orphaned object %q failed: %v", key, derr)
		}
		return nil, fmt.Errorf("persist cover record: %w", err)
	}

	effective := false
	if primary {
		if err := s.store.SetPrimary(ctx, name); err != nil {
			log.Printf("cover: promote %q to primary failed: %v", name, err)
		} else {
			effective = true
		}
	}

	return &UploadResult{
		PictureName:  rec.PictureName,
		FileURL:      rec.FileURL,
		PrimaryCover: effective,
	}, nil
}

// Delete removes a cover from storage and then its metadata row. The object
// goes first: if storage refuses, the row stays put, so the worst divergence
// is an inert dangling object rather than a row pointing at nothing.
func (s *Service) Delete(ctx context.Context, pictureName string) error {
	if _, err := s.store.GetByName(ctx, pictureName); err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, KeyPrefix+pictureName); err != nil {
		return fmt.Errorf("remove cover object: %w", err)
	}
	return s.store.DeleteByName(ctx, pictureName)
}

// List returns all covers, newest first.
func (s *Service) List(ctx context.Context) ([]CoverPicture, error) {
	return s.store.ListAll(ctx)
}

// SetPrimary promotes the named cover to be the single primary cover.
func (s *Service) SetPrimary(ctx context.Context, pictureName string) error {
	return s.store.SetPrimary(ctx, pictureName)
}

func generatedName(ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("cover_%s_%s%s", timestamp, uuid.NewString()[:8], ext)
}
