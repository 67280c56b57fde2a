// Package imagestore holds decoded page images for the duration of a
// processing session and hands out crops by bounding box. The library
// core never touches the store; it is the collaborator a surrounding
// service uses to keep pixels between the upload step and the
// extraction step.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/tsawler/figura/model"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrImageNotFound reports that no image is stored under the
// requested identifier.
var ErrImageNotFound = errors.New("image not found")

// ErrEmptyRegion reports that a requested crop rectangle lies
// entirely outside the image.
var ErrEmptyRegion = errors.New("requested region is outside the image")

// Store keeps decoded images addressable by identifier.
type Store interface {
	// Put stores an image and returns its new identifier.
	Put(img image.Image) string

	// Get returns the image stored under id.
	Get(ctx context.Context, id string) (image.Image, error)

	// Crop returns the part of the stored image covered by rect. The
	// rectangle is clamped to the image bounds rather than rejected;
	// only a rectangle with no overlap at all fails.
	Crop(ctx context.Context, id string, rect model.Rect) (image.Image, error)

	// Delete removes the image stored under id. Deleting an unknown
	// id is not an error.
	Delete(id string)
}

// MemStore is an in-memory Store safe for concurrent use.
type MemStore struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{images: make(map[string]image.Image)}
}

// Put stores an image under a fresh identifier.
func (s *MemStore) Put(img image.Image) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.images[id] = img
	s.mu.Unlock()
	return id
}

// Get returns the image stored under id, or ErrImageNotFound.
func (s *MemStore) Get(ctx context.Context, id string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	img, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, id)
	}
	return img, nil
}

// Crop returns a copy of the stored image restricted to rect. The
// rectangle is given in the image's own coordinate space and is
// clamped to the image bounds; a rectangle with no overlap yields
// ErrEmptyRegion.
func (s *MemStore) Crop(ctx context.Context, id string, rect model.Rect) (image.Image, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	clamped := rect.Clamp(model.RectFromImage(bounds))
	if clamped.IsEmpty() {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d)", ErrEmptyRegion,
			rect.Width, rect.Height, rect.X, rect.Y)
	}

	dst := image.NewRGBA(image.Rect(0, 0, clamped.Width, clamped.Height))
	draw.Draw(dst, dst.Bounds(), img, image.Pt(clamped.X, clamped.Y), draw.Src)
	return dst, nil
}

// Delete removes the image stored under id.
func (s *MemStore) Delete(id string) {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()
}

// Len returns the number of stored images.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Decode reads and decodes an image from r. PNG, JPEG, GIF, TIFF and
// BMP are recognized.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
