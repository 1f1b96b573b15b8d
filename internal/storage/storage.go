// Package storage keeps uploaded puzzle images, either in the database or
// in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrImageNotFound is returned when no image exists under a key.
var ErrImageNotFound = errors.New("image not found")

// ImageStore persists image bytes under opaque keys.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}

// NewImageKey returns a fresh key namespaced by owner and upload date.
func NewImageKey(ownerID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("puzzles/%s/%d/%02d/%02d/%s", ownerID, d.Year(), d.Month(), d.Day(), uuid.New())
}
