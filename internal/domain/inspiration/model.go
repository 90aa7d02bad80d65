package inspiration

import (
	"context"
	"errors"
	"io"
	"time"
)

// Config configures image generation and sketch storage.
type Config struct {
	ArchiveImages      bool
	DefaultAspectRatio string
	SketchMaxBytes     int64
}

// AspectRatios accepted by the image generator.
var AspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}

const imageMIMEType = "image/jpeg"

// ImageRequest asks for one inspiration image.
type ImageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
}

// ImageResponse carries the generated image as a data URL.
type ImageResponse struct {
	DataURL     string `json:"dataUrl"`
	MIMEType    string `json:"mimeType"`
	AspectRatio string `json:"aspectRatio"`
	Key         string `json:"key,omitempty"`
}

// Sketch describes a stored sketch.
type Sketch struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	MIMEType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// ErrBlobNotFound is returned by BlobStore implementations for missing keys.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore abstracts object storage (S3/R2/local).
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete returns ErrBlobNotFound when the key is absent.
	Delete(ctx context.Context, key string) error
}
