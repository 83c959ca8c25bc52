package storage

import (
	"context"
	"io"
)

// Storage is the object storage surface used for history exports.
type Storage interface {
	// Put uploads size bytes from r. Options set the key, prefix and content type.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get retrieves an object. The caller closes the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object.
	Delete(ctx context.Context, key string) error
}

// Config holds S3-compatible storage settings.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is a custom S3 endpoint (MinIO, R2, ...). Empty means AWS.
	Endpoint string `env:"S3_ENDPOINT"`
	Region   string `env:"S3_REGION" envDefault:"us-east-1"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE" envDefault:"false"`
}

// Enabled reports whether a bucket is configured.
// Callers skip storage entirely when it is not.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Content types produced by this module.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeCSV    = "text/csv"
	ContentTypeBinary = "application/octet-stream"
)

const DefaultRegion = "us-east-1"

// ExtFromContentType returns the file extension for the content types above.
// Unknown types map to ".bin".
func ExtFromContentType(ct string) string {
	switch ct {
	case ContentTypeJSON:
		return ".json"
	case ContentTypeCSV:
		return ".csv"
	default:
		return ".bin"
	}
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
