package source

import (
	"context"
	"io"
)

// Source defines the interface all dataset storage backends must implement.
type Source interface {
	// List returns the keys of all .json objects under the given prefix,
	// walked recursively, in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Open returns a reader for the object at the given key.
	// The caller must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Config holds backend-specific connection settings for a source.
type Config struct {
	Scheme    string // "s3" or "file"
	Bucket    string // s3 bucket name
	Prefix    string // key prefix all dataset paths are relative to
	Root      string // local root directory (file scheme)
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Secure    bool
}
