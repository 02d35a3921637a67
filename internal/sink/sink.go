// Package sink writes the produced tables to their destination as
// partitioned Parquet. An ObjectStore abstracts the destination; the
// table writer handles layout, partitioning, and overwrite semantics.
package sink

import "context"

// ObjectStore defines the interface all table destinations must implement.
type ObjectStore interface {
	// Put writes an object at the given key, replacing any existing one.
	Put(ctx context.Context, key string, data []byte) error

	// RemovePrefix deletes every object under the given key prefix.
	// Removing a prefix with no objects is not an error.
	RemovePrefix(ctx context.Context, prefix string) error
}

// Config holds backend-specific connection settings for a sink.
type Config struct {
	Scheme    string // "s3" or "file"
	Bucket    string // s3 bucket name
	Prefix    string // key prefix all table paths are written under
	Root      string // local root directory (file scheme)
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Secure    bool
}
