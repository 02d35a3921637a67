// Package s3 implements a source.Source over any S3-compatible object store.
package s3

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/quarrydata/tributary/internal/source"
)

const defaultEndpoint = "s3.amazonaws.com"

func init() {
	source.Register("s3", New)
}

// Source reads dataset objects from an S3 bucket.
type Source struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates an S3 source. When no static credentials are configured,
// the standard AWS environment variables are used.
func New(cfg source.Config) (source.Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 source: bucket is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		creds = credentials.NewEnvAWS()
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 source: create client: %w", err)
	}

	return &Source{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// List walks the bucket under prefix and returns all .json keys, relative
// to the source's configured base prefix.
func (s *Source) List(ctx context.Context, prefix string) ([]string, error) {
	full := joinKey(s.prefix, prefix)

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    full,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3 source: list %s: %w", full, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		keys = append(keys, strings.TrimPrefix(obj.Key, withSlash(s.prefix)))
	}
	sort.Strings(keys)
	return keys, nil
}

// Open returns a reader for the object at key.
func (s *Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, joinKey(s.prefix, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3 source: open %s: %w", key, err)
	}
	return obj, nil
}

// joinKey joins a base prefix and a relative key with a single slash.
func joinKey(base, key string) string {
	base = strings.Trim(base, "/")
	key = strings.TrimPrefix(key, "/")
	if base == "" {
		return key
	}
	if key == "" {
		return base + "/"
	}
	return base + "/" + key
}

func withSlash(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
