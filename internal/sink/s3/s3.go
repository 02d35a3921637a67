// Package s3 implements a sink.ObjectStore over any S3-compatible object
// store.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/quarrydata/tributary/internal/sink"
)

const defaultEndpoint = "s3.amazonaws.com"

func init() {
	sink.Register("s3", New)
}

// Store writes table objects to an S3 bucket. Parquet files are encoded
// in memory by the table writer and uploaded in a single PutObject each.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates an S3 store. When no static credentials are configured,
// the standard AWS environment variables are used.
func New(cfg sink.Config) (sink.ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 sink: bucket is required")
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
		return nil, fmt.Errorf("s3 sink: create client: %w", err)
	}

	return &Store{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

// Put uploads data to the bucket at the configured prefix + key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	full := s.fullKey(key)
	_, err := s.client.PutObject(ctx, s.bucket, full, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("s3 sink: put %s: %w", full, err)
	}
	return nil
}

// RemovePrefix deletes every object under prefix. Errors on individual
// deletes abort the removal.
func (s *Store) RemovePrefix(ctx context.Context, prefix string) error {
	full := s.fullKey(prefix)

	objects := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)
	go func() {
		defer close(objects)
		for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
			Prefix:    full,
			Recursive: true,
		}) {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			select {
			case objects <- obj:
			case <-ctx.Done():
				listErr <- ctx.Err()
				return
			}
		}
		listErr <- nil
	}()

	for res := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			return fmt.Errorf("s3 sink: remove %s: %w", res.ObjectName, res.Err)
		}
	}
	if err := <-listErr; err != nil {
		return fmt.Errorf("s3 sink: list %s: %w", full, err)
	}
	return nil
}

func (s *Store) fullKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}
