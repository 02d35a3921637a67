package main

import (
	"fmt"

	"github.com/quarrydata/tributary/internal/config"
	"github.com/quarrydata/tributary/internal/sink"
	"github.com/quarrydata/tributary/internal/source"
)

// buildStorage constructs the source and sink named by the configured
// input and output locations.
func buildStorage(cfg config.Config) (source.Source, sink.ObjectStore, error) {
	in, err := config.ParseLocation(cfg.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("input: %w", err)
	}
	out, err := config.ParseLocation(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("output: %w", err)
	}

	src, err := source.Open(source.Config{
		Scheme:    in.Scheme,
		Bucket:    in.Bucket,
		Prefix:    in.Prefix,
		Root:      in.Root,
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Secure:    cfg.S3.UseSSL,
	})
	if err != nil {
		return nil, nil, err
	}

	store, err := sink.Open(sink.Config{
		Scheme:    out.Scheme,
		Bucket:    out.Bucket,
		Prefix:    out.Prefix,
		Root:      out.Root,
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Secure:    cfg.S3.UseSSL,
	})
	if err != nil {
		return nil, nil, err
	}

	return src, store, nil
}
