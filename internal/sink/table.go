package sink

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxRowsPerFile = 250_000
	uploadConcurrency     = 4

	// Hive's marker for a null/empty partition value, kept for
	// compatibility with existing readers of the layout.
	emptyPartitionValue = "__HIVE_DEFAULT_PARTITION__"
)

// KV is one partition column of a row: a name=value path segment.
type KV struct {
	Name  string
	Value string
}

// Options configures a table write.
type Options struct {
	// MaxRowsPerFile splits a partition into numbered files above this
	// row count. 0 uses the default.
	MaxRowsPerFile int
}

// WriteTable writes rows as a partitioned Parquet table under
// <table>/ in the store, deleting whatever the prefix held before
// (overwrite semantics, so reruns never accumulate stale objects).
//
// partitionFn maps a row to its partition columns, in directory order;
// nil produces an unpartitioned table. Returns the number of files
// written. An empty rows slice still clears the prefix and writes
// nothing.
func WriteTable[T any](ctx context.Context, store ObjectStore, table string, rows []T, partitionFn func(T) []KV, opts Options) (int, error) {
	maxRows := opts.MaxRowsPerFile
	if maxRows <= 0 {
		maxRows = defaultMaxRowsPerFile
	}

	if err := store.RemovePrefix(ctx, table+"/"); err != nil {
		return 0, fmt.Errorf("sink: clear table %s: %w", table, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	// Group rows by partition path, preserving input order within each.
	groups := make(map[string][]T)
	for _, row := range rows {
		path := partitionPath(row, partitionFn)
		groups[path] = append(groups[path], row)
	}
	paths := make([]string, 0, len(groups))
	for p := range groups {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	files := 0
	for _, path := range paths {
		part := groups[path]
		for i := 0; len(part) > 0; i++ {
			n := len(part)
			if n > maxRows {
				n = maxRows
			}
			chunk := part[:n]
			part = part[n:]

			key := objectKey(table, path, i)
			g.Go(func() error {
				data, err := encodeParquet(chunk)
				if err != nil {
					return fmt.Errorf("sink: encode %s: %w", key, err)
				}
				if err := store.Put(ctx, key, data); err != nil {
					return fmt.Errorf("sink: put %s: %w", key, err)
				}
				return nil
			})
			files++
		}
	}

	if err := g.Wait(); err != nil {
		return files, err
	}
	return files, nil
}

// partitionPath builds the directory path for one row's partition values.
func partitionPath[T any](row T, partitionFn func(T) []KV) string {
	if partitionFn == nil {
		return ""
	}
	kvs := partitionFn(row)
	segs := make([]string, len(kvs))
	for i, kv := range kvs {
		segs[i] = kv.Name + "=" + sanitizeValue(kv.Value)
	}
	return strings.Join(segs, "/")
}

func objectKey(table, path string, index int) string {
	name := fmt.Sprintf("part-%05d.parquet", index)
	if path == "" {
		return table + "/" + name
	}
	return table + "/" + path + "/" + name
}

// sanitizeValue makes a partition value safe as a path segment.
func sanitizeValue(v string) string {
	if v == "" {
		return emptyPartitionValue
	}
	r := strings.NewReplacer("/", "_", "=", "_", "\\", "_", " ", "_")
	return r.Replace(v)
}

func encodeParquet[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[T](&buf, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
