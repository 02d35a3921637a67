package tributary

import (
	"context"
	"fmt"

	"github.com/quarrydata/tributary/internal/config"
	"github.com/quarrydata/tributary/internal/pipeline"
	"github.com/quarrydata/tributary/internal/sink"
	"github.com/quarrydata/tributary/internal/source"

	// Register the storage backends.
	_ "github.com/quarrydata/tributary/internal/sink/file"
	_ "github.com/quarrydata/tributary/internal/sink/s3"
	_ "github.com/quarrydata/tributary/internal/source/file"
	_ "github.com/quarrydata/tributary/internal/source/s3"
)

// Report summarizes one run. See the field docs on pipeline.RunReport.
type Report = pipeline.RunReport

// Runner executes ETL runs against a fixed input and output location.
// Safe for sequential reuse; runs overwrite each other's output.
type Runner struct {
	p *pipeline.Pipeline
}

// New creates a Runner from the given options. WithInput and WithOutput
// are required.
func New(opts ...Option) (*Runner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.input == "" || o.output == "" {
		return nil, fmt.Errorf("tributary: input and output locations are required")
	}

	in, err := config.ParseLocation(o.input)
	if err != nil {
		return nil, fmt.Errorf("tributary: input: %w", err)
	}
	out, err := config.ParseLocation(o.output)
	if err != nil {
		return nil, fmt.Errorf("tributary: output: %w", err)
	}

	src, err := source.Open(source.Config{
		Scheme:    in.Scheme,
		Bucket:    in.Bucket,
		Prefix:    in.Prefix,
		Root:      in.Root,
		Endpoint:  o.endpoint,
		Region:    o.region,
		AccessKey: o.accessKey,
		SecretKey: o.secretKey,
		Secure:    o.useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("tributary: %w", err)
	}

	store, err := sink.Open(sink.Config{
		Scheme:    out.Scheme,
		Bucket:    out.Bucket,
		Prefix:    out.Prefix,
		Root:      out.Root,
		Endpoint:  o.endpoint,
		Region:    o.region,
		AccessKey: o.accessKey,
		SecretKey: o.secretKey,
		Secure:    o.useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("tributary: %w", err)
	}

	p := pipeline.New(src, store, o.logger, pipeline.Options{
		Workers:        o.workers,
		Strict:         o.strict,
		MaxRowsPerFile: o.maxRowsPerFile,
	})
	return &Runner{p: p}, nil
}

// Run executes both phases: song data into the songs and artists tables,
// then log data into the users, time, and songplays tables.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	return r.p.Run(ctx)
}

// RunSongs executes only the song phase.
func (r *Runner) RunSongs(ctx context.Context) (*Report, error) {
	return r.p.RunSongs(ctx)
}

// RunLogs executes only the log phase. Song data is still read to build
// the title index the songplays join needs.
func (r *Runner) RunLogs(ctx context.Context) (*Report, error) {
	return r.p.RunLogs(ctx)
}
