package tributary

import "go.uber.org/zap"

type options struct {
	input          string
	output         string
	endpoint       string
	region         string
	accessKey      string
	secretKey      string
	useSSL         bool
	workers        int
	strict         bool
	maxRowsPerFile int
	logger         *zap.Logger
}

// Option configures a Runner.
type Option func(*options)

// WithInput sets the dataset location: s3://bucket/prefix or a local path.
func WithInput(loc string) Option {
	return func(o *options) { o.input = loc }
}

// WithOutput sets the warehouse location: s3://bucket/prefix or a local path.
func WithOutput(loc string) Option {
	return func(o *options) { o.output = loc }
}

// WithS3 sets the endpoint and region used for s3:// locations.
// An empty endpoint targets AWS.
func WithS3(endpoint, region string) Option {
	return func(o *options) {
		o.endpoint = endpoint
		o.region = region
	}
}

// WithCredentials sets static S3 credentials. Without this option the
// standard AWS environment variables are used.
func WithCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithInsecure disables TLS for the S3 endpoint. Useful against a local
// MinIO.
func WithInsecure() Option {
	return func(o *options) { o.useSSL = false }
}

// WithWorkers bounds concurrent file decodes. Default: 8.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithStrict aborts a run on the first malformed input instead of
// skipping and counting it.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithMaxRowsPerFile splits partitions into numbered Parquet files above
// this row count.
func WithMaxRowsPerFile(n int) Option {
	return func(o *options) { o.maxRowsPerFile = n }
}

// WithLogger sets the logger. Default: no logging.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.logger = log }
}

func defaultOptions() options {
	return options{useSSL: true}
}
