// Package config loads Tributary configuration from a YAML file with
// TRIBUTARY_* environment overrides. Credentials follow the AWS
// convention and come from the environment, never the file on disk.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all Tributary configuration.
type Config struct {
	Input    string // dataset location: s3://bucket/prefix or file:///path
	Output   string // warehouse location: s3://bucket/prefix or file:///path
	S3       S3Config
	ETL      ETLConfig
	LogLevel string
}

// S3Config holds S3-compatible endpoint settings shared by source and sink.
type S3Config struct {
	Endpoint  string
	Region    string
	UseSSL    bool
	AccessKey string
	SecretKey string
}

// ETLConfig holds pipeline tuning knobs.
type ETLConfig struct {
	Workers        int
	Strict         bool
	MaxRowsPerFile int
}

// Defaults applied when the file and environment leave a key unset.
const (
	defaultWorkers        = 8
	defaultMaxRowsPerFile = 250_000
	defaultLogLevel       = "info"
)

// Load reads configuration from the given file (or, when path is empty,
// from tributary.yaml in the working directory), overlaid with
// TRIBUTARY_* environment variables. A missing file is not an error —
// environment-only configuration is supported.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tributary")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TRIBUTARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("etl.workers", defaultWorkers)
	v.SetDefault("etl.strict", false)
	v.SetDefault("etl.max_rows_per_file", defaultMaxRowsPerFile)
	v.SetDefault("log_level", defaultLogLevel)

	if err := v.ReadInConfig(); err != nil {
		// No file in the working directory is fine when none was named;
		// an explicit path must exist and parse.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := Config{
		Input:    v.GetString("input"),
		Output:   v.GetString("output"),
		LogLevel: v.GetString("log_level"),
		S3: S3Config{
			Endpoint:  v.GetString("s3.endpoint"),
			Region:    v.GetString("s3.region"),
			UseSSL:    v.GetBool("s3.use_ssl"),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		ETL: ETLConfig{
			Workers:        v.GetInt("etl.workers"),
			Strict:         v.GetBool("etl.strict"),
			MaxRowsPerFile: v.GetInt("etl.max_rows_per_file"),
		},
	}
	return cfg, nil
}

// validLogLevels is the set of accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for invalid values and returns a
// message naming every problem found.
func (c Config) Validate() error {
	var errs []string

	if c.Input == "" {
		errs = append(errs, "input location must not be empty")
	} else if _, err := ParseLocation(c.Input); err != nil {
		errs = append(errs, fmt.Sprintf("input: %v", err))
	}

	if c.Output == "" {
		errs = append(errs, "output location must not be empty")
	} else if _, err := ParseLocation(c.Output); err != nil {
		errs = append(errs, fmt.Sprintf("output: %v", err))
	}

	if c.ETL.Workers <= 0 {
		errs = append(errs, fmt.Sprintf("etl.workers must be positive, got %d", c.ETL.Workers))
	}
	if c.ETL.MaxRowsPerFile <= 0 {
		errs = append(errs, fmt.Sprintf("etl.max_rows_per_file must be positive, got %d", c.ETL.MaxRowsPerFile))
	}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level %q is invalid, must be one of: debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Location is a parsed storage URL.
type Location struct {
	Scheme string // "s3" or "file"
	Bucket string // s3 only
	Prefix string // s3 key prefix
	Root   string // file only
}

// ParseLocation parses s3://bucket/prefix and file:///path URLs. A bare
// path with no scheme is treated as a local directory.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("empty location")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}

	switch u.Scheme {
	case "s3", "s3a":
		if u.Host == "" {
			return Location{}, fmt.Errorf("location %q has no bucket", raw)
		}
		return Location{
			Scheme: "s3",
			Bucket: u.Host,
			Prefix: strings.Trim(u.Path, "/"),
		}, nil
	case "file":
		if u.Path == "" {
			return Location{}, fmt.Errorf("location %q has no path", raw)
		}
		return Location{Scheme: "file", Root: u.Path}, nil
	case "":
		return Location{Scheme: "file", Root: raw}, nil
	default:
		return Location{}, fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}
}
