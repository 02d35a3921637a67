package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing file")
	}
	_ = cfg

	// No explicit file: defaults apply.
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ETL.Workers != defaultWorkers {
		t.Fatalf("Workers = %d, want %d", cfg.ETL.Workers, defaultWorkers)
	}
	if cfg.ETL.MaxRowsPerFile != defaultMaxRowsPerFile {
		t.Fatalf("MaxRowsPerFile = %d, want %d", cfg.ETL.MaxRowsPerFile, defaultMaxRowsPerFile)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.S3.UseSSL {
		t.Fatal("UseSSL should default to true")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tributary.yaml")
	content := `
input: s3://udacity-dend/
output: file:///tmp/warehouse
s3:
  endpoint: minio.internal:9000
  region: us-west-2
  use_ssl: false
etl:
  workers: 4
  strict: true
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input != "s3://udacity-dend/" {
		t.Fatalf("Input = %q", cfg.Input)
	}
	if cfg.S3.Endpoint != "minio.internal:9000" || cfg.S3.Region != "us-west-2" {
		t.Fatalf("unexpected s3 config: %+v", cfg.S3)
	}
	if cfg.S3.UseSSL {
		t.Fatal("UseSSL should be false")
	}
	if cfg.ETL.Workers != 4 || !cfg.ETL.Strict {
		t.Fatalf("unexpected etl config: %+v", cfg.ETL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIATEST")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.S3.AccessKey != "AKIATEST" || cfg.S3.SecretKey != "secret" {
		t.Fatalf("credentials not read from env: %+v", cfg.S3)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Input:    "s3://bucket/raw",
		Output:   "file:///tmp/out",
		LogLevel: "info",
		ETL:      ETLConfig{Workers: 4, MaxRowsPerFile: 1000},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.Input = "" }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"bad scheme", func(c *Config) { c.Input = "ftp://host/x" }},
		{"zero workers", func(c *Config) { c.ETL.Workers = 0 }},
		{"zero max rows", func(c *Config) { c.ETL.MaxRowsPerFile = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{"s3://udacity-dend/", Location{Scheme: "s3", Bucket: "udacity-dend"}, false},
		{"s3://bucket/raw/lake/", Location{Scheme: "s3", Bucket: "bucket", Prefix: "raw/lake"}, false},
		{"s3a://bucket/x", Location{Scheme: "s3", Bucket: "bucket", Prefix: "x"}, false},
		{"file:///data/lake", Location{Scheme: "file", Root: "/data/lake"}, false},
		{"/data/lake", Location{Scheme: "file", Root: "/data/lake"}, false},
		{"s3://", Location{}, true},
		{"", Location{}, true},
		{"ftp://host/x", Location{}, true},
	}
	for _, tt := range tests {
		got, err := ParseLocation(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLocation(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLocation(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
