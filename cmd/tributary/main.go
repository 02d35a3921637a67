package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quarrydata/tributary/internal/config"
	"github.com/quarrydata/tributary/internal/logging"

	// Register the storage backends.
	_ "github.com/quarrydata/tributary/internal/sink/file"
	_ "github.com/quarrydata/tributary/internal/sink/s3"
	_ "github.com/quarrydata/tributary/internal/source/file"
	_ "github.com/quarrydata/tributary/internal/source/s3"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

var (
	cfgPath  string
	logLevel string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tributary",
	Short: "Tributary - data lake ETL for streaming-event JSON",
	Long: `Tributary extracts song metadata and listen-event logs from object
storage, transforms them into a star schema (songs, artists, users, time,
songplays), and loads the result back as partitioned Parquet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tributary %s\ncommit: %s\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: ./tributary.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override configured log level")
	rootCmd.AddCommand(versionCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "tributary: interrupted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "tributary: %v\n", err)
		os.Exit(1)
	}
}
