package main

import (
	"github.com/spf13/cobra"

	"github.com/quarrydata/tributary/internal/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration and storage access",
	Long: `Validate loads the configuration, constructs the source and sink, lists
the input datasets, and probes that the output location is writable. No
table data is touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		src, store, err := buildStorage(cfg)
		if err != nil {
			return err
		}
		return pipeline.Validate(ctx, src, store, logger)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
