// Package cli implements the mosaic command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mosaic-search/mosaic/internal/config"
	"github.com/mosaic-search/mosaic/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool

	// cfg is loaded once in the persistent pre-run and shared by all
	// commands.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Multimodal document indexing and retrieval",
	Long: `Mosaic ingests documents, splits them into text, table and image
fragments, summarises each fragment, embeds the summaries and indexes
them in a vector store for semantic retrieval.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		path := cfgFile
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.mosaic/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
