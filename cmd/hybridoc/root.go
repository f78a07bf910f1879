package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gardar/hybridoc/internal/config"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "hybridoc",
	Short: "Rebuild editable documents from OCR layout analysis",
	Long: `hybridoc turns a page-oriented layout analysis (Document AI, an
analyze-result JSON file or hOCR) into a DOCX or PDF document.

Each page becomes a heading, the page image, the page's tables and the text
lines that are not already part of a table.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./hybridoc.yaml or ~/.hybridoc/hybridoc.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)",
	)

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and configures the logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
	return nil
}
