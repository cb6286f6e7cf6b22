package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/config"
)

// Version is set at build time via ldflags
var Version = "0.1.0"

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "panres",
	Short: "Browse the PanRes antimicrobial resistance gene ontology",
	Long: `panres serves and browses the PanRes ontology.

  panres import panres.nt       load an N-Triples export (or a JSON cache) into the store
  panres serve                  run the web site and JSON API
  panres browse                 explore the hierarchy in the terminal
  panres tree / panres show ID  print the hierarchy or one node`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $PANRES_CONFIG or ./panres.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Version = Version
}

// setup establishes the logger and loads the configuration. The flag
// level wins over the configured one.
func setup(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(orDefault(logLevel, "info"))
	if err != nil {
		return err
	}
	if err := logger.InitLogger(level); err != nil {
		return err
	}

	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if logLevel == "" && cfg.LogLevel != level.String() {
		level, err = logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		return logger.InitLogger(level)
	}
	cfg.LogLevel = level.String()
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
