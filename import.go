package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/panres/internal/util"
	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/db"
	"github.com/yumyai/panres/pkg/ontology"
)

var (
	importFormat string
	importCache  string
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "input format: nt, owl, ttl or json (default from the file extension)")
	importCmd.Flags().StringVar(&importCache, "write-cache", "", "also write the derived JSON cache to this path")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load an ontology export into the store",
	Long: `Load an ontology export into the store, replacing its contents.

Supported formats:
  nt    N-Triples export of the ontology (.nt, .nq)
  owl   RDF/XML export of the ontology (.owl, .rdf, .xml)
  ttl   Turtle export of the ontology (.ttl)
  json  cache with classDetails, individualDetails, subClassMap, classInstanceMap,
        uriRegistry and topClasses`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func importFormatOf(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if format == "" {
			return "", fmt.Errorf("cannot tell the format of %s, use --format", path)
		}
	}
	if format == "json" {
		return format, nil
	}
	f, err := ontology.ParseFormat(format)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(f), nil
}

func readOntology(path, format string) (*ontology.Cache, error) {
	if format == "json" {
		return ontology.ReadCacheFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ontology.BuildFrom(f, ontology.Format(format))
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !util.FileExists(path) {
		return fmt.Errorf("input file not found: %s", path)
	}
	format, err := importFormatOf(path, importFormat)
	if err != nil {
		return err
	}

	cache, err := readOntology(path, format)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if importCache != "" {
		f, err := os.Create(importCache)
		if err != nil {
			return err
		}
		werr := cache.WriteCache(f)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return fmt.Errorf("writing cache: %w", werr)
		}
	}

	if err := util.EnsureDir(filepath.Dir(cfg.DBPath)); err != nil {
		return err
	}
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Import(cmd.Context(), cache)
	if err != nil {
		return err
	}
	logger.Info("Imported ontology", zap.String("file", path), zap.String("DB_LOC", cfg.DBPath))
	fmt.Fprintf(cmd.OutOrStdout(), "%d classes, %d individuals, %d properties\n",
		stats.Classes, stats.Individuals, stats.Properties)
	return nil
}
