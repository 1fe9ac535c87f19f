package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"clrindex/internal/config"
	"clrindex/internal/graph"
	"clrindex/internal/pipeline"
	"clrindex/internal/storage"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "clrindex",
		Short: "Reconstructs a normalized symbol graph from compiled-module metadata",
	}
	cfgPath string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "clrindex.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statsCmd)
}

func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)
	return logger
}

var indexCmd = &cobra.Command{
	Use:   "index [dump-dir]",
	Short: "Run a full indexing pass over module metadata dumps",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := initLogger()

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		dumpDir := cfg.Project.DumpDir
		if len(args) > 0 {
			dumpDir = args[0]
		}
		if dumpDir == "" {
			return fmt.Errorf("no dump directory configured; pass one or set project.dump_dir")
		}

		store, err := storage.NewSQLiteStore(cfg.Database.Path, logger)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
		}
		defer store.Close()

		runner := &pipeline.Runner{
			DumpDir: dumpDir,
			Filter:  cfg.Filter,
			Store:   store,
			Log:     logger,
		}
		stats, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Indexed %d module(s): %d symbols, %d references, %d methods discovered\n",
			stats.Modules, stats.Symbols, stats.References, stats.Methods)
		if stats.Defects > 0 {
			fmt.Printf("%d data-integrity defect(s) reported; see log\n", stats.Defects)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print symbol and reference counts from an existing database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := initLogger()

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := storage.NewSQLiteStore(cfg.Database.Path, logger)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
		}
		defer store.Close()

		symbols, references, err := store.Counts()
		if err != nil {
			return err
		}
		fmt.Printf("%d symbols, %d references\n", symbols, references)

		byKind, err := store.CountsByKind()
		if err != nil {
			return err
		}
		kinds := make([]string, 0, len(byKind))
		for k := range byKind {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Printf("  %-12s %d\n", k, byKind[graph.SymbolKind(k)])
		}
		return nil
	},
}
