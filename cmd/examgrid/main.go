// Package main provides the CLI entry point for examgrid.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/examgrid-go/pkg/examgrid"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/config"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/output"
)

var (
	outputPath string
	pretty     bool
	recordsDir string
	configPath string
	workers    int
	overrides  []string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "examgrid [files...]",
		Short: "Turn exam score spreadsheets into structured exam records",
		Long: `examgrid reads xlsx and csv exports (one sheet per exam), detects headers,
tables and column roles, infers class membership across sheets and outputs JSON.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&recordsDir, "records-dir", "", "Directory for per-record output files")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent sheet workers (default: from config)")
	rootCmd.Flags().StringArrayVar(&overrides, "override", nil, "Class override as file::sheet=class (repeatable)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	defer logger.Sync()

	parsedOverrides, err := parseOverrides(overrides)
	if err != nil {
		return err
	}

	opts := examgrid.OptionsFromConfig(cfg)
	opts.Logger = logger

	batch, err := examgrid.IngestPaths(context.Background(), args, opts)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if err := applyOverrides(batch, parsedOverrides); err != nil {
		return err
	}

	enc := output.NewEncoder(opts.Engine(), pretty)
	jsonData, err := enc.EncodeBatch(batch)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if recordsDir == "" {
		fmt.Println(string(jsonData))
	}

	if recordsDir != "" {
		if err := writeRecordFiles(enc, batch, recordsDir); err != nil {
			return fmt.Errorf("failed to write record files: %w", err)
		}
	}

	if len(batch.Records) == 0 && len(batch.Failures) > 0 {
		return fmt.Errorf("no input could be read (%d failures)", len(batch.Failures))
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

type override struct {
	id    string
	class string
}

// parseOverrides reads "file::sheet=class" pairs.
func parseOverrides(values []string) ([]override, error) {
	out := make([]override, 0, len(values))
	for _, v := range values {
		idx := strings.LastIndex(v, "=")
		if idx <= 0 || !strings.Contains(v[:idx], "::") {
			return nil, fmt.Errorf("invalid override %q (want file::sheet=class)", v)
		}
		out = append(out, override{id: v[:idx], class: v[idx+1:]})
	}
	return out, nil
}

func applyOverrides(batch *models.Batch, values []override) error {
	for _, o := range values {
		rec, ok := batch.Record(o.id)
		if !ok {
			return fmt.Errorf("override target %q not found", o.id)
		}
		rec.SetOverrideClass(o.class)
	}
	return nil
}

func writeRecordFiles(enc *output.Encoder, batch *models.Batch, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, rec := range batch.Records {
		jsonData, err := enc.EncodeRecord(rec)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%03d_%s.json", i+1, sanitize(rec.ExamName)))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
