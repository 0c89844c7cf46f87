// Package examgrid ingests exam score spreadsheets into typed exam records.
package examgrid

import (
	"go.uber.org/zap"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/config"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/inference"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/parser"
)

// InstructionsSheet is the reserved legend sheet name; it never produces a
// record.
const InstructionsSheet = "说明"

// Options configures ingestion behavior.
type Options struct {
	// Parser holds the per-sheet heuristic thresholds.
	Parser parser.Params
	// Inference holds the class voting thresholds.
	Inference inference.Params
	// Workers bounds concurrent sheet processing. Zero or less means no limit.
	Workers int
	// Logger receives progress and failure logs. Nil disables logging.
	Logger *zap.Logger
	// Tracer receives heuristic decisions. Nil disables tracing.
	Tracer parser.Tracer
}

// DefaultOptions returns default ingestion options.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps a loaded configuration to options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Parser:    cfg.Parser,
		Inference: cfg.Inference,
		Workers:   cfg.Workers,
	}
}

// Engine returns the class inference engine configured by o.Inference.
func (o Options) Engine() *inference.Engine {
	return inference.New(o.Inference)
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
