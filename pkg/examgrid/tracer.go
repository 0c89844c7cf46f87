package examgrid

import (
	"go.uber.org/zap"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/parser"
)

// NewZapTracer logs heuristic decisions at debug level.
func NewZapTracer(logger *zap.Logger) parser.Tracer {
	return parser.TracerFunc(func(ev parser.TraceEvent) {
		if ce := logger.Check(zap.DebugLevel, "heuristic decision"); ce != nil {
			ce.Write(
				zap.String("sheet", ev.Sheet),
				zap.String("stage", ev.Stage),
				zap.String("column", ev.Column),
				zap.Float64("score", ev.Score),
				zap.String("detail", ev.Detail),
			)
		}
	})
}
