package parser

// TraceEvent describes one heuristic decision.
type TraceEvent struct {
	Sheet  string
	Stage  string
	Column string
	Score  float64
	Detail string
}

// Tracer receives heuristic decisions for debugging. Implementations must be
// safe for concurrent use when sheets are parsed in parallel.
type Tracer interface {
	Trace(ev TraceEvent)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(ev TraceEvent)

// Trace calls f(ev).
func (f TracerFunc) Trace(ev TraceEvent) { f(ev) }

type nopTracer struct{}

func (nopTracer) Trace(TraceEvent) {}

// NopTracer discards every event.
func NopTracer() Tracer { return nopTracer{} }
