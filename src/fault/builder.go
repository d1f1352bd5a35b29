package fault

import (
	"math/rand/v2"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const maxTraceDepth = 32

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Builder draws fault names from a fixed catalog and captures where Build was called.
type Builder struct {
	catalog []string
	random  RandomSource
	now     func() time.Time
}

type BuilderOption func(*Builder)

// WithRandom replaces the process-wide generator. The source is shared by every
// Build call, so it must be safe for concurrent use if the Builder is.
func WithRandom(src RandomSource) BuilderOption {
	return func(b *Builder) {
		if src != nil {
			b.random = src
		}
	}
}

func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder validates the catalog and returns a Builder owning its own copy of it.
func NewBuilder(catalog []string, opts ...BuilderOption) (*Builder, error) {
	if len(catalog) == 0 {
		return nil, &ConfigurationError{Setting: "catalog", Err: ErrEmptyCatalog}
	}

	b := &Builder{
		catalog: append([]string(nil), catalog...),
		random:  globalSource{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Catalog returns a copy of the names the builder draws from.
func (b *Builder) Catalog() []string {
	return append([]string(nil), b.catalog...)
}

// Build selects a fault name and records the caller of Build as the failure site.
func (b *Builder) Build() (FaultRecord, error) {
	// skip runtime.Callers and Build itself
	pcs := make([]uintptr, maxTraceDepth)
	n := runtime.Callers(2, pcs)

	if b == nil || len(b.catalog) == 0 {
		return FaultRecord{}, &ConfigurationError{Setting: "catalog", Err: ErrEmptyCatalog}
	}

	record := FaultRecord{
		Timestamp: b.now(),
		Name:      b.catalog[b.pick()],
	}
	fillProvenance(&record, pcs[:n])

	return record, nil
}

// pick computes floor(r * len(catalog)), clamped for sources that misbehave at the bounds.
func (b *Builder) pick() int {
	i := int(b.random.Float64() * float64(len(b.catalog)))
	if i < 0 {
		return 0
	}
	if i >= len(b.catalog) {
		return len(b.catalog) - 1
	}
	return i
}

func fillProvenance(record *FaultRecord, pcs []uintptr) {
	if len(pcs) == 0 {
		return
	}

	frames := runtime.CallersFrames(pcs)
	var trace strings.Builder
	first := true
	for {
		frame, more := frames.Next()
		if first {
			record.SourceFile = filepath.Base(frame.File)
			record.MethodName = shortFuncName(frame.Function)
			record.LineNumber = frame.Line
			first = false
		}
		if !strings.HasPrefix(frame.Function, "runtime.") {
			if trace.Len() > 0 {
				trace.WriteByte('\n')
			}
			trace.WriteString(frame.Function)
			trace.WriteString("\n\t")
			trace.WriteString(frame.File)
			trace.WriteByte(':')
			trace.WriteString(strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}
	record.RawTrace = trace.String()
}

// shortFuncName drops the import path: "faultproducer/src/handler.Trigger" -> "handler.Trigger".
func shortFuncName(fn string) string {
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		return fn[i+1:]
	}
	return fn
}
