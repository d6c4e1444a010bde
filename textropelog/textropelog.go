// Package textropelog provides the debug-only logging sink used by the
// text buffer. It is grounded on the injected logger shape used by
// tree-sitter highlighters in the wild: Debugf/Warnf/Errorf are methods of
// a Sink injected into each buffer (there are no package-level logging
// functions and no global singleton), so a
// buffer embedded in a larger program can route its own diagnostics
// without pulling in a logging framework dependency.
package textropelog

import "fmt"

// Sink receives formatted log lines. Debugf is for buffer-internal
// tracing (segment rebuilds, cache invalidation) that's off by default;
// Warnf and Errorf are for conditions worth surfacing even without debug
// logging enabled (a malformed highlight range, a failed LoadFile).
type Sink interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noop discards everything; it is the default Sink for a buffer built
// without buffer.WithSink.
type noop struct{}

func (noop) Debugf(string, ...any) {}
func (noop) Warnf(string, ...any)  {}
func (noop) Errorf(string, ...any) {}

// NoSink is the zero-cost default sink.
var NoSink Sink = noop{}

// Std is a minimal Sink that writes through fmt.Printf-style formatting
// to the given print function (e.g. log.Printf), useful for ad hoc
// debugging without wiring a full logging library into a host
// application.
type Std struct {
	Print func(string)
}

func (s Std) Debugf(format string, args ...any) { s.print("DEBUG", format, args...) }
func (s Std) Warnf(format string, args ...any)  { s.print("WARN", format, args...) }
func (s Std) Errorf(format string, args ...any) { s.print("ERROR", format, args...) }

func (s Std) print(level, format string, args ...any) {
	if s.Print == nil {
		return
	}
	s.Print(level + ": " + fmt.Sprintf(format, args...))
}
