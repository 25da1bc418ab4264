package term

import (
	"log/slog"
)

// LogSink receives protocol/encoding/semantic-stub diagnostics per
// spec.md §7's error taxonomy. None of these ever surface as Go
// errors; they only ever reach the configured sink.
type LogSink func(kind string, msg string, args ...any)

// SlogSink adapts an *slog.Logger to LogSink. It is the default sink
// used when a Config is built without WithLogSink: no third-party
// logging library appears anywhere in the reference corpus, so
// log/slog — the stdlib's own structured logger — is the closest
// idiomatic match rather than a bespoke fmt.Fprintf wrapper.
func SlogSink(l *slog.Logger) LogSink {
	if l == nil {
		l = slog.Default()
	}
	return func(kind, msg string, args ...any) {
		l.Warn(msg, append([]any{"kind", kind}, args...)...)
	}
}

// discardSink drops everything; used when logging is disabled.
func discardSink(string, string, ...any) {}
