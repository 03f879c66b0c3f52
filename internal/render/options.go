package render

import (
	"io"
	"log/slog"

	"github.com/roach88/cinder/internal/metrics"
)

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics collector. The default is metrics.NewNop().
func WithMetrics(m metrics.Collector) Option {
	return func(l *List) {
		l.metrics = m
	}
}

// WithIDs sets the component ID generator. The default is UUIDv7Generator.
func WithIDs(ids IDGenerator) Option {
	return func(l *List) {
		l.ids = ids
	}
}

// WithTokens sets the pass token generator. The default is UUIDv7Generator.
func WithTokens(tokens IDGenerator) Option {
	return func(l *List) {
		l.tokens = tokens
	}
}

// WithClock sets the pass sequence source. The default starts at 1.
func WithClock(clock SeqSource) Option {
	return func(l *List) {
		l.clock = clock
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
