package sigsum

import (
	"github.com/crimson-sun/sigsum/internal/activity"
	"github.com/crimson-sun/sigsum/internal/assembler"
	"github.com/crimson-sun/sigsum/internal/render"
)

type options struct {
	maxItems int
}

// Option configures a summarization call.
type Option func(*options)

// WithMaxItems bounds the number of transactions (or lines, for
// protocols without an assembler) in the report. Default: 500.
func WithMaxItems(n int) Option {
	return func(o *options) {
		o.maxItems = n
	}
}

func defaultOptions() options {
	return options{maxItems: 500}
}

// Summarize folds raw decoder annotations (one per line) into a
// protocol-level transaction report. Protocols without a dedicated
// assembler get the generic truncating view.
func Summarize(raw, protocol string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return assembler.Summarize(raw, protocol, o.maxItems)
}

// Truncated renders raw annotation text bounded to maxLines lines,
// with a truncation footer when lines were dropped.
func Truncated(raw string, maxLines int) string {
	return render.Truncated(raw, maxLines)
}

// Window renders a bounded window of raw sample lines starting at the
// given line index.
func Window(raw string, start, size int) string {
	return render.Window(raw, start, size)
}

// Activity summarizes per-channel signal activity from exported binary
// sample rows.
func Activity(raw string) string {
	return activity.Summarize(raw)
}

// Protocols returns the protocols with a dedicated assembler, sorted.
func Protocols() []string {
	return assembler.Protocols()
}
