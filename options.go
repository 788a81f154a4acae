package qrscan

import "log/slog"

// Options configures a decode call. A nil *Options means defaults.
type Options struct {
	// Workers is the number of symbol candidates decoded concurrently.
	// Values below 2 decode sequentially.
	Workers int

	// MaxDimension, when positive, downsizes larger images so that neither
	// side exceeds it before the pipeline runs.
	MaxDimension int

	// MaxPixels rejects images whose header declares more pixels, before
	// any pixel memory is allocated. Zero means DefaultMaxPixels and a
	// negative value disables the check.
	MaxPixels int

	// NoMirror disables the retry of failed candidates as mirror images.
	NoMirror bool

	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// DefaultMaxPixels is the pixel limit used when Options.MaxPixels is zero.
const DefaultMaxPixels = 1 << 26

var discardLogger = slog.New(slog.DiscardHandler)

// Log returns the configured logger, or one that discards everything.
func (o *Options) Log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// WorkerCount returns the effective number of workers, at least 1.
func (o *Options) WorkerCount() int {
	if o == nil || o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// PixelLimit returns the effective pixel limit, or 0 for none.
func (o *Options) PixelLimit() int {
	switch {
	case o == nil || o.MaxPixels == 0:
		return DefaultMaxPixels
	case o.MaxPixels < 0:
		return 0
	}
	return o.MaxPixels
}
