package qrcode

import (
	"context"

	"github.com/ericlevine/qrscan"
)

// Callback receives the outcome of DecodeAsync exactly once.
type Callback func(symbols []qrscan.Symbol, err error)

// DecodeAsync decodes data in a new goroutine and reports to cb. Argument
// errors are returned at once and cb is not called. When ctx ends first,
// cb receives ctx.Err().
func DecodeAsync(ctx context.Context, data []byte, opts *qrscan.Options, cb Callback) error {
	if ctx == nil {
		return &qrscan.ArgumentError{Msg: "context must not be nil"}
	}
	if cb == nil {
		return &qrscan.ArgumentError{Msg: "callback must be a function", TypeMismatch: true}
	}
	r := NewReader(opts)
	go func() {
		cb(r.DecodeContext(ctx, data))
	}()
	return nil
}
