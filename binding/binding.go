// Package binding exposes the decoder to hosts that call with untyped
// argument lists and read constants by name.
package binding

import (
	"context"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/qrcode"
)

// Decode expects (img []byte, callback) and an optional *qrscan.Options.
// The callback is a qrcode.Callback or a plain func with the same
// signature. Malformed arguments are reported synchronously; otherwise
// the callback runs once, later, on another goroutine.
func Decode(args ...any) error {
	if len(args) < 2 {
		return &qrscan.ArgumentError{Msg: "expected (img, callback) as arguments"}
	}
	img, ok := args[0].([]byte)
	if !ok {
		return &qrscan.ArgumentError{Msg: "img must be a Buffer", TypeMismatch: true}
	}
	var cb qrcode.Callback
	switch f := args[1].(type) {
	case qrcode.Callback:
		cb = f
	case func([]qrscan.Symbol, error):
		cb = f
	}
	if cb == nil {
		return &qrscan.ArgumentError{Msg: "callback must be a function", TypeMismatch: true}
	}
	var opts *qrscan.Options
	if len(args) > 2 {
		if opts, ok = args[2].(*qrscan.Options); !ok {
			return &qrscan.ArgumentError{Msg: "options must be *qrscan.Options", TypeMismatch: true}
		}
	}
	return qrcode.DecodeAsync(context.Background(), img, opts, cb)
}

// Constants returns the public constants under their conventional names.
func Constants() map[string]any {
	return map[string]any{
		"VERSION_MIN": qrscan.VersionMin,
		"VERSION_MAX": qrscan.VersionMax,

		"ECC_LEVEL_L": qrscan.ECCLevelL,
		"ECC_LEVEL_M": qrscan.ECCLevelM,
		"ECC_LEVEL_Q": qrscan.ECCLevelQ,
		"ECC_LEVEL_H": qrscan.ECCLevelH,

		"MODE_NUMERIC": qrscan.ModeNumeric,
		"MODE_ALNUM":   qrscan.ModeAlnum,
		"MODE_BYTE":    qrscan.ModeByte,
		"MODE_KANJI":   qrscan.ModeKanji,
	}
}
