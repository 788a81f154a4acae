package binding

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/internal/qrtest"
	"github.com/ericlevine/qrscan/qrcode"
)

func noop([]qrscan.Symbol, error) {}

func TestDecodeArgumentErrors(t *testing.T) {
	png := qrtest.PNG(qrtest.Canvas(1, 1))
	tests := []struct {
		name         string
		args         []any
		msg          string
		typeMismatch bool
	}{
		{"no arguments", nil, "expected (img, callback) as arguments", false},
		{"image only", []any{png}, "expected (img, callback) as arguments", false},
		{"string image", []any{"image.png", noop}, "img must be a Buffer", true},
		{"nil image", []any{nil, noop}, "img must be a Buffer", true},
		{"missing callback", []any{png, nil}, "callback must be a function", true},
		{"non-function callback", []any{png, 42}, "callback must be a function", true},
		{"wrong signature", []any{png, func(error) {}}, "callback must be a function", true},
		{"nil typed callback", []any{png, qrcode.Callback(nil)}, "callback must be a function", true},
		{"bad options", []any{png, noop, "fast"}, "options must be *qrscan.Options", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(tt.args...)
			var ae *qrscan.ArgumentError
			require.True(t, errors.As(err, &ae), "got %v", err)
			assert.Equal(t, tt.msg, ae.Msg)
			assert.Equal(t, tt.typeMismatch, ae.TypeMismatch)
		})
	}
}

type outcome struct {
	symbols []qrscan.Symbol
	err     error
}

func decode(t *testing.T, args ...any) outcome {
	t.Helper()
	done := make(chan outcome, 1)
	cb := func(symbols []qrscan.Symbol, err error) { done <- outcome{symbols, err} }
	require.NoError(t, Decode(append(args[:1:1], append([]any{cb}, args[1:]...)...)...))
	select {
	case o := <-done:
		return o
	case <-time.After(30 * time.Second):
		t.Fatal("callback never ran")
		return outcome{}
	}
}

func TestDecodeDelivers(t *testing.T) {
	code, err := qrtest.Encode(2, qrscan.ECCLevelM, 5, qrtest.Byte("binding"))
	require.NoError(t, err)
	png := qrtest.PNG(qrtest.Render(code, 4, 4))

	o := decode(t, png)
	require.NoError(t, o.err)
	require.Len(t, o.symbols, 1)
	assert.Equal(t, []byte("binding"), o.symbols[0].Data)
	assert.Equal(t, qrscan.ModeByte, o.symbols[0].Mode)

	o = decode(t, png, &qrscan.Options{Workers: 2})
	require.NoError(t, o.err)
	assert.Len(t, o.symbols, 1)
}

func TestDecodeBlankAndInvalid(t *testing.T) {
	o := decode(t, qrtest.PNG(qrtest.Canvas(1, 1)))
	require.NoError(t, o.err)
	assert.NotNil(t, o.symbols)
	assert.Empty(t, o.symbols)

	o = decode(t, []byte{})
	assert.ErrorIs(t, o.err, qrscan.ErrImageLoad)
	assert.EqualError(t, o.err, "failed to load image")
	assert.Nil(t, o.symbols)
}

func TestConstants(t *testing.T) {
	c := Constants()
	assert.Equal(t, 1, c["VERSION_MIN"])
	assert.Equal(t, 40, c["VERSION_MAX"])
	assert.Equal(t, qrscan.ECCLevelL, c["ECC_LEVEL_L"])
	assert.Equal(t, qrscan.ECCLevelH, c["ECC_LEVEL_H"])
	assert.Equal(t, qrscan.ModeAlnum, c["MODE_ALNUM"])
	assert.Equal(t, qrscan.ModeKanji, c["MODE_KANJI"])
	assert.Len(t, c, 10)
}
