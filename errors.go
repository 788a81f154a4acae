package qrscan

import "errors"

var (
	// ErrImageLoad is returned when the input bytes cannot be decoded into an
	// image. It fails the whole call.
	ErrImageLoad = errors.New("failed to load image")

	// ErrUnlocatableGrid is reported for a candidate whose grid-to-image
	// mapping is degenerate.
	ErrUnlocatableGrid = errors.New("unlocatable grid")

	// ErrFormat is reported when neither copy of the format information
	// is within correction distance of a valid codeword.
	ErrFormat = errors.New("format data ECC failure")

	// ErrVersionMismatch is reported when the version information decodes to
	// a version the sampled geometry cannot confirm.
	ErrVersionMismatch = errors.New("invalid version")

	// ErrData is the class of errors raised after the grid has been read:
	// uncorrectable blocks and malformed segment streams. Concrete values are
	// *DataError.
	ErrData = errors.New("data error")
)

// LoadError wraps the reason an image could not be loaded. Its message is
// always that of ErrImageLoad.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return ErrImageLoad.Error() }

// Unwrap returns the underlying decoder error.
func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrImageLoad }

// DataError describes why the codewords of a located symbol could not be
// turned into a payload. It matches ErrData with errors.Is.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string { return e.Reason }

func (e *DataError) Is(target error) bool { return target == ErrData }

// ArgumentError is returned synchronously for malformed calls, before any
// decoding starts.
type ArgumentError struct {
	Msg string
	// TypeMismatch is set when an argument was present but of the wrong type.
	TypeMismatch bool
}

func (e *ArgumentError) Error() string { return e.Msg }
