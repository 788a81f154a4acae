package decoder

import (
	"errors"

	"github.com/ericlevine/qrscan"
)

var (
	errInvalidVersion = errors.New("qrcode/decoder: invalid version number")
	errInvalidSize    = errors.New("qrcode/decoder: invalid grid size")

	errECCFailure      = &qrscan.DataError{Reason: "ECC failure"}
	errDataUnderflow   = &qrscan.DataError{Reason: "data underflow"}
	errUnknownDataType = &qrscan.DataError{Reason: "unknown data type"}
	errInvalidNumeric  = &qrscan.DataError{Reason: "invalid numeric data"}
	errInvalidAlnum    = &qrscan.DataError{Reason: "invalid alphanumeric data"}
	errInvalidECI      = &qrscan.DataError{Reason: "invalid ECI designator"}
)
