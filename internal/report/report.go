// Package report converts decode results into the JSON and YAML shapes
// printed by the command and served over HTTP.
package report

import (
	"encoding/hex"

	"github.com/ericlevine/qrscan"
)

// Symbol is one decode result. Successful symbols carry the payload both
// as text and as hex; failed ones only carry Error and Corners.
type Symbol struct {
	Version          int           `json:"version,omitempty" yaml:"version,omitempty"`
	ECCLevel         string        `json:"ecc_level,omitempty" yaml:"ecc_level,omitempty"`
	Mask             int           `json:"mask" yaml:"mask"`
	Mode             string        `json:"mode,omitempty" yaml:"mode,omitempty"`
	Text             string        `json:"text,omitempty" yaml:"text,omitempty"`
	Data             string        `json:"data_hex,omitempty" yaml:"data_hex,omitempty"`
	ECI              int           `json:"eci,omitempty" yaml:"eci,omitempty"`
	ErrorsCorrected  int           `json:"errors_corrected,omitempty" yaml:"errors_corrected,omitempty"`
	Mirrored         bool          `json:"mirrored,omitempty" yaml:"mirrored,omitempty"`
	StructuredAppend *Sequence     `json:"structured_append,omitempty" yaml:"structured_append,omitempty"`
	Corners          [4][2]float64 `json:"corners" yaml:"corners,flow"`
	Error            string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Sequence is the structured append header of a symbol.
type Sequence struct {
	Index  int `json:"index" yaml:"index"`
	Total  int `json:"total" yaml:"total"`
	Parity int `json:"parity" yaml:"parity"`
}

// File holds the results of one input.
type File struct {
	Path    string   `json:"path" yaml:"path"`
	Symbols []Symbol `json:"symbols" yaml:"symbols"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// FromSymbol converts a decode result.
func FromSymbol(s qrscan.Symbol) Symbol {
	var out Symbol
	for i, c := range s.Corners {
		out.Corners[i] = [2]float64{c.X, c.Y}
	}
	if s.Err != nil {
		out.Error = s.Err.Error()
		return out
	}
	out.Version = s.Version
	out.ECCLevel = string(s.ECCLevel)
	out.Mask = s.Mask
	out.Mode = string(s.Mode)
	out.Text = s.Text()
	out.Data = hex.EncodeToString(s.Data)
	out.ECI = s.ECI
	out.ErrorsCorrected = s.ErrorsCorrected
	out.Mirrored = s.Mirrored
	if sa := s.StructuredAppend; sa != nil {
		out.StructuredAppend = &Sequence{Index: sa.Index, Total: sa.Total, Parity: int(sa.Parity)}
	}
	return out
}

// FromSymbols converts a result list, keeping its order. The result is
// never nil.
func FromSymbols(symbols []qrscan.Symbol) []Symbol {
	out := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, FromSymbol(s))
	}
	return out
}
