package qrscan

import (
	"errors"
	"testing"
)

func TestSymbolText(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{"numeric", []Segment{{Mode: ModeNumeric, Data: []byte("0123")}}, "0123"},
		{"utf-8 bytes", []Segment{{Mode: ModeByte, Data: []byte("h\xc3\xa9")}}, "hé"},
		{"latin-1 guess", []Segment{{Mode: ModeByte, Data: []byte("caf\xe9 cr\xe8me")}}, "café crème"},
		{"eci latin-1", []Segment{{Mode: ModeByte, ECI: 3, Data: []byte{'h', 0xE9}}}, "hé"},
		{"eci cyrillic", []Segment{{Mode: ModeByte, ECI: 7, Data: []byte{0xB4, 0xD0}}}, "Да"},
		{"unknown eci kept", []Segment{{Mode: ModeByte, ECI: 899, Data: []byte("raw")}}, "raw"},
		{"kanji", []Segment{{Mode: ModeKanji, Count: 2, Data: []byte{0x93, 0x5F, 0xE4, 0xAA}}}, "点茗"},
		{
			"mixed",
			[]Segment{
				{Mode: ModeAlnum, Data: []byte("AB ")},
				{Mode: ModeKanji, Data: []byte{0x93, 0x5F}},
				{Mode: ModeNumeric, Data: []byte("7")},
			},
			"AB 点7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Symbol{Segments: tt.segments}
			if got := s.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	data := &DataError{Reason: "data underflow"}
	if !errors.Is(data, ErrData) || errors.Is(data, ErrFormat) {
		t.Error("DataError must match ErrData only")
	}
	if data.Error() != "data underflow" {
		t.Errorf("message = %q", data.Error())
	}
	load := &LoadError{Err: errors.New("png: invalid format")}
	if !errors.Is(load, ErrImageLoad) || load.Error() != "failed to load image" {
		t.Errorf("LoadError = %v", load)
	}
	arg := &ArgumentError{Msg: "img must be a Buffer", TypeMismatch: true}
	if arg.Error() != "img must be a Buffer" {
		t.Errorf("ArgumentError = %v", arg)
	}
	if ModeAlphanumeric != ModeAlnum {
		t.Error("ModeAlphanumeric is an alias")
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o *Options
	if o.WorkerCount() != 1 || o.Log() == nil {
		t.Error("nil options")
	}
	if (&Options{Workers: 6}).WorkerCount() != 6 {
		t.Error("worker count")
	}
}
