package charset

import "testing"

func TestGetECIByValue(t *testing.T) {
	tests := []struct {
		value int
		want  *ECI
	}{
		{0, ECICp437},
		{2, ECICp437},
		{3, ECIISO8859_1},
		{20, ECISJIS},
		{26, ECIUTF8},
		{170, ECIASCII},
		{14, nil},
	}
	for _, tt := range tests {
		got, err := GetECIByValue(tt.value)
		if err != nil || got != tt.want {
			t.Errorf("GetECIByValue(%d) = %v, %v", tt.value, got, err)
		}
	}
	for _, v := range []int{-1, 900} {
		if _, err := GetECIByValue(v); err != ErrFormatECI {
			t.Errorf("GetECIByValue(%d) err = %v", v, err)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		eci  *ECI
		data []byte
		want string
	}{
		{ECIUTF8, []byte("h\xc3\xa9"), "hé"},
		{ECIISO8859_1, []byte{'h', 0xE9}, "hé"},
		{ECIISO8859_5, []byte{0xB4, 0xD0}, "Да"},
		{ECICp1252, []byte{0x80}, "€"},
		{ECISJIS, []byte{0x93, 0x5F, 0xE4, 0xAA}, "点茗"},
		{ECIUTF16BE, []byte{0x00, 'o', 0x00, 'k'}, "ok"},
		{ECIGB18030, []byte{0xC4, 0xE3}, "你"},
		{ECIEUC_KR, []byte{0xC7, 0xD1}, "한"},
		{ECIBig5, []byte{0xA4, 0xA4}, "中"},
	}
	for _, tt := range tests {
		if got := tt.eci.Decode(tt.data); got != tt.want {
			t.Errorf("%s: Decode(% x) = %q, want %q", tt.eci.Name, tt.data, got, tt.want)
		}
	}
}

func TestDecodeBytesByName(t *testing.T) {
	if got := DecodeBytes([]byte{0xE9}, "ISO-8859-1"); got != "é" {
		t.Errorf("alias lookup = %q", got)
	}
	if got := DecodeBytes([]byte("raw"), "no-such-charset"); got != "raw" {
		t.Errorf("unknown name = %q", got)
	}
}

func TestGuessEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want *ECI
	}{
		{"ascii", []byte("hello"), ECIISO8859_1},
		{"utf-8", []byte("caf\xc3\xa9"), ECIUTF8},
		{"latin-1", []byte("caf\xe9 cr\xe8me"), ECIISO8859_1},
		{"shift_jis kanji", []byte{0x93, 0x5F, 0xE4, 0xAA, 0x93, 0x5F}, ECISJIS},
		{"utf-16 bom", []byte{0xFE, 0xFF, 0x00, 'a'}, utf16BOM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessEncoding(tt.data); got != tt.want {
				t.Errorf("GuessEncoding = %s, want %s", got.Name, tt.want.Name)
			}
		})
	}
	if got := utf16BOM.Decode([]byte{0xFE, 0xFF, 0x00, 'a'}); got != "a" {
		t.Errorf("BOM decode = %q", got)
	}
}
