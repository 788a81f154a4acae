package decoder

import (
	"math/bits"
	"testing"
)

func TestVersionForNumber(t *testing.T) {
	for n := 1; n <= 40; n++ {
		v, err := VersionForNumber(n)
		if err != nil {
			t.Fatalf("version %d: %v", n, err)
		}
		if v.Number != n || v.Size() != 17+4*n {
			t.Errorf("version %d: got number %d size %d", n, v.Number, v.Size())
		}
		w, err := VersionForSize(v.Size())
		if err != nil || w != v {
			t.Errorf("VersionForSize(%d) = %v, %v", v.Size(), w, err)
		}
	}
	for _, n := range []int{0, -1, 41} {
		if _, err := VersionForNumber(n); err == nil {
			t.Errorf("VersionForNumber(%d) should fail", n)
		}
	}
	for _, size := range []int{0, 17, 20, 22, 23, 181} {
		if _, err := VersionForSize(size); err == nil {
			t.Errorf("VersionForSize(%d) should fail", size)
		}
	}
}

func TestBlockTablesAddUp(t *testing.T) {
	for n := 1; n <= 40; n++ {
		v, _ := VersionForNumber(n)
		for level := ECLevelL; level <= ECLevelH; level++ {
			ecb := v.ECBlocksForLevel(level)
			if got := ecb.TotalDataCodewords() + ecb.TotalECCodewords(); got != v.TotalCodewords {
				t.Errorf("version %d %v: data+ecc = %d, want %d", n, level, got, v.TotalCodewords)
			}
		}
	}
}

// remainderBits is the number of leftover modules after the last codeword.
func remainderBits(n int) int {
	switch {
	case n == 1:
		return 0
	case n <= 6:
		return 7
	case n <= 13:
		return 0
	case n <= 20:
		return 3
	case n <= 27:
		return 4
	case n <= 34:
		return 3
	default:
		return 0
	}
}

func TestDataModuleCount(t *testing.T) {
	for n := 1; n <= 40; n++ {
		v, _ := VersionForNumber(n)
		modules := dataModules(v)
		if got, want := len(modules), 8*v.TotalCodewords+remainderBits(n); got != want {
			t.Errorf("version %d: %d data modules, want %d", n, got, want)
		}
		seen := make(map[[2]int]bool, len(modules))
		for _, m := range modules {
			key := [2]int{m.X, m.Y}
			if seen[key] {
				t.Fatalf("version %d: module %v read twice", n, m)
			}
			seen[key] = true
		}
	}
}

func TestDataModuleOrder(t *testing.T) {
	v, _ := VersionForNumber(1)
	modules := dataModules(v)
	// The first codeword fills the bottom-right corner, upward.
	want := [][2]int{{20, 20}, {19, 20}, {20, 19}, {19, 19}, {20, 18}, {19, 18}, {20, 17}, {19, 17}}
	for i, w := range want {
		if modules[i].X != w[0] || modules[i].Y != w[1] {
			t.Errorf("module %d = %v, want %v", i, modules[i], w)
		}
	}
}

func TestDecodeVersionInformation(t *testing.T) {
	for n := 7; n <= 40; n++ {
		code := VersionBits(n)
		if got, d := DecodeVersionInformation(code); got != n || d != 0 {
			t.Errorf("exact %d: got %d at distance %d", n, got, d)
		}
		damaged := code ^ 0b100000000100000001
		if got, d := DecodeVersionInformation(damaged); got != n || d != 3 {
			t.Errorf("3 errors %d: got %d at distance %d", n, got, d)
		}
	}
	far := -1
	for x := 0; x < 1<<18 && far < 0; x++ {
		nearest := 18
		for _, target := range versionDecodeInfo {
			if d := bits.OnesCount(uint(x ^ target)); d < nearest {
				nearest = d
			}
		}
		if nearest > maxVersionDistance {
			far = x
		}
	}
	if far < 0 {
		t.Fatal("no 18-bit value is further than 3 from every version codeword")
	}
	if got, _ := DecodeVersionInformation(far); got != 0 {
		t.Errorf("DecodeVersionInformation(%#x) = %d, want 0", far, got)
	}
}

func TestFunctionPatternVersion7(t *testing.T) {
	v, _ := VersionForNumber(7)
	fp := v.BuildFunctionPattern()
	size := v.Size()
	checks := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},         // finder
		{8, 8, true},         // format
		{size - 11, 0, true}, // version, top right
		{0, size - 11, true}, // version, bottom left
		{22, 22, true},       // centre alignment pattern
		{6, 22, true},        // timing column at an alignment pattern
		{22, 6, true},        // timing row at an alignment pattern
		{9, 9, false},        // data
		{size - 1, size - 1, false},
	}
	for _, c := range checks {
		if got := fp.Get(c.x, c.y); got != c.want {
			t.Errorf("function(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}
