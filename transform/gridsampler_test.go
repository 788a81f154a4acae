package transform

import (
	"testing"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/bitutil"
)

// scaled draws a module pattern at scale pixels per module, offset by
// margin pixels.
func scaled(modules *bitutil.BitMatrix, scale, margin int) *bitutil.BitMatrix {
	side := modules.Width()*scale + 2*margin
	img := bitutil.NewBitMatrix(side)
	for y := 0; y < modules.Height(); y++ {
		for x := 0; x < modules.Width(); x++ {
			if modules.Get(x, y) {
				img.SetRegion(margin+x*scale, margin+y*scale, scale, scale)
			}
		}
	}
	return img
}

func TestSampleGrid(t *testing.T) {
	modules := bitutil.ParseStringMatrix(""+
		"X X   X \n"+
		"  X X   \n"+
		"X     X \n"+
		"X X X X \n", "X ", "  ")
	const scale, margin = 6, 9
	img := scaled(modules, scale, margin)
	m := float64(margin)
	w := float64(4 * scale)
	p, ok := NewPerspective([4]qrscan.Point{{X: m, Y: m}, {X: m + w, Y: m}, {X: m + w, Y: m + w}, {X: m, Y: m + w}}, 4, 4)
	if !ok {
		t.Fatal("degenerate")
	}
	bits, unknown := SampleGrid(img, 4, p)
	if !bits.Equals(modules) {
		t.Errorf("sampled\n%swant\n%s", bits, modules)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if unknown.Get(x, y) {
				t.Errorf("module (%d,%d) marked unknown", x, y)
			}
		}
	}
}

func TestSampleGridOutside(t *testing.T) {
	img := bitutil.NewBitMatrix(10)
	img.SetRegion(0, 0, 10, 10)
	// Modules 0 and 1 fall inside the image, 2 and 3 beyond its edge.
	p := FromParams([NumParams]float64{5, 0, 0, 0, 5, 0, 0, 0})
	bits, unknown := SampleGrid(img, 4, p)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			out := x >= 2 || y >= 2
			if unknown.Get(x, y) != out {
				t.Errorf("unknown(%d,%d) = %v, want %v", x, y, unknown.Get(x, y), out)
			}
			if !out && !bits.Get(x, y) {
				t.Errorf("module (%d,%d) should be dark", x, y)
			}
		}
	}
}

func TestVoteAndReadCell(t *testing.T) {
	// A 10x10 module dark across its left six columns: samples
	// at 0.3 and 0.5 of the width are dark, those at 0.7 light.
	img := bitutil.NewBitMatrix(10)
	img.SetRegion(0, 0, 6, 10)
	p := FromParams([NumParams]float64{10, 0, 0, 0, 10, 0, 0, 0})
	score, inside := Vote(img, p, 0, 0)
	if inside != 9 || score != 3 {
		t.Fatalf("Vote = %d of %d", score, inside)
	}
	if ReadCell(img, p, 0, 0) != 1 {
		t.Error("centre should read dark")
	}
	if ReadCell(img, p, 5, 5) != 0 {
		t.Error("cell outside the image should read 0")
	}
}
