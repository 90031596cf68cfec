package termrender

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/wriggle"
)

var red = wriggle.Color{R: 1, A: 1}

type cell struct {
	r     rune
	style tcell.Style
}

type fakeScreen struct {
	w, h  int
	cells map[[2]int]cell
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{w: w, h: h, cells: map[[2]int]cell{}}
}

func (f *fakeScreen) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = cell{r, style}
}

func (f *fakeScreen) Size() (int, int) { return f.w, f.h }

func isBackground(r *Raster, x, y int) bool {
	return r.Pixel(x, y) == r.Background.WithAlpha(1)
}

// colorNear allows for 8-bit quantization and edge coverage.
func colorNear(a, b wriggle.Color) bool {
	const tol = 0.02
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}

func rect(p *wriggle.Path, x0, y0, x1, y1 float64) {
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.Close()
}

func TestRasterSize(t *testing.T) {
	r := NewRaster(10, 5, 1)
	if w, h := r.PixelSize(); w != 10 || h != 10 {
		t.Errorf("PixelSize = %dx%d, want 10x10", w, h)
	}
	if !isBackground(r, 9, 9) {
		t.Error("new raster not cleared to background")
	}
	if (r.Pixel(-1, 0) != wriggle.Color{}) || (r.Pixel(10, 0) != wriggle.Color{}) {
		t.Error("out of range pixels should be zero")
	}
}

func TestRasterFillCircle(t *testing.T) {
	r := NewRaster(10, 5, 1)
	r.FillCircle(5, 5, 2, wriggle.Solid(red))
	if got := r.Pixel(5, 5); !colorNear(got, red) {
		t.Errorf("center = %+v, want red", got)
	}
	if !isBackground(r, 0, 0) {
		t.Error("corner painted")
	}
}

func TestRasterSmallCircleStaysVisible(t *testing.T) {
	r := NewRaster(10, 5, 4)
	r.FillCircle(10, 10, 0.5, wriggle.Solid(red))
	if got := r.Pixel(2, 2); got.R < 0.6 {
		t.Errorf("pixel (2,2) R = %v, want a clearly visible mark", got.R)
	}
}

func TestRasterFillPath(t *testing.T) {
	r := NewRaster(10, 5, 1)
	p := wriggle.NewPath()
	rect(p, 2, 2, 6, 6)
	r.FillPath(p, wriggle.Solid(red))
	if got := r.Pixel(3, 3); !colorNear(got, red) {
		t.Errorf("inside = %+v, want red", got)
	}
	if !isBackground(r, 8, 8) {
		t.Error("outside pixel painted")
	}
}

func TestRasterFillNonZero(t *testing.T) {
	tests := []struct {
		name     string
		reversed bool
		holeRed  bool
	}{
		{"same direction fills the overlap", false, true},
		{"reversed inner ring cuts a hole", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRaster(10, 5, 1)
			p := wriggle.NewPath()
			rect(p, 0, 0, 8, 8)
			if tt.reversed {
				// Swapping the y arguments walks the ring the other way.
				rect(p, 2, 6, 6, 2)
			} else {
				rect(p, 2, 2, 6, 6)
			}
			r.FillPath(p, wriggle.Solid(red))
			if got := r.Pixel(1, 1); !colorNear(got, red) {
				t.Errorf("ring = %+v, want red", got)
			}
			if got := colorNear(r.Pixel(4, 4), red); got != tt.holeRed {
				t.Errorf("hole red = %v, want %v", got, tt.holeRed)
			}
		})
	}
}

func TestRasterGradientFill(t *testing.T) {
	r := NewRaster(10, 1, 1)
	p := wriggle.NewPath()
	rect(p, 0, 0, 10, 2)
	blue := wriggle.Color{B: 1, A: 1}
	g := wriggle.NewLinearGradient(0, 0, 10, 0,
		wriggle.GradientStop{Offset: 0, Color: red},
		wriggle.GradientStop{Offset: 1, Color: blue})
	r.FillPath(p, wriggle.Paint{Gradient: g})
	left, right := r.Pixel(0, 0), r.Pixel(9, 0)
	if left.R <= left.B || right.B <= right.R {
		t.Errorf("left %+v right %+v, want red to blue", left, right)
	}
}

func TestRasterAlpha(t *testing.T) {
	r := NewRaster(4, 2, 1)
	bg := r.Background
	r.Save()
	r.SetAlpha(0.5)
	r.FillCircle(2, 2, 2, wriggle.Solid(red))
	r.Restore()
	got := r.Pixel(2, 2)
	want := bg.R + (1-bg.R)*0.5
	if math.Abs(got.R-want) > 0.02 {
		t.Errorf("R = %v, want %v", got.R, want)
	}
	r.FillCircle(2, 2, 2, wriggle.Solid(red))
	if got := r.Pixel(2, 2); !colorNear(got, red) {
		t.Errorf("after Restore = %+v, want opaque red", got)
	}
}

func TestRasterStrokeLine(t *testing.T) {
	r := NewRaster(10, 5, 1)
	r.StrokeLine(0, 5, 10, 5, 2, wriggle.Solid(red))
	for _, y := range []int{4, 5} {
		if got := r.Pixel(3, y); !colorNear(got, red) {
			t.Errorf("pixel (3,%d) = %+v, want red", y, got)
		}
	}
	if !isBackground(r, 3, 7) {
		t.Error("pixel (3,7) painted")
	}
}

func TestRasterThinStrokeWidened(t *testing.T) {
	r := NewRaster(10, 5, 1)
	r.StrokeLine(1, 5.5, 9, 5.5, 0.1, wriggle.Solid(red))
	if got := r.Pixel(4, 5); !colorNear(got, red) {
		t.Errorf("pixel (4,5) = %+v, want a full pixel of red", got)
	}
}

func TestRasterPresent(t *testing.T) {
	r := NewRaster(4, 3, 1)
	p := wriggle.NewPath()
	rect(p, 0, 0, 4, 1)
	r.FillPath(p, wriggle.Solid(red))
	scr := newFakeScreen(3, 2)
	r.Present(scr)

	if len(scr.cells) != 6 {
		t.Fatalf("cells written = %d, want 6 (clipped to screen)", len(scr.cells))
	}
	c := scr.cells[[2]int{0, 0}]
	if c.r != halfBlock {
		t.Errorf("rune = %q, want %q", c.r, halfBlock)
	}
	fg, bg, _ := c.style.Decompose()
	if cr, cg, _ := fg.RGB(); cr < 250 || cg > 5 {
		t.Errorf("fg = %v, want red top pixel", fg)
	}
	if bg != toTcell(toRGBA(r.Background)) {
		t.Errorf("bg = %v, want background bottom pixel", bg)
	}
}

func TestPutStringClips(t *testing.T) {
	scr := newFakeScreen(4, 1)
	putString(scr, 2, 0, "abc", tcell.StyleDefault)
	if len(scr.cells) != 2 || scr.cells[[2]int{3, 0}].r != 'b' {
		t.Errorf("cells = %v", scr.cells)
	}
	putString(scr, 0, 5, "x", tcell.StyleDefault)
	if len(scr.cells) != 2 {
		t.Error("wrote outside the screen")
	}
}

func TestStatusLine(t *testing.T) {
	got := statusLine(wriggle.KindKoi, wriggle.Settings{Speed: 1.5, Count: 20}, 7)
	want := " koi  speed 1.5  count 20  particles 7  [0-5 c +/- [ ] q] "
	if got != want {
		t.Errorf("statusLine = %q, want %q", got, want)
	}
}
