// Package termrender rasterizes wriggle scenes into terminal cells. Shapes
// are drawn into an RGBA image with an anti-aliasing path rasterizer; each
// cell then shows two vertical pixels of that image with the upper half
// block, the top pixel as foreground and the bottom as background.
package termrender

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/vector"

	"github.com/phanxgames/wriggle"
)

const (
	halfBlock  = '▀'
	glowPasses = 2
)

// Screen is the subset of tcell.Screen the raster presents to.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

type drawState struct {
	alpha     float64
	blur      float64
	blurColor wriggle.Color
}

// Raster is a wriggle.Surface backed by an image.RGBA. World coordinates
// are divided by Scale to get pixel coordinates.
type Raster struct {
	Scale      float64
	Background wriggle.Color

	img     *image.RGBA
	z       *vector.Rasterizer
	uniform image.Uniform
	state   drawState
	stack   []drawState
	flat    [][]wriggle.Vec2
	line    wriggle.Path
	shape   wriggle.Path
}

// NewRaster creates a raster of cols x rows cells, which is cols x 2*rows
// pixels.
func NewRaster(cols, rows int, scale float64) *Raster {
	r := &Raster{Scale: scale, Background: wriggle.RGB(8, 10, 18)}
	r.Resize(cols, rows)
	return r
}

// Resize changes the cell dimensions and clears the raster.
func (r *Raster) Resize(cols, rows int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(cols, 0), max(rows, 0)*2))
	r.Clear()
}

// PixelSize returns the raster dimensions in pixels.
func (r *Raster) PixelSize() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image. It is redrawn in place every frame.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Clear fills the raster with the background and resets draw state.
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(toRGBA(r.Background)), image.Point{}, draw.Src)
	r.state = drawState{alpha: 1}
	r.stack = r.stack[:0]
}

// Pixel returns the color at pixel (x, y).
func (r *Raster) Pixel(x, y int) wriggle.Color {
	if !image.Pt(x, y).In(r.img.Bounds()) {
		return wriggle.Color{}
	}
	c := r.img.RGBAAt(x, y)
	return wriggle.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: 1}
}

// Present writes every cell to screen. Cells outside the screen are
// skipped.
func (r *Raster) Present(screen Screen) {
	sw, sh := screen.Size()
	w, h := r.PixelSize()
	for cy := 0; cy < h/2 && cy < sh; cy++ {
		for cx := 0; cx < w && cx < sw; cx++ {
			top := r.img.RGBAAt(cx, cy*2)
			bot := r.img.RGBAAt(cx, cy*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bot))
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toRGBA(c wriggle.Color) color.RGBA {
	return color.RGBA{R: uint8(channel(c.R)), G: uint8(channel(c.G)), B: uint8(channel(c.B)), A: 0xff}
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func unit16(v float64) uint16 {
	return uint16(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}

func nrgba64(c wriggle.Color, alpha float64) color.NRGBA64 {
	return color.NRGBA64{R: unit16(c.R), G: unit16(c.G), B: unit16(c.B), A: unit16(c.A * alpha)}
}

func (r *Raster) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) SetAlpha(a float64) {
	r.state.alpha = math.Max(0, math.Min(1, a))
}

func (r *Raster) SetBlur(radius float64, c wriggle.Color) {
	r.state.blur = radius
	r.state.blurColor = c
}

func (r *Raster) glow(fn func(spread, alpha float64)) {
	if r.state.blur <= 0 || r.state.blurColor.A <= 0 {
		return
	}
	for i := glowPasses; i >= 1; i-- {
		fn(r.state.blur*float64(i)/glowPasses, r.state.alpha*r.state.blurColor.A/(glowPasses+1))
	}
}

func (r *Raster) FillCircle(cx, cy, radius float64, p wriggle.Paint) {
	r.FillEllipse(cx, cy, radius, radius, 0, p)
}

// FillEllipse widens radii below half a pixel so small particles stay
// visible.
func (r *Raster) FillEllipse(cx, cy, rx, ry, rotation float64, p wriggle.Paint) {
	if rx <= 0 || ry <= 0 {
		return
	}
	half := r.Scale / 2
	rx, ry = math.Max(rx, half), math.Max(ry, half)
	r.glow(func(spread, alpha float64) {
		r.shape.Reset()
		r.shape.Ellipse(cx, cy, rx+spread, ry+spread, rotation)
		r.fill(&r.shape, wriggle.Solid(r.state.blurColor), alpha)
	})
	r.shape.Reset()
	r.shape.Ellipse(cx, cy, rx, ry, rotation)
	r.fill(&r.shape, p, r.state.alpha)
}

func (r *Raster) FillPath(path *wriggle.Path, p wriggle.Paint) {
	if path == nil || path.Empty() {
		return
	}
	r.glow(func(spread, alpha float64) {
		r.stroke(path, spread*2, wriggle.Solid(r.state.blurColor), alpha)
	})
	r.fill(path, p, r.state.alpha)
}

func (r *Raster) StrokePath(path *wriggle.Path, width float64, p wriggle.Paint) {
	if path == nil || path.Empty() || width <= 0 {
		return
	}
	r.glow(func(spread, alpha float64) {
		r.stroke(path, width+spread*2, wriggle.Solid(r.state.blurColor), alpha)
	})
	r.stroke(path, width, p, r.state.alpha)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, p wriggle.Paint) {
	r.line.Reset()
	r.line.MoveTo(x0, y0)
	r.line.LineTo(x1, y1)
	r.StrokePath(&r.line, width, p)
}

// stroke fills the outline of path widened to width: a quad per segment
// and a disc per vertex for round joins and caps. Strokes thinner than a
// pixel are widened to one pixel.
func (r *Raster) stroke(path *wriggle.Path, width float64, p wriggle.Paint, alpha float64) {
	half := math.Max(width, r.Scale) / 2
	r.flat = path.Flatten(r.flat)
	r.shape.Reset()
	for _, poly := range r.flat {
		for i, v := range poly {
			r.shape.Circle(v.X, v.Y, half)
			if i == 0 {
				continue
			}
			a := poly[i-1]
			dx, dy := v.X-a.X, v.Y-a.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			// Same orientation as Circle so overlaps add instead of cancel.
			nx, ny := -dy/l*half, dx/l*half
			r.shape.MoveTo(a.X-nx, a.Y-ny)
			r.shape.LineTo(v.X-nx, v.Y-ny)
			r.shape.LineTo(v.X+nx, v.Y+ny)
			r.shape.LineTo(a.X+nx, a.Y+ny)
			r.shape.Close()
		}
	}
	r.fill(&r.shape, p, alpha)
}

// fill rasterizes path with the nonzero rule and composites p over the
// image. The rasterizer covers only the path's clipped pixel bounds.
func (r *Raster) fill(path *wriggle.Path, p wriggle.Paint, alpha float64) {
	if alpha <= 0 || path.Empty() || r.Scale <= 0 {
		return
	}
	b := path.Bounds()
	s := 1 / r.Scale
	clip := image.Rect(
		int(math.Floor(b.X*s)), int(math.Floor(b.Y*s)),
		int(math.Ceil((b.X+b.Width)*s))+1, int(math.Ceil((b.Y+b.Height)*s))+1,
	).Intersect(r.img.Bounds())
	if clip.Empty() {
		return
	}
	if r.z == nil {
		r.z = vector.NewRasterizer(clip.Dx(), clip.Dy())
	} else {
		r.z.Reset(clip.Dx(), clip.Dy())
	}
	r.trace(path, s, float64(clip.Min.X), float64(clip.Min.Y))
	r.z.Draw(r.img, clip, r.source(p, alpha), clip.Min)
}

// trace feeds path to the rasterizer in pixel space relative to (ox, oy).
// Every subpath is closed, as fills require.
func (r *Raster) trace(path *wriggle.Path, s, ox, oy float64) {
	pt := func(v wriggle.Vec2) (float32, float32) {
		return float32(v.X*s - ox), float32(v.Y*s - oy)
	}
	open := false
	for _, seg := range path.Segments() {
		switch seg.Op {
		case wriggle.PathMoveTo:
			if open {
				r.z.ClosePath()
			}
			x, y := pt(seg.P[0])
			r.z.MoveTo(x, y)
			open = true
		case wriggle.PathLineTo:
			x, y := pt(seg.P[0])
			r.z.LineTo(x, y)
		case wriggle.PathQuadTo:
			cx, cy := pt(seg.P[0])
			x, y := pt(seg.P[1])
			r.z.QuadTo(cx, cy, x, y)
		case wriggle.PathCubicTo:
			c1x, c1y := pt(seg.P[0])
			c2x, c2y := pt(seg.P[1])
			x, y := pt(seg.P[2])
			r.z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case wriggle.PathClose:
			r.z.ClosePath()
			open = false
		}
	}
	if open {
		r.z.ClosePath()
	}
}

// source returns the image sampled under the rasterized mask. Solid
// paints use a uniform so the rasterizer takes its fast path.
func (r *Raster) source(p wriggle.Paint, alpha float64) image.Image {
	if p.Gradient == nil {
		r.uniform.C = nrgba64(p.Color, alpha)
		return &r.uniform
	}
	return &paintImage{paint: p, scale: r.Scale, alpha: alpha}
}

// paintImage samples a gradient paint at pixel centers in world space.
type paintImage struct {
	paint wriggle.Paint
	scale float64
	alpha float64
}

func (pi *paintImage) ColorModel() color.Model { return color.NRGBA64Model }

func (pi *paintImage) Bounds() image.Rectangle {
	return image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)
}

func (pi *paintImage) At(x, y int) color.Color {
	c := pi.paint.At((float64(x)+0.5)*pi.scale, (float64(y)+0.5)*pi.scale)
	return nrgba64(c, pi.alpha)
}

var _ wriggle.Surface = (*Raster)(nil)
