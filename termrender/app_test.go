package termrender

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/wriggle"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(64, 18)

	cfg := wriggle.DefaultConfig()
	cfg.Seed = 1
	return NewApp(screen, wriggle.NewScene(cfg, nil), nil)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewAppFitsViewport(t *testing.T) {
	a := newTestApp(t)
	if a.Raster.Scale != 16 {
		t.Fatalf("Scale = %v, want 16", a.Raster.Scale)
	}
	vp := a.Scene.Viewport()
	if vp.Width != 1024 || vp.Height != 576 {
		t.Errorf("viewport = %vx%v, want 1024x576", vp.Width, vp.Height)
	}
	if x, y := a.CellToWorld(0, 0); x != 8 || y != 16 {
		t.Errorf("CellToWorld(0,0) = (%v, %v), want (8, 16)", x, y)
	}
}

func TestAppMouse(t *testing.T) {
	a := newTestApp(t)
	a.HandleEvent(tcell.NewEventMouse(10, 4, tcell.Button1, tcell.ModNone))
	in := a.Input()
	if !in.Held || in.PointerX != 168 || in.PointerY != 144 {
		t.Errorf("input = %+v, want held at (168, 144)", in)
	}
	a.HandleEvent(tcell.NewEventMouse(10, 4, tcell.ButtonNone, tcell.ModNone))
	if a.Input().Held {
		t.Error("still held after release")
	}
}

func TestAppKeys(t *testing.T) {
	a := newTestApp(t)
	var selected []wriggle.Kind
	a.OnSelect = func(k wriggle.Kind) { selected = append(selected, k) }

	a.HandleEvent(key('3'))
	if a.Scene.Entities().Kind() != wriggle.KindKoi {
		t.Errorf("Kind = %s, want koi", a.Scene.Entities().Kind())
	}
	if len(selected) != 1 || selected[0] != wriggle.KindKoi {
		t.Errorf("OnSelect calls = %v", selected)
	}

	a.HandleEvent(key('+'))
	if got := a.Scene.Settings().Speed; math.Abs(got-1.1) > 1e-9 {
		t.Errorf("Speed = %v, want 1.1", got)
	}
	a.HandleEvent(key('-'))
	a.HandleEvent(key('-'))
	if got := a.Scene.Settings().Speed; math.Abs(got-0.9) > 1e-9 {
		t.Errorf("Speed = %v, want 0.9", got)
	}
	a.HandleEvent(key(']'))
	if got := a.Scene.Settings().Count; got != 60 {
		t.Errorf("Count = %d, want 60", got)
	}

	a.Scene.PointerDown(100, 100)
	if a.Scene.Particles().Len() == 0 {
		t.Fatal("no burst")
	}
	a.HandleEvent(key('c'))
	if n := a.Scene.Particles().Len(); n != 0 {
		t.Errorf("particles after clear = %d", n)
	}

	a.HandleEvent(key('d'))
	if !a.Scene.DebugMode() {
		t.Error("debug not toggled")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)
	tests := []*tcell.EventKey{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	}
	for _, ev := range tests {
		if a.HandleEvent(ev) {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
	if !a.HandleEvent(key('x')) {
		t.Error("unbound key quit")
	}
}

func TestAppResize(t *testing.T) {
	a := newTestApp(t)
	a.HandleEvent(tcell.NewEventResize(32, 9))
	if w, h := a.Raster.PixelSize(); w != 32 || h != 18 {
		t.Errorf("PixelSize = %dx%d, want 32x18", w, h)
	}
	if a.Raster.Scale != 32 {
		t.Errorf("Scale = %v, want 32", a.Raster.Scale)
	}
}

func TestAppTickDraws(t *testing.T) {
	a := newTestApp(t)
	for i := 0; i < 10; i++ {
		a.Tick(1.0 / 30)
	}
	w, h := a.Raster.PixelSize()
	drawn := false
	for y := 0; y < h && !drawn; y++ {
		for x := 0; x < w; x++ {
			if !isBackground(a.Raster, x, y) {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Error("Tick left the raster blank")
	}
}
