package termrender

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/wriggle"
)

const (
	frameInterval = 33 * time.Millisecond // ~30 FPS
	speedStep     = 0.1
	countStep     = 10
)

// App drives a scene from tcell events and presents it through a Raster.
// Pointer positions are converted from cells to world units.
type App struct {
	Screen tcell.Screen
	Scene  *wriggle.Scene
	Raster *Raster
	Log    logrus.FieldLogger

	// OnSelect runs after the creature changes, for example to play a
	// sound.
	OnSelect func(wriggle.Kind)

	input wriggle.FrameInput
}

// NewApp sizes a raster to the screen so that the scene's viewport maps
// onto it.
func NewApp(screen tcell.Screen, scene *wriggle.Scene, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cols, rows := screen.Size()
	a := &App{
		Screen: screen,
		Scene:  scene,
		Raster: NewRaster(cols, rows, 1),
		Log:    log,
	}
	a.resize(cols, rows)
	c := scene.Viewport().Center()
	a.input = wriggle.FrameInput{PointerX: c.X, PointerY: c.Y}
	return a
}

// resize keeps the viewport width and picks the scale that fits it.
func (a *App) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	vp := a.Scene.Viewport()
	scale := vp.Width / float64(cols)
	if scale <= 0 {
		scale = 1
	}
	a.Raster.Scale = scale
	a.Raster.Resize(cols, rows)
	a.Scene.Resize(float64(cols)*scale, float64(rows*2)*scale)
}

// CellToWorld returns the world position of the center of cell (cx, cy).
func (a *App) CellToWorld(cx, cy int) (float64, float64) {
	s := a.Raster.Scale
	return (float64(cx) + 0.5) * s, (float64(cy) + 0.5) * 2 * s
}

// Input returns the pointer state that the next Tick will use.
func (a *App) Input() wriggle.FrameInput {
	return a.input
}

// HandleEvent applies a tcell event. It returns false when the app should
// quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.input.PointerX, a.input.PointerY = a.CellToWorld(x, y)
		a.input.Held = ev.Buttons()&tcell.Button1 != 0
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.resize(cols, rows)
		a.Screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	st := a.Scene.Settings()
	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r >= '0' && r <= '5':
		kind := wriggle.Kind(r - '0')
		if err := a.Scene.SelectEntity(kind); err != nil {
			a.Log.WithError(err).Warn("select failed")
			break
		}
		if a.OnSelect != nil {
			a.OnSelect(kind)
		}
	case r == 'c' || r == 'C':
		a.Scene.Clear()
	case r == '+' || r == '=':
		a.Scene.SetSpeed(st.Speed + speedStep)
	case r == '-':
		a.Scene.SetSpeed(st.Speed - speedStep)
	case r == ']':
		a.Scene.SetCount(st.Count + countStep)
	case r == '[':
		a.Scene.SetCount(st.Count - countStep)
	case r == 'd' || r == 'D':
		a.Scene.SetDebugMode(!a.Scene.DebugMode())
	}
	return true
}

// Tick advances the scene by dt seconds and redraws the raster.
func (a *App) Tick(dt float64) {
	a.Scene.Update(dt, a.input)
	a.Raster.Clear()
	a.Scene.Draw(a.Raster)
}

// Run polls events on a separate goroutine and ticks on a fixed interval
// until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	a.Screen.EnableMouse()
	defer a.Screen.DisableMouse()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.Tick(dt)
			a.Raster.Present(a.Screen)
			a.drawStatus()
			a.Screen.Show()
		}
	}
}

// drawStatus prints the settings on the first row and the newest notice
// on the last.
func (a *App) drawStatus() {
	st := a.Scene.Settings()
	line := statusLine(a.Scene.Entities().Kind(), st, a.Scene.Particles().Len())
	putString(a.Screen, 0, 0, line, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack))

	notices := a.Scene.Notices()
	if len(notices) == 0 {
		return
	}
	n := notices[len(notices)-1]
	c := n.Color()
	fg := tcell.NewRGBColor(channel(c.R*c.A), channel(c.G*c.A), channel(c.B*c.A))
	_, rows := a.Screen.Size()
	putString(a.Screen, 0, rows-1, n.Text, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
}
