package wriggle

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// NoticeLevel distinguishes informational notices from failures.
type NoticeLevel uint8

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

const (
	noticeHold = 1.5 // seconds at full opacity
	noticeFade = 1.0 // seconds to fade out
)

// Notice is a short on-screen message that holds, then fades out. Backends
// read Text and Alpha each frame; the scene drops notices once Done.
type Notice struct {
	Text  string
	Level NoticeLevel
	Alpha float64
	Done  bool

	hold float64
	fade *gween.Tween
}

// NewNotice creates a fully opaque notice.
func NewNotice(level NoticeLevel, text string) *Notice {
	return &Notice{
		Text:  text,
		Level: level,
		Alpha: 1,
		hold:  noticeHold,
		fade:  gween.New(1, 0, noticeFade, ease.InQuad),
	}
}

// Update advances the notice by dt seconds.
func (n *Notice) Update(dt float64) {
	if n.Done {
		return
	}
	if n.hold > 0 {
		n.hold -= dt
		if n.hold > 0 {
			return
		}
		// Carry the overshoot into the fade.
		dt = -n.hold
	}
	a, finished := n.fade.Update(float32(dt))
	n.Alpha = float64(a)
	if finished {
		n.Alpha = 0
		n.Done = true
	}
}

// Color returns the notice's text color at its current alpha.
func (n *Notice) Color() Color {
	if n.Level == NoticeError {
		return RGB(255, 110, 100).WithAlpha(n.Alpha)
	}
	return RGB(220, 230, 255).WithAlpha(n.Alpha)
}
