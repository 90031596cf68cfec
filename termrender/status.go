package termrender

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/wriggle"
)

func statusLine(kind wriggle.Kind, st wriggle.Settings, particles int) string {
	return fmt.Sprintf(" %s  speed %.1f  count %d  particles %d  [0-5 c +/- [ ] q] ",
		kind, st.Speed, st.Count, particles)
}

func putString(s Screen, x, y int, text string, style tcell.Style) {
	w, h := s.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
