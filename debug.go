package wriggle

import (
	"time"

	"github.com/sirupsen/logrus"
)

// FrameStats holds per-frame timings and counts. Only populated in debug
// mode.
type FrameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	particles  int
	spawned    int
	drawOps    int
}

// UpdateTime is the time spent in the last Scene.Update.
func (f FrameStats) UpdateTime() time.Duration { return f.updateTime }

// DrawTime is the time spent in the last Scene.Draw.
func (f FrameStats) DrawTime() time.Duration { return f.drawTime }

// Particles is the live particle count after the last update.
func (f FrameStats) Particles() int { return f.particles }

// DrawOps is the number of Surface draw calls issued by the last Draw.
func (f FrameStats) DrawOps() int { return f.drawOps }

// SetDebugMode enables or disables per-frame stats. When enabled each Draw
// logs timings and counts at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// DebugMode reports whether debug stats are collected.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// Stats returns the last frame's stats.
func (s *Scene) Stats() FrameStats {
	return s.stats
}

func (s *Scene) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	s.log.WithFields(logrus.Fields{
		"update":    stats.updateTime,
		"draw":      stats.drawTime,
		"particles": stats.particles,
		"spawned":   stats.spawned,
		"draw_ops":  stats.drawOps,
		"entity":    s.entities.Kind().String(),
	}).Debug("frame")
}

// countingSurface forwards to a Surface and counts draw calls.
type countingSurface struct {
	Surface
	ops int
}

func (c *countingSurface) FillCircle(cx, cy, r float64, p Paint) {
	c.ops++
	c.Surface.FillCircle(cx, cy, r, p)
}

func (c *countingSurface) FillEllipse(cx, cy, rx, ry, rotation float64, p Paint) {
	c.ops++
	c.Surface.FillEllipse(cx, cy, rx, ry, rotation, p)
}

func (c *countingSurface) FillPath(path *Path, p Paint) {
	c.ops++
	c.Surface.FillPath(path, p)
}

func (c *countingSurface) StrokePath(path *Path, width float64, p Paint) {
	c.ops++
	c.Surface.StrokePath(path, width, p)
}

func (c *countingSurface) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	c.ops++
	c.Surface.StrokeLine(x0, y0, x1, y1, width, p)
}
