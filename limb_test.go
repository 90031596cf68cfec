package wriggle

import (
	"math"
	"testing"
)

func limbJoints() []Joint {
	return []Joint{{X: 100, Y: 100}, {X: 90, Y: 100}, {X: 80, Y: 100}}
}

func TestLimbZeroSegmentsDrawsNothing(t *testing.T) {
	l := NewLimbSystem(LimbFore, 1, 0, 10, 1, 3)
	l.Update(limbJoints(), 0, 0)
	rec := NewRecordingSurface()
	l.Draw(rec, limbJoints(), LimbStyle{Width: 2})
	if len(rec.Ops) != 0 {
		t.Errorf("draw calls = %d, want 0", len(rec.Ops))
	}
	if l.Tip() != nil {
		t.Error("Tip should be nil with no segments")
	}
}

func TestLimbInvalidRootDrawsNothing(t *testing.T) {
	l := NewLimbSystem(LimbHind, 7, 3, 10, 1, 3)
	l.Update(limbJoints(), 0, 0)
	if pts := l.Points(limbJoints()); pts != nil {
		t.Errorf("Points = %v, want nil", pts)
	}
}

func TestLimbSegmentSpacing(t *testing.T) {
	for _, kind := range []LimbKind{LimbGeneric, LimbFore, LimbHind, LimbWing} {
		l := NewLimbSystem(kind, 1, 4, 12, -1, 0)
		for ms := 0.0; ms < 2000; ms += 16 {
			l.Update(limbJoints(), ms, 150)
			pts := l.Points(limbJoints())
			for i := 1; i < len(pts); i++ {
				d := math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
				if !near(d, 12, 1e-9) {
					t.Fatalf("%s segment %d length = %v, want 12", kind, i-1, d)
				}
			}
		}
	}
}

func TestLimbRootAnchored(t *testing.T) {
	joints := limbJoints()
	l := NewLimbSystem(LimbFore, 2, 3, 10, 1, 0)
	l.Update(joints, 500, 0)
	pts := l.Points(joints)
	if pts[0] != (Vec2{80, 100}) {
		t.Errorf("root point = %v, want (80, 100)", pts[0])
	}
}

func TestLimbSidesMirror(t *testing.T) {
	joints := limbJoints()
	left := NewLimbSystem(LimbHind, 1, 3, 10, -1, 0)
	right := NewLimbSystem(LimbHind, 1, 3, 10, 1, 0)
	left.Update(joints, 0, 0)
	right.Update(joints, 0, 0)
	// The body runs along y = 100, so mirrored limbs reflect across it.
	for i := range left.Segments {
		l, r := left.Segments[i], right.Segments[i]
		if !near(l.X, r.X, 1e-9) || !near(l.Y-100, 100-r.Y, 1e-9) {
			t.Errorf("segment %d: left (%v, %v), right (%v, %v) not mirrored", i, l.X, l.Y, r.X, r.Y)
		}
	}
}

func TestLimbGaitAnglesAtRest(t *testing.T) {
	l := NewLimbSystem(LimbFore, 0, 3, 10, 1, 0)
	l.Update(limbJoints(), 1234, 0)
	want := []float64{1.35, 1.35 - 1.4, 1.35 - 1.4 - 0.7}
	for i, w := range want {
		if !near(l.Segments[i].Angle, w, 1e-9) {
			t.Errorf("segment %d angle = %v, want %v", i, l.Segments[i].Angle, w)
		}
	}
}

func TestLimbClawCount(t *testing.T) {
	for _, claws := range []int{0, 1, 3, 5} {
		l := NewLimbSystem(LimbHind, 1, 3, 10, 1, claws)
		l.Update(limbJoints(), 0, 0)
		rec := NewRecordingSurface()
		l.Draw(rec, limbJoints(), LimbStyle{Width: 3})
		if got := rec.Count(OpStrokeLine); got != claws {
			t.Errorf("claws %d: StrokeLine count = %d", claws, got)
		}
		if got := rec.Count(OpStrokePath); got != 1 {
			t.Errorf("claws %d: StrokePath count = %d, want 1", claws, got)
		}
	}
}

func TestWingDrawsMembrane(t *testing.T) {
	w := NewLimbSystem(LimbWing, 1, 4, 20, 1, 0)
	w.Update(limbJoints(), 300, 100)
	rec := NewRecordingSurface()
	w.Draw(rec, limbJoints(), LimbStyle{Width: 2, Membrane: RGB(200, 50, 50)})
	if got := rec.Count(OpFillPath); got != 1 {
		t.Errorf("FillPath count = %d, want 1", got)
	}
	if rec.Ops[0].Kind != OpFillPath {
		t.Errorf("first op = %s, want membrane fill before bones", rec.Ops[0].Kind)
	}
}

func TestWingFlaps(t *testing.T) {
	w := NewLimbSystem(LimbWing, 0, 2, 20, 1, 0)
	w.Update(limbJoints(), 0, 0)
	a0 := w.Segments[0].Angle
	w.Update(limbJoints(), 600*math.Pi/2, 0)
	a1 := w.Segments[0].Angle
	if !near(a1-a0, 1.4, 1e-9) {
		t.Errorf("flap sweep = %v, want 1.4", a1-a0)
	}
}

func TestLimbKindString(t *testing.T) {
	if LimbWing.String() != "wing" || LimbKind(42).String() != "unknown" {
		t.Error("LimbKind.String mismatch")
	}
}
