package wriggle

import (
	"math"
	"testing"
)

func newTestCreature(t *testing.T, kind Kind) Creature {
	t.Helper()
	c, err := NewCreature(kind, 400, 300, DefaultCreatureConfigs())
	if err != nil {
		t.Fatalf("NewCreature(%s): %v", kind, err)
	}
	if c == nil {
		t.Fatalf("NewCreature(%s) = nil", kind)
	}
	return c
}

func TestNewCreatureKinds(t *testing.T) {
	for _, kind := range Kinds[1:] {
		c := newTestCreature(t, kind)
		if c.Kind() != kind {
			t.Errorf("Kind() = %s, want %s", c.Kind(), kind)
		}
		if pos := c.Position(); pos != (Vec2{400, 300}) {
			t.Errorf("%s Position = %v, want (400, 300)", kind, pos)
		}
	}
}

func TestNewCreatureNone(t *testing.T) {
	c, err := NewCreature(KindNone, 0, 0, DefaultCreatureConfigs())
	if c != nil || err != nil {
		t.Errorf("NewCreature(none) = %v, %v; want nil, nil", c, err)
	}
	c, err = NewCreature(Kind(99), 0, 0, DefaultCreatureConfigs())
	if c != nil || err != nil {
		t.Errorf("NewCreature(99) = %v, %v; want nil, nil", c, err)
	}
}

func TestCreaturesUpdateAndDraw(t *testing.T) {
	for _, kind := range Kinds[1:] {
		t.Run(kind.String(), func(t *testing.T) {
			c := newTestCreature(t, kind)
			field := NewParticleField(DefaultFieldConfig(), testRand())
			rec := NewRecordingSurface()
			targets := []Vec2{{700, 100}, {100, 500}, {400, 300}}
			for frame := 0; frame < 180; frame++ {
				tg := targets[frame/60]
				c.Update(1.0/60, tg.X, tg.Y, 1)
				c.EmitParticles(1.0/60, field)
			}
			c.Draw(rec)
			if len(rec.Ops) == 0 {
				t.Fatal("Draw issued no draw calls")
			}
			if rec.Depth() != 0 {
				t.Errorf("save stack depth = %d after Draw, want 0", rec.Depth())
			}
			for i, op := range rec.Ops {
				for _, p := range op.Points {
					if math.IsNaN(p.X) || math.IsNaN(p.Y) {
						t.Fatalf("op %d (%s) has NaN point", i, op.Kind)
					}
				}
			}
			pos := c.Position()
			if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
				t.Errorf("position is NaN")
			}
		})
	}
}

func TestSkeletalCreaturesKeepBoneLength(t *testing.T) {
	cfg := DefaultCreatureConfigs()
	sn, _ := NewSnake(cfg.Snake, 0, 0)
	cp, _ := NewCentipede(cfg.Centipede, 0, 0)
	dr, _ := NewDragon(cfg.Dragon, 0, 0)
	for _, sk := range []*Skeleton{sn.Skeleton(), cp.Skeleton(), dr.Skeleton()} {
		for i := 0; i < 120; i++ {
			sk.Update(1.0/60, 500*math.Cos(float64(i)/10), 500*math.Sin(float64(i)/7), 2)
		}
		assertBoneLengths(t, sk)
	}
}

func TestDragonLimbs(t *testing.T) {
	d, err := NewDragon(DefaultCreatureConfigs().Dragon, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Limbs()) != 4 {
		t.Errorf("len(Limbs) = %d, want 4", len(d.Limbs()))
	}
	if len(d.Wings()) != 2 {
		t.Errorf("len(Wings) = %d, want 2", len(d.Wings()))
	}
	var fore, hind int
	for _, l := range d.Limbs() {
		switch l.Kind {
		case LimbFore:
			fore++
		case LimbHind:
			hind++
		}
		if l.Claws != 3 {
			t.Errorf("%s limb has %d claws, want 3", l.Kind, l.Claws)
		}
	}
	if fore != 2 || hind != 2 {
		t.Errorf("fore, hind = %d, %d; want 2, 2", fore, hind)
	}
	for _, w := range d.Wings() {
		if w.Kind != LimbWing {
			t.Errorf("wing kind = %s, want wing", w.Kind)
		}
	}
}

func TestDragonTooShort(t *testing.T) {
	cfg := DefaultCreatureConfigs().Dragon
	cfg.BoneCount = 10
	if _, err := NewDragon(cfg, 0, 0); err == nil {
		t.Error("expected error for a dragon shorter than its hind root")
	}
}

func TestDragonEmissionCap(t *testing.T) {
	d, _ := NewDragon(DefaultCreatureConfigs().Dragon, 400, 300)
	field := NewParticleField(DefaultFieldConfig(), testRand())
	for i := 0; i < 1500; i++ {
		field.Add(Particle{X: 1, Y: 1, Life: 100, Size: 1})
	}
	for i := 0; i < 20; i++ {
		d.EmitParticles(1, field)
	}
	if field.Len() != 1500 {
		t.Errorf("Len = %d, want 1500 (cap reached)", field.Len())
	}
}

func TestSnakeUncappedWithoutMaxParticles(t *testing.T) {
	sn, _ := NewSnake(DefaultCreatureConfigs().Snake, 400, 300)
	field := NewParticleField(DefaultFieldConfig(), testRand())
	for i := 0; i < 3000; i++ {
		field.Add(Particle{X: 1, Y: 1, Life: 100, Size: 1})
	}
	for i := 0; i < 20; i++ {
		sn.EmitParticles(1, field)
	}
	if field.Len() <= 3000 {
		t.Errorf("Len = %d, want growth past 3000", field.Len())
	}
}

func TestSnakeEmitsGreenSparks(t *testing.T) {
	sn, _ := NewSnake(DefaultCreatureConfigs().Snake, 400, 300)
	field := NewParticleField(DefaultFieldConfig(), testRand())
	for i := 0; i < 20; i++ {
		sn.EmitParticles(1, field)
	}
	if field.Len() == 0 {
		t.Fatal("no particles emitted")
	}
	for _, p := range field.Particles() {
		if p.Hue < 100 || p.Hue > 170 {
			t.Fatalf("hue = %v, want within [100, 170]", p.Hue)
		}
	}
}

func TestCentipedeEmitsNothing(t *testing.T) {
	c, _ := NewCentipede(DefaultCreatureConfigs().Centipede, 0, 0)
	field := NewParticleField(DefaultFieldConfig(), testRand())
	c.EmitParticles(1, field)
	if field.Len() != 0 {
		t.Errorf("Len = %d, want 0", field.Len())
	}
}

func TestFishStartsAtRest(t *testing.T) {
	f := NewFish(DefaultCreatureConfigs().Fish, 100, 100)
	if f.Speed() != 0 {
		t.Errorf("Speed = %v, want 0", f.Speed())
	}
}

func TestFishSwimsTowardTarget(t *testing.T) {
	f := NewFish(DefaultCreatureConfigs().Fish, 100, 100)
	start := math.Hypot(600-f.X, 100-f.Y)
	for i := 0; i < 60; i++ {
		f.Update(1.0/60, 600, 100, 1)
	}
	if d := math.Hypot(600-f.X, 100-f.Y); d >= start {
		t.Errorf("distance = %v, want less than %v", d, start)
	}
	if f.Speed() <= 0 {
		t.Error("fish did not accelerate")
	}
}

func TestFishFrictionStops(t *testing.T) {
	f := NewFish(DefaultCreatureConfigs().Fish, 0, 0)
	f.VX = 5
	for i := 0; i < 600; i++ {
		f.Update(1.0/60, f.X, f.Y, 0)
	}
	if f.Speed() > 0.01 {
		t.Errorf("Speed = %v after coasting, want near 0", f.Speed())
	}
}

func TestKoiDrawsSpots(t *testing.T) {
	cfg := DefaultCreatureConfigs()
	fish := NewFish(cfg.Fish, 0, 0)
	koi := NewKoi(cfg.Koi, 0, 0)
	rf, rk := NewRecordingSurface(), NewRecordingSurface()
	fish.Draw(rf)
	koi.Draw(rk)
	if rk.Count(OpFillPath) <= rf.Count(OpFillPath) {
		t.Errorf("koi fill paths = %d, fish = %d; want koi to add spots",
			rk.Count(OpFillPath), rf.Count(OpFillPath))
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"snake", KindSnake, true},
		{"Dragon", KindDragon, true},
		{"  koi ", KindKoi, true},
		{"none", KindNone, true},
		{"wyrm", KindNone, false},
		{"", KindNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindText(t *testing.T) {
	b, err := KindCentipede.MarshalText()
	if err != nil || string(b) != "centipede" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	var k Kind
	if err := k.UnmarshalText([]byte("fish")); err != nil || k != KindFish {
		t.Errorf("UnmarshalText(fish) = %s, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("unicorn")); err != nil || k != KindNone {
		t.Errorf("UnmarshalText(unicorn) = %s, %v; want none, nil", k, err)
	}
}
