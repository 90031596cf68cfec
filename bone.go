package wriggle

import "math"

// Bone is a positioned, angled segment of fixed length. Angle is the
// outgoing direction from the parent, not a local joint rotation.
//
// Bones never point at each other. Parent is an index into the slice that
// owns the bone; -1 means the bone hangs off an externally driven anchor
// (for limbs, the body joint the limb is rooted at).
type Bone struct {
	X, Y   float64
	Angle  float64
	Length float64
	Parent int
}

// Follow places the bone at the end of its segment starting at (px, py).
func (b *Bone) Follow(px, py float64) {
	b.X = px + math.Cos(b.Angle)*b.Length
	b.Y = py + math.Sin(b.Angle)*b.Length
}

// Resolve recomputes the bone from its parent in bones. Root bones
// (Parent < 0) are externally driven and left untouched.
func (b *Bone) Resolve(bones []Bone) {
	if b.Parent < 0 || b.Parent >= len(bones) {
		return
	}
	p := &bones[b.Parent]
	b.Follow(p.X, p.Y)
}

// Joint is one node of a skeleton chain.
type Joint struct {
	X, Y  float64
	Angle float64
}
