package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var testSpec = ProbeSpec{FootprintRadius: 0.4, Lift: 0.5, Margin: 1.5}

func TestProbeGroundFlat(t *testing.T) {
	set := NewBoxSet([]AABB{
		NewAABB(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{100, 1, 100}),
	})

	h, ok := ProbeGround(set, mgl32.Vec3{0, 1, 0}, 0, 1.0/60, testSpec)
	if !ok {
		t.Fatal("expected ground under the body")
	}
	if !mgl32.FloatEqualThreshold(h, 0, 1e-5) {
		t.Errorf("ground height = %v, want 0", h)
	}
}

func TestProbeGroundHighestHitWins(t *testing.T) {
	// Body straddles the edge of a ledge at y=2 sitting over a floor at y=0.
	// Some corner rays see the floor, some see the ledge; the ledge must win.
	set := NewBoxSet([]AABB{
		NewAABB(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{100, 1, 100}),
		NewAABB(mgl32.Vec3{1, 1.75, 0}, mgl32.Vec3{2, 0.5, 2}),
	})

	h, ok := ProbeGround(set, mgl32.Vec3{0, 2.5, 0}, 0, 1.0/60, testSpec)
	if !ok {
		t.Fatal("expected ground")
	}
	if !mgl32.FloatEqualThreshold(h, 2, 1e-5) {
		t.Errorf("ground height = %v, want 2 (ledge, not floor)", h)
	}
}

func TestProbeGroundNoSurface(t *testing.T) {
	set := NewBoxSet(nil)
	if _, ok := ProbeGround(set, mgl32.Vec3{0, 10, 0}, -3, 1.0/60, testSpec); ok {
		t.Error("expected no ground over empty geometry")
	}
}

// A thin floor far below must still register when a single large step would
// carry the body past it: the ray length has to grow with fall speed.
func TestProbeGroundRayScalesWithFallSpeed(t *testing.T) {
	thinFloor := NewBoxSet([]AABB{
		NewAABB(mgl32.Vec3{0, -10, 0}, mgl32.Vec3{100, 0.1, 100}),
	})

	pos := mgl32.Vec3{0, 0, 0}

	// Slow fall, short ray: floor 10 units down is out of range.
	if _, ok := ProbeGround(thinFloor, pos, -1, 0.016, testSpec); ok {
		t.Error("slow fall should not see a floor 10 units down")
	}

	// Terminal-velocity fall with a large dt covers >10 units in one tick;
	// the probe must see the floor it is about to cross.
	if _, ok := ProbeGround(thinFloor, pos, -50, 0.25, testSpec); !ok {
		t.Error("fast fall must detect the thin floor it would tunnel through")
	}
}

func BenchmarkProbeGround(b *testing.B) {
	set := NewBoxSet([]AABB{
		NewAABB(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{100, 1, 100}),
		NewAABB(mgl32.Vec3{3, 1, 3}, mgl32.Vec3{4, 0.5, 4}),
		NewAABB(mgl32.Vec3{-5, 2, 1}, mgl32.Vec3{2, 0.5, 2}),
	})
	pos := mgl32.Vec3{0.2, 3, 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ProbeGround(set, pos, -12, 1.0/60, testSpec)
	}
}
