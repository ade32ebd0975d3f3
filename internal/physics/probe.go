package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ProbeSpec configures the downward ground probe.
type ProbeSpec struct {
	// FootprintRadius is the horizontal offset of the four corner rays.
	FootprintRadius float32
	// Lift raises the ray origins above the body position so rays start
	// inside the body instead of at its feet.
	Lift float32
	// Margin is added to |vel.y|*dt to size the ray. Keeping the ray longer
	// than one tick's worth of fall is what stops fast bodies from skipping
	// thin floors.
	Margin float32
}

var down = mgl32.Vec3{0, -1, 0}

// ProbeGround casts five downward rays (center plus footprint corners) from
// pos and returns the highest ground height among the hits. When straddling
// an edge this keeps the body on the upper surface instead of snapping to
// whatever the center ray found.
func ProbeGround(c Caster, pos mgl32.Vec3, velY float32, dt float64, spec ProbeSpec) (float32, bool) {
	r := spec.FootprintRadius
	offsets := [5]mgl32.Vec3{
		{0, spec.Lift, 0},
		{r, spec.Lift, r},
		{-r, spec.Lift, r},
		{r, spec.Lift, -r},
		{-r, spec.Lift, -r},
	}

	// Ray length scales with the distance the body can fall this tick.
	rayLen := float32(math.Abs(float64(velY)))*float32(dt) + spec.Margin

	highest := float32(math.Inf(-1))
	found := false
	for _, off := range offsets {
		hit, ok := c.Cast(pos.Add(off), down, rayLen)
		if !ok {
			continue
		}
		if hit.Point.Y() > highest {
			highest = hit.Point.Y()
			found = true
		}
	}
	return highest, found
}
