// Package physics provides ray casting against static level geometry and the
// downward ground probe used by the kinematic body.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box, the only collidable shape in the level set.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Hit describes a ray intersection.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Caster is the ray-cast primitive consumed by the ground probe. The world
// implements it over the active course's collidable geometry.
type Caster interface {
	Cast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool)
}

// NewAABB builds a box from a center point and full extents.
func NewAABB(center, size mgl32.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Contains reports whether p lies inside the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// RayAABB intersects a ray with a box using the slab method. dir does not
// need to be normalized but distances are reported in units of its length,
// so callers pass unit vectors. A ray starting inside the box hits at
// distance 0 with an upward normal.
func RayAABB(origin, dir mgl32.Vec3, box AABB, maxDist float32) (Hit, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	axis := -1

	for i := 0; i < 3; i++ {
		o, d := origin[i], dir[i]
		lo, hi := box.Min[i], box.Max[i]
		if d == 0 {
			if o < lo || o > hi {
				return Hit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return Hit{}, false
		}
	}

	if tmax < 0 || tmin > maxDist {
		return Hit{}, false
	}

	if tmin < 0 {
		// Origin inside the box.
		return Hit{Point: origin, Normal: mgl32.Vec3{0, 1, 0}, Distance: 0}, true
	}

	normal := mgl32.Vec3{}
	if axis >= 0 {
		if dir[axis] > 0 {
			normal[axis] = -1
		} else {
			normal[axis] = 1
		}
	}
	return Hit{
		Point:    origin.Add(dir.Mul(tmin)),
		Normal:   normal,
		Distance: tmin,
	}, true
}

// BoxSet is a Caster over a flat slice of boxes. Course geometry is small
// enough (tens of boxes) that a linear scan beats any acceleration structure.
type BoxSet struct {
	boxes []AABB
}

// NewBoxSet wraps the given boxes. The slice is not copied.
func NewBoxSet(boxes []AABB) *BoxSet {
	return &BoxSet{boxes: boxes}
}

// Cast returns the nearest hit among all boxes within maxDist.
func (s *BoxSet) Cast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	best := Hit{Distance: maxDist}
	found := false
	for _, b := range s.boxes {
		h, ok := RayAABB(origin, dir, b, maxDist)
		if !ok {
			continue
		}
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	}
	return best, found
}
