// Package world owns the set of courses and the exclusive-enable rule: at
// any moment exactly one course is active, and collision, pickups and
// creatures all resolve against that course only.
package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/course"
	"mini-64/internal/physics"
	"mini-64/internal/player"
)

// World holds every loaded course and tracks which one is active.
type World struct {
	byID   map[string]*course.Course
	order  []string
	active string
}

// New builds a world from loaded courses and activates start.
func New(courses []*course.Course, start string) (*World, error) {
	if len(courses) == 0 {
		return nil, fmt.Errorf("no courses")
	}
	w := &World{byID: make(map[string]*course.Course, len(courses))}
	for _, c := range courses {
		w.byID[c.ID] = c
		w.order = append(w.order, c.ID)
	}
	if _, ok := w.byID[start]; !ok {
		return nil, fmt.Errorf("start course %q not loaded", start)
	}
	w.active = start
	return w, nil
}

// Active returns the enabled course.
func (w *World) Active() *course.Course {
	return w.byID[w.active]
}

// Enabled reports whether the course with id is the active one.
func (w *World) Enabled(id string) bool {
	return id == w.active
}

// Lookup returns the course with id, loaded or not active.
func (w *World) Lookup(id string) (*course.Course, bool) {
	c, ok := w.byID[id]
	return c, ok
}

// Courses returns all courses in load order.
func (w *World) Courses() []*course.Course {
	out := make([]*course.Course, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.byID[id])
	}
	return out
}

// Cast raycasts against the active course's collidable geometry. Disabled
// courses do not exist as far as collision is concerned.
func (w *World) Cast(origin, dir mgl32.Vec3, maxDist float32) (physics.Hit, bool) {
	var best physics.Hit
	found := false
	for _, box := range w.Active().Geometry {
		if !box.Collidable {
			continue
		}
		hit, ok := physics.RayAABB(origin, dir, physics.NewAABB(box.Center, box.Size), maxDist)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Warp moves the body to the target course if it holds enough stars. The
// switch is atomic: either nothing changes, or the target becomes the single
// enabled course and the body stands at its spawn with no velocity.
func (w *World) Warp(b *player.Body, target string, stars, required int) bool {
	dst, ok := w.byID[target]
	if !ok || stars < required {
		return false
	}
	w.active = target
	b.WarpTo(target, dst.Spawn)
	return true
}
