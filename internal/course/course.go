// Package course defines the static course data (geometry, pickups, portals,
// bunny spawns) and the trigger-volume semantics attached to it.
package course

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PickupKind discriminates pickup effects.
type PickupKind string

const (
	PickupCoin    PickupKind = "coin"
	PickupRedCoin PickupKind = "red_coin"
	PickupStar    PickupKind = "star"
)

// Box is one piece of static geometry: an axis-aligned block with a display
// color. Non-collidable boxes are decoration only and invisible to rays.
type Box struct {
	Center     mgl32.Vec3
	Size       mgl32.Vec3
	Color      [3]float32
	Collidable bool
}

// Pickup is a one-shot proximity trigger. Collected is monotonic: once set
// it never clears within a session.
type Pickup struct {
	Kind      PickupKind
	Position  mgl32.Vec3
	Radius    float32
	Collected bool
}

// Coins returns the counter increment for collecting this pickup kind.
func (p *Pickup) Coins() int {
	switch p.Kind {
	case PickupCoin:
		return 1
	case PickupRedCoin:
		return 2
	default:
		return 0
	}
}

// TryCollect fires at most once: the first in-radius call collects the
// pickup, every later call is a no-op regardless of distance.
func (p *Pickup) TryCollect(body mgl32.Vec3) bool {
	if p.Collected {
		return false
	}
	if body.Sub(p.Position).Len() >= p.Radius {
		return false
	}
	p.Collected = true
	return true
}

// Portal is a reusable warp trigger (a painting). Proximity alone never
// fires it; the interact input must be held, and the player needs enough
// stars.
type Portal struct {
	Position      mgl32.Vec3
	Radius        float32
	Target        string
	StarsRequired int
}

// Triggered reports whether the portal should attempt a warp this tick.
// The star gate is checked by the warp itself, not here.
func (pt *Portal) Triggered(body mgl32.Vec3, interact bool) bool {
	return interact && body.Sub(pt.Position).Len() < pt.Radius
}

// BunnySpawn marks where a bunny starts in a course.
type BunnySpawn struct {
	Position mgl32.Vec3
}

// Course is one named, mutually-exclusive region of the game world.
// Membership is static after load; only pickup Collected flags mutate.
type Course struct {
	ID       string
	Name     string
	Spawn    mgl32.Vec3
	Sky      [3]float32
	Geometry []Box
	Pickups  []*Pickup
	Portals  []Portal
	Bunnies  []BunnySpawn
}

// CollectRemaining counts pickups of the given kind not yet collected.
func (c *Course) CollectRemaining(kind PickupKind) int {
	n := 0
	for _, p := range c.Pickups {
		if p.Kind == kind && !p.Collected {
			n++
		}
	}
	return n
}
