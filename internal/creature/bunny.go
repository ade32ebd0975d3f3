package creature

import (
	"math"

	"github.com/d5/tengo/v2"
	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/config"
)

const hopRate = 8.0 // radians per second while moving

// Bunny is one catchable creature. It has no physics body; it stays on its
// spawn plane and bobs while moving.
type Bunny struct {
	Position mgl32.Vec3
	// Facing is the model heading in degrees around Y.
	Facing float32
	Scared bool
	Caught bool

	baseY     float32
	hopPhase  float64
	home      mgl32.Vec2
	target    mgl32.Vec2
	hasTarget bool

	vm  *tengo.Compiled
	cfg config.CreatureConfig
}

// NewBunny spawns a bunny at pos driven by its own clone of brain.
func NewBunny(brain *Brain, pos mgl32.Vec3, cfg config.CreatureConfig) *Bunny {
	return &Bunny{
		Position: pos,
		baseY:    pos.Y(),
		home:     mgl32.Vec2{pos.X(), pos.Z()},
		vm:       brain.spawn(),
		cfg:      cfg,
	}
}

// SetTuning swaps the creature tuning; used by the config hot-reload path.
func (b *Bunny) SetTuning(cfg config.CreatureConfig) { b.cfg = cfg }

// Update runs one brain tick and integrates the result. Caught bunnies are
// inert.
func (b *Bunny) Update(playerPos mgl32.Vec3, dt float64) error {
	if b.Caught || dt <= 0 {
		return nil
	}

	set := func(name string, v float64) error { return b.vm.Set(name, v) }
	if err := set("dt", dt); err != nil {
		return err
	}
	if err := set("bx", float64(b.Position.X())); err != nil {
		return err
	}
	if err := set("by", float64(b.Position.Y())); err != nil {
		return err
	}
	if err := set("bz", float64(b.Position.Z())); err != nil {
		return err
	}
	if err := set("px", float64(playerPos.X())); err != nil {
		return err
	}
	if err := set("py", float64(playerPos.Y())); err != nil {
		return err
	}
	if err := set("pz", float64(playerPos.Z())); err != nil {
		return err
	}
	if err := set("tx", float64(b.target.X())); err != nil {
		return err
	}
	if err := set("tz", float64(b.target.Y())); err != nil {
		return err
	}
	if err := b.vm.Set("has_target", b.hasTarget); err != nil {
		return err
	}
	if err := set("home_x", float64(b.home.X())); err != nil {
		return err
	}
	if err := set("home_z", float64(b.home.Y())); err != nil {
		return err
	}
	if err := set("scare_radius", float64(b.cfg.ScareRadius)); err != nil {
		return err
	}
	if err := set("flee_speed", float64(b.cfg.FleeSpeed)); err != nil {
		return err
	}
	if err := set("wander_speed", float64(b.cfg.WanderSpeed)); err != nil {
		return err
	}
	if err := set("roam_radius", float64(b.cfg.RoamRadius)); err != nil {
		return err
	}

	if err := b.vm.Run(); err != nil {
		return err
	}

	vx := float32(b.vm.Get("vx").Float())
	vz := float32(b.vm.Get("vz").Float())
	b.Scared = b.vm.Get("scared").Bool()
	b.target = mgl32.Vec2{
		float32(b.vm.Get("tx").Float()),
		float32(b.vm.Get("tz").Float()),
	}
	b.hasTarget = b.vm.Get("has_target").Bool()

	fdt := float32(dt)
	b.Position[0] += vx * fdt
	b.Position[2] += vz * fdt

	if vx != 0 || vz != 0 {
		b.Facing = float32(math.Atan2(float64(vx), float64(vz))) * (180 / math.Pi)
		b.hopPhase += hopRate * dt
	}
	b.Position[1] = b.baseY + float32(math.Abs(math.Sin(b.hopPhase)))*0.3

	return nil
}

// TryCatch marks the bunny caught when the player is close enough. Returns
// true only on the tick the catch happens.
func (b *Bunny) TryCatch(playerPos mgl32.Vec3) bool {
	if b.Caught {
		return false
	}
	d := b.Position.Sub(playerPos)
	if d.Len() < b.cfg.CatchRadius {
		b.Caught = true
		return true
	}
	return false
}
