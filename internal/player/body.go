// Package player implements the kinematic body: gravity integration,
// ground snapping via the downward probe, chained jumps and void recovery.
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/config"
	"mini-64/internal/physics"
)

// MaxJumpChain is the highest chain count; a jump is only legal below it.
const MaxJumpChain = 2

// Input is the per-tick control sample the body consumes. Move is the raw
// desired horizontal direction (x, z), not normalized.
type Input struct {
	Move     mgl32.Vec2
	Run      bool
	Jump     bool
	Interact bool
}

// Body is the player's kinematic state. It is mutated only by Step and by
// area warps; rendering reads it and never writes.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// Facing is the model heading in degrees around Y.
	Facing   float32
	OnGround bool
	// JumpChain counts consecutive jumps: 0 fresh, 1 after the first jump,
	// 2 after the chained (stronger) one.
	JumpChain int
	// Area is the id of the course the body currently belongs to.
	Area string

	// chainTimer is the remaining window, while grounded, in which the next
	// jump continues the chain. It only counts down on the ground.
	chainTimer float64

	tun config.PhysicsConfig
}

// NewBody spawns a body at pos with the given tuning.
func NewBody(pos mgl32.Vec3, area string, tun config.PhysicsConfig) *Body {
	return &Body{Position: pos, Area: area, tun: tun}
}

// Tuning returns the current physics tuning.
func (b *Body) Tuning() config.PhysicsConfig { return b.tun }

// SetTuning swaps the physics tuning; used by the config hot-reload path.
func (b *Body) SetTuning(tun config.PhysicsConfig) { b.tun = tun }

// Step advances the body by one tick: horizontal update, then gravity,
// ground resolution, jump, and void recovery.
func (b *Body) Step(in Input, dt float64, ground physics.Caster) {
	if dt <= 0 {
		return
	}
	// Cap the step so a hitch cannot turn into one huge integration.
	if dt > b.tun.MaxStep {
		dt = b.tun.MaxStep
	}
	fdt := float32(dt)

	// The chain window only runs down while standing.
	if b.OnGround && b.chainTimer > 0 {
		b.chainTimer -= dt
		if b.chainTimer <= 0 {
			b.chainTimer = 0
			b.JumpChain = 0
		}
	}

	// Horizontal movement and facing.
	if move := in.Move; move.Len() > 0 {
		move = move.Normalize()
		target := float32(math.Atan2(float64(move.X()), float64(move.Y()))) * (180 / math.Pi)
		// Fixed blend factor, not dt-scaled; turn rate is frame-rate
		// dependent.
		b.Facing = lerpAngle(b.Facing, target, b.tun.TurnSmoothing)

		speed := b.tun.WalkSpeed
		if in.Run {
			speed = b.tun.RunSpeed
		}
		b.Velocity[0] = move.X() * speed
		b.Velocity[2] = move.Y() * speed
	} else {
		b.Velocity[0] = 0
		b.Velocity[2] = 0
	}
	b.Position[0] += b.Velocity.X() * fdt
	b.Position[2] += b.Velocity.Z() * fdt

	// Gravity, clamped at terminal velocity to keep single-tick fall
	// distance bounded.
	b.Velocity[1] -= b.tun.Gravity * fdt
	if b.Velocity[1] < b.tun.TerminalVelocity {
		b.Velocity[1] = b.tun.TerminalVelocity
	}

	// Ground resolution against the predicted vertical position.
	predicted := b.Position.Y() + b.Velocity.Y()*fdt
	spec := physics.ProbeSpec{
		FootprintRadius: b.tun.FootprintRadius,
		Lift:            b.tun.ProbeLift,
		Margin:          b.tun.ProbeMargin,
	}
	wasAirborne := !b.OnGround
	groundY, onSurface := physics.ProbeGround(ground, b.Position, b.Velocity.Y(), dt, spec)
	if onSurface {
		restY := groundY + b.tun.HalfHeight
		if predicted <= restY && b.Velocity.Y() <= 0 {
			b.Position[1] = restY
			b.Velocity[1] = 0
			b.OnGround = true
			if wasAirborne {
				// Landing re-arms the chain window.
				b.chainTimer = b.tun.ChainWindow
			}
		} else {
			b.Position[1] = predicted
			b.OnGround = false
		}
	} else {
		b.Position[1] = predicted
		b.OnGround = false
	}

	// Jump. Only the first MaxJumpChain jumps in a chain are honored; a
	// press with the chain spent resets it so the next press starts over.
	if in.Jump && b.OnGround {
		if b.JumpChain < MaxJumpChain {
			impulse := b.tun.JumpImpulse
			if b.JumpChain == 1 {
				impulse *= b.tun.ChainImpulse
			}
			b.JumpChain++
			b.Velocity[1] = impulse
			b.OnGround = false
		} else {
			b.JumpChain = 0
		}
	}

	// Fell out of the world: recover in place, never fail.
	if b.Position.Y() < b.tun.VoidY {
		b.Respawn()
	}
}

// Respawn teleports the body to the configured safe point and clears motion.
func (b *Body) Respawn() {
	r := b.tun.RespawnPoint
	b.Position = mgl32.Vec3{r[0], r[1], r[2]}
	b.Velocity = mgl32.Vec3{}
	b.OnGround = false
	b.JumpChain = 0
	b.chainTimer = 0
}

// WarpTo relocates the body for an area transition: new position, dead stop.
func (b *Body) WarpTo(area string, spawn mgl32.Vec3) {
	b.Area = area
	b.Position = spawn
	b.Velocity = mgl32.Vec3{}
	b.OnGround = false
	b.JumpChain = 0
	b.chainTimer = 0
}

// lerpAngle blends between angles in degrees along the shortest arc.
func lerpAngle(from, to, t float32) float32 {
	delta := float32(math.Mod(float64(to-from)+540, 360)) - 180
	return from + delta*t
}
