package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/config"
)

// Camera is the third-person follow camera: mouse-driven orbit around the
// body with exponentially smoothed position.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64 // degrees, orbit around Y
	Pitch    float64 // degrees, clamped

	cfg config.CameraConfig

	lastX, lastY float64
	firstMouse   bool
	lookTarget   mgl32.Vec3
}

// NewCamera creates a camera behind the given start position.
func NewCamera(start mgl32.Vec3, cfg config.CameraConfig) *Camera {
	c := &Camera{
		Yaw:        180, // behind the body, looking along -Z spawn orientation
		Pitch:      20,
		cfg:        cfg,
		firstMouse: true,
	}
	c.Position = c.desiredPosition(start)
	c.lookTarget = start
	return c
}

// SetConfig swaps camera tuning (hot reload path).
func (c *Camera) SetConfig(cfg config.CameraConfig) { c.cfg = cfg }

// HandleMouseMovement consumes a cursor position callback sample.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	dx := xpos - c.lastX
	dy := ypos - c.lastY
	c.lastX, c.lastY = xpos, ypos

	c.Yaw -= dx * c.cfg.Sensitivity
	c.Pitch += dy * c.cfg.Sensitivity
	if c.Pitch > c.cfg.PitchMax {
		c.Pitch = c.cfg.PitchMax
	}
	if c.Pitch < c.cfg.PitchMin {
		c.Pitch = c.cfg.PitchMin
	}
}

// Update moves the camera toward its orbit position around target. The
// smoothing factor is a fixed per-tick blend, matching the body's turn
// smoothing behavior.
func (c *Camera) Update(target mgl32.Vec3) {
	desired := c.desiredPosition(target)
	t := c.cfg.Smoothing
	c.Position = c.Position.Add(desired.Sub(c.Position).Mul(t))
	c.lookTarget = target.Add(mgl32.Vec3{0, 1, 0})
}

// Snap jumps the camera straight to its orbit position; used after warps so
// the camera does not sweep across the whole level.
func (c *Camera) Snap(target mgl32.Vec3) {
	c.Position = c.desiredPosition(target)
	c.lookTarget = target.Add(mgl32.Vec3{0, 1, 0})
}

// ResetMouse drops the next cursor sample; call after the cursor was
// recaptured so the pointer jump does not spin the camera.
func (c *Camera) ResetMouse() { c.firstMouse = true }

// ViewMatrix returns the camera's look-at matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.lookTarget, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) desiredPosition(target mgl32.Vec3) mgl32.Vec3 {
	yaw := c.Yaw * math.Pi / 180
	pitch := c.Pitch * math.Pi / 180
	offset := mgl32.Vec3{
		c.cfg.Distance * float32(math.Cos(pitch)*math.Sin(yaw)),
		c.cfg.Distance*float32(math.Sin(pitch)) + c.cfg.HeightOffset,
		c.cfg.Distance * float32(math.Cos(pitch)*math.Cos(yaw)),
	}
	return target.Add(offset)
}
