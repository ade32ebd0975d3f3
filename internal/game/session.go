package game

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/config"
	"mini-64/internal/course"
	"mini-64/internal/creature"
	"mini-64/internal/graphics"
	"mini-64/internal/hud"
	"mini-64/internal/input"
	"mini-64/internal/player"
	"mini-64/internal/profiling"
	"mini-64/internal/world"
)

var (
	playerColor = [3]float32{0.9, 0.2, 0.2}
	bunnyColor  = [3]float32{0.95, 0.95, 0.9}
	scaredColor = [3]float32{1.0, 0.8, 0.6}
	portalColor = [3]float32{0.4, 0.2, 0.6}

	pickupColors = map[course.PickupKind][3]float32{
		course.PickupCoin:    {1.0, 0.85, 0.1},
		course.PickupRedCoin: {0.9, 0.15, 0.15},
		course.PickupStar:    {1.0, 1.0, 0.4},
	}
)

// Session ties the gameplay state to a window: input sampling, the follow
// camera, rendering and the pause state.
type Session struct {
	Window   *glfw.Window
	Renderer *graphics.Renderer
	HUD      *hud.HUD
	Camera   *player.Camera
	State    *State

	Paused bool

	spin float64 // pickup idle animation clock
}

// NewSession builds the renderer and gameplay state for a loaded world.
func NewSession(window *glfw.Window, w *world.World, brain *creature.Brain, cfg config.Config, logger *log.Logger, store RecordSaver) (*Session, error) {
	width, height := window.GetSize()

	r, err := graphics.NewRenderer(width, height, cfg.Camera.FOV)
	if err != nil {
		return nil, err
	}
	h, err := hud.New(width, height)
	if err != nil {
		return nil, err
	}

	state := NewState(w, brain, cfg, logger, store)

	s := &Session{
		Window:   window,
		Renderer: r,
		HUD:      h,
		Camera:   player.NewCamera(state.Body.Position, cfg.Camera),
		State:    state,
	}

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !s.Paused {
			s.Camera.HandleMouseMovement(xpos, ypos)
		}
	})
	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		s.Renderer.UpdateViewport(width, height)
		s.HUD.SetViewport(width, height)
	})

	return s, nil
}

// ApplyConfig pushes reloaded configuration into the running session.
func (s *Session) ApplyConfig(cfg config.Config) {
	s.State.ApplyConfig(cfg)
	s.Camera.SetConfig(cfg.Camera)
}

// Update advances the session one frame.
func (s *Session) Update(dt float64, im *input.Manager) {
	if im.JustPressed(input.ActionPause) {
		s.SetPaused(!s.Paused)
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		s.HUD.ToggleProfiling()
	}
	if s.Paused {
		return
	}

	frame := Frame{
		Move:     s.moveVector(im),
		Run:      im.IsActive(input.ActionRun),
		Jump:     im.JustPressed(input.ActionJump),
		Interact: im.JustPressed(input.ActionInteract),
	}

	stopTick := profiling.Track("state.Tick")
	res := s.State.Tick(frame, dt)
	stopTick()

	defer profiling.Track("camera.Update")()
	if res.Warped {
		s.Camera.Snap(s.State.Body.Position)
	} else {
		s.Camera.Update(s.State.Body.Position)
	}
}

// moveVector turns the held movement actions into a world-space direction
// relative to where the camera looks.
func (s *Session) moveVector(im *input.Manager) mgl32.Vec2 {
	var fwd, right float32
	if im.IsActive(input.ActionMoveForward) {
		fwd++
	}
	if im.IsActive(input.ActionMoveBackward) {
		fwd--
	}
	if im.IsActive(input.ActionMoveRight) {
		right++
	}
	if im.IsActive(input.ActionMoveLeft) {
		right--
	}
	if fwd == 0 && right == 0 {
		return mgl32.Vec2{}
	}

	yaw := s.Camera.Yaw * math.Pi / 180
	// Horizontal camera forward; the camera sits behind the target, so
	// forward points opposite the orbit offset.
	fx := -float32(math.Sin(yaw))
	fz := -float32(math.Cos(yaw))
	// right = forward x up
	rx, rz := -fz, fx

	return mgl32.Vec2{fx*fwd + rx*right, fz*fwd + rz*right}
}

// Render draws the active course, the actors and the HUD.
func (s *Session) Render(dt float64) {
	defer profiling.Track("session.Render")()

	if !s.Paused {
		s.spin += dt
	}

	active := s.State.World.Active()
	s.Renderer.Begin(active.Sky)

	view := s.Camera.ViewMatrix()

	instances := make([]graphics.BoxInstance, 0, len(active.Geometry)+len(active.Pickups)+len(active.Portals))
	for _, b := range active.Geometry {
		instances = append(instances, graphics.BoxInstance{Position: b.Center, Scale: b.Size, Color: b.Color})
	}
	bob := float32(math.Sin(s.spin*2)) * 0.15
	for _, p := range active.Pickups {
		if p.Collected {
			continue
		}
		size := float32(0.4)
		if p.Kind == course.PickupStar {
			size = 0.7
		}
		pos := p.Position.Add(mgl32.Vec3{0, bob, 0})
		instances = append(instances, graphics.BoxInstance{
			Position: pos,
			Scale:    mgl32.Vec3{size, size, size},
			Color:    pickupColors[p.Kind],
		})
	}
	for _, pt := range active.Portals {
		instances = append(instances, graphics.BoxInstance{
			Position: pt.Position,
			Scale:    mgl32.Vec3{1.6, 2.2, 0.2},
			Color:    portalColor,
		})
	}
	s.Renderer.DrawBoxes(instances, view)

	body := s.State.Body
	s.Renderer.DrawActor(body.Position, mgl32.Vec3{0.8, 1.8, 0.8}, body.Facing, playerColor, view)

	for _, b := range s.State.ActiveBunnies() {
		if b.Caught {
			continue
		}
		color := bunnyColor
		if b.Scared {
			color = scaredColor
		}
		s.Renderer.DrawActor(b.Position, mgl32.Vec3{0.5, 0.5, 0.7}, b.Facing, color, view)
	}

	s.HUD.Draw(hud.Stats{
		CourseName:    active.Name,
		Coins:         s.State.Coins,
		Stars:         s.State.Stars,
		StarsToWin:    s.State.rules.StarsToWin,
		Bunnies:       s.State.TotalBunnies(),
		BunniesCaught: s.State.BunniesCaught(),
		Paused:        s.Paused,
		Won:           s.State.Won,
		NearPortal:    s.State.NearbyPortalName(),
	})
}

// SetPaused toggles the pause state and the cursor capture with it.
func (s *Session) SetPaused(paused bool) {
	s.Paused = paused
	if paused {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		s.Camera.ResetMouse()
	}
}

// Cleanup releases GL resources.
func (s *Session) Cleanup() {
	s.Renderer.Dispose()
}
