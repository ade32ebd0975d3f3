package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/config"
	"mini-64/internal/course"
	"mini-64/internal/creature"
	"mini-64/internal/player"
	"mini-64/internal/storage"
	"mini-64/internal/world"
)

// RecordSaver receives completed-run records. *storage.Store implements it;
// a nil saver disables persistence.
type RecordSaver interface {
	SaveRecord(storage.Record) (int64, error)
}

// Frame is one tick's worth of resolved input: the movement direction is
// already rotated into world space by the camera.
type Frame struct {
	Move     mgl32.Vec2
	Run      bool
	Jump     bool
	Interact bool
}

// TickResult tells the caller what happened outside of plain state updates.
type TickResult struct {
	Warped  bool
	JustWon bool
}

// State is the complete gameplay state, independent of any rendering. One
// Tick call advances everything by one step, in a fixed order: body, then
// creatures, then pickups, then portals, then the victory check.
type State struct {
	Body  *player.Body
	World *world.World

	// bunnies are keyed by course id; only the active course's run.
	bunnies map[string][]*creature.Bunny

	Coins int
	Stars int
	// Won latches; play continues after victory.
	Won bool

	rules     config.RulesConfig
	startedAt time.Time
	logger    *log.Logger
	store     RecordSaver
}

// NewState spawns the player at the start course and one bunny per spawn
// point in every course.
func NewState(w *world.World, brain *creature.Brain, cfg config.Config, logger *log.Logger, store RecordSaver) *State {
	start := w.Active()
	s := &State{
		Body:      player.NewBody(start.Spawn, start.ID, cfg.Physics),
		World:     w,
		bunnies:   make(map[string][]*creature.Bunny),
		rules:     cfg.Rules,
		startedAt: time.Now(),
		logger:    logger,
		store:     store,
	}
	for _, c := range w.Courses() {
		for _, spawn := range c.Bunnies {
			s.bunnies[c.ID] = append(s.bunnies[c.ID], creature.NewBunny(brain, spawn.Position, cfg.Creature))
		}
	}
	return s
}

// ApplyConfig pushes reloaded tuning into the live state.
func (s *State) ApplyConfig(cfg config.Config) {
	s.Body.SetTuning(cfg.Physics)
	for _, bs := range s.bunnies {
		for _, b := range bs {
			b.SetTuning(cfg.Creature)
		}
	}
	s.rules = cfg.Rules
	s.logger.Info("config reloaded")
}

// Tick advances the game by dt seconds.
func (s *State) Tick(f Frame, dt float64) TickResult {
	var res TickResult

	s.Body.Step(player.Input{Move: f.Move, Run: f.Run, Jump: f.Jump, Interact: f.Interact}, dt, s.World)

	active := s.World.Active()

	for _, b := range s.bunnies[active.ID] {
		if err := b.Update(s.Body.Position, dt); err != nil {
			s.logger.Warn("bunny brain error", "err", err)
			continue
		}
		if b.TryCatch(s.Body.Position) {
			s.logger.Info("bunny caught", "course", active.ID, "total", s.BunniesCaught())
		}
	}

	for _, p := range active.Pickups {
		if !p.TryCollect(s.Body.Position) {
			continue
		}
		switch p.Kind {
		case course.PickupStar:
			s.Stars++
			s.logger.Info("star collected", "stars", s.Stars, "course", active.ID)
		default:
			s.Coins += p.Coins()
			s.logger.Debug("coin collected", "coins", s.Coins)
		}
	}

	if f.Interact {
		for i := range active.Portals {
			pt := &active.Portals[i]
			if !pt.Triggered(s.Body.Position, true) {
				continue
			}
			if s.World.Warp(s.Body, pt.Target, s.Stars, pt.StarsRequired) {
				s.logger.Info("warped", "to", pt.Target)
				res.Warped = true
			} else {
				s.logger.Debug("portal refused", "to", pt.Target, "need", pt.StarsRequired, "have", s.Stars)
			}
			break
		}
	}

	if !s.Won && s.Stars >= s.rules.StarsToWin {
		s.Won = true
		res.JustWon = true
		secs := int(time.Since(s.startedAt).Seconds())
		s.logger.Info("all stars collected", "stars", s.Stars, "coins", s.Coins, "seconds", secs)
		if s.store != nil {
			rec := storage.Record{
				Stars:         s.Stars,
				Coins:         s.Coins,
				BunniesCaught: s.BunniesCaught(),
				PlaySeconds:   secs,
			}
			if _, err := s.store.SaveRecord(rec); err != nil {
				s.logger.Warn("could not save record", "err", err)
			}
		}
	}

	return res
}

// ActiveBunnies returns the bunnies of the enabled course.
func (s *State) ActiveBunnies() []*creature.Bunny {
	return s.bunnies[s.World.Active().ID]
}

// TotalBunnies counts every bunny in the world.
func (s *State) TotalBunnies() int {
	n := 0
	for _, bs := range s.bunnies {
		n += len(bs)
	}
	return n
}

// BunniesCaught counts caught bunnies across all courses.
func (s *State) BunniesCaught() int {
	n := 0
	for _, bs := range s.bunnies {
		for _, b := range bs {
			if b.Caught {
				n++
			}
		}
	}
	return n
}

// NearbyPortalName returns the display name of the course behind the
// closest in-range portal, for the HUD prompt.
func (s *State) NearbyPortalName() string {
	active := s.World.Active()
	for i := range active.Portals {
		pt := &active.Portals[i]
		if s.Body.Position.Sub(pt.Position).Len() < pt.Radius {
			if dst, ok := s.World.Lookup(pt.Target); ok {
				return dst.Name
			}
		}
	}
	return ""
}
