package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/config"
	"mini-64/internal/course"
	"mini-64/internal/creature"
	"mini-64/internal/storage"
	"mini-64/internal/world"
)

type recordingSaver struct {
	saved []storage.Record
}

func (r *recordingSaver) SaveRecord(rec storage.Record) (int64, error) {
	r.saved = append(r.saved, rec)
	return int64(len(r.saved)), nil
}

func floor() course.Box {
	return course.Box{
		Center:     mgl32.Vec3{0, -0.5, 0},
		Size:       mgl32.Vec3{200, 1, 200},
		Collidable: true,
	}
}

func testState(t *testing.T, courses []*course.Course, saver RecordSaver) *State {
	t.Helper()
	w, err := world.New(courses, courses[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	brain, err := creature.DefaultBrain()
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	return NewState(w, brain, cfg, log.New(io.Discard), saver)
}

// run ticks the state with no input until the body settles.
func settle(t *testing.T, s *State) {
	t.Helper()
	for i := 0; i < 200 && !s.Body.OnGround; i++ {
		s.Tick(Frame{}, 1.0/60)
	}
	if !s.Body.OnGround {
		t.Fatal("body never landed")
	}
}

func TestPickupCountsOnce(t *testing.T) {
	c := &course.Course{
		ID:       "hub",
		Spawn:    mgl32.Vec3{0, 3, 0},
		Geometry: []course.Box{floor()},
		Pickups: []*course.Pickup{
			{Kind: course.PickupCoin, Position: mgl32.Vec3{0, 1, 0}, Radius: 2},
			{Kind: course.PickupRedCoin, Position: mgl32.Vec3{0, 1, 0}, Radius: 2},
		},
	}
	s := testState(t, []*course.Course{c}, nil)
	settle(t, s)

	for i := 0; i < 30; i++ {
		s.Tick(Frame{}, 1.0/60)
	}
	if s.Coins != 3 {
		t.Errorf("coins = %d, want 3 (one coin + one red coin, each once)", s.Coins)
	}
}

func TestStarsAndVictoryLatch(t *testing.T) {
	cfg := config.Default()
	pickups := make([]*course.Pickup, 0, cfg.Rules.StarsToWin)
	for i := 0; i < cfg.Rules.StarsToWin; i++ {
		pickups = append(pickups, &course.Pickup{
			Kind: course.PickupStar, Position: mgl32.Vec3{0, 1, 0}, Radius: 2,
		})
	}
	c := &course.Course{ID: "hub", Spawn: mgl32.Vec3{0, 3, 0}, Geometry: []course.Box{floor()}, Pickups: pickups}

	saver := &recordingSaver{}
	s := testState(t, []*course.Course{c}, saver)
	settle(t, s)

	var wonTicks int
	for i := 0; i < 30; i++ {
		if s.Tick(Frame{}, 1.0/60).JustWon {
			wonTicks++
		}
	}
	if s.Stars != cfg.Rules.StarsToWin {
		t.Fatalf("stars = %d, want %d", s.Stars, cfg.Rules.StarsToWin)
	}
	if !s.Won {
		t.Fatal("victory not latched")
	}
	if wonTicks != 1 {
		t.Errorf("JustWon fired %d times, want exactly once", wonTicks)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(saver.saved))
	}
	if saver.saved[0].Stars != cfg.Rules.StarsToWin {
		t.Errorf("record stars = %d, want %d", saver.saved[0].Stars, cfg.Rules.StarsToWin)
	}
}

func TestPortalWarpNeedsInteractAndStars(t *testing.T) {
	hub := &course.Course{
		ID: "hub", Spawn: mgl32.Vec3{0, 3, 0}, Geometry: []course.Box{floor()},
		Pickups: []*course.Pickup{
			{Kind: course.PickupStar, Position: mgl32.Vec3{0, 1, 0}, Radius: 2},
		},
		Portals: []course.Portal{
			{Position: mgl32.Vec3{0, 1, 0}, Radius: 2.5, Target: "peak", StarsRequired: 1},
		},
	}
	peak := &course.Course{
		ID: "peak", Name: "The Peak", Spawn: mgl32.Vec3{0, 5, 0},
		Geometry: []course.Box{floor()},
	}

	s := testState(t, []*course.Course{hub, peak}, nil)
	settle(t, s)

	// In range but no interact press: nothing happens.
	s.Tick(Frame{}, 1.0/60)
	if !s.World.Enabled("hub") {
		t.Fatal("warp fired without interact")
	}

	// The star was collected while settling, so the gate passes.
	res := s.Tick(Frame{Interact: true}, 1.0/60)
	if !res.Warped {
		t.Fatal("warp refused with enough stars and interact held")
	}
	if !s.World.Enabled("peak") || s.World.Enabled("hub") {
		t.Fatal("exclusive enable violated after warp")
	}
	if s.Body.Area != "peak" || s.Body.Position != (mgl32.Vec3{0, 5, 0}) {
		t.Fatalf("body not repositioned: area=%q pos=%v", s.Body.Area, s.Body.Position)
	}
}

func TestPortalRefusedBelowStarGate(t *testing.T) {
	hub := &course.Course{
		ID: "hub", Spawn: mgl32.Vec3{0, 3, 0}, Geometry: []course.Box{floor()},
		Portals: []course.Portal{
			{Position: mgl32.Vec3{0, 1, 0}, Radius: 2.5, Target: "peak", StarsRequired: 3},
		},
	}
	peak := &course.Course{ID: "peak", Spawn: mgl32.Vec3{0, 5, 0}, Geometry: []course.Box{floor()}}

	s := testState(t, []*course.Course{hub, peak}, nil)
	settle(t, s)

	res := s.Tick(Frame{Interact: true}, 1.0/60)
	if res.Warped || !s.World.Enabled("hub") {
		t.Fatal("star gate did not hold")
	}
}

func TestBunnyCatchCounting(t *testing.T) {
	c := &course.Course{
		ID: "hub", Spawn: mgl32.Vec3{0, 3, 0}, Geometry: []course.Box{floor()},
		Bunnies: []course.BunnySpawn{
			{Position: mgl32.Vec3{0.5, 0.9, 0}},
			{Position: mgl32.Vec3{50, 0.9, 50}},
		},
	}
	s := testState(t, []*course.Course{c}, nil)
	settle(t, s)

	if s.TotalBunnies() != 2 {
		t.Fatalf("total bunnies = %d, want 2", s.TotalBunnies())
	}
	// The near bunny starts inside the catch radius; the far one stays free.
	s.Tick(Frame{}, 1.0/60)
	if s.BunniesCaught() != 1 {
		t.Errorf("caught = %d, want 1", s.BunniesCaught())
	}
	for i := 0; i < 10; i++ {
		s.Tick(Frame{}, 1.0/60)
	}
	if s.BunniesCaught() != 1 {
		t.Errorf("caught count drifted to %d", s.BunniesCaught())
	}
}

func TestNearbyPortalName(t *testing.T) {
	hub := &course.Course{
		ID: "hub", Spawn: mgl32.Vec3{0, 3, 0}, Geometry: []course.Box{floor()},
		Portals: []course.Portal{
			{Position: mgl32.Vec3{0, 1, 0}, Radius: 2.5, Target: "peak"},
		},
	}
	peak := &course.Course{ID: "peak", Name: "The Peak", Spawn: mgl32.Vec3{0, 5, 0}, Geometry: []course.Box{floor()}}

	s := testState(t, []*course.Course{hub, peak}, nil)
	settle(t, s)

	if got := s.NearbyPortalName(); got != "The Peak" {
		t.Errorf("NearbyPortalName() = %q, want The Peak", got)
	}
}
