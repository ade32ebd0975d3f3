// Package hud draws the text overlay: counters, course name, pause and
// victory banners, and the optional profiling readout.
package hud

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"mini-64/internal/graphics"
	"mini-64/internal/profiling"
)

// Stats is everything the overlay shows for one frame.
type Stats struct {
	CourseName    string
	Coins         int
	Stars         int
	StarsToWin    int
	Bunnies       int
	BunniesCaught int
	Paused        bool
	Won           bool
	// NearPortal names the course a nearby portal leads to, empty otherwise.
	NearPortal string
}

// HUD owns the font resources and the profiling toggle.
type HUD struct {
	fr            *graphics.FontRenderer
	width, height int
	showProfiling bool
}

// New bakes the font atlas and builds the text renderer.
func New(width, height int) (*HUD, error) {
	atlas, err := graphics.BuildFontAtlas(48)
	if err != nil {
		return nil, err
	}
	fr, err := graphics.NewFontRenderer(atlas, width, height)
	if err != nil {
		return nil, err
	}
	return &HUD{fr: fr, width: width, height: height}, nil
}

// SetViewport propagates a window resize.
func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	h.fr.SetViewport(width, height)
}

// ToggleProfiling flips the profiling readout.
func (h *HUD) ToggleProfiling() {
	h.showProfiling = !h.showProfiling
}

// Draw renders the overlay. Call after the 3D passes.
func (h *HUD) Draw(s Stats) {
	white := mgl32.Vec3{1, 1, 1}
	yellow := mgl32.Vec3{1, 0.9, 0.2}

	lines := []string{
		fmt.Sprintf("Coins: %d", s.Coins),
		fmt.Sprintf("Stars: %d/%d", s.Stars, s.StarsToWin),
		fmt.Sprintf("Bunnies: %d/%d", s.BunniesCaught, s.Bunnies),
	}
	h.fr.RenderLines(lines, 16, 36, 28, 0.5, white)

	// Course name, top center.
	nameW, _ := h.fr.Measure(s.CourseName, 0.5)
	h.fr.Render(s.CourseName, (float32(h.width)-nameW)/2, 36, 0.5, yellow)

	if s.NearPortal != "" && !s.Won {
		prompt := fmt.Sprintf("Press E to enter %s", s.NearPortal)
		w, _ := h.fr.Measure(prompt, 0.5)
		h.fr.Render(prompt, (float32(h.width)-w)/2, float32(h.height)-60, 0.5, white)
	}

	if s.Won {
		h.banner("YOU GOT ALL THE STARS!", yellow)
	} else if s.Paused {
		h.banner("PAUSED", white)
	}

	if h.showProfiling {
		h.fr.RenderLines(profiling.TopLines(6), 16, 150, 22, 0.35, mgl32.Vec3{0.7, 1, 0.7})
	}
}

func (h *HUD) banner(text string, color mgl32.Vec3) {
	w, _ := h.fr.Measure(text, 0.8)
	h.fr.Render(text, (float32(h.width)-w)/2, float32(h.height)/2, 0.8, color)
}
