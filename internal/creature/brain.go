// Package creature runs the bunnies: position and hop animation live in Go,
// the steering decisions live in a Tengo script so they can be swapped
// without a rebuild.
package creature

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed brain.tengo
var defaultBrainSrc []byte

// brainGlobals are every variable the host exchanges with the script. They
// are registered before compilation so Set and Get work on the clones.
var brainGlobals = []string{
	"dt",
	"bx", "by", "bz",
	"px", "py", "pz",
	"tx", "tz", "has_target",
	"home_x", "home_z",
	"scare_radius", "flee_speed", "wander_speed", "roam_radius",
	"vx", "vz", "scared",
}

// Brain is a compiled decision script. One Brain is shared by all bunnies;
// each bunny runs its own clone so per-run globals never cross.
type Brain struct {
	compiled *tengo.Compiled
}

// NewBrain compiles a decision script.
func NewBrain(src []byte) (*Brain, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	for _, name := range brainGlobals {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("register script global %q: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile brain script: %w", err)
	}
	return &Brain{compiled: compiled}, nil
}

// DefaultBrain compiles the embedded script.
func DefaultBrain() (*Brain, error) {
	return NewBrain(defaultBrainSrc)
}

// LoadBrain reads a script override from disk, falling back to the embedded
// script when path is empty.
func LoadBrain(path string) (*Brain, error) {
	if path == "" {
		return DefaultBrain()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brain script: %w", err)
	}
	return NewBrain(src)
}

func (b *Brain) spawn() *tengo.Compiled {
	return b.compiled.Clone()
}
