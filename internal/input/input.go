// Package input maps physical keys to logical game actions and provides
// per-frame edge detection on top of GLFW's event callbacks.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical game action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionRun
	ActionJump
	ActionInteract
	ActionPause
	ActionToggleProfiling
	ActionCount // sentinel for array sizing
)

// Manager tracks held and just-pressed state per action. A key can map to
// several actions; rebinding is allowed at runtime.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool

	// Edge flags, reset by PostUpdate each frame.
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager creates a Manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyLeft, ActionMoveLeft)
	m.BindKey(glfw.KeyRight, ActionMoveRight)
	m.BindKey(glfw.KeyLeftShift, ActionRun)
	m.BindKey(glfw.KeyRightShift, ActionRun)
	m.BindKey(glfw.KeySpace, ActionJump)
	m.BindKey(glfw.KeyE, ActionInteract)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.KeyV, ActionToggleProfiling)

	return m
}

// BindKey binds a physical key to a logical action. Multiple keys can map to
// the same action (WASD plus arrows, for instance).
func (m *Manager) BindKey(key glfw.Key, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key.
func (m *Manager) UnbindKey(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keyToActions, key)
}

// HandleKeyEvent processes one key event. Exposed so tests and custom
// callbacks can drive the manager without a window.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.RLock()
	actions, exists := m.keyToActions[key]
	m.mu.RUnlock()

	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat

	m.mu.Lock()
	for _, act := range actions {
		if act >= 0 && act < ActionCount {
			// Edges are detected when the event arrives, not on poll.
			if isPressed && !m.currentState[act] {
				m.justPressed[act] = true
			}
			if !isPressed && m.currentState[act] {
				m.justReleased[act] = true
			}
			m.currentState[act] = isPressed
		}
	}
	m.mu.Unlock()
}

// SetKeyCallback installs the GLFW key callback. Call once at startup.
func (m *Manager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears the edge flags. Call at the end of each frame, after all
// input checks are done.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := Action(0); i < ActionCount; i++ {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
}

// IsActive reports whether the action is currently held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.currentState[action]
}

// JustPressed reports whether the action went down this frame.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.justPressed[action]
}

// JustReleased reports whether the action went up this frame.
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.justReleased[action]
}
