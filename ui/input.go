package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aisim/camera"
	"github.com/pthm-cable/aisim/components"
)

const (
	// clickSlop is how far, in pixels, the pointer may travel between press
	// and release for the gesture to count as a click rather than a drag.
	clickSlop = 5

	wheelZoomIn  = 1.1
	wheelZoomOut = 0.9

	// selectRadius is the pick radius in screen pixels.
	selectRadius = 12
)

// Intent is a world-level request produced by input in one frame.
type Intent struct {
	Select   bool
	Spawn    bool
	WorldPos components.Vec2
}

// InputManager turns raw pointer and keyboard state into camera moves and
// intents.
type InputManager struct {
	cam      *camera.Camera
	dragging bool
	pressPos rl.Vector2
}

// NewInputManager creates an input manager driving cam.
func NewInputManager(cam *camera.Camera) *InputManager {
	return &InputManager{cam: cam}
}

// Update processes this frame's input. Pointer events inside blocked (the
// control panel) are ignored.
func (in *InputManager) Update(blocked rl.Rectangle) Intent {
	in.handleKeys()

	mouse := rl.GetMousePosition()
	overPanel := rl.CheckCollisionPointRec(mouse, blocked)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		factor := float32(wheelZoomIn)
		if wheel < 0 {
			factor = wheelZoomOut
		}
		in.cam.ZoomAt(mouse.X, mouse.Y, factor)
	}

	var intent Intent

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		in.dragging = true
		in.pressPos = mouse
	}
	if in.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		in.cam.Pan(d.X, d.Y)
	}
	if in.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.dragging = false
		dx, dy := mouse.X-in.pressPos.X, mouse.Y-in.pressPos.Y
		if dx*dx+dy*dy < clickSlop*clickSlop {
			intent.Select = true
			intent.WorldPos = in.world(in.pressPos)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !overPanel {
		intent.Spawn = true
		intent.WorldPos = in.world(mouse)
	}
	return intent
}

// SelectRadius returns the pick radius in world units at the current zoom.
func (in *InputManager) SelectRadius() float64 {
	return float64(selectRadius / in.cam.Zoom)
}

func (in *InputManager) world(p rl.Vector2) components.Vec2 {
	x, y := in.cam.ScreenToWorld(p.X, p.Y)
	return components.Vec2{X: float64(x), Y: float64(y)}
}

// handleKeys pans with WASD/arrows and zooms with +/-.
func (in *InputManager) handleKeys() {
	var dx, dy float32
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		dy--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		dy++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		dx--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		dx++
	}
	if dx != 0 || dy != 0 {
		in.cam.PanKey(dx, dy)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		in.cam.ZoomBy(wheelZoomIn)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		in.cam.ZoomBy(wheelZoomOut)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		in.cam.Reset()
	}
}
