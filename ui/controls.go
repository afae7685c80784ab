package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlAction is what the user asked for through the control buttons.
type ControlAction int

const (
	ActionNone ControlAction = iota
	ActionStart
	ActionStop
	ActionAddCountry
)

const (
	buttonW = 110
	buttonH = 30
	gap     = 8
)

// ControlsPanel renders the Start/Stop/Add Country buttons and the layer
// legend in the top-right corner.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a controls panel anchored to the right edge of a
// screen of the given width.
func NewControlsPanel(screenWidth int32) *ControlsPanel {
	c := &ControlsPanel{renderer: NewRenderer(), y: 10, width: buttonW*3 + gap*4}
	c.Resize(screenWidth)
	return c
}

// Resize re-anchors the panel.
func (c *ControlsPanel) Resize(screenWidth int32) {
	c.x = screenWidth - c.width - 10
}

// Bounds returns the screen area the panel covers, so clicks there are not
// treated as world clicks.
func (c *ControlsPanel) Bounds(layers int) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(c.x),
		Y:      float32(c.y),
		Width:  float32(c.width),
		Height: float32(c.height(layers)),
	}
}

func (c *ControlsPanel) height(layers int) int32 {
	return gap*3 + buttonH + c.renderer.Theme.LineHeight*int32(layers+1)
}

// Draw renders the panel and returns the button pressed this frame. Start is
// disabled while running and Stop while stopped.
func (c *ControlsPanel) Draw(running bool, overlays *OverlayRegistry) ControlAction {
	r := c.renderer
	layers := overlays.All()
	r.DrawPanel(c.x, c.y, c.width, c.height(len(layers)))

	bx := float32(c.x + gap)
	by := float32(c.y + gap)
	action := ActionNone

	if running {
		gui.Disable()
	}
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonW, Height: buttonH}, "Start") {
		action = ActionStart
	}
	gui.Enable()

	if !running {
		gui.Disable()
	}
	if gui.Button(rl.Rectangle{X: bx + buttonW + gap, Y: by, Width: buttonW, Height: buttonH}, "Stop") {
		action = ActionStop
	}
	gui.Enable()

	if gui.Button(rl.Rectangle{X: bx + 2*(buttonW+gap), Y: by, Width: buttonW, Height: buttonH}, "Add Country") {
		action = ActionAddCountry
	}

	y := c.y + gap*2 + buttonH
	rl.DrawText("Layers", c.x+gap, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.LineHeight
	for _, desc := range layers {
		c.drawToggle(c.x+gap, y, desc, overlays.IsEnabled(desc.ID), c.width-gap*2)
		y += r.Theme.LineHeight
	}
	return action
}

// drawToggle draws a single layer toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}
