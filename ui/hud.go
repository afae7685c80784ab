package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Time       float64
	Tick       int64
	AliveUnits int
	TotalUnits int
	Countries  int
	AvgFitness float64
	Zoom       float32
	FPS        int32
	Running    bool
	Failed     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x := int32(10)
	y := int32(10)

	r.DrawPanel(x-5, y-5, 260, 135)

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 26

	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.1fs (tick %d)", data.Time, data.Tick))
	y = r.DrawLabelValue(x, y, "Units", fmt.Sprintf("%d / %d", data.AliveUnits, data.TotalUnits))
	y = r.DrawLabelValue(x, y, "Countries", fmt.Sprintf("%d", data.Countries))
	y = r.DrawLabelValue(x, y, "Fitness", fmt.Sprintf("%.2f", data.AvgFitness))
	y = r.DrawLabelValue(x, y, "Zoom", fmt.Sprintf("%.2fx | FPS %d", data.Zoom, data.FPS))

	status, color := "STOPPED", rl.Yellow
	switch {
	case data.Failed:
		status, color = "FAILED", rl.Red
	case data.Running:
		status, color = "Running", rl.Green
	}
	rl.DrawText(status, x, y+2, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
