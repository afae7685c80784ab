package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aisim/components"
)

// Inspector renders the selected unit's info panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel for u. country is the unit's country, if it still
// exists.
func (ins *Inspector) Draw(u components.UnitView, country *components.Country) {
	r := ins.renderer
	padding := r.Theme.Padding
	fields := components.Describe(u)

	height := padding*2 + r.Theme.LineHeight + 2 + // header
		int32(len(fields))*r.Theme.LineHeight +
		2*(r.Theme.LineHeight+2) // bars
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := ins.y + padding
	contentWidth := ins.width - padding*2

	title := "Unit"
	if country != nil {
		title = country.Name
		rl.DrawRectangle(x+contentWidth-12, y+1, 12, 12, ParseColor(country.Color))
	}
	y = r.DrawSectionHeader(x, y, title)

	for _, f := range fields {
		y = r.DrawLabelValue(x, y, f.Label, f.Value)
	}

	y = r.DrawLevelBar(x, y, "Health", float32(u.Health), 100, contentWidth)
	r.DrawLevelBar(x, y, "Energy", float32(u.Energy), 100, contentWidth)
}
