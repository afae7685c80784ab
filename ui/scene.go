package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aisim/camera"
	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/world"
)

// World-space sizes, scaled by zoom when drawn.
const (
	capitalRadius  = 10
	civilianRadius = 4
	soldierRadius  = 6
	resourceSize   = 8
	healthBarW     = 20
	healthBarH     = 3
	labelFontSize  = 12
)

// Scene draws a world snapshot through the camera.
type Scene struct {
	renderer *Renderer
	cam      *camera.Camera
	overlays *OverlayRegistry
	colors   palette
	outline  []rl.Vector2
}

// NewScene creates a scene renderer for cam.
func NewScene(cam *camera.Camera, overlays *OverlayRegistry) *Scene {
	return &Scene{
		renderer: NewRenderer(),
		cam:      cam,
		overlays: overlays,
		colors:   make(palette),
	}
}

// Draw renders the snapshot. selectedID may be empty.
func (s *Scene) Draw(snap *world.Snapshot, selectedID string) {
	rl.ClearBackground(s.renderer.Theme.Background)
	if snap == nil {
		return
	}

	if s.overlays.IsEnabled(OverlayGrid) {
		s.drawGrid(snap)
	}
	if s.overlays.IsEnabled(OverlayTerritories) {
		s.drawTerritories(snap.Countries)
	}
	if s.overlays.IsEnabled(OverlayResources) {
		s.drawResources(snap.Resources)
	}
	s.drawCapitals(snap.Countries)
	s.drawUnits(snap, selectedID)
	s.drawBounds(snap.Bounds)
}

func (s *Scene) screen(p components.Vec2) rl.Vector2 {
	x, y := s.cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}

func (s *Scene) drawGrid(snap *world.Snapshot) {
	b := snap.Bounds
	step := snap.GridSize
	if step <= 0 {
		return
	}
	color := s.renderer.Theme.GridLine

	for x := math.Floor(b.Min.X/step) * step; x <= math.Ceil(b.Max.X/step)*step; x += step {
		rl.DrawLineV(s.screen(components.Vec2{X: x, Y: b.Min.Y}), s.screen(components.Vec2{X: x, Y: b.Max.Y}), color)
	}
	for y := math.Floor(b.Min.Y/step) * step; y <= math.Ceil(b.Max.Y/step)*step; y += step {
		rl.DrawLineV(s.screen(components.Vec2{X: b.Min.X, Y: y}), s.screen(components.Vec2{X: b.Max.X, Y: y}), color)
	}
}

func (s *Scene) drawBounds(b components.Bounds) {
	tl := s.screen(b.Min)
	br := s.screen(b.Max)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}, 2, s.renderer.Theme.BoundsLine)
}

// drawTerritories outlines each territory as a closed polyline.
func (s *Scene) drawTerritories(countries []components.Country) {
	for _, c := range countries {
		if len(c.Territory) < 2 {
			continue
		}
		s.outline = s.outline[:0]
		for _, v := range c.Territory {
			s.outline = append(s.outline, s.screen(v))
		}
		s.outline = append(s.outline, s.outline[0])
		rl.DrawLineStrip(s.outline, rl.Fade(s.colors.color(c.Color), 0.6))
	}
}

func (s *Scene) drawCapitals(countries []components.Country) {
	labels := s.overlays.IsEnabled(OverlayLabels)
	for _, c := range countries {
		p := s.screen(c.Capital)
		rl.DrawCircleV(p, s.cam.Scale(capitalRadius), s.colors.color(c.Color))
		if labels {
			text := fmt.Sprintf("%s (%d)", c.Name, c.Population)
			fontSize := max(int32(s.cam.Scale(labelFontSize)), 6)
			rl.DrawText(text, int32(p.X+s.cam.Scale(15)), int32(p.Y), fontSize, rl.White)
		}
	}
}

func (s *Scene) drawResources(resources []components.Resource) {
	size := s.cam.Scale(resourceSize)
	for _, r := range resources {
		if r.Amount <= 0 || !s.cam.IsVisible(float32(r.Position.X), float32(r.Position.Y), resourceSize) {
			continue
		}
		color := s.renderer.Theme.Wood
		if r.Kind == components.Food {
			color = s.renderer.Theme.Food
		}
		p := s.screen(r.Position)
		rl.DrawRectangleV(rl.Vector2{X: p.X - size/2, Y: p.Y - size/2}, rl.Vector2{X: size, Y: size}, color)
	}
}

func (s *Scene) drawUnits(snap *world.Snapshot, selectedID string) {
	bars := s.overlays.IsEnabled(OverlayHealthBars)
	for i := range snap.Units {
		u := &snap.Units[i]
		if !u.Alive || !s.cam.IsVisible(float32(u.Position.X), float32(u.Position.Y), soldierRadius) {
			continue
		}

		color := rl.Gray
		if c, ok := snap.Country(u.CountryID); ok {
			color = s.colors.color(c.Color)
		}

		p := s.screen(u.Position)
		radius := s.cam.Scale(civilianRadius)
		if u.Type == components.Military {
			radius = s.cam.Scale(soldierRadius)
		}
		rl.DrawCircleV(p, radius, color)
		if u.Type == components.Military {
			rl.DrawCircleLines(int32(p.X), int32(p.Y), radius, rl.White)
		}

		if u.ID == selectedID {
			rl.DrawRing(p, radius+2, radius+5, 0, 360, 24, s.renderer.Theme.Selection)
		}

		if bars {
			top := p.Y - radius - s.cam.Scale(8)
			s.renderer.DrawHealthBar(p.X, top, s.cam.Scale(healthBarW), s.cam.Scale(healthBarH), float32(u.Health))
		}
	}
}
