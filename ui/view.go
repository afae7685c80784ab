package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aisim/camera"
	"github.com/pthm-cable/aisim/components"
	"github.com/pthm-cable/aisim/game"
	"github.com/pthm-cable/aisim/world"
)

const controlsLegend = "Space: start/stop | Drag/WASD: pan | Wheel/+/-: zoom | Home: reset | Left click: select | Right click: spawn | G T R H L: layers"

// Sim is the part of the simulation the view reads from and sends events to.
type Sim interface {
	Snapshot() *world.Snapshot
	GetStats() game.Stats
	Running() bool
	Err() error
	Start()
	Stop()
	SelectUnit(pos components.Vec2, radius float64) (components.UnitView, bool)
	SpawnRandomUnit(pos components.Vec2)
	PlaceRandomCountry()
}

// View is the graphical front end: it owns the camera, draws the last
// published snapshot and forwards user actions to the simulation.
type View struct {
	sim       Sim
	cam       *camera.Camera
	input     *InputManager
	overlays  *OverlayRegistry
	scene     *Scene
	hud       *HUD
	inspector *Inspector
	controls  *ControlsPanel

	title      string
	screenW    int32
	screenH    int32
	selectedID string
}

// NewView creates a view for a window of the given size. The camera starts
// centered on the snapshot's world bounds.
func NewView(sim Sim, title string, screenW, screenH int32) *View {
	b := sim.Snapshot().Bounds
	cam := camera.New(float32(screenW), float32(screenH),
		float32(b.Min.X), float32(b.Min.Y), float32(b.Max.X), float32(b.Max.Y))
	overlays := NewOverlayRegistry()

	return &View{
		sim:       sim,
		cam:       cam,
		input:     NewInputManager(cam),
		overlays:  overlays,
		scene:     NewScene(cam, overlays),
		hud:       NewHUD(),
		inspector: NewInspector(10, 160, 260),
		controls:  NewControlsPanel(screenW),
		title:     title,
		screenW:   screenW,
		screenH:   screenH,
	}
}

// HandleInput processes one frame of input. Call it before Draw.
func (v *View) HandleInput() {
	v.handleResize()
	v.overlays.HandleKeys()

	if rl.IsKeyPressed(rl.KeySpace) {
		v.toggleRunning()
	}

	intent := v.input.Update(v.controls.Bounds(len(v.overlays.All())))
	switch {
	case intent.Select:
		v.selectedID = ""
		if u, ok := v.sim.SelectUnit(intent.WorldPos, v.input.SelectRadius()); ok {
			v.selectedID = u.ID
		}
	case intent.Spawn:
		v.sim.SpawnRandomUnit(intent.WorldPos)
	}
}

// Draw renders one frame between rl.BeginDrawing and rl.EndDrawing.
func (v *View) Draw() {
	snap := v.sim.Snapshot()

	selected, hasSelection := components.UnitView{}, false
	if v.selectedID != "" {
		selected, hasSelection = snap.Unit(v.selectedID)
		if !hasSelection {
			v.selectedID = ""
		}
	}

	v.scene.Draw(snap, v.selectedID)

	stats := v.sim.GetStats()
	v.hud.Draw(HUDData{
		Title:      v.title,
		Time:       stats.Time,
		Tick:       stats.Tick,
		AliveUnits: stats.AliveUnits,
		TotalUnits: stats.TotalUnits,
		Countries:  stats.Countries,
		AvgFitness: stats.AvgFitness,
		Zoom:       v.cam.Zoom,
		FPS:        rl.GetFPS(),
		Running:    v.sim.Running(),
		Failed:     v.sim.Err() != nil,
	})

	if hasSelection {
		var country *components.Country
		if c, ok := snap.Country(selected.CountryID); ok {
			country = &c
		}
		v.inspector.Draw(selected, country)
	}

	switch v.controls.Draw(v.sim.Running(), v.overlays) {
	case ActionStart:
		v.sim.Start()
	case ActionStop:
		v.sim.Stop()
	case ActionAddCountry:
		v.sim.PlaceRandomCountry()
	}

	v.hud.DrawControls(v.screenH, controlsLegend)
}

func (v *View) toggleRunning() {
	if v.sim.Running() {
		v.sim.Stop()
	} else {
		v.sim.Start()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (v *View) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == v.screenW && h == v.screenH {
		return
	}
	v.screenW, v.screenH = w, h
	v.cam.Resize(float32(w), float32(h))
	v.controls.Resize(w)
}
