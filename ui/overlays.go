package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a toggleable layer.
type OverlayID string

const (
	OverlayGrid        OverlayID = "grid"
	OverlayTerritories OverlayID = "territories"
	OverlayResources   OverlayID = "resources"
	OverlayHealthBars  OverlayID = "health_bars"
	OverlayLabels      OverlayID = "labels"
)

// OverlayDescriptor defines a layer that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // toggle key (0 = none)
	KeyLabel string // e.g. "G"
}

// OverlayRegistry manages layer state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with every default layer enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	reg.Register(OverlayDescriptor{ID: OverlayGrid, Name: "Grid", Key: rl.KeyG, KeyLabel: "G"}, true)
	reg.Register(OverlayDescriptor{ID: OverlayTerritories, Name: "Territories", Key: rl.KeyT, KeyLabel: "T"}, true)
	reg.Register(OverlayDescriptor{ID: OverlayResources, Name: "Resources", Key: rl.KeyR, KeyLabel: "R"}, true)
	reg.Register(OverlayDescriptor{ID: OverlayHealthBars, Name: "Health Bars", Key: rl.KeyH, KeyLabel: "H"}, true)
	reg.Register(OverlayDescriptor{ID: OverlayLabels, Name: "Country Labels", Key: rl.KeyL, KeyLabel: "L"}, true)
	return reg
}

// Register adds a layer to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor, enabled bool) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = enabled
}

// Toggle switches a layer on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether a layer is shown.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered layers in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every layer whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
