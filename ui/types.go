// Package ui draws simulation snapshots with raylib and turns pointer and
// keyboard input into camera moves and simulation events. It never touches
// the live world: everything it shows comes from the last published
// snapshot.
package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	Background     rl.Color
	GridLine       rl.Color
	BoundsLine     rl.Color
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Selection      rl.Color
	Wood           rl.Color
	Food           rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 10, G: 10, B: 10, A: 255},
		GridLine:       rl.Color{R: 26, G: 26, B: 26, A: 255},
		BoundsLine:     rl.Color{R: 255, G: 0, B: 0, A: 255},
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Selection:      rl.Color{R: 255, G: 255, B: 0, A: 255},
		Wood:           rl.Color{R: 139, G: 90, B: 43, A: 255},
		Food:           rl.Color{R: 230, G: 200, B: 60, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// ParseColor converts a "#rrggbb" country color. Malformed input yields gray.
func ParseColor(hex string) rl.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(hex, "#")) != 6 {
		return rl.Gray
	}
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// palette caches parsed country colors by hex string.
type palette map[string]rl.Color

func (p palette) color(hex string) rl.Color {
	c, ok := p[hex]
	if !ok {
		c = ParseColor(hex)
		p[hex] = c
	}
	return c
}
