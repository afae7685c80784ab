package camera

import (
	"math"
	"testing"
)

func newTestCamera() *Camera {
	return New(1280, 720, 0, 0, 2000, 2000)
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 0.01
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	// Should be centered on world
	if cam.X != 1000 || cam.Y != 1000 {
		t.Errorf("expected camera at (1000, 1000), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := newTestCamera()

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(1000, 1000)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2.5)
	cam.MoveBy(-300, 120)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToWorldZoom(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2)

	// 100px right of center at 2x is 50 world units.
	wx, wy := cam.ScreenToWorld(740, 360)
	if !near(wx, 1050) || !near(wy, 1000) {
		t.Errorf("got (%f, %f), want (1050, 1000)", wx, wy)
	}
}

func TestPanFollowsDrag(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2)

	// Dragging right by 100px shows what was to the left.
	cam.Pan(100, 0)
	if !near(cam.X, 950) {
		t.Errorf("expected X 950, got %f", cam.X)
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := newTestCamera()
	cam.MoveBy(-5000, 5000)
	if cam.X != 0 || cam.Y != 2000 {
		t.Errorf("expected center clamped to (0, 2000), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestPanKeyScreenConstant(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(0.5)
	cam.PanKey(1, 0)
	if !near(cam.X, 1000+KeyPanSpeed/0.5) {
		t.Errorf("expected X %f, got %f", 1000+KeyPanSpeed/0.5, cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	cam.SetZoom(0.01)
	if cam.Zoom != MinZoom {
		t.Errorf("expected zoom clamped to %v, got %f", MinZoom, cam.Zoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %f", MaxZoom, cam.Zoom)
	}

	for i := 0; i < 100; i++ {
		cam.ZoomBy(1.1)
	}
	if cam.Zoom != MaxZoom {
		t.Errorf("repeated zoom-in exceeded max: %f", cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := newTestCamera()
	wx, wy := cam.ScreenToWorld(200, 150)

	cam.ZoomAt(200, 150, 1.5)

	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 200) || !near(sy, 150) {
		t.Errorf("anchor moved to (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()

	// Visible range: (360, 640) to (1640, 1360)
	if !cam.IsVisible(1000, 1000, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(1900, 1900, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(300, 1000, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 680) || !near(maxX, 1320) || !near(minY, 820) || !near(maxY, 1180) {
		t.Errorf("got (%f, %f, %f, %f)", minX, minY, maxX, maxY)
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 1000 || cam.Y != 1000 {
		t.Errorf("expected position (1000, 1000), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
