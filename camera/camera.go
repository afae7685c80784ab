// Package camera provides the 2D view transform between world and screen
// coordinates.
package camera

const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// KeyPanSpeed is the keyboard pan step in screen pixels.
	KeyPanSpeed = 20
)

// Camera controls the viewport into the simulation world.
// The world is bounded; the camera center is kept inside it.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World extent
	MinX, MinY, MaxX, MaxY float32
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, minX, minY, maxX, maxY float32) *Camera {
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinX:      minX,
		MinY:      minY,
		MaxX:      maxX,
		MaxY:      maxY,
	}
	c.Reset()
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = (wx-c.X)*c.Zoom + c.ViewportW/2
	sy = (wy-c.Y)*c.Zoom + c.ViewportH/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = (sx-c.ViewportW/2)/c.Zoom + c.X
	wy = (sy-c.ViewportH/2)/c.Zoom + c.Y
	return wx, wy
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by a screen-pixel delta, as when dragging: the world
// follows the pointer, so the center moves the opposite way.
func (c *Camera) Pan(dx, dy float32) {
	c.MoveBy(-dx/c.Zoom, -dy/c.Zoom)
}

// PanKey moves the view one keyboard step in direction (dirX, dirY), each in
// {-1, 0, 1}. The step is constant on screen.
func (c *Camera) PanKey(dirX, dirY float32) {
	c.MoveBy(dirX*KeyPanSpeed/c.Zoom, dirY*KeyPanSpeed/c.Zoom)
}

// MoveBy moves the center by a world delta, clamped to the world extent.
func (c *Camera) MoveBy(dx, dy float32) {
	c.X = clamp(c.X+dx, c.MinX, c.MaxX)
	c.Y = clamp(c.Y+dy, c.MinY, c.MaxY)
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, MinZoom, MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under (sx, sy) fixed
// on screen.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.MoveBy(wx-nx, wy-ny)
}

// Reset returns the camera to the world center at 1:1 zoom.
func (c *Camera) Reset() {
	c.X = (c.MinX + c.MaxX) / 2
	c.Y = (c.MinY + c.MaxY) / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
