package render

import "bonebound/internal/gamemap"

const (
	// FollowFactor is the fraction of the remaining distance to the player
	// the camera covers on each update.
	FollowFactor = 0.15
	// ZoomStep scales each scroll notch.
	ZoomStep = 0.1
	// smallMap is the size at or below which the camera frames the whole map.
	smallMap = 16
)

// Vec2 is a point in world or screen space.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned world-space rectangle.
type Rect struct {
	Min, Max Vec2
}

// Camera follows the player over the active map. Target is the world point
// drawn at Offset on screen; world units are TileSize per tile.
// It holds no reference to map data; callers pass dimensions on each call.
type Camera struct {
	Target   Vec2
	Offset   Vec2
	Zoom     float64
	TileSize float64
}

// NewCamera creates a camera at zoom 1.
func NewCamera(tileSize float64) *Camera {
	return &Camera{Zoom: 1, TileSize: tileSize}
}

// ZoomRange returns the allowed zoom interval for a map.
func ZoomRange(mapW, mapH int, local bool) (lo, hi float64) {
	switch {
	case local:
		return 0.1, 2.0
	case mapW <= 8 && mapH <= 8:
		return 1.0, 8.0
	case mapW <= 16 && mapH <= 16:
		return 0.5, 6.0
	case mapW <= 32 && mapH <= 32:
		return 0.3, 4.0
	}
	return 0.1, 3.0
}

// DefaultZoom returns the zoom a freshly entered map starts at: the
// preset's zoom for a matching world size, otherwise 1.
func DefaultZoom(mapW, mapH int, local bool) float64 {
	z := 1.0
	if !local {
		if p, ok := gamemap.PresetFor(mapW, mapH); ok {
			z = p.Zoom
		}
	}
	lo, hi := ZoomRange(mapW, mapH, local)
	return clamp(z, lo, hi)
}

// Reset places the camera for a newly entered map: centered on the
// player, or on the whole map when it is small.
func (c *Camera) Reset(mapW, mapH, px, py int, screenW, screenH float64, local bool) {
	c.Zoom = DefaultZoom(mapW, mapH, local)
	c.Offset = Vec2{screenW / 2, screenH / 2}
	c.Target = c.tileCenter(px, py)
	if mapW <= smallMap && mapH <= smallMap {
		c.Target = Vec2{float64(mapW) * c.TileSize / 2, float64(mapH) * c.TileSize / 2}
	}
}

// Scroll applies a wheel delta to the zoom, clamped to the map's range.
func (c *Camera) Scroll(delta float64, mapW, mapH int, local bool) {
	if delta == 0 {
		return
	}
	lo, hi := ZoomRange(mapW, mapH, local)
	c.Zoom = clamp(c.Zoom*(1+ZoomStep*delta), lo, hi)
}

// Update moves the target toward the player and keeps the viewport on the
// map. It must run every frame for the smoothing to converge.
func (c *Camera) Update(mapW, mapH, px, py int, screenW, screenH float64) {
	c.Offset = Vec2{screenW / 2, screenH / 2}

	goal := c.tileCenter(px, py)
	c.Target.X += (goal.X - c.Target.X) * FollowFactor
	c.Target.Y += (goal.Y - c.Target.Y) * FollowFactor

	if c.Zoom <= 0 {
		return
	}
	c.Target.X = clampAxis(c.Target.X, screenW/c.Zoom, float64(mapW)*c.TileSize)
	c.Target.Y = clampAxis(c.Target.Y, screenH/c.Zoom, float64(mapH)*c.TileSize)
}

// WorldToScreen converts a world point to screen space.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return Vec2{
		(p.X-c.Target.X)*c.Zoom + c.Offset.X,
		(p.Y-c.Target.Y)*c.Zoom + c.Offset.Y,
	}
}

// ScreenToWorld converts a screen point to world space.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	return Vec2{
		(p.X-c.Offset.X)/c.Zoom + c.Target.X,
		(p.Y-c.Offset.Y)/c.Zoom + c.Target.Y,
	}
}

// Visible returns the world-space rectangle currently on screen.
func (c *Camera) Visible() Rect {
	return Rect{
		Min: c.ScreenToWorld(Vec2{0, 0}),
		Max: c.ScreenToWorld(Vec2{c.Offset.X * 2, c.Offset.Y * 2}),
	}
}

// VisibleTiles returns the inclusive tile range on screen, clipped to a
// mapW×mapH grid.
func (c *Camera) VisibleTiles(mapW, mapH int) (x0, y0, x1, y1 int) {
	v := c.Visible()
	x0 = clampInt(int(v.Min.X/c.TileSize), 0, mapW-1)
	y0 = clampInt(int(v.Min.Y/c.TileSize), 0, mapH-1)
	x1 = clampInt(int(v.Max.X/c.TileSize), 0, mapW-1)
	y1 = clampInt(int(v.Max.Y/c.TileSize), 0, mapH-1)
	return
}

func (c *Camera) tileCenter(x, y int) Vec2 {
	return Vec2{
		float64(x)*c.TileSize + c.TileSize/2,
		float64(y)*c.TileSize + c.TileSize/2,
	}
}

// clampAxis centers on an axis the viewport over-covers, and otherwise
// keeps the viewport edge inside the map.
func clampAxis(target, visible, extent float64) float64 {
	if visible >= extent {
		return extent / 2
	}
	return clamp(target, visible/2, extent-visible/2)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
