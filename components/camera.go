package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// CameraData is the map view: the point it is centred on and its scale.
type CameraData struct {
	Center         mgl64.Vec3 // Inertial position shown in the middle of the screen
	MetersPerPixel float64
	Zoom           *gween.Tween // Running zoom animation, nil when idle
	ZoomTarget     float64      // Scale the running zoom ends at
}

var Camera = donburi.NewComponentType[CameraData]()

// ZoomTo animates the scale towards metersPerPixel over seconds.
func (c *CameraData) ZoomTo(metersPerPixel float64, seconds float32) {
	if metersPerPixel <= 0 {
		return
	}
	if seconds <= 0 {
		c.MetersPerPixel = metersPerPixel
		c.Zoom = nil
		return
	}
	c.ZoomTarget = metersPerPixel
	c.Zoom = gween.New(float32(c.MetersPerPixel), float32(metersPerPixel), seconds, ease.OutQuad)
}

// Step advances a running zoom by dt seconds.
func (c *CameraData) Step(dt float32) {
	if c.Zoom == nil {
		return
	}
	value, finished := c.Zoom.Update(dt)
	if value > 0 {
		c.MetersPerPixel = float64(value)
	}
	if finished {
		c.Zoom = nil
	}
}

// Project maps an inertial position onto a width by height screen, looking
// down the Z axis.
func (c *CameraData) Project(pos mgl64.Vec3, width, height int) (x, y float32) {
	scale := c.MetersPerPixel
	if scale <= 0 {
		scale = 1
	}
	rel := pos.Sub(c.Center)
	return float32(float64(width)/2 + rel.X()/scale), float32(float64(height)/2 - rel.Y()/scale)
}
