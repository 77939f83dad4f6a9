package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCameraZoomTween(t *testing.T) {
	c := CameraData{MetersPerPixel: 1000}

	c.ZoomTo(2000, 0.5)
	assert.NotNil(t, c.Zoom)

	c.Step(0.25)
	assert.Greater(t, c.MetersPerPixel, 1000.0)
	assert.Less(t, c.MetersPerPixel, 2000.0)

	c.Step(0.5)
	assert.Equal(t, 2000.0, c.MetersPerPixel)
	assert.Nil(t, c.Zoom)
}

func TestCameraZoomImmediate(t *testing.T) {
	c := CameraData{MetersPerPixel: 1000}

	c.ZoomTo(-5, 1)
	assert.Equal(t, 1000.0, c.MetersPerPixel)
	assert.Nil(t, c.Zoom)

	c.ZoomTo(10, 0)
	assert.Equal(t, 10.0, c.MetersPerPixel)
}

func TestCameraProject(t *testing.T) {
	c := CameraData{Center: mgl64.Vec3{1000, 1000, 0}, MetersPerPixel: 10}

	x, y := c.Project(mgl64.Vec3{1000, 1000, 50}, 200, 100)
	assert.Equal(t, float32(100), x)
	assert.Equal(t, float32(50), y)

	x, y = c.Project(mgl64.Vec3{1100, 1200, 0}, 200, 100)
	assert.Equal(t, float32(110), x)
	assert.Equal(t, float32(30), y)
}
