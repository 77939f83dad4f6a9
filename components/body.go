package components

import (
	"image/color"

	"github.com/automoto/orbitsync/orbit"
	"github.com/yohamta/donburi"
)

// BodyData describes a celestial body. Parent is -1 for the root body, which
// sits at the origin of the inertial frame.
type BodyData struct {
	Index  int
	Name   string
	Parent int

	Radius          float64 // meters
	GravParameter   float64 // m^3/s^2
	RotationPeriod  float64 // seconds, sidereal
	InitialRotation float64 // degrees at universal time zero

	AtmosphereDepth  float64 // meters, zero for airless bodies
	SeaLevelPressure float64 // kPa
	ScaleHeight      float64 // meters
	Ocean            bool

	Orbit orbit.Orbit // Around Parent, unused for the root
	Color color.RGBA
}

var Body = donburi.NewComponentType[BodyData]()
