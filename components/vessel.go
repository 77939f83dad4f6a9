package components

import (
	"github.com/automoto/orbitsync/orbit"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

// Situation classifies where a vessel is relative to its main body.
// Values are ordered so that everything up to Flying counts as "near the surface".
type Situation int

const (
	Landed Situation = 1 << iota
	Splashed
	PreLaunch
	Flying
	SubOrbital
	Orbiting
	Escaping
)

func (s Situation) String() string {
	switch s {
	case Landed:
		return "landed"
	case Splashed:
		return "splashed"
	case PreLaunch:
		return "prelaunch"
	case Flying:
		return "flying"
	case SubOrbital:
		return "suborbital"
	case Orbiting:
		return "orbiting"
	case Escaping:
		return "escaping"
	default:
		return "unknown"
	}
}

// VesselData is the live simulated state of a vessel.
type VesselData struct {
	ID        uuid.UUID
	BodyIndex int
	EVA       bool
	Loaded    bool

	Landed    bool
	Splashed  bool
	Situation Situation

	Latitude          float64 // degrees
	Longitude         float64 // degrees
	Altitude          float64 // meters above sea level
	HeightFromTerrain float32
	TerrainNormal     mgl64.Vec3
	StaticPressure    float64 // kPa

	SrfRelRotation  mgl64.Quat // Relative to the body-fixed frame
	Rotation        mgl64.Quat // Inertial
	SurfaceVelocity mgl64.Vec3 // Body-fixed frame
	Position        mgl64.Vec3 // Inertial, relative to the root body
}

var Vessel = donburi.NewComponentType[VesselData]()

// OrbitData is the orbit driver of a vessel.
type OrbitData struct {
	orbit.Orbit
	BodyIndex int
}

var Orbit = donburi.NewComponentType[OrbitData]()

// ProtoData mirrors the last promoted snapshot so the vessel can be
// rebuilt if it is unloaded and loaded again.
type ProtoData struct {
	Latitude      float64
	Longitude     float64
	Altitude      float64
	Height        float32
	Normal        [3]float64
	Rotation      [4]float32
	OrbitSnapshot [8]float64
}

var Proto = donburi.NewComponentType[ProtoData]()

// TrailData keeps the last drawn positions of a vessel for the map view.
type TrailData struct {
	Points []mgl64.Vec3
}

var Trail = donburi.NewComponentType[TrailData]()
