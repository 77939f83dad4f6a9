package netinterp

import (
	"github.com/automoto/orbitsync/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Clock exposes the local universal time and the subspace table.
type Clock interface {
	UniversalTime() float64
	CurrentlyWarping() bool
	SubspaceIsEqualOrInThePast(subspaceID int) bool
	SubspaceIsInThePast(subspaceID int) bool
	// TimeDifferenceWithSubspace returns the local subspace time minus the
	// time of subspaceID.
	TimeDifferenceWithSubspace(subspaceID int) float64
}

// Body is a celestial body vessels can be positioned around.
type Body interface {
	Index() int
	GravParameter() float64
	// Rotation maps the body-fixed frame onto the inertial frame at the
	// current universal time.
	Rotation() mgl64.Quat
	// FrameVelAt returns the inertial velocity of the body's frame at ut.
	FrameVelAt(ut float64) mgl64.Vec3
	// SurfacePosition returns the inertial position of a point given in
	// degrees of latitude and longitude and meters of altitude.
	SurfacePosition(lat, lon, alt float64) mgl64.Vec3
	// StaticPressure returns the atmospheric pressure in kPa at alt.
	StaticPressure(alt float64) float64
}

// LiveState is what the engine reads from a vessel when it has no earlier
// snapshot to start blending from.
type LiveState struct {
	BodyIndex         int
	Landed            bool
	Splashed          bool
	SrfRelRotation    mgl64.Quat
	SurfaceVelocity   mgl64.Vec3 // Body-fixed frame
	LatLonAlt         [3]float64
	TerrainNormal     mgl64.Vec3
	Orbit             [8]float64
	HeightFromTerrain float32
}

// Vessel is a simulated vessel the engine drives.
type Vessel interface {
	ID() uuid.UUID
	Loaded() bool
	IsEVA() bool
	Situation() components.Situation
	LandedOrSplashed() bool
	Live() LiveState

	LatLonAlt() [3]float64
	SetLatLonAlt(lat, lon, alt float64)
	SetLanded(landed bool)
	SetSplashed(splashed bool)
	SetSurfaceRotation(srfRel mgl64.Quat)
	SetRotation(rot mgl64.Quat)
	// SetSurfaceVelocity sets the velocity in the body-fixed frame.
	SetSurfaceVelocity(vel mgl64.Vec3)
	SetPosition(pos mgl64.Vec3)
	SetStaticPressure(kPa float64)
	SetHeightFromTerrain(height float32)

	// UpdateOrbitFromStateVectors replaces the orbit driver's orbit with the
	// one passing through pos and vel around body at ut.
	UpdateOrbitFromStateVectors(pos, vel mgl64.Vec3, body Body, ut float64)
	// UpdateFromParameters moves the vessel to where its orbit puts it now.
	UpdateFromParameters()
	// SetProtoValues stores the snapshot as the vessel's persisted state.
	SetProtoValues(s *Snapshot)
	// RecomputeKinematics refreshes derived values after an external move.
	RecomputeKinematics()
}

// Adapter resolves vessels and bodies of the local simulation.
type Adapter interface {
	FindVessel(id uuid.UUID) (Vessel, bool)
	Body(index int) (Body, bool)
	IsLocallyControlled(id uuid.UUID) bool
	IsSpectating(id uuid.UUID) bool
}
