package messages

import "github.com/google/uuid"

// VesselPosition is the periodic position broadcast of a vessel by its owner.
//
// Orbit packs inclination, eccentricity, semi-major axis, LAN, argument of
// periapsis, mean anomaly at epoch, epoch and the reference body index.
type VesselPosition struct {
	VesselID          uuid.UUID
	BodyIndex         int
	SubspaceID        int
	GameTime          float64 // Sender's universal time when the snapshot was taken
	LatLonAlt         [3]float64
	Velocity          [3]float64 // Surface relative, body frame
	NormalVector      [3]float64
	SrfRelRotation    [4]float32 // x, y, z, w
	Orbit             [8]float64
	HeightFromTerrain float32
	Landed            bool
	Splashed          bool
	HackingGravity    bool
	EVA               bool // Vessel is a kerbal on foot
}

// VesselRemove is broadcast when a vessel leaves the universe.
type VesselRemove struct {
	VesselID uuid.UUID
}

// VesselControl tells a client which vessel it is flying, if any.
type VesselControl struct {
	VesselID   uuid.UUID
	Controlled bool
}
