package netinterp

import (
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// UnknownSubspace marks a snapshot sent while its owner had no subspace,
// which happens while warping.
const UnknownSubspace = messages.UnknownSubspace

// Snapshot is one received vessel position.
type Snapshot struct {
	VesselID      uuid.UUID
	BodyIndex     int
	SubspaceID    int
	GameTimeStamp float64

	LatLonAlt      [3]float64
	Velocity       [3]float64
	NormalVector   [3]float64
	SrfRelRotation [4]float32 // x, y, z, w

	Orbit [8]float64

	HeightFromTerrain float32
	Landed            bool
	Splashed          bool
	HackingGravity    bool
}

// SnapshotFromMessage builds a snapshot from a wire record.
func SnapshotFromMessage(msg messages.VesselPosition) *Snapshot {
	s := &Snapshot{}
	s.fill(msg)
	return s
}

func (s *Snapshot) fill(msg messages.VesselPosition) {
	*s = Snapshot{
		VesselID:          msg.VesselID,
		BodyIndex:         msg.BodyIndex,
		SubspaceID:        msg.SubspaceID,
		GameTimeStamp:     msg.GameTime,
		LatLonAlt:         msg.LatLonAlt,
		Velocity:          msg.Velocity,
		NormalVector:      msg.NormalVector,
		SrfRelRotation:    msg.SrfRelRotation,
		Orbit:             msg.Orbit,
		HeightFromTerrain: msg.HeightFromTerrain,
		Landed:            msg.Landed,
		Splashed:          msg.Splashed,
		HackingGravity:    msg.HackingGravity,
	}
}

// CopyFrom overwrites s with every field of other.
func (s *Snapshot) CopyFrom(other *Snapshot) {
	*s = *other
}

// SurfaceRelRotation returns the rotation relative to the body-fixed frame.
func (s *Snapshot) SurfaceRelRotation() mgl64.Quat {
	r := s.SrfRelRotation
	return mgl64.Quat{
		W: float64(r[3]),
		V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])},
	}
}

// VelocityVector returns the surface velocity in the body-fixed frame.
func (s *Snapshot) VelocityVector() mgl64.Vec3 {
	return mgl64.Vec3(s.Velocity)
}

// Normal returns the terrain normal under the vessel.
func (s *Snapshot) Normal() mgl64.Vec3 {
	return mgl64.Vec3(s.NormalVector)
}

func (s *Snapshot) orbitBodyIndex() int {
	return int(s.Orbit[7])
}
