package netinterp

import (
	"errors"
	"fmt"

	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	errInvalidOrbit = errors.New("orbit cannot be propagated")
	errMissingBody  = errors.New("body not resolved")
)

// Blender writes the state between a session's current and target snapshots
// onto a vessel.
type Blender struct {
	settings *config.InterpolationConfig
}

// NewBlender returns a blender following settings.Extrapolation.
func NewBlender(settings *config.InterpolationConfig) *Blender {
	return &Blender{settings: settings}
}

// Mode returns the blend mode in effect.
func (b *Blender) Mode() BlendMode {
	return ModeFor(b.settings.Extrapolation)
}

// Apply blends s onto vessel. body is the body the current snapshot is
// positioned on.
func (b *Blender) Apply(s *Session, vessel Vessel, body Body) error {
	if vessel.IsEVA() && vessel.Loaded() {
		return b.applyEVA(s, vessel, body)
	}

	if err := b.applyOrbit(s, vessel); err != nil {
		return err
	}

	target := s.Target()
	vessel.SetStaticPressure(body.StaticPressure(target.LatLonAlt[2]))
	vessel.SetHeightFromTerrain(target.HeightFromTerrain)

	if vessel.Loaded() {
		b.applyLoaded(s, vessel, body)
		return nil
	}

	// Lat/lon/alt are not blended for unloaded vessels, landed vessels seen
	// from orbit would jitter.
	lla := target.LatLonAlt
	vessel.SetLatLonAlt(lla[0], lla[1], lla[2])
	vessel.UpdateFromParameters()

	if vessel.LandedOrSplashed() {
		targetBody := s.bodies[1-s.cur]
		if targetBody == nil {
			return fmt.Errorf("surface position of target: %w", errMissingBody)
		}
		vessel.SetPosition(targetBody.SurfacePosition(lla[0], lla[1], lla[2]))
	}
	return nil
}

func (b *Blender) applyLoaded(s *Session, vessel Vessel, body Body) {
	mode, t := b.Mode(), s.LerpPercentage()
	current, target := s.Current(), s.Target()

	rot := Slerp(mode, current.SurfaceRelRotation(), target.SurfaceRelRotation(), t)
	vel := LerpVec3(mode, current.VelocityVector(), target.VelocityVector(), t)

	vessel.SetSurfaceVelocity(vel)
	vessel.SetSurfaceRotation(rot)
	vessel.SetRotation(body.Rotation().Mul(rot))
	handoffFlags(vessel, current, target, t)

	vessel.UpdateFromParameters()

	if vessel.LandedOrSplashed() {
		lla := lerpLatLonAlt(mode, current, target, t)
		vessel.SetLatLonAlt(lla[0], lla[1], lla[2])
		vessel.SetPosition(body.SurfacePosition(lla[0], lla[1], lla[2]))
	}

	if current.HackingGravity && nearSurface(vessel) {
		lla := vessel.LatLonAlt()
		vessel.SetPosition(body.SurfacePosition(lla[0], lla[1], lla[2]))
	}

	if s.adapter.IsSpectating(s.vesselID) {
		vessel.RecomputeKinematics()
	}
}

func (b *Blender) applyEVA(s *Session, vessel Vessel, body Body) error {
	mode, t := b.Mode(), s.LerpPercentage()
	current, target := s.Current(), s.Target()

	lla := lerpLatLonAlt(mode, current, target, t)
	vessel.SetLatLonAlt(lla[0], lla[1], lla[2])
	handoffFlags(vessel, current, target, t)

	rot := Slerp(mode, current.SurfaceRelRotation(), target.SurfaceRelRotation(), t)
	vessel.SetRotation(body.Rotation().Mul(rot))
	vessel.SetSurfaceRotation(rot)

	// The kerbal is placed from lat/lon/alt alone when the orbits cannot be
	// blended.
	err := b.applyOrbit(s, vessel)
	if err != nil {
		s.log.WithError(err).Debug("on-foot vessel placed without orbit blend")
	}

	if err != nil || nearSurface(vessel) {
		vessel.SetPosition(body.SurfacePosition(lla[0], lla[1], lla[2]))
	}
	return nil
}

// orbitsReady reports why the orbits of s cannot be blended, if they can't.
func (s *Session) orbitsReady() error {
	for _, i := range [2]int{s.cur, 1 - s.cur} {
		if s.bodies[i] == nil || s.refBodies[i] == nil {
			return fmt.Errorf("slot %d: %w", i, errMissingBody)
		}
		if !s.orbits[i].Valid() {
			return fmt.Errorf("slot %d: %w", i, errInvalidOrbit)
		}
	}
	return nil
}

// applyOrbit blends the state vectors of both orbits at their own epochs and
// rebuilds the vessel's orbit from the result.
func (b *Blender) applyOrbit(s *Session, vessel Vessel) error {
	mode, t := b.Mode(), s.LerpPercentage()
	ci, ti := s.cur, 1-s.cur

	if err := s.orbitsReady(); err != nil {
		return err
	}

	startTime := s.orbits[ci].Epoch
	targetTime := s.orbits[ti].Epoch

	currentPos, currentVel := b.stateAt(s, ci, startTime)
	targetPos, targetVel := b.stateAt(s, ti, targetTime)

	pos := LerpVec3(mode, currentPos, targetPos, t)
	vel := LerpVec3(mode, currentVel, targetVel, t)
	s.LerpTime = Lerp(mode, startTime, targetTime, t)

	lerpBody := s.lerpBody()
	if lerpBody == nil {
		return fmt.Errorf("blended orbit: %w", errMissingBody)
	}
	vessel.UpdateOrbitFromStateVectors(pos, vel, lerpBody, s.LerpTime)
	return nil
}

// stateAt returns the position and velocity of slot i at ut, with the
// velocity moved from the orbit's reference frame to the frame of the body
// the snapshot is positioned on.
func (b *Blender) stateAt(s *Session, i int, ut float64) (pos, vel mgl64.Vec3) {
	o := s.orbits[i]
	pos, vel = o.StateVectorsAt(ut)
	vel = vel.Add(s.refBodies[i].FrameVelAt(ut)).Sub(s.bodies[i].FrameVelAt(ut))
	return pos, vel
}

// handoffFlags switches landed/splashed from current to target at the
// midpoint of the blend.
func handoffFlags(vessel Vessel, current, target *Snapshot, t float64) {
	if t < 0.5 {
		vessel.SetLanded(current.Landed)
		vessel.SetSplashed(current.Splashed)
		return
	}
	vessel.SetLanded(target.Landed)
	vessel.SetSplashed(target.Splashed)
}

func lerpLatLonAlt(mode BlendMode, current, target *Snapshot, t float64) [3]float64 {
	return [3]float64(LerpVec3(mode, mgl64.Vec3(current.LatLonAlt), mgl64.Vec3(target.LatLonAlt), t))
}

func nearSurface(vessel Vessel) bool {
	return vessel.LandedOrSplashed() || vessel.Situation() <= components.Flying
}
