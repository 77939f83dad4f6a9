package netinterp

import (
	"fmt"
	"math"

	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/orbit"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionState describes where a session is in its lifecycle.
type SessionState int

const (
	Uninitialized SessionState = iota
	Interpolating
	AwaitingNext
	Detached
)

func (s SessionState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Interpolating:
		return "interpolating"
	case AwaitingNext:
		return "awaiting"
	case Detached:
		return "detached"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session drives one remote vessel from its current snapshot towards its
// target snapshot. It is owned by the tick goroutine.
type Session struct {
	vesselID uuid.UUID
	queue    *Queue
	adapter  Adapter
	settings *config.InterpolationConfig
	timing   *Timing
	blender  *Blender
	stats    *Stats
	log      *logrus.Entry

	slots      [2]Snapshot
	orbits     [2]orbit.Orbit
	bodies     [2]Body // Bodies the snapshots are positioned on
	refBodies  [2]Body // Reference bodies of the snapshot orbits
	cur        int
	hasTarget  bool
	state      SessionState
	underrun   bool
	unresolved bool // A body of either slot is missing

	lerpPercentage float64

	TimeDifference         float64
	ExtraInterpolationTime float64
	LerpTime               float64
}

func newSession(id uuid.UUID, q *Queue, adapter Adapter, settings *config.InterpolationConfig, timing *Timing, blender *Blender, stats *Stats, log *logrus.Entry) *Session {
	return &Session{
		vesselID:       id,
		queue:          q,
		adapter:        adapter,
		settings:       settings,
		timing:         timing,
		blender:        blender,
		stats:          stats,
		log:            log.WithField("vessel", id.String()),
		lerpPercentage: 1,
	}
}

// State returns the lifecycle state.
func (s *Session) State() SessionState { return s.state }

// Current returns the snapshot the blend starts from.
func (s *Session) Current() *Snapshot { return &s.slots[s.cur] }

// Target returns the snapshot the blend heads to, or nil before the first
// promotion.
func (s *Session) Target() *Snapshot {
	if !s.hasTarget {
		return nil
	}
	return &s.slots[1-s.cur]
}

// CurrentOrbit returns the orbit rebuilt from the current snapshot.
func (s *Session) CurrentOrbit() orbit.Orbit { return s.orbits[s.cur] }

// TargetOrbit returns the orbit rebuilt from the target snapshot.
func (s *Session) TargetOrbit() orbit.Orbit { return s.orbits[1-s.cur] }

// LerpPercentage returns the blend fraction. It reads 1 when interpolation
// is disabled so every promoted snapshot is applied as-is.
func (s *Session) LerpPercentage() float64 {
	if !s.settings.Enabled {
		return 1
	}
	return s.lerpPercentage
}

// InterpolationFinished reports whether the session is ready for a new target.
func (s *Session) InterpolationFinished() bool {
	return !s.hasTarget || s.LerpPercentage() >= 1
}

// MaxInterpolationDuration bounds InterpolationDuration. Targets from the
// future are not bounded so playback waits for their time to come.
func (s *Session) MaxInterpolationDuration() float64 {
	if s.timing.clock.SubspaceIsEqualOrInThePast(s.Target().SubspaceID) {
		return 2 * s.settings.NominalUpdateInterval()
	}
	return math.MaxFloat64
}

// InterpolationDuration returns the time the session takes to go from the
// current snapshot to the target.
func (s *Session) InterpolationDuration() float64 {
	d := s.Target().GameTimeStamp - s.Current().GameTimeStamp + s.ExtraInterpolationTime
	return mgl64.Clamp(d, 0, s.MaxInterpolationDuration())
}

// Advance runs one tick of the session.
func (s *Session) Advance(dt float64) {
	if s.state == Detached {
		return
	}

	vessel, ok := s.adapter.FindVessel(s.vesselID)
	if !ok {
		return
	}
	bodyIndex := s.Current().BodyIndex
	if !s.hasTarget {
		bodyIndex = vessel.Live().BodyIndex
	}
	body, ok := s.lookupBody(bodyIndex)
	if !ok {
		return
	}

	if s.adapter.IsLocallyControlled(s.vesselID) && !s.adapter.IsSpectating(s.vesselID) {
		return
	}

	if s.InterpolationFinished() {
		if next, ok := s.queue.TryDequeue(); ok {
			s.promote(next, vessel, dt)
			if body, ok = s.lookupBody(s.Current().BodyIndex); !ok {
				return
			}
		}
	}

	if !s.hasTarget {
		return
	}

	if s.LerpPercentage() > 1 {
		if !s.underrun {
			s.underrun = true
			s.stats.Underruns.Inc()
			s.log.WithField("lerp", s.lerpPercentage).Warn("no snapshot to interpolate to, increase the interpolation offset")
		}
	}

	if s.unresolved && !(vessel.IsEVA() && vessel.Loaded()) {
		s.stats.SkippedBlends.Inc()
		s.log.Debug("bodies of the blend not resolved, skipping")
	} else {
		s.safeApply(vessel, body)
	}

	if d := s.InterpolationDuration(); d > 0 {
		s.lerpPercentage += dt / d
	} else {
		s.lerpPercentage = math.Max(s.lerpPercentage, 1)
	}

	if s.lerpPercentage >= 1 && s.queue.Len() == 0 {
		s.state = AwaitingNext
	} else {
		s.state = Interpolating
	}
}

// promote rotates the chain forward: the old target becomes current and next
// becomes the target.
func (s *Session) promote(next *Snapshot, vessel Vessel, dt float64) {
	if !s.hasTarget {
		s.captureLive(vessel, next)
	} else {
		s.cur = 1 - s.cur
	}
	s.lerpPercentage = 0
	s.underrun = false

	s.slots[1-s.cur].CopyFrom(next)
	s.queue.Recycle(next)
	s.hasTarget = true

	s.timing.Adjust(s, dt)
	s.rebuildOrbits()
	vessel.SetProtoValues(s.Target())

	s.stats.Promotions.Inc()
	s.state = Interpolating
}

// captureLive seeds the current slot from the live vessel, one nominal
// interval before the first target.
func (s *Session) captureLive(vessel Vessel, next *Snapshot) {
	live := vessel.Live()
	r := live.SrfRelRotation

	s.slots[s.cur] = Snapshot{
		VesselID:          s.vesselID,
		BodyIndex:         live.BodyIndex,
		SubspaceID:        next.SubspaceID, // Placeholder, only the target's subspace is read
		GameTimeStamp:     next.GameTimeStamp - s.settings.NominalUpdateInterval(),
		LatLonAlt:         live.LatLonAlt,
		Velocity:          live.SurfaceVelocity,
		NormalVector:      live.TerrainNormal,
		SrfRelRotation:    [4]float32{float32(r.V[0]), float32(r.V[1]), float32(r.V[2]), float32(r.W)},
		Orbit:             live.Orbit,
		HeightFromTerrain: live.HeightFromTerrain,
		Landed:            live.Landed,
		Splashed:          live.Splashed,
	}
}

// rebuildOrbits recreates both orbits around their reference bodies and
// resolves the bodies the snapshots are positioned on.
func (s *Session) rebuildOrbits() {
	s.unresolved = false
	for _, i := range [2]int{s.cur, 1 - s.cur} {
		snap := &s.slots[i]
		s.bodies[i], _ = s.lookupBody(snap.BodyIndex)
		s.refBodies[i], _ = s.lookupBody(snap.orbitBodyIndex())

		var ref orbit.Body
		if s.refBodies[i] != nil {
			ref = s.refBodies[i]
		}
		s.orbits[i] = orbit.FromElements(snap.Orbit, ref)
		s.unresolved = s.unresolved || s.bodies[i] == nil || s.refBodies[i] == nil
	}
}

func (s *Session) lookupBody(index int) (Body, bool) {
	body, ok := s.adapter.Body(index)
	if !ok {
		s.stats.BodyLookupMisses.Inc()
		s.log.WithField("body", index).Debug("body not found")
		return nil, false
	}
	return body, true
}

// lerpBody returns the body the blended orbit is expressed around.
func (s *Session) lerpBody() Body {
	if s.LerpPercentage() < 0.5 {
		return s.bodies[s.cur]
	}
	return s.bodies[1-s.cur]
}

func (s *Session) safeApply(vessel Vessel, body Body) {
	defer func() {
		if r := recover(); r != nil {
			s.reportBlendFailure(fmt.Errorf("panic while applying interpolation: %v", r))
		}
	}()

	if err := s.blender.Apply(s, vessel, body); err != nil {
		s.reportBlendFailure(err)
	}
}

func (s *Session) reportBlendFailure(err error) {
	s.stats.BlendFailures.Inc()
	s.log.WithError(err).WithFields(logrus.Fields{
		"lerp":     s.lerpPercentage,
		"subspace": s.Target().SubspaceID,
	}).Error("failed to apply interpolation")

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("vessel", s.vesselID.String())
		scope.SetTag("subspace", fmt.Sprint(s.Target().SubspaceID))
	})
	hub.Recover(err)
}

// detach stops the session for good and drains its queue.
func (s *Session) detach() {
	s.state = Detached
	s.queue.Clear()
}
