package netinterp

import (
	"math"

	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/orbit"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	testMu     = 3.5316e12
	testRadius = 600000.0
)

func testSettings() *config.InterpolationConfig {
	return &config.InterpolationConfig{
		Enabled:                          true,
		OffsetSeconds:                    1,
		SecondaryVesselUpdatesMsInterval: 500,
		MinRecommendedMessageCount:       3,
	}
}

type fakeClock struct {
	ut      float64
	warping bool
	past    map[int]float64 // subspace -> seconds behind the local subspace
	future  map[int]bool
}

func newFakeClock(ut float64) *fakeClock {
	return &fakeClock{ut: ut, past: map[int]float64{}, future: map[int]bool{}}
}

func (c *fakeClock) UniversalTime() float64 { return c.ut }
func (c *fakeClock) CurrentlyWarping() bool { return c.warping }
func (c *fakeClock) SubspaceIsEqualOrInThePast(id int) bool {
	return !c.future[id]
}
func (c *fakeClock) SubspaceIsInThePast(id int) bool {
	_, ok := c.past[id]
	return ok
}
func (c *fakeClock) TimeDifferenceWithSubspace(id int) float64 { return c.past[id] }

type fakeBody struct {
	index    int
	rotation mgl64.Quat
	frameVel mgl64.Vec3
}

func newFakeBody(index int) *fakeBody {
	return &fakeBody{index: index, rotation: mgl64.QuatIdent()}
}

func (b *fakeBody) Index() int                         { return b.index }
func (b *fakeBody) GravParameter() float64             { return testMu }
func (b *fakeBody) Rotation() mgl64.Quat               { return b.rotation }
func (b *fakeBody) FrameVelAt(float64) mgl64.Vec3      { return b.frameVel }
func (b *fakeBody) StaticPressure(alt float64) float64 { return 101.325 * math.Exp(-alt/5000) }
func (b *fakeBody) SurfacePosition(lat, lon, alt float64) mgl64.Vec3 {
	r := testRadius + alt
	la, lo := mgl64.DegToRad(lat), mgl64.DegToRad(lon)
	return b.rotation.Rotate(mgl64.Vec3{
		r * math.Cos(la) * math.Cos(lo),
		r * math.Cos(la) * math.Sin(lo),
		r * math.Sin(la),
	})
}

type fakeVessel struct {
	id        uuid.UUID
	bodyIndex int
	loaded    bool
	eva       bool
	situation components.Situation

	landed, splashed bool
	lla              [3]float64
	srfRel           mgl64.Quat
	rotation         mgl64.Quat
	surfaceVelocity  mgl64.Vec3
	normal           mgl64.Vec3
	position         mgl64.Vec3
	height           float32
	staticPressure   float64
	orbitElements    [8]float64

	orbitPos, orbitVel mgl64.Vec3
	orbitBody          Body
	orbitTime          float64
	orbitUpdates       int

	proto        *Snapshot
	recomputes   int
	paramUpdates int
	panicOnOrbit bool
}

func newFakeVessel(id uuid.UUID) *fakeVessel {
	return &fakeVessel{
		id:            id,
		loaded:        true,
		situation:     components.Orbiting,
		srfRel:        mgl64.QuatIdent(),
		rotation:      mgl64.QuatIdent(),
		orbitElements: circularElements(700000, 0, 0),
	}
}

func (v *fakeVessel) ID() uuid.UUID                   { return v.id }
func (v *fakeVessel) Loaded() bool                    { return v.loaded }
func (v *fakeVessel) IsEVA() bool                     { return v.eva }
func (v *fakeVessel) Situation() components.Situation { return v.situation }
func (v *fakeVessel) LandedOrSplashed() bool          { return v.landed || v.splashed }
func (v *fakeVessel) LatLonAlt() [3]float64           { return v.lla }
func (v *fakeVessel) SetLatLonAlt(lat, lon, alt float64) {
	v.lla = [3]float64{lat, lon, alt}
}
func (v *fakeVessel) SetLanded(landed bool)                { v.landed = landed }
func (v *fakeVessel) SetSplashed(splashed bool)            { v.splashed = splashed }
func (v *fakeVessel) SetSurfaceRotation(srfRel mgl64.Quat) { v.srfRel = srfRel }
func (v *fakeVessel) SetRotation(rot mgl64.Quat)           { v.rotation = rot }
func (v *fakeVessel) SetSurfaceVelocity(vel mgl64.Vec3)    { v.surfaceVelocity = vel }
func (v *fakeVessel) SetPosition(pos mgl64.Vec3)           { v.position = pos }
func (v *fakeVessel) SetStaticPressure(kPa float64)        { v.staticPressure = kPa }
func (v *fakeVessel) SetHeightFromTerrain(height float32)  { v.height = height }
func (v *fakeVessel) UpdateFromParameters()                { v.paramUpdates++ }
func (v *fakeVessel) RecomputeKinematics()                 { v.recomputes++ }

func (v *fakeVessel) SetProtoValues(s *Snapshot) {
	cp := *s
	v.proto = &cp
}

func (v *fakeVessel) UpdateOrbitFromStateVectors(pos, vel mgl64.Vec3, body Body, ut float64) {
	if v.panicOnOrbit {
		panic("orbit driver exploded")
	}
	v.orbitPos, v.orbitVel, v.orbitBody, v.orbitTime = pos, vel, body, ut
	v.orbitUpdates++

	var o orbit.Orbit
	o.UpdateFromStateVectors(pos, vel, body, ut)
	v.orbitElements = o.Elements(body.Index())
}

func (v *fakeVessel) Live() LiveState {
	return LiveState{
		BodyIndex:         v.bodyIndex,
		Landed:            v.landed,
		Splashed:          v.splashed,
		SrfRelRotation:    v.srfRel,
		SurfaceVelocity:   v.surfaceVelocity,
		LatLonAlt:         v.lla,
		TerrainNormal:     v.normal,
		Orbit:             v.orbitElements,
		HeightFromTerrain: v.height,
	}
}

type fakeAdapter struct {
	vessels    map[uuid.UUID]*fakeVessel
	bodies     map[int]*fakeBody
	controlled map[uuid.UUID]bool
	spectating map[uuid.UUID]bool
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		vessels:    map[uuid.UUID]*fakeVessel{},
		bodies:     map[int]*fakeBody{0: newFakeBody(0)},
		controlled: map[uuid.UUID]bool{},
		spectating: map[uuid.UUID]bool{},
	}
}

func (a *fakeAdapter) addVessel(id uuid.UUID) *fakeVessel {
	v := newFakeVessel(id)
	a.vessels[id] = v
	return v
}

func (a *fakeAdapter) FindVessel(id uuid.UUID) (Vessel, bool) {
	v, ok := a.vessels[id]
	if !ok {
		return nil, false
	}
	return v, true
}

func (a *fakeAdapter) Body(index int) (Body, bool) {
	b, ok := a.bodies[index]
	if !ok {
		return nil, false
	}
	return b, true
}

func (a *fakeAdapter) IsLocallyControlled(id uuid.UUID) bool { return a.controlled[id] }
func (a *fakeAdapter) IsSpectating(id uuid.UUID) bool        { return a.spectating[id] }

// circularElements packs a circular equatorial orbit of radius sma around
// body 0, at mean anomaly m on the given epoch.
func circularElements(sma, m, epoch float64) [8]float64 {
	return [8]float64{0, 0, sma, 0, 0, m, epoch, 0}
}

func snapshotAt(id uuid.UUID, ts float64, subspace int) *Snapshot {
	return &Snapshot{
		VesselID:       id,
		SubspaceID:     subspace,
		GameTimeStamp:  ts,
		SrfRelRotation: [4]float32{0, 0, 0, 1},
		Orbit:          circularElements(700000, 0.1*ts, ts),
	}
}
