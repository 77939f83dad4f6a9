package sim

import (
	"math"
	"testing"
	"time"

	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/automoto/orbitsync/tags"
	"github.com/automoto/orbitsync/warp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

const startUT = 100.0

func newTestClock() *warp.Service {
	wall := time.Unix(1700000000, 0)
	clock := warp.NewService(func() time.Time { return wall })
	clock.SyncServerClock(startUT)
	clock.SetSubspace(0, 0)
	clock.SetCurrentSubspace(0)
	return clock
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(donburi.NewWorld(), newTestClock(), StockBodies())
	require.NoError(t, err)
	return w
}

func orbitingMessage(id uuid.UUID, meanAnomaly float64) messages.VesselPosition {
	return messages.VesselPosition{
		VesselID:       id,
		BodyIndex:      Kerbin,
		GameTime:       startUT,
		SrfRelRotation: [4]float32{0, 0, 0, 1},
		Orbit:          [8]float64{0, 0, 700000, 0, 0, meanAnomaly, startUT, Kerbin},
	}
}

func TestNewWorldBodies(t *testing.T) {
	w := newTestWorld(t)

	for _, index := range []int{Kerbol, Kerbin, Mun, Minmus} {
		b, ok := w.Body(index)
		require.True(t, ok)
		assert.Equal(t, index, b.Index())
	}
	_, ok := w.Body(42)
	assert.False(t, ok)
}

func TestAddBodyErrors(t *testing.T) {
	w := newTestWorld(t)

	assert.Error(t, w.AddBody(components.BodyData{Index: Kerbin, Parent: Kerbol}))
	assert.Error(t, w.AddBody(components.BodyData{Index: 9, Name: "Eeloo", Parent: 8}))
}

func TestSurfacePositionRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	kerbin, ok := w.body(Kerbin)
	require.True(t, ok)

	tests := [][3]float64{
		{0, 0, 0},
		{-0.0972, -74.5577, 67},
		{45, 120, 12000},
		{-80, 179, 500},
	}
	for _, lla := range tests {
		got := kerbin.LatLonAlt(kerbin.SurfacePosition(lla[0], lla[1], lla[2]))
		assert.InDelta(t, lla[0], got[0], 1e-6)
		assert.InDelta(t, lla[1], got[1], 1e-6)
		assert.InDelta(t, lla[2], got[2], 1e-3)
	}
}

func TestStaticPressure(t *testing.T) {
	w := newTestWorld(t)
	kerbin, _ := w.Body(Kerbin)
	mun, _ := w.Body(Mun)

	assert.InDelta(t, 101.325, kerbin.StaticPressure(0), 1e-9)
	assert.InDelta(t, 101.325, kerbin.StaticPressure(-10), 1e-9)
	assert.InDelta(t, 101.325*math.Exp(-1), kerbin.StaticPressure(5600), 1e-9)
	assert.Zero(t, kerbin.StaticPressure(70000))
	assert.Zero(t, mun.StaticPressure(0))
}

func TestFrameVelocity(t *testing.T) {
	w := newTestWorld(t)
	kerbol, _ := w.Body(Kerbol)
	kerbin, _ := w.Body(Kerbin)
	mun, _ := w.Body(Mun)

	assert.Equal(t, mgl64.Vec3{}, kerbol.FrameVelAt(startUT))

	circular := math.Sqrt(1.1723328e18 / 13599840256)
	assert.InDelta(t, circular, kerbin.FrameVelAt(startUT).Len(), 1e-6)

	munOrbital := math.Sqrt(3.5316e12 / 12000000)
	relative := mun.FrameVelAt(startUT).Sub(kerbin.FrameVelAt(startUT))
	assert.InDelta(t, munOrbital, relative.Len(), 1e-6)
}

func TestSpawnOrbitingVessel(t *testing.T) {
	w := newTestWorld(t)
	id := uuid.New()

	created, err := w.SpawnVessel(orbitingMessage(id, 0), false)
	require.NoError(t, err)
	assert.True(t, created)

	v, ok := w.FindVessel(id)
	require.True(t, ok)
	assert.Equal(t, components.Orbiting, v.Situation())
	assert.InDelta(t, 100000, v.LatLonAlt()[2], 1e-3)
	assert.Equal(t, 700000.0, v.Live().Orbit[2])

	created, err = w.SpawnVessel(orbitingMessage(id, 0), false)
	require.NoError(t, err)
	assert.False(t, created)

	assert.True(t, w.RemoveVessel(id))
	assert.False(t, w.RemoveVessel(id))
	_, ok = w.FindVessel(id)
	assert.False(t, ok)
}

func TestSpawnUnknownBody(t *testing.T) {
	w := newTestWorld(t)
	msg := orbitingMessage(uuid.New(), 0)
	msg.BodyIndex = 12

	_, err := w.SpawnVessel(msg, false)
	assert.Error(t, err)
	assert.Zero(t, w.VesselCount())
}

func TestSpawnLandedVessel(t *testing.T) {
	w := newTestWorld(t)
	id := uuid.New()
	msg := orbitingMessage(id, 0)
	msg.Landed = true
	msg.LatLonAlt = [3]float64{-0.0972, -74.5577, 67}

	_, err := w.SpawnVessel(msg, true)
	require.NoError(t, err)

	v, _ := w.FindVessel(id)
	assert.Equal(t, components.Landed, v.Situation())
	assert.True(t, v.IsEVA())
	assert.Equal(t, [3]float64{-0.0972, -74.5577, 67}, v.LatLonAlt())

	kerbin, _ := w.Body(Kerbin)
	entry, _ := w.vesselEntry(id)
	assert.Equal(t, kerbin.SurfacePosition(-0.0972, -74.5577, 67), components.Vessel.Get(entry).Position)
	assert.Equal(t, -74.5577, components.Proto.Get(entry).Longitude)
}

func TestControlAndSpectate(t *testing.T) {
	w := newTestWorld(t)
	near, far := uuid.New(), uuid.New()

	// Control may be announced before the vessel exists.
	w.SetControlled(near)
	_, err := w.SpawnVessel(orbitingMessage(near, 0), false)
	require.NoError(t, err)
	_, err = w.SpawnVessel(orbitingMessage(far, math.Pi), false)
	require.NoError(t, err)

	assert.True(t, w.IsLocallyControlled(near))
	assert.False(t, w.IsLocallyControlled(far))
	entry, _ := w.vesselEntry(near)
	assert.True(t, entry.HasComponent(tags.Controlled))

	w.Update()
	nearVessel, _ := w.FindVessel(near)
	farVessel, _ := w.FindVessel(far)
	assert.True(t, nearVessel.Loaded())
	assert.False(t, farVessel.Loaded())

	w.Spectate(far)
	w.Update()
	assert.True(t, w.IsSpectating(far))
	assert.False(t, nearVessel.Loaded())
	assert.True(t, farVessel.Loaded())

	w.Spectate(uuid.Nil)
	w.SetControlled(uuid.Nil)
	w.Update()
	assert.False(t, farVessel.Loaded())
	assert.Greater(t, config.Sim.LoadDistance, 0.0)
}

func TestInterpolationIntoWorldIsIdentityAtStart(t *testing.T) {
	clock := newTestClock()
	w, err := NewWorld(donburi.NewWorld(), clock, StockBodies())
	require.NoError(t, err)

	id := uuid.New()
	_, err = w.SpawnVessel(orbitingMessage(id, 0), false)
	require.NoError(t, err)
	w.Spectate(id)
	w.Update()

	entry, _ := w.vesselEntry(id)
	before := *components.Vessel.Get(entry)
	require.True(t, before.Loaded)

	settings := config.InterpolationConfig{
		Enabled:                          true,
		OffsetSeconds:                    1,
		SecondaryVesselUpdatesMsInterval: 500,
		MinRecommendedMessageCount:       3,
	}
	registry := netinterp.NewRegistry(clock, w, &settings)
	next := orbitingMessage(id, 0.01)
	next.GameTime = startUT - 1
	registry.EnqueueMessage(next)

	registry.Advance(0.02)
	require.Zero(t, registry.Stats().BlendFailures.Load())
	require.EqualValues(t, 1, registry.Stats().Promotions.Load())

	after := components.Vessel.Get(entry)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, before.Position[i], after.Position[i], 1e-3)
	}
	assert.InDelta(t, before.Altitude, after.Altitude, 1e-3)
	assert.Equal(t, before.SurfaceVelocity, after.SurfaceVelocity)
	assert.True(t, after.SrfRelRotation.OrientationEqualThreshold(before.SrfRelRotation, 1e-9))
	assert.Equal(t, 0.01, components.Proto.Get(entry).OrbitSnapshot[5])
	assert.InDelta(t, 101.325, after.StaticPressure, 1e-9)
}

func TestSpectateNextCycles(t *testing.T) {
	w := newTestWorld(t)
	assert.Equal(t, uuid.Nil, w.SpectateNext())

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		_, err := w.SpawnVessel(orbitingMessage(id, float64(i)), false)
		require.NoError(t, err)
	}

	seen := map[uuid.UUID]bool{}
	first := w.SpectateNext()
	seen[first] = true
	seen[w.SpectateNext()] = true
	seen[w.SpectateNext()] = true
	assert.Len(t, seen, 3)
	assert.Equal(t, first, w.SpectateNext())
	assert.True(t, w.IsSpectating(first))
}

func TestRecordTrailsKeepsNewest(t *testing.T) {
	w := newTestWorld(t)
	id := uuid.New()
	_, err := w.SpawnVessel(orbitingMessage(id, 0), false)
	require.NoError(t, err)
	entry, _ := w.vesselEntry(id)

	for i := 0; i < 5; i++ {
		components.Vessel.Get(entry).Position = mgl64.Vec3{float64(i), 0, 0}
		w.RecordTrails(3)
	}

	points := components.Trail.Get(entry).Points
	require.Len(t, points, 3)
	assert.Equal(t, 2.0, points[0].X())
	assert.Equal(t, 4.0, points[2].X())
}

func TestFocusAndBodyPosition(t *testing.T) {
	w := newTestWorld(t)

	_, ok := w.Focus()
	assert.False(t, ok)

	sun, ok := w.BodyPosition(Kerbol)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, sun)

	kerbin, ok := w.BodyPosition(Kerbin)
	require.True(t, ok)
	assert.Greater(t, kerbin.Len(), 1e9)

	id := uuid.New()
	_, err := w.SpawnVessel(orbitingMessage(id, 0), false)
	require.NoError(t, err)
	w.SetControlled(id)
	focus, ok := w.Focus()
	require.True(t, ok)
	assert.InDelta(t, 700000, focus.Sub(kerbin).Len(), 1e-3)
}
