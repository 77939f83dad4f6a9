package orbit

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointMass float64

func (p pointMass) GravParameter() float64 { return float64(p) }

const kerbinMu = pointMass(3.5316e12)

func assertVecNear(t *testing.T, want, got mgl64.Vec3, rel float64) {
	t.Helper()
	tol := rel * math.Max(1, want.Len())
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol, "component %d: want %v got %v", i, want, got)
	}
}

func TestCircularEquatorial(t *testing.T) {
	o := New(0, 0, 700_000, 0, 0, 0, 0, kerbinMu)
	speed := math.Sqrt(kerbinMu.GravParameter() / 700_000)

	for _, ut := range []float64{0, 100, 1234.5, o.Period() / 2} {
		pos, vel := o.StateVectorsAt(ut)
		assert.InDelta(t, 700_000, pos.Len(), 1e-3)
		assert.InDelta(t, speed, vel.Len(), 1e-6)
		assert.InDelta(t, 0, pos.Z(), 1e-6)
		assert.InDelta(t, 0, pos.Dot(vel), 1e-3)
	}

	pos := o.RelativePositionAt(0)
	assertVecNear(t, mgl64.Vec3{700_000, 0, 0}, pos, 1e-12)
}

func TestStateVectorRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		orb  Orbit
	}{
		{name: "inclined elliptic", orb: New(28.5, 0.1, 700_000, 40, 60, 1.0, 100, kerbinMu)},
		{name: "polar", orb: New(90, 0.02, 900_000, 300, 10, 4.0, -50, kerbinMu)},
		{name: "retrograde equatorial", orb: New(180, 0.05, 800_000, 0, 45, 2.0, 0, kerbinMu)},
		{name: "prograde equatorial", orb: New(0, 0.3, 1_500_000, 0, 200, 5.5, 10, kerbinMu)},
		{name: "hyperbolic", orb: New(12, 1.5, -1_000_000, 70, 30, 0.4, 0, kerbinMu)},
		{name: "circular inclined", orb: New(45, 0, 750_000, 120, 0, 0.3, 0, kerbinMu)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ut := tc.orb.Epoch + 250
			pos, vel := tc.orb.StateVectorsAt(ut)

			var rebuilt Orbit
			rebuilt.UpdateFromStateVectors(pos, vel, kerbinMu, ut)
			require.True(t, rebuilt.Valid())
			assert.Equal(t, ut, rebuilt.Epoch)
			assert.InDelta(t, tc.orb.Eccentricity, rebuilt.Eccentricity, 1e-8)
			assert.InDelta(t, tc.orb.SemiMajorAxis, rebuilt.SemiMajorAxis, math.Abs(tc.orb.SemiMajorAxis)*1e-9)
			assert.InDelta(t, tc.orb.Inclination, rebuilt.Inclination, 1e-5)

			p2, v2 := rebuilt.StateVectorsAt(ut)
			assertVecNear(t, pos, p2, 1e-7)
			assertVecNear(t, vel, v2, 1e-7)

			later := ut + 600
			p3, v3 := tc.orb.StateVectorsAt(later)
			p4, v4 := rebuilt.StateVectorsAt(later)
			assertVecNear(t, p3, p4, 1e-6)
			assertVecNear(t, v3, v4, 1e-6)
		})
	}
}

func TestElementsPacking(t *testing.T) {
	el := [8]float64{10, 0.2, 800_000, 30, 40, 1.5, 77, 1}
	o := FromElements(el, kerbinMu)
	assert.Equal(t, el, o.Elements(1))
	assert.Equal(t, kerbinMu, o.ReferenceBody)
}

func TestInvalidOrbit(t *testing.T) {
	var o Orbit
	assert.False(t, o.Valid())
	pos, vel := o.StateVectorsAt(10)
	assert.Equal(t, mgl64.Vec3{}, pos)
	assert.Equal(t, mgl64.Vec3{}, vel)

	o.UpdateFromStateVectors(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, kerbinMu, 5)
	assert.False(t, o.Valid())
}

func TestPeriod(t *testing.T) {
	o := New(0, 0.1, 700_000, 0, 0, 0, 0, kerbinMu)
	p := o.Period()
	assert.InDelta(t, 2*math.Pi*math.Sqrt(math.Pow(700_000, 3)/kerbinMu.GravParameter()), p, 1e-6)

	pos0 := o.RelativePositionAt(0)
	assertVecNear(t, pos0, o.RelativePositionAt(p), 1e-9)

	assert.True(t, math.IsInf(New(0, 1.2, -1e6, 0, 0, 0, 0, kerbinMu).Period(), 1))
}

func TestWrap(t *testing.T) {
	assert.InDelta(t, math.Pi, wrapPi(math.Pi), 1e-15)
	assert.InDelta(t, -math.Pi/2, wrapPi(3*math.Pi/2), 1e-15)
	assert.InDelta(t, 0, wrapTwoPi(2*math.Pi), 1e-15)
	assert.InDelta(t, 3*math.Pi/2, wrapTwoPi(-math.Pi/2), 1e-15)
}
