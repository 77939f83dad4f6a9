package netinterp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixFactor(t *testing.T) {
	const dt = 0.02

	tests := []struct {
		name     string
		td       float64
		offset   float64
		expected float64
	}{
		{"on target", 1, 1, 0},
		{"under one frame", 1.019, 1, 0},
		{"one frame", 1.02, 1, dt},
		{"one and a half frames", 0.97, 1, dt},
		{"two and a half frames", 1.05, 1, 2 * dt},
		{"four frames behind", -1.08, 1, 2 * dt},
		{"proportional halved", 2, 1, 0.5},
		{"proportional full", 5, 1, 4},
		{"negative difference", -5, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FixFactor(tt.td, tt.offset, dt), 1e-9)
		})
	}
}

func TestFixFactorDeadZone(t *testing.T) {
	for _, td := range []float64{0.991, 0.999, 1, 1.001, 1.0099, -1.005} {
		assert.Zero(t, FixFactor(td, 1, 0.01), "td=%v", td)
	}
}

func TestFixFactorDeterministic(t *testing.T) {
	first := FixFactor(3.3, 1, 1.0/60)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, FixFactor(3.3, 1, 1.0/60))
	}
}

func TestFixFactorZeroDelta(t *testing.T) {
	assert.Zero(t, FixFactor(10, 1, 0))
}

func newTimingSession(t *testing.T, clock *fakeClock, queued int) (*Session, *Registry) {
	t.Helper()
	adapter := newFakeAdapter()
	id := uuid.New()
	adapter.addVessel(id)

	r := NewRegistry(clock, adapter, testSettings())
	q := r.Queue(id)
	s, ok := r.Session(id)
	require.True(t, ok)

	s.slots[1] = *snapshotAt(id, 100, 0)
	s.hasTarget = true
	s.lerpPercentage = 0
	for i := 0; i < queued; i++ {
		q.Enqueue(snapshotAt(id, 100+float64(i), 0))
	}
	return s, r
}

func TestAdjustSteadyStateAhead(t *testing.T) {
	// 1.05s behind the sender with a 1s offset: 2.5 frames of error.
	clock := newFakeClock(101.05)
	s, _ := newTimingSession(t, clock, 0)

	s.timing.Adjust(s, 0.02)

	assert.InDelta(t, 1.05, s.TimeDifference, 1e-9)
	assert.InDelta(t, -0.04, s.ExtraInterpolationTime, 1e-9)
	assert.Zero(t, s.lerpPercentage)
}

func TestAdjustSteadyStateBehind(t *testing.T) {
	clock := newFakeClock(100.95)
	s, _ := newTimingSession(t, clock, 0)

	s.timing.Adjust(s, 0.02)

	assert.InDelta(t, 0.04, s.ExtraInterpolationTime, 1e-9)
}

func TestAdjustPastSubspace(t *testing.T) {
	// The sender's subspace runs 30s behind ours, which must not count as lag.
	clock := newFakeClock(131)
	clock.past[4] = -30
	s, _ := newTimingSession(t, clock, 0)
	s.Target().SubspaceID = 4

	s.timing.Adjust(s, 0.02)

	assert.InDelta(t, 1, s.TimeDifference, 1e-9)
	assert.Zero(t, s.ExtraInterpolationTime)
}

func TestAdjustWarpFastSkip(t *testing.T) {
	clock := newFakeClock(151)
	clock.warping = true
	s, r := newTimingSession(t, clock, 5)

	s.timing.Adjust(s, 0.02)

	assert.Equal(t, 1.0, s.lerpPercentage)
	assert.Equal(t, 0.02, s.ExtraInterpolationTime)
	assert.EqualValues(t, 1, r.Stats().FastSkips.Load())
}

func TestAdjustWarpShallowQueue(t *testing.T) {
	clock := newFakeClock(151)
	clock.warping = true
	s, r := newTimingSession(t, clock, 3)

	s.timing.Adjust(s, 0.02)

	assert.Zero(t, s.lerpPercentage)
	assert.Equal(t, 0.02, s.ExtraInterpolationTime)
	assert.Zero(t, r.Stats().FastSkips.Load())
}

func TestAdjustUnknownSubspace(t *testing.T) {
	clock := newFakeClock(90)
	s, _ := newTimingSession(t, clock, 5)
	s.Target().SubspaceID = UnknownSubspace

	s.timing.Adjust(s, 0.02)

	// Target is in the future, so it is interpolated towards.
	assert.Zero(t, s.lerpPercentage)
	assert.Equal(t, 0.02, s.ExtraInterpolationTime)
}
