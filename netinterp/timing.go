package netinterp

import (
	"math"

	"github.com/automoto/orbitsync/config"
)

// Timing retunes how long a session takes to reach its target so playback
// settles OffsetSeconds behind the sender.
type Timing struct {
	clock    Clock
	settings *config.InterpolationConfig
	stats    *Stats
}

// NewTiming returns a timing controller reading time from clock.
func NewTiming(clock Clock, settings *config.InterpolationConfig, stats *Stats) *Timing {
	return &Timing{clock: clock, settings: settings, stats: stats}
}

// Adjust recomputes the session's TimeDifference and ExtraInterpolationTime
// right after a new target was installed. dt is the frame time.
func (t *Timing) Adjust(s *Session, dt float64) {
	target := s.Target()
	if target == nil {
		return
	}
	offset := t.settings.OffsetSeconds
	s.TimeDifference = t.clock.UniversalTime() - target.GameTimeStamp

	if t.clock.CurrentlyWarping() || target.SubspaceID == UnknownSubspace {
		// Stale snapshots are dropped quickly while warping, unless the
		// queue is already shallow.
		if s.TimeDifference > offset && s.queue.Len() > t.settings.MinRecommendedMessageCount {
			s.lerpPercentage = 1
			t.stats.FastSkips.Inc()
		}
		s.ExtraInterpolationTime = dt
		return
	}

	if t.clock.SubspaceIsInThePast(target.SubspaceID) {
		s.TimeDifference -= math.Abs(t.clock.TimeDifferenceWithSubspace(target.SubspaceID))
	}

	sign := 1.0
	if s.TimeDifference > offset {
		sign = -1
	}
	s.ExtraInterpolationTime = sign * FixFactor(s.TimeDifference, offset, dt)
}

// FixFactor returns the magnitude of the correction applied to the next
// interpolation duration. Errors under one frame are not corrected; larger
// errors are corrected in steps quantized to the frame time.
func FixFactor(timeDifference, offset, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	errSeconds := math.Abs(math.Abs(timeDifference) - offset)
	errFrames := errSeconds / dt

	switch {
	case errFrames < 1:
		return 0
	case errFrames <= 2:
		return dt
	case errFrames <= 5:
		return dt * 2
	case errSeconds <= 2.5:
		return dt * errFrames / 2
	default:
		return dt * errFrames
	}
}
