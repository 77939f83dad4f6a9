package netinterp

import "go.uber.org/atomic"

// Stats counts notable engine events. Fields may be read from any goroutine.
type Stats struct {
	Promotions       atomic.Uint64
	Underruns        atomic.Uint64
	FastSkips        atomic.Uint64
	BodyLookupMisses atomic.Uint64
	BlendFailures    atomic.Uint64
	SkippedBlends    atomic.Uint64 // Ticks skipped because a body was unresolved
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Promotions       uint64
	Underruns        uint64
	FastSkips        uint64
	BodyLookupMisses uint64
	BlendFailures    uint64
	SkippedBlends    uint64
}

// Load copies every counter.
func (s *Stats) Load() StatsSnapshot {
	return StatsSnapshot{
		Promotions:       s.Promotions.Load(),
		Underruns:        s.Underruns.Load(),
		FastSkips:        s.FastSkips.Load(),
		BodyLookupMisses: s.BodyLookupMisses.Load(),
		BlendFailures:    s.BlendFailures.Load(),
		SkippedBlends:    s.SkippedBlends.Load(),
	}
}
