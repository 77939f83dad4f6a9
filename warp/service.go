// Package warp tracks the server clock, the subspace table and the local
// player's time warp.
package warp

import (
	"fmt"
	"sync"
	"time"

	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

// Subspace is one entry of the subspace table.
type Subspace struct {
	ID                   int
	ServerTimeDifference float64
	Current              bool
}

// Service answers time questions for the local player. It is safe for
// concurrent use: network handlers write, the tick goroutine reads.
type Service struct {
	mu  sync.RWMutex
	now func() time.Time
	log *logrus.Entry

	serverTime float64
	syncedAt   time.Time

	subspaces     *orderedmap.OrderedMap[int, float64]
	current       int
	pendingOffset float64 // Used while current is unknown

	warping      bool
	warpRate     float64
	warpFromUT   float64
	warpFromWall time.Time

	players map[string]messages.WarpState
}

// NewService returns a service with an empty subspace table. now is the wall
// clock, time.Now when nil.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		now:       now,
		log:       logging.For("warp"),
		subspaces: orderedmap.NewOrderedMap[int, float64](),
		current:   messages.UnknownSubspace,
		syncedAt:  now(),
		players:   make(map[string]messages.WarpState),
	}
}

// SyncServerClock records the server's universal time as of now.
func (s *Service) SyncServerClock(serverTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverTime = serverTime
	s.syncedAt = s.now()
}

// ServerTime returns the server's universal time, advanced by the wall clock
// since the last sync.
func (s *Service) ServerTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverTimeLocked()
}

func (s *Service) serverTimeLocked() float64 {
	return s.serverTime + s.now().Sub(s.syncedAt).Seconds()
}

// SetSubspace adds or updates a subspace.
func (s *Service) SetSubspace(id int, serverTimeDifference float64) {
	if id == messages.UnknownSubspace {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subspaces.Set(id, serverTimeDifference)
}

// RemoveSubspace drops a subspace from the table.
func (s *Service) RemoveSubspace(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subspaces.Delete(id)
}

// SetCurrentSubspace moves the local player into id.
func (s *Service) SetCurrentSubspace(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subspaces.Get(id); !ok && id != messages.UnknownSubspace {
		s.log.WithField("subspace", id).Warn("moved into a subspace missing from the table")
	}
	s.current = id
}

// CurrentSubspace returns the local subspace, UnknownSubspace while warping.
func (s *Service) CurrentSubspace() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentlyWarping reports whether the local player is warping.
func (s *Service) CurrentlyWarping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warping
}

// UniversalTime returns the local player's universal time.
func (s *Service) UniversalTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.universalTimeLocked()
}

func (s *Service) universalTimeLocked() float64 {
	if s.warping {
		return s.warpFromUT + s.warpRate*s.now().Sub(s.warpFromWall).Seconds()
	}
	return s.serverTimeLocked() + s.localOffsetLocked()
}

// localOffsetLocked returns how far ahead of the server clock the local
// player is.
func (s *Service) localOffsetLocked() float64 {
	if s.warping {
		return s.universalTimeLocked() - s.serverTimeLocked()
	}
	if diff, ok := s.subspaces.Get(s.current); ok {
		return diff
	}
	return s.pendingOffset
}

// StartWarp leaves the current subspace and runs the local clock rate times
// faster than real time.
func (s *Service) StartWarp(rate float64) error {
	if rate < 1 {
		return fmt.Errorf("warp rate %v is below 1", rate)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Rebased on every call so the clock stays continuous across rate changes.
	s.warpFromUT = s.universalTimeLocked()
	s.warpFromWall = s.now()
	s.warping = true
	s.warpRate = rate
	s.current = messages.UnknownSubspace
	return nil
}

// StopWarp freezes the local time offset and returns it. The player stays
// in the unknown subspace until the server assigns one for that offset.
func (s *Service) StopWarp() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.warping {
		return s.localOffsetLocked()
	}
	offset := s.localOffsetLocked()
	s.warping = false
	s.pendingOffset = offset
	return offset
}

// SubspaceIsInThePast reports whether id runs behind the local subspace.
func (s *Service) SubspaceIsInThePast(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inThePastLocked(id)
}

func (s *Service) inThePastLocked(id int) bool {
	if id == s.current || id == messages.UnknownSubspace {
		return false
	}
	diff, ok := s.subspaces.Get(id)
	if !ok {
		return false
	}
	return diff < s.localOffsetLocked()
}

// SubspaceIsEqualOrInThePast reports whether id is the local subspace or runs
// behind it.
func (s *Service) SubspaceIsEqualOrInThePast(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return id == s.current || s.inThePastLocked(id)
}

// TimeDifferenceWithSubspace returns the local time minus the time of id,
// zero when id is unknown.
func (s *Service) TimeDifferenceWithSubspace(id int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	diff, ok := s.subspaces.Get(id)
	if !ok {
		return 0
	}
	return s.localOffsetLocked() - diff
}

// Subspaces lists the subspace table in insertion order.
func (s *Service) Subspaces() []Subspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Subspace, 0, s.subspaces.Len())
	for el := s.subspaces.Front(); el != nil; el = el.Next() {
		out = append(out, Subspace{
			ID:                   el.Key,
			ServerTimeDifference: el.Value,
			Current:              el.Key == s.current,
		})
	}
	return out
}

// SetPlayerWarp records whether a remote player is warping.
func (s *Service) SetPlayerWarp(msg messages.WarpState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.Warping {
		s.players[msg.PlayerName] = msg
		return
	}
	delete(s.players, msg.PlayerName)
}

// WarpingPlayers returns how many remote players are warping.
func (s *Service) WarpingPlayers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
