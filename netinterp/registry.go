package netinterp

import (
	"sort"
	"sync"

	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Registry owns the snapshot queues and interpolation sessions of every
// remote vessel. Enqueue may be called from any goroutine; every other
// method belongs to the tick goroutine.
type Registry struct {
	adapter  Adapter
	settings *config.InterpolationConfig
	timing   *Timing
	blender  *Blender
	stats    Stats
	log      *logrus.Entry

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// SessionInfo is a read-only view of a session for diagnostics.
type SessionInfo struct {
	VesselID               uuid.UUID
	State                  SessionState
	QueueLen               int
	LerpPercentage         float64
	TimeDifference         float64
	ExtraInterpolationTime float64
	InterpolationDuration  float64
	SubspaceID             int
}

// NewRegistry returns an empty registry. settings is read on every tick so
// changes apply immediately.
func NewRegistry(clock Clock, adapter Adapter, settings *config.InterpolationConfig) *Registry {
	r := &Registry{
		adapter:  adapter,
		settings: settings,
		blender:  NewBlender(settings),
		log:      logging.For("netinterp"),
		sessions: make(map[uuid.UUID]*Session),
	}
	r.timing = NewTiming(clock, settings, &r.stats)
	return r
}

// Stats returns the engine counters.
func (r *Registry) Stats() *Stats {
	return &r.stats
}

// Queue returns the queue of id, creating it and its session on first use.
func (r *Registry) Queue(id uuid.UUID) *Queue {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s.queue
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s.queue
	}
	s = newSession(id, NewQueue(id), r.adapter, r.settings, r.timing, r.blender, &r.stats, r.log)
	r.sessions[id] = s
	r.log.WithField("vessel", id.String()).Debug("tracking vessel")
	return s.queue
}

// Enqueue appends snap to the queue of its vessel.
func (r *Registry) Enqueue(id uuid.UUID, snap *Snapshot) {
	r.Queue(id).Enqueue(snap)
}

// EnqueueMessage appends a received position to the queue of its vessel.
func (r *Registry) EnqueueMessage(msg messages.VesselPosition) {
	r.Queue(msg.VesselID).EnqueueMessage(msg)
}

// Session returns the session of id.
func (r *Registry) Session(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len returns the number of tracked vessels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Advance runs one tick of every session.
func (r *Registry) Advance(dt float64) {
	for _, s := range r.ordered() {
		s.Advance(dt)
	}
}

// Remove stops tracking id and discards everything buffered for it.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return
	}
	s.detach()
	r.log.WithField("vessel", id.String()).Debug("stopped tracking vessel")
}

// Snapshot describes every session, ordered by vessel id.
func (r *Registry) Snapshot() []SessionInfo {
	sessions := r.ordered()
	infos := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		info := SessionInfo{
			VesselID:               s.vesselID,
			State:                  s.state,
			QueueLen:               s.queue.Len(),
			LerpPercentage:         s.LerpPercentage(),
			TimeDifference:         s.TimeDifference,
			ExtraInterpolationTime: s.ExtraInterpolationTime,
			SubspaceID:             UnknownSubspace,
		}
		if target := s.Target(); target != nil {
			info.InterpolationDuration = s.InterpolationDuration()
			info.SubspaceID = target.SubspaceID
		}
		infos = append(infos, info)
	}
	return infos
}

func (r *Registry) ordered() []*Session {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].vesselID.String() < sessions[j].vesselID.String()
	})
	return sessions
}
