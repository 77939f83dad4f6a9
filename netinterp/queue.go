package netinterp

import (
	"sync"

	"github.com/automoto/orbitsync/assert"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/google/uuid"
)

// Queue buffers the snapshots of one vessel in arrival order. Any goroutine
// may enqueue; only the tick goroutine dequeues and recycles.
type Queue struct {
	vesselID uuid.UUID

	mu    sync.Mutex
	items []*Snapshot
	pool  []*Snapshot
}

// NewQueue returns an empty queue for vesselID.
func NewQueue(vesselID uuid.UUID) *Queue {
	return &Queue{vesselID: vesselID}
}

// Get returns a snapshot from the pool, or a new one when the pool is empty.
func (q *Queue) Get() *Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.pool)
	if n == 0 {
		return &Snapshot{VesselID: q.vesselID}
	}
	s := q.pool[n-1]
	q.pool[n-1] = nil
	q.pool = q.pool[:n-1]
	return s
}

// Enqueue appends s to the tail.
func (q *Queue) Enqueue(s *Snapshot) {
	assert.IsTrue(s != nil, "enqueue of nil snapshot for vessel %s", q.vesselID)

	q.mu.Lock()
	q.items = append(q.items, s)
	q.mu.Unlock()
}

// EnqueueMessage fills a pooled snapshot from msg and appends it.
func (q *Queue) EnqueueMessage(msg messages.VesselPosition) {
	s := q.Get()
	s.fill(msg)
	q.Enqueue(s)
}

// TryDequeue pops the head, reporting false when the queue is empty.
func (q *Queue) TryDequeue() (*Snapshot, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	s := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return s, true
}

// Len returns the number of buffered snapshots.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Recycle hands a consumed snapshot back to the pool.
func (q *Queue) Recycle(s *Snapshot) {
	assert.IsTrue(s != nil, "recycle of nil snapshot for vessel %s", q.vesselID)
	assert.IsTrue(s.VesselID == q.vesselID, "recycle of snapshot for vessel %s into queue of %s", s.VesselID, q.vesselID)

	q.mu.Lock()
	q.pool = append(q.pool, s)
	q.mu.Unlock()
}

// Clear drops every buffered snapshot into the pool.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pool = append(q.pool, q.items...)
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = q.items[:0]
}
