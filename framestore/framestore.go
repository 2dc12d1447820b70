/*
DESCRIPTION
  framestore.go provides a bounded, thread-safe store of pending camera
  frames ordered by priority. The store holds frame handles only; pixel
  data remains owned by the capture source.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package framestore provides a small bounded container for frames awaiting
// analysis. Insertion beyond capacity evicts the lowest priority, oldest
// frame; retrieval serves the highest priority, most recent frame. This
// trades fairness for freshness, which is what a live preview wants.
package framestore

import (
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
)

// DefaultCapacity is used when a store is created with a non-positive
// capacity.
const DefaultCapacity = 5

// Priority classifies a frame for admission and storage. It is shared by
// the store and the admission layer; there is deliberately only one
// priority type in this module.
type Priority int

// Frame priorities, lowest first.
const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	}
	return "Unknown"
}

// Frame wraps an opaque handle to image data along with its capture
// timestamp and priority. The store never inspects or copies the data
// behind Handle.
//
// Release, if non-nil, is invoked exactly once when the store discards
// the frame, i.e. on eviction or Clear. It is not invoked on TakeNext;
// once a consumer has taken a frame, release becomes its responsibility.
type Frame struct {
	Handle    interface{}
	Timestamp time.Time
	Priority  Priority
	Release   func()
}

// Store is a bounded priority frame container safe for concurrent use by
// a capture routine and analyzer workers. All methods complete in the
// time needed to mutate the internal list under a single mutex.
type Store struct {
	mu       sync.Mutex
	entries  []Frame
	capacity int
	log      logging.Logger
}

// NewStore returns a store bounded at the given capacity. A non-positive
// capacity falls back to DefaultCapacity; validation of configured
// capacities happens at the config layer.
func NewStore(capacity int, l logging.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make([]Frame, 0, capacity),
		capacity: capacity,
		log:      l,
	}
}

// Add inserts a frame. If the insert would exceed capacity, the lowest
// priority entry is evicted first, ties broken by oldest capture
// timestamp, and its Release hook is invoked. The return reports
// whether an eviction occurred, so a caller tracking admitted frames
// can reconcile its accounting.
func (s *Store) Add(f Frame) bool {
	s.mu.Lock()
	s.entries = append(s.entries, f)
	var evicted *Frame
	if len(s.entries) > s.capacity {
		i := s.evictIndex()
		e := s.entries[i]
		evicted = &e
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	s.mu.Unlock()

	if evicted == nil {
		return false
	}
	s.log.Debug("evicted frame from store", "priority", evicted.Priority.String())
	if evicted.Release != nil {
		evicted.Release()
	}
	return true
}

// TakeNext removes and returns the highest priority, most recent frame.
// The second return is false when the store is empty. The caller owns
// release of the returned frame.
func (s *Store) TakeNext() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Frame{}, false
	}

	best := 0
	for i := 1; i < len(s.entries); i++ {
		if better(s.entries[i], s.entries[best]) {
			best = i
		}
	}
	f := s.entries[best]
	s.entries = append(s.entries[:best], s.entries[best+1:]...)
	return f, true
}

// Size returns the number of pending frames.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Capacity returns the configured bound.
func (s *Store) Capacity() int { return s.capacity }

// Clear discards all pending frames, invoking each frame's Release hook.
func (s *Store) Clear() {
	s.mu.Lock()
	dropped := s.entries
	s.entries = make([]Frame, 0, s.capacity)
	s.mu.Unlock()

	for _, f := range dropped {
		if f.Release != nil {
			f.Release()
		}
	}
	if len(dropped) != 0 {
		s.log.Debug("cleared frame store", "frames", len(dropped))
	}
}

// evictIndex returns the index of the lowest priority, oldest entry.
// Must be called with s.mu held.
func (s *Store) evictIndex() int {
	worst := 0
	for i := 1; i < len(s.entries); i++ {
		w, c := s.entries[worst], s.entries[i]
		if c.Priority < w.Priority || (c.Priority == w.Priority && c.Timestamp.Before(w.Timestamp)) {
			worst = i
		}
	}
	return worst
}

// better reports whether a should be served before b, i.e. a has higher
// priority, or equal priority and a more recent capture timestamp.
func better(a, b Frame) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Timestamp.After(b.Timestamp)
}
