/*
DESCRIPTION
  framestore_test.go provides testing of frame store capacity, eviction
  and retrieval ordering.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package framestore

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
)

func testLog() logging.Logger {
	return logging.New(logging.Debug, &bytes.Buffer{}, true)
}

func TestCapacityInvariant(t *testing.T) {
	const capacity = 5
	s := NewStore(capacity, testLog())

	base := time.Now()
	for i := 0; i < 50; i++ {
		s.Add(Frame{Handle: i, Timestamp: base.Add(time.Duration(i) * time.Millisecond), Priority: Priority(i % 3)})
		if s.Size() > capacity {
			t.Fatalf("store size %d exceeds capacity %d after %d adds", s.Size(), capacity, i+1)
		}
	}
}

func TestEvictionOrder(t *testing.T) {
	// 6 frames into a store of 5, with the 3rd at low priority; the low
	// priority frame must be the one evicted and never served.
	s := NewStore(5, testLog())
	base := time.Now()
	for i := 0; i < 6; i++ {
		p := PriorityNormal
		if i == 2 {
			p = PriorityLow
		}
		s.Add(Frame{Handle: i, Timestamp: base.Add(time.Duration(i) * time.Millisecond), Priority: p})
	}

	for {
		f, ok := s.TakeNext()
		if !ok {
			break
		}
		if f.Handle.(int) == 2 {
			t.Error("low priority frame was served but should have been evicted")
		}
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	s := NewStore(2, testLog())
	base := time.Now()
	if s.Add(Frame{Handle: "a", Timestamp: base, Priority: PriorityNormal}) {
		t.Error("add below capacity reported an eviction")
	}
	if s.Add(Frame{Handle: "b", Timestamp: base.Add(time.Millisecond), Priority: PriorityNormal}) {
		t.Error("add below capacity reported an eviction")
	}
	if !s.Add(Frame{Handle: "c", Timestamp: base.Add(2 * time.Millisecond), Priority: PriorityNormal}) {
		t.Error("add beyond capacity did not report an eviction")
	}

	got := []string{}
	for {
		f, ok := s.TakeNext()
		if !ok {
			break
		}
		got = append(got, f.Handle.(string))
	}
	// "a" was oldest at equal priority and should have been evicted;
	// retrieval is most recent first.
	want := []string{"c", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestTakeNextPriorityOrder(t *testing.T) {
	s := NewStore(5, testLog())
	base := time.Now()
	s.Add(Frame{Handle: "low", Timestamp: base, Priority: PriorityLow})
	s.Add(Frame{Handle: "high", Timestamp: base.Add(time.Millisecond), Priority: PriorityHigh})
	s.Add(Frame{Handle: "normal", Timestamp: base.Add(2 * time.Millisecond), Priority: PriorityNormal})

	f, ok := s.TakeNext()
	if !ok || f.Handle.(string) != "high" {
		t.Fatalf("expected high priority frame first, got %v", f.Handle)
	}
	f, ok = s.TakeNext()
	if !ok || f.Handle.(string) != "normal" {
		t.Fatalf("expected normal priority frame second, got %v", f.Handle)
	}
}

func TestTakeNextEmpty(t *testing.T) {
	s := NewStore(5, testLog())
	if _, ok := s.TakeNext(); ok {
		t.Error("expected no frame from empty store")
	}
}

func TestReleaseOnEvictionAndClear(t *testing.T) {
	s := NewStore(2, testLog())
	base := time.Now()

	var mu sync.Mutex
	released := map[string]int{}
	rel := func(id string) func() {
		return func() {
			mu.Lock()
			released[id]++
			mu.Unlock()
		}
	}

	s.Add(Frame{Handle: "a", Timestamp: base, Priority: PriorityNormal, Release: rel("a")})
	s.Add(Frame{Handle: "b", Timestamp: base.Add(time.Millisecond), Priority: PriorityNormal, Release: rel("b")})
	s.Add(Frame{Handle: "c", Timestamp: base.Add(2 * time.Millisecond), Priority: PriorityNormal, Release: rel("c")})

	if released["a"] != 1 {
		t.Errorf("expected eviction to release frame a exactly once, got %d", released["a"])
	}

	s.Clear()
	if released["b"] != 1 || released["c"] != 1 {
		t.Errorf("expected clear to release remaining frames exactly once, got b=%d c=%d", released["b"], released["c"])
	}
	if s.Size() != 0 {
		t.Errorf("expected empty store after clear, got size %d", s.Size())
	}
}

func TestConcurrentAddTake(t *testing.T) {
	s := NewStore(5, testLog())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		base := time.Now()
		for i := 0; i < 1000; i++ {
			s.Add(Frame{Handle: i, Timestamp: base.Add(time.Duration(i)), Priority: Priority(i % 3)})
		}
		close(stop)
	}()

	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				s.TakeNext()
				select {
				case <-stop:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
	if s.Size() > s.Capacity() {
		t.Errorf("store size %d exceeds capacity %d under concurrency", s.Size(), s.Capacity())
	}
}
