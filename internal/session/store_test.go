package session

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/hiveguard/honeytrap/internal/domain"
)

func TestUpdateCreatesLazily(t *testing.T) {
	st := NewStore()

	if _, ok := st.Snapshot("s1"); ok {
		t.Fatalf("unexpected session before first update")
	}

	snap := st.Update("s1", func(s *domain.Session) {
		s.MessageCount = 1
		s.History = append(s.History, json.RawMessage(`{"text":"hi"}`))
	})
	if snap.SessionID != "s1" || snap.MessageCount != 1 || len(snap.History) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", st.Len())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	st := NewStore()
	st.Update("s1", func(s *domain.Session) {
		s.History = append(s.History, json.RawMessage(`{"n":1}`))
	})

	snap, _ := st.Snapshot("s1")
	snap.History = append(snap.History, json.RawMessage(`{"n":2}`))
	snap.ScamDetected = true

	again, _ := st.Snapshot("s1")
	if len(again.History) != 1 || again.ScamDetected {
		t.Fatalf("snapshot mutation leaked into store: %+v", again)
	}
}

func TestScamDetectedLatchIsMonotonic(t *testing.T) {
	st := NewStore()

	st.Update("s1", func(s *domain.Session) { s.ScamDetected = true })

	// A later non-scam classification never clears the latch; the manager
	// only ever sets it.
	snap := st.Update("s1", func(s *domain.Session) {
		// no-op mirrors a non-scam classification
	})
	if !snap.ScamDetected {
		t.Fatalf("scamDetected latch lost")
	}
}

func TestTryBeginFinalizationOnce(t *testing.T) {
	st := NewStore()
	st.Update("s1", func(s *domain.Session) {})

	if !st.TryBeginFinalization("s1") {
		t.Fatalf("first TryBeginFinalization should win")
	}
	if st.TryBeginFinalization("s1") {
		t.Fatalf("second TryBeginFinalization should lose")
	}

	snap, _ := st.Snapshot("s1")
	if !snap.FinalizationTriggered {
		t.Fatalf("latch not visible in snapshot")
	}
}

func TestTryBeginFinalizationUnknownSession(t *testing.T) {
	st := NewStore()
	if st.TryBeginFinalization("ghost") {
		t.Fatalf("unknown session must not begin finalization")
	}
}

func TestTryBeginFinalizationConcurrent(t *testing.T) {
	st := NewStore()
	st.Update("s1", func(s *domain.Session) {})

	const n = 64
	var wg sync.WaitGroup
	wins := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if st.TryBeginFinalization("s1") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var count int
	for range wins {
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one winner, got %d", count)
	}
}

func TestConcurrentUpdatesDifferentSessions(t *testing.T) {
	st := NewStore()

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			st.Update(id, func(s *domain.Session) {
				s.MessageCount++
				s.History = append(s.History, json.RawMessage(`{}`))
			})
		}(i)
	}
	wg.Wait()

	if st.Len() == 0 || st.Len() > 26 {
		t.Fatalf("unexpected session count %d", st.Len())
	}
}
