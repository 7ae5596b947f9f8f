package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
)

type add struct{ n int }

func (add) Type() string { return "[Test] Add" }

type double struct{}

func (double) Type() string { return "[Test] Double" }

func counter(state int, action Action) int {
	switch a := action.(type) {
	case add:
		return state + a.n
	case double:
		return state * 2
	}
	return state
}

func newCounterStore(t *testing.T) *Store[int] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	d := queue.NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)
	return New(0, counter, d, zerolog.Nop())
}

func settle(t *testing.T, s *Store[int]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Settle(ctx); err != nil {
		t.Fatalf("settle: %v", err)
	}
}

func TestStore_DispatchReduces(t *testing.T) {
	s := newCounterStore(t)
	s.Dispatch(add{n: 2})
	s.Dispatch(add{n: 3})
	if got := s.State(); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := Select(s, func(n int) bool { return n > 4 }); !got {
		t.Fatalf("expected selector to see 5")
	}
}

func TestStore_EffectDispatchesFollowUp(t *testing.T) {
	s := newCounterStore(t)
	s.On("[Test] Add", "test.double", func(_ context.Context, a Action) ([]Action, error) {
		if a.(add).n == 1 {
			return []Action{double{}}, nil
		}
		return nil, nil
	})

	s.Dispatch(add{n: 1})
	settle(t, s)

	if got := s.State(); got != 2 {
		t.Fatalf("expected 2 after follow-up, got %d", got)
	}
}

func TestStore_EffectErrorLeavesStateAlone(t *testing.T) {
	s := newCounterStore(t)
	s.On("[Test] Add", "test.fail", func(context.Context, Action) ([]Action, error) {
		return nil, errors.New("boom")
	})

	s.Dispatch(add{n: 4})
	settle(t, s)

	if got := s.State(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestStore_EffectsForOneTypeRunInOrder(t *testing.T) {
	s := newCounterStore(t)
	var seen []int
	s.On("[Test] Add", "test.record", func(_ context.Context, a Action) ([]Action, error) {
		seen = append(seen, a.(add).n)
		return nil, nil
	})

	for i := 1; i <= 20; i++ {
		s.Dispatch(add{n: i})
	}
	settle(t, s)

	if len(seen) != 20 {
		t.Fatalf("expected 20 effect runs, got %d", len(seen))
	}
	for i, n := range seen {
		if n != i+1 {
			t.Fatalf("effect order broken at %d: %v", i, seen)
		}
	}
}

func TestStore_OnChangeSeesEveryTransition(t *testing.T) {
	s := newCounterStore(t)
	var pairs [][2]int
	s.OnChange(func(prev, next int) { pairs = append(pairs, [2]int{prev, next}) })

	s.Dispatch(add{n: 1})
	s.Dispatch(double{})

	if len(pairs) != 2 || pairs[0] != [2]int{0, 1} || pairs[1] != [2]int{1, 2} {
		t.Fatalf("unexpected transitions: %v", pairs)
	}
}

func TestStore_SubscribeEmitsCurrentThenLatest(t *testing.T) {
	s := newCounterStore(t)
	s.Dispatch(add{n: 7})

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)

	if got := <-ch; got != 7 {
		t.Fatalf("expected initial 7, got %d", got)
	}

	s.Dispatch(add{n: 1})
	s.Dispatch(add{n: 1})
	if got := <-ch; got != 9 {
		t.Fatalf("expected latest 9, got %d", got)
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// A value raced the cancellation; the next receive must observe close.
			if _, ok = <-ch; ok {
				t.Fatalf("channel not closed after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}
