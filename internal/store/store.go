// Package store implements a unidirectional state container: actions are
// reduced into a new state under a single lock, and registered effects react
// to actions asynchronously on a sharded worker pool.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/api/metrics"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
)

// Action is a typed message. Type strings are unique across the process.
type Action interface {
	Type() string
}

// Reducer computes the next state. It must be pure.
type Reducer[S any] func(state S, action Action) S

// Effect performs side effects for an action and returns follow-up actions.
// A returned error is logged and counted; it never reaches the state.
type Effect func(ctx context.Context, action Action) ([]Action, error)

// Runner executes effect jobs.
type Runner interface {
	Enqueue(job queue.Job)
	Settle(ctx context.Context) error
}

type namedEffect struct {
	name string
	fn   Effect
}

// Store owns one state slice.
type Store[S any] struct {
	mu        sync.Mutex
	state     S
	reducer   Reducer[S]
	effects   map[string][]namedEffect
	listeners []func(prev, next S)
	subs      map[*subscription[S]]struct{}
	runner    Runner
	log       zerolog.Logger
}

// New returns a store holding initial.
func New[S any](initial S, reducer Reducer[S], runner Runner, log zerolog.Logger) *Store[S] {
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		effects: make(map[string][]namedEffect),
		subs:    make(map[*subscription[S]]struct{}),
		runner:  runner,
		log:     log,
	}
}

// On registers an effect for an action type. Effects registered for the same
// type run in registration order.
func (s *Store[S]) On(actionType, name string, fn Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects[actionType] = append(s.effects[actionType], namedEffect{name: name, fn: fn})
}

// OnChange registers a listener called after every reduction, inside the
// store lock. Listeners must not dispatch.
func (s *Store[S]) OnChange(fn func(prev, next S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Dispatch reduces the action, notifies listeners and subscribers, then
// schedules the effects registered for its type.
func (s *Store[S]) Dispatch(action Action) {
	typ := action.Type()

	s.mu.Lock()
	prev := s.state
	next := s.reducer(prev, action)
	s.state = next
	for _, l := range s.listeners {
		l(prev, next)
	}
	for sub := range s.subs {
		sub.offer(next)
	}
	effects := s.effects[typ]
	s.mu.Unlock()

	metrics.StoreActionsTotal.WithLabelValues(typ).Inc()
	s.log.Debug().Str("action", typ).Msg("action dispatched")

	for _, e := range effects {
		e := e
		s.runner.Enqueue(queue.Job{
			Key:  typ,
			Name: e.name,
			Run: func(ctx context.Context) error {
				out, err := e.fn(ctx, action)
				for _, a := range out {
					s.Dispatch(a)
				}
				return err
			},
		})
	}
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settle waits until every scheduled effect, including those triggered by
// follow-up actions, has finished.
func (s *Store[S]) Settle(ctx context.Context) error {
	return s.runner.Settle(ctx)
}

// Subscribe returns a channel that receives the current state immediately
// and the latest state after each dispatch. Intermediate states may be
// skipped by slow readers. The channel is closed once ctx is done.
func (s *Store[S]) Subscribe(ctx context.Context) <-chan S {
	sub := &subscription[S]{ch: make(chan S, 1)}

	s.mu.Lock()
	sub.ch <- s.state
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, sub)
		close(sub.ch)
		s.mu.Unlock()
	}()
	return sub.ch
}

// Select projects the current state synchronously.
func Select[S, T any](s *Store[S], fn func(S) T) T {
	return fn(s.State())
}

type subscription[S any] struct {
	ch chan S
}

// offer replaces any unread value with v. Called with the store lock held,
// so the drain-then-send never blocks.
func (sub *subscription[S]) offer(v S) {
	select {
	case sub.ch <- v:
	default:
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- v
	}
}
