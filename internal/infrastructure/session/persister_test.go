package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

func TestPersister_SyncAndLoad(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	p := NewPersister(m, "clinic", zerolog.Nop())

	state := domain.AuthState{UserID: domain.Ptr(7), UserToken: domain.Ptr("t1"), ClinicID: domain.Ptr(3), Specialty: domain.Ptr("General")}
	if err := p.Sync(ctx, state); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if v, _, _ := m.Get(ctx, "clinic:userToken"); v != "t1" {
		t.Fatalf("token key not written: %q", v)
	}
	if v, _, _ := m.Get(ctx, "clinic:clinicId"); v != "3" {
		t.Fatalf("clinic key not written: %q", v)
	}

	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(state) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	state.ClinicID = nil
	_ = p.Sync(ctx, state)
	if _, ok, _ := m.Get(ctx, "clinic:clinicId"); ok {
		t.Fatalf("clinic key should be removed when clinic is nil")
	}
}

func TestPersister_InitialStateClears(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	p := NewPersister(m, "clinic", zerolog.Nop())

	_ = p.Sync(ctx, domain.AuthState{UserID: domain.Ptr(1), UserToken: domain.Ptr("t")})
	if m.Len() != 2 {
		t.Fatalf("expected snapshot and token keys, got %d", m.Len())
	}
	if err := p.Sync(ctx, domain.InitialAuthState()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("initial state should clear storage, %d keys left", m.Len())
	}
	if _, err := p.Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestPersister_UnreadableSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	_ = m.Set(ctx, "ngrx_auth", "{not json")

	p := NewPersister(m, "", zerolog.Nop())
	if _, err := p.Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if keys := p.Keys(); keys[0] != "ngrx_auth" {
		t.Fatalf("unprefixed keys expected, got %v", keys)
	}
}
