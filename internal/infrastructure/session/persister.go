// Package session persists the auth snapshot so a restarted console can
// rehydrate its session. Backends implement ports.SessionStorage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

// Persisted keys, before prefixing.
const (
	KeySnapshot  = "ngrx_auth"
	KeyUserToken = "userToken"
	KeyClinicID  = "clinicId"
)

type snapshot struct {
	Auth domain.AuthState `json:"auth"`
}

// Persister writes and reads the auth slice through a SessionStorage.
type Persister struct {
	storage ports.SessionStorage
	prefix  string
	log     zerolog.Logger
}

// NewPersister returns a Persister whose keys are "<prefix>:<key>", or bare
// keys when prefix is empty.
func NewPersister(storage ports.SessionStorage, prefix string, log zerolog.Logger) *Persister {
	return &Persister{storage: storage, prefix: prefix, log: log}
}

func (p *Persister) key(k string) string {
	if p.prefix == "" {
		return k
	}
	return p.prefix + ":" + k
}

// Keys returns the three prefixed keys.
func (p *Persister) Keys() []string {
	return []string{p.key(KeySnapshot), p.key(KeyUserToken), p.key(KeyClinicID)}
}

// Sync mirrors state into storage. The initial state clears every key.
func (p *Persister) Sync(ctx context.Context, state domain.AuthState) error {
	if state.Equal(domain.InitialAuthState()) {
		return p.Clear(ctx)
	}

	b, err := json.Marshal(snapshot{Auth: state})
	if err != nil {
		return fmt.Errorf("encode auth snapshot: %w", err)
	}
	if err := p.storage.Set(ctx, p.key(KeySnapshot), string(b)); err != nil {
		return fmt.Errorf("persist auth snapshot: %w", err)
	}

	if state.UserToken != nil {
		err = p.storage.Set(ctx, p.key(KeyUserToken), *state.UserToken)
	} else {
		err = p.storage.Delete(ctx, p.key(KeyUserToken))
	}
	if err != nil {
		return fmt.Errorf("persist user token: %w", err)
	}

	if state.ClinicID != nil {
		err = p.storage.Set(ctx, p.key(KeyClinicID), strconv.Itoa(*state.ClinicID))
	} else {
		err = p.storage.Delete(ctx, p.key(KeyClinicID))
	}
	if err != nil {
		return fmt.Errorf("persist clinic id: %w", err)
	}
	return nil
}

// Clear removes all persisted keys. Clearing empty storage is not an error.
func (p *Persister) Clear(ctx context.Context) error {
	if err := p.storage.Delete(ctx, p.Keys()...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. It returns domain.ErrNoSession when none
// exists or the stored value cannot be decoded.
func (p *Persister) Load(ctx context.Context) (domain.AuthState, error) {
	raw, ok, err := p.storage.Get(ctx, p.key(KeySnapshot))
	if err != nil {
		return domain.AuthState{}, fmt.Errorf("load auth snapshot: %w", err)
	}
	if !ok || raw == "" {
		return domain.AuthState{}, domain.ErrNoSession
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		p.log.Warn().Err(err).Msg("discarding unreadable auth snapshot")
		return domain.AuthState{}, errors.Join(domain.ErrNoSession, err)
	}
	return snap.Auth, nil
}
