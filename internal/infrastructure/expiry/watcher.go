// Package expiry logs the session out once its bearer token has expired.
package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
)

const DefaultSchedule = "@every 1m"

// Watcher sweeps the session on a cron schedule.
type Watcher struct {
	cron    *cron.Cron
	session *store.Store[domain.AuthState]
	now     func() time.Time
	log     zerolog.Logger
}

func New(session *store.Store[domain.AuthState], schedule string, log zerolog.Logger) (*Watcher, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	w := &Watcher{
		cron:    cron.New(),
		session: session,
		now:     time.Now,
		log:     log,
	}
	if _, err := w.cron.AddFunc(schedule, w.Sweep); err != nil {
		return nil, fmt.Errorf("expiry schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start runs the schedule until ctx is done.
func (w *Watcher) Start(ctx context.Context) {
	w.cron.Start()
	go func() {
		<-ctx.Done()
		<-w.cron.Stop().Done()
	}()
}

// Sweep dispatches Logout when the stored token carries an exp in the past.
// Tokens that cannot be decoded are left to the backend's 401.
func (w *Watcher) Sweep() {
	token := store.Select(w.session, auth.SelectToken)
	if token == "" {
		return
	}
	claims, err := service.DecodeClaims(token)
	if err != nil {
		w.log.Warn().Err(err).Msg("cannot read session token expiry")
		return
	}
	if !claims.Expired(w.now()) {
		return
	}
	w.log.Info().Time("expired_at", *claims.ExpiresAt).Msg("session expired, logging out")
	w.session.Dispatch(auth.Logout{})
}
