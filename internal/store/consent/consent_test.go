package consent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
	"github.com/clinicdesk/clinic-console/internal/store"
)

type stubConsentService struct {
	listFn    func(ctx context.Context, patientID int) ([]domain.PatientConsent, error)
	requestFn func(ctx context.Context, req domain.ConsentRequest) (*domain.PatientConsent, error)
	approveFn func(ctx context.Context, a domain.ConsentApproval) (*domain.PatientConsent, error)
	rejectErr error
	revokeErr error
}

func (s *stubConsentService) ListByPatient(ctx context.Context, patientID int) ([]domain.PatientConsent, error) {
	return s.listFn(ctx, patientID)
}

func (s *stubConsentService) Request(ctx context.Context, req domain.ConsentRequest) (*domain.PatientConsent, error) {
	return s.requestFn(ctx, req)
}

func (s *stubConsentService) Approve(ctx context.Context, a domain.ConsentApproval) (*domain.PatientConsent, error) {
	return s.approveFn(ctx, a)
}

func (s *stubConsentService) Reject(context.Context, int) error { return s.rejectErr }
func (s *stubConsentService) Revoke(context.Context, int) error { return s.revokeErr }

func newStore(t *testing.T, svc *stubConsentService) *store.Store[State] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	d := queue.NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)
	s := store.New(InitialState(), Reduce, d, zerolog.Nop())
	NewEffects(svc, zerolog.Nop()).Register(s)
	return s
}

func settle(t *testing.T, s *store.Store[State]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Settle(ctx); err != nil {
		t.Fatalf("effects did not settle: %v", err)
	}
}

var sample = []domain.PatientConsent{
	{ID: 1, PatientDetailsID: 9},
	{ID: 2, PatientDetailsID: 9, IsApproved: true},
	{ID: 3, PatientDetailsID: 9, IsApproved: true, IsDeleted: true},
}

func TestReduce_LoadSuccessPartitions(t *testing.T) {
	got := Reduce(Reduce(InitialState(), Load{PatientID: 9}), LoadSuccess{Consents: sample})

	if len(got.Consents) != 3 || len(got.Pending) != 1 || len(got.Approved) != 1 || len(got.Revoked) != 1 {
		t.Fatalf("unexpected partition: %+v", got)
	}
	if got.Pending[0].ID != 1 || got.Approved[0].ID != 2 || got.Revoked[0].ID != 3 {
		t.Fatalf("wrong ids in partition: %+v", got)
	}
	if got.Loading {
		t.Fatalf("loading should be cleared")
	}
}

func TestReduce_ApproveMovesFromPending(t *testing.T) {
	s := Reduce(InitialState(), LoadSuccess{Consents: sample})
	s = Reduce(s, Select{Consent: sample[0]})
	s = Reduce(s, Approve{Approval: domain.ConsentApproval{ConsentID: 1, IsApproved: true}})
	if !s.Submitting {
		t.Fatalf("approve should mark submitting")
	}

	approved := sample[0]
	approved.IsApproved = true
	s = Reduce(s, ApproveSuccess{Consent: approved})

	if len(s.Pending) != 0 || len(s.Approved) != 2 {
		t.Fatalf("unexpected lists: pending=%v approved=%v", s.Pending, s.Approved)
	}
	if !s.Selected.IsApproved || s.Submitting {
		t.Fatalf("selected consent not refreshed: %+v", s)
	}
}

func TestReduce_RejectDropsConsent(t *testing.T) {
	s := Reduce(InitialState(), LoadSuccess{Consents: sample})
	s = Reduce(s, RejectSuccess{ConsentID: 1})
	if len(s.Consents) != 2 || len(s.Pending) != 0 {
		t.Fatalf("reject not applied: %+v", s)
	}
}

func TestReduce_RevokeMovesToRevoked(t *testing.T) {
	s := Reduce(InitialState(), LoadSuccess{Consents: sample})
	s = Reduce(s, Select{Consent: sample[1]})
	s = Reduce(s, RevokeSuccess{ConsentID: 2})

	if len(s.Approved) != 0 || len(s.Revoked) != 2 {
		t.Fatalf("unexpected lists: approved=%v revoked=%v", s.Approved, s.Revoked)
	}
	if !s.Consents[1].IsDeleted {
		t.Fatalf("consent should be marked deleted")
	}
	if s.Selected != nil {
		t.Fatalf("revoked consent should be deselected")
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(InitialState(), LoadSuccess{Consents: sample})
	_ = Reduce(s, RevokeSuccess{ConsentID: 2})
	if s.Consents[1].IsDeleted {
		t.Fatalf("previous state was mutated")
	}
}

func TestReduce_Reset(t *testing.T) {
	s := Reduce(InitialState(), LoadSuccess{Consents: sample})
	s = Reduce(s, Reset{})
	if len(s.Consents) != 0 || s.Selected != nil || s.Loading {
		t.Fatalf("reset did not restore initial state: %+v", s)
	}
}

func TestEffects_LoadAndRequest(t *testing.T) {
	svc := &stubConsentService{
		listFn: func(_ context.Context, patientID int) ([]domain.PatientConsent, error) {
			if patientID != 9 {
				t.Errorf("unexpected patient id %d", patientID)
			}
			return sample, nil
		},
		requestFn: func(_ context.Context, req domain.ConsentRequest) (*domain.PatientConsent, error) {
			return &domain.PatientConsent{ID: 4, PatientDetailsID: req.PatientDetailsID}, nil
		},
	}
	s := newStore(t, svc)

	s.Dispatch(Load{PatientID: 9})
	settle(t, s)
	s.Dispatch(Request{Request: domain.ConsentRequest{PatientDetailsID: 9}})
	settle(t, s)

	got := s.State()
	if len(got.Consents) != 4 || len(got.Pending) != 2 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.Submitting || got.SubmissionError != nil {
		t.Fatalf("submission should be finished: %+v", got)
	}
}

func TestEffects_FailuresRecorded(t *testing.T) {
	svc := &stubConsentService{
		listFn: func(context.Context, int) ([]domain.PatientConsent, error) {
			return nil, errors.New("boom")
		},
		revokeErr: errors.New("denied"),
	}
	s := newStore(t, svc)

	s.Dispatch(Load{PatientID: 9})
	s.Dispatch(Revoke{ConsentID: 2})
	settle(t, s)

	got := s.State()
	if got.Error == nil || *got.Error != "boom" {
		t.Fatalf("expected load error, got %v", got.Error)
	}
	if got.SubmissionError == nil || *got.SubmissionError != "denied" {
		t.Fatalf("expected submission error, got %v", got.SubmissionError)
	}
}
