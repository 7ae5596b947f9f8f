// Package consent holds patient consent records and the approve, reject and
// revoke workflows.
package consent

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/store"
)

type State struct {
	Consents        []domain.PatientConsent `json:"consents"`
	Selected        *domain.PatientConsent  `json:"selectedConsent"`
	Loading         bool                    `json:"loading"`
	Error           *string                 `json:"error"`
	Submitting      bool                    `json:"submitting"`
	SubmissionError *string                 `json:"submissionError"`
	Pending         []domain.PatientConsent `json:"pendingConsents"`
	Approved        []domain.PatientConsent `json:"approvedConsents"`
	Revoked         []domain.PatientConsent `json:"revokedConsents"`
}

func InitialState() State {
	return State{
		Consents: []domain.PatientConsent{},
		Pending:  []domain.PatientConsent{},
		Approved: []domain.PatientConsent{},
		Revoked:  []domain.PatientConsent{},
	}
}

const (
	TypeLoad           = "[Consent] Load Patient Consents"
	TypeLoadSuccess    = "[Consent] Load Patient Consents Success"
	TypeLoadFailure    = "[Consent] Load Patient Consents Failure"
	TypeSelect         = "[Consent] Select Consent"
	TypeClearSelected  = "[Consent] Clear Selected Consent"
	TypeRequest        = "[Consent] Request Consent"
	TypeRequestSuccess = "[Consent] Request Consent Success"
	TypeRequestFailure = "[Consent] Request Consent Failure"
	TypeApprove        = "[Consent] Approve Consent"
	TypeApproveSuccess = "[Consent] Approve Consent Success"
	TypeApproveFailure = "[Consent] Approve Consent Failure"
	TypeReject         = "[Consent] Reject Consent"
	TypeRejectSuccess  = "[Consent] Reject Consent Success"
	TypeRejectFailure  = "[Consent] Reject Consent Failure"
	TypeRevoke         = "[Consent] Revoke Consent"
	TypeRevokeSuccess  = "[Consent] Revoke Consent Success"
	TypeRevokeFailure  = "[Consent] Revoke Consent Failure"
	TypeReset          = "[Consent] Reset State"
)

type Load struct{ PatientID int }
type LoadSuccess struct{ Consents []domain.PatientConsent }
type LoadFailure struct{ Error string }
type Select struct{ Consent domain.PatientConsent }
type ClearSelected struct{}
type Request struct{ Request domain.ConsentRequest }
type RequestSuccess struct{ Consent domain.PatientConsent }
type RequestFailure struct{ Error string }
type Approve struct{ Approval domain.ConsentApproval }
type ApproveSuccess struct{ Consent domain.PatientConsent }
type ApproveFailure struct{ Error string }
type Reject struct{ ConsentID int }
type RejectSuccess struct{ ConsentID int }
type RejectFailure struct{ Error string }
type Revoke struct{ ConsentID int }
type RevokeSuccess struct{ ConsentID int }
type RevokeFailure struct{ Error string }
type Reset struct{}

func (Load) Type() string           { return TypeLoad }
func (LoadSuccess) Type() string    { return TypeLoadSuccess }
func (LoadFailure) Type() string    { return TypeLoadFailure }
func (Select) Type() string         { return TypeSelect }
func (ClearSelected) Type() string  { return TypeClearSelected }
func (Request) Type() string        { return TypeRequest }
func (RequestSuccess) Type() string { return TypeRequestSuccess }
func (RequestFailure) Type() string { return TypeRequestFailure }
func (Approve) Type() string        { return TypeApprove }
func (ApproveSuccess) Type() string { return TypeApproveSuccess }
func (ApproveFailure) Type() string { return TypeApproveFailure }
func (Reject) Type() string         { return TypeReject }
func (RejectSuccess) Type() string  { return TypeRejectSuccess }
func (RejectFailure) Type() string  { return TypeRejectFailure }
func (Revoke) Type() string         { return TypeRevoke }
func (RevokeSuccess) Type() string  { return TypeRevokeSuccess }
func (RevokeFailure) Type() string  { return TypeRevokeFailure }
func (Reset) Type() string          { return TypeReset }

// Reduce applies consent actions. Slices are always copied, never mutated.
func Reduce(s State, action store.Action) State {
	switch a := action.(type) {
	case Load:
		s.Loading, s.Error = true, nil
	case LoadSuccess:
		s.Consents = slices.Clone(a.Consents)
		s.Pending = filter(a.Consents, domain.PatientConsent.Pending)
		s.Approved = filter(a.Consents, domain.PatientConsent.Approved)
		s.Revoked = filter(a.Consents, func(c domain.PatientConsent) bool { return c.IsDeleted })
		s.Loading, s.Error = false, nil
	case LoadFailure:
		s.Loading, s.Error = false, domain.Ptr(a.Error)

	case Select:
		s.Selected = domain.Ptr(a.Consent)
	case ClearSelected:
		s.Selected = nil

	case Request, Approve, Reject, Revoke:
		s.Submitting, s.SubmissionError = true, nil
	case RequestFailure:
		s.Submitting, s.SubmissionError = false, domain.Ptr(a.Error)
	case ApproveFailure:
		s.Submitting, s.SubmissionError = false, domain.Ptr(a.Error)
	case RejectFailure:
		s.Submitting, s.SubmissionError = false, domain.Ptr(a.Error)
	case RevokeFailure:
		s.Submitting, s.SubmissionError = false, domain.Ptr(a.Error)

	case RequestSuccess:
		s.Consents = append(slices.Clone(s.Consents), a.Consent)
		s.Pending = append(slices.Clone(s.Pending), a.Consent)
		s.Submitting, s.SubmissionError = false, nil

	case ApproveSuccess:
		c := a.Consent
		s.Consents = mapByID(s.Consents, c.ID, func(domain.PatientConsent) domain.PatientConsent { return c })
		s.Pending = without(s.Pending, c.ID)
		s.Approved = append(without(s.Approved, c.ID), c)
		if s.Selected != nil && s.Selected.ID == c.ID {
			s.Selected = domain.Ptr(c)
		}
		s.Submitting, s.SubmissionError = false, nil

	case RejectSuccess:
		s.Consents = without(s.Consents, a.ConsentID)
		s.Pending = without(s.Pending, a.ConsentID)
		s.Submitting, s.SubmissionError = false, nil

	case RevokeSuccess:
		s.Consents = mapByID(s.Consents, a.ConsentID, func(c domain.PatientConsent) domain.PatientConsent {
			c.IsDeleted = true
			return c
		})
		s.Approved = without(s.Approved, a.ConsentID)
		s.Revoked = without(s.Revoked, a.ConsentID)
		if i := slices.IndexFunc(s.Consents, func(c domain.PatientConsent) bool { return c.ID == a.ConsentID }); i >= 0 {
			s.Revoked = append(s.Revoked, s.Consents[i])
		}
		if s.Selected != nil && s.Selected.ID == a.ConsentID {
			s.Selected = nil
		}
		s.Submitting, s.SubmissionError = false, nil

	case Reset:
		return InitialState()
	}
	return s
}

func filter(in []domain.PatientConsent, keep func(domain.PatientConsent) bool) []domain.PatientConsent {
	out := make([]domain.PatientConsent, 0, len(in))
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func without(in []domain.PatientConsent, id int) []domain.PatientConsent {
	return filter(in, func(c domain.PatientConsent) bool { return c.ID != id })
}

func mapByID(in []domain.PatientConsent, id int, fn func(domain.PatientConsent) domain.PatientConsent) []domain.PatientConsent {
	out := make([]domain.PatientConsent, len(in))
	for i, c := range in {
		if c.ID == id {
			c = fn(c)
		}
		out[i] = c
	}
	return out
}

// Effects calls the consent endpoints.
type Effects struct {
	svc ports.ConsentService
	log zerolog.Logger
}

func NewEffects(svc ports.ConsentService, log zerolog.Logger) *Effects {
	return &Effects{svc: svc, log: log}
}

func (e *Effects) Register(s *store.Store[State]) {
	s.On(TypeLoad, "consent.load", e.load)
	s.On(TypeRequest, "consent.request", e.request)
	s.On(TypeApprove, "consent.approve", e.approve)
	s.On(TypeReject, "consent.reject", e.reject)
	s.On(TypeRevoke, "consent.revoke", e.revoke)
}

func (e *Effects) load(ctx context.Context, action store.Action) ([]store.Action, error) {
	consents, err := e.svc.ListByPatient(ctx, action.(Load).PatientID)
	if err != nil {
		e.log.Warn().Err(err).Msg("failed to load consents")
		return []store.Action{LoadFailure{Error: err.Error()}}, nil
	}
	return []store.Action{LoadSuccess{Consents: consents}}, nil
}

func (e *Effects) request(ctx context.Context, action store.Action) ([]store.Action, error) {
	c, err := e.svc.Request(ctx, action.(Request).Request)
	if err != nil {
		return []store.Action{RequestFailure{Error: err.Error()}}, nil
	}
	return []store.Action{RequestSuccess{Consent: *c}}, nil
}

func (e *Effects) approve(ctx context.Context, action store.Action) ([]store.Action, error) {
	c, err := e.svc.Approve(ctx, action.(Approve).Approval)
	if err != nil {
		return []store.Action{ApproveFailure{Error: err.Error()}}, nil
	}
	return []store.Action{ApproveSuccess{Consent: *c}}, nil
}

func (e *Effects) reject(ctx context.Context, action store.Action) ([]store.Action, error) {
	id := action.(Reject).ConsentID
	if err := e.svc.Reject(ctx, id); err != nil {
		return []store.Action{RejectFailure{Error: err.Error()}}, nil
	}
	return []store.Action{RejectSuccess{ConsentID: id}}, nil
}

func (e *Effects) revoke(ctx context.Context, action store.Action) ([]store.Action, error) {
	id := action.(Revoke).ConsentID
	if err := e.svc.Revoke(ctx, id); err != nil {
		return []store.Action{RevokeFailure{Error: err.Error()}}, nil
	}
	return []store.Action{RevokeSuccess{ConsentID: id}}, nil
}
