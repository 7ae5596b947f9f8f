package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const (
	auditEndpoint   = "audit-logs"
	consentEndpoint = "consent"
)

type AuditLogService struct {
	api ports.APIClient
}

func NewAuditLogService(api ports.APIClient) *AuditLogService {
	return &AuditLogService{api: api}
}

func (s *AuditLogService) List(ctx context.Context, filter domain.AuditLogFilter) (*domain.AuditLogPage, error) {
	var out domain.AuditLogPage
	if err := s.api.Get(ctx, withQuery(auditEndpoint, filter.Values().Encode()), &out); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return &out, nil
}

func (s *AuditLogService) Get(ctx context.Context, id int) (*domain.AuditLog, error) {
	var out domain.AuditLog
	if err := s.api.Get(ctx, auditEndpoint+"/"+strconv.Itoa(id), &out); err != nil {
		return nil, fmt.Errorf("get audit log: %w", err)
	}
	return &out, nil
}

// Report generates an access report. Paging and free-text fields are ignored.
func (s *AuditLogService) Report(ctx context.Context, filter domain.AuditLogFilter) (*domain.AuditReport, error) {
	q := domain.AuditLogFilter{DateFrom: filter.DateFrom, DateTo: filter.DateTo, ClinicID: filter.ClinicID, UserID: filter.UserID}
	var out domain.AuditReport
	if err := s.api.Get(ctx, withQuery(auditEndpoint+"/reports/generate", q.Values().Encode()), &out); err != nil {
		return nil, fmt.Errorf("generate audit report: %w", err)
	}
	return &out, nil
}

// Export downloads the filtered logs in format ("csv" when empty).
func (s *AuditLogService) Export(ctx context.Context, filter domain.AuditLogFilter, format string) ([]byte, error) {
	if format == "" {
		format = "csv"
	}
	q := domain.AuditLogFilter{DateFrom: filter.DateFrom, DateTo: filter.DateTo, ClinicID: filter.ClinicID, UserID: filter.UserID, PatientID: filter.PatientID}.Values()
	q.Set("format", format)
	b, err := s.api.GetRaw(ctx, withQuery(auditEndpoint+"/export", q.Encode()))
	if err != nil {
		return nil, fmt.Errorf("export audit logs: %w", err)
	}
	return b, nil
}

type ConsentService struct {
	api ports.APIClient
}

func NewConsentService(api ports.APIClient) *ConsentService {
	return &ConsentService{api: api}
}

func (s *ConsentService) ListByPatient(ctx context.Context, patientID int) ([]domain.PatientConsent, error) {
	var out []domain.PatientConsent
	if err := s.api.Get(ctx, consentEndpoint+"/patient/"+strconv.Itoa(patientID), &out); err != nil {
		return nil, fmt.Errorf("list consents: %w", err)
	}
	return out, nil
}

func (s *ConsentService) Request(ctx context.Context, req domain.ConsentRequest) (*domain.PatientConsent, error) {
	var out domain.PatientConsent
	if err := s.api.Post(ctx, consentEndpoint, req, &out); err != nil {
		return nil, fmt.Errorf("request consent: %w", err)
	}
	return &out, nil
}

func (s *ConsentService) Approve(ctx context.Context, approval domain.ConsentApproval) (*domain.PatientConsent, error) {
	var out domain.PatientConsent
	if err := s.api.Put(ctx, consentEndpoint+"/"+strconv.Itoa(approval.ConsentID)+"/approve", approval, &out); err != nil {
		return nil, fmt.Errorf("approve consent: %w", err)
	}
	return &out, nil
}

func (s *ConsentService) Reject(ctx context.Context, consentID int) error {
	if err := s.api.Put(ctx, consentEndpoint+"/"+strconv.Itoa(consentID)+"/reject", nil, nil); err != nil {
		return fmt.Errorf("reject consent: %w", err)
	}
	return nil
}

func (s *ConsentService) Revoke(ctx context.Context, consentID int) error {
	if err := s.api.Delete(ctx, consentEndpoint+"/"+strconv.Itoa(consentID)); err != nil {
		return fmt.Errorf("revoke consent: %w", err)
	}
	return nil
}

func withQuery(endpoint, query string) string {
	if query == "" {
		return endpoint
	}
	return endpoint + "?" + query
}
