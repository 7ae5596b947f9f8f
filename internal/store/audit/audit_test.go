package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
	"github.com/clinicdesk/clinic-console/internal/store"
)

type stubAuditService struct {
	mu      sync.Mutex
	filters []domain.AuditLogFilter
	listErr error
	report  *domain.AuditReport
	export  []byte
}

func (s *stubAuditService) List(_ context.Context, f domain.AuditLogFilter) (*domain.AuditLogPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, f)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &domain.AuditLogPage{
		Data:       []domain.AuditLog{{ID: 1}, {ID: 2}},
		Pagination: domain.Pagination{Page: f.Page, PageSize: f.PageSize, TotalItems: 2, TotalPages: 1},
	}, nil
}

func (s *stubAuditService) Get(_ context.Context, id int) (*domain.AuditLog, error) {
	return &domain.AuditLog{ID: id, Purpose: "treatment"}, nil
}

func (s *stubAuditService) Report(context.Context, domain.AuditLogFilter) (*domain.AuditReport, error) {
	if s.report == nil {
		return nil, errors.New("report unavailable")
	}
	return s.report, nil
}

func (s *stubAuditService) Export(context.Context, domain.AuditLogFilter, string) ([]byte, error) {
	return s.export, nil
}

func (s *stubAuditService) lastFilter() domain.AuditLogFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters[len(s.filters)-1]
}

func newStore(t *testing.T, svc *stubAuditService) *store.Store[State] {
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

func TestReduce_SetFilterMergesAndResetsPage(t *testing.T) {
	s := InitialState()
	s.Filter.Page = 4
	s.Filter.SearchTerm = "x"

	got := Reduce(s, SetFilter{Filter: domain.AuditLogFilter{ClinicID: domain.Ptr(3)}})

	if got.Filter.Page != 1 {
		t.Fatalf("expected page reset to 1, got %d", got.Filter.Page)
	}
	if got.Filter.SearchTerm != "x" || got.Filter.ClinicID == nil || *got.Filter.ClinicID != 3 {
		t.Fatalf("filter not merged: %+v", got.Filter)
	}
	if got.Filter.PageSize != domain.DefaultAuditPageSize || !got.Loading {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestReduce_ReportLifecycle(t *testing.T) {
	s := Reduce(InitialState(), GenerateReport{})
	if !s.ReportLoading {
		t.Fatalf("report loading not set")
	}
	s = Reduce(s, GenerateReportFailure{Error: "nope"})
	if s.ReportLoading || s.ReportError == nil {
		t.Fatalf("unexpected state: %+v", s)
	}
	s = Reduce(s, GenerateReportSuccess{Report: domain.AuditReport{TotalAccesses: 5}})
	if s.Report == nil || s.Report.TotalAccesses != 5 || s.ReportError != nil {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestEffects_SetFilterReloadsWithMergedFilter(t *testing.T) {
	svc := &stubAuditService{}
	s := newStore(t, svc)

	s.Dispatch(Load{})
	settle(t, s)
	s.Dispatch(SetFilter{Filter: domain.AuditLogFilter{PatientID: domain.Ptr(9)}})
	settle(t, s)

	f := svc.lastFilter()
	if f.PatientID == nil || *f.PatientID != 9 || f.Page != 1 || f.PageSize != domain.DefaultAuditPageSize {
		t.Fatalf("unexpected filter sent: %+v", f)
	}
	got := s.State()
	if len(got.Logs) != 2 || got.Pagination.TotalItems != 2 || got.Loading {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestEffects_LoadFailure(t *testing.T) {
	s := newStore(t, &stubAuditService{listErr: errors.New("down")})
	s.Dispatch(Load{})
	settle(t, s)
	if got := s.State(); got.Error == nil || *got.Error != "down" || got.Loading {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestEffects_DetailReportExport(t *testing.T) {
	svc := &stubAuditService{report: &domain.AuditReport{TotalAccesses: 12}, export: []byte("id,userId\n")}
	s := newStore(t, svc)

	s.Dispatch(LoadDetail{ID: 7})
	s.Dispatch(GenerateReport{})
	s.Dispatch(Export{Format: "csv"})
	settle(t, s)

	got := s.State()
	if got.Selected == nil || got.Selected.ID != 7 {
		t.Fatalf("detail not loaded: %+v", got.Selected)
	}
	if got.Report == nil || got.Report.TotalAccesses != 12 {
		t.Fatalf("report not stored: %+v", got.Report)
	}
	if string(got.Export) != "id,userId\n" {
		t.Fatalf("export not stored: %q", got.Export)
	}
}
