// Package audit holds the medical-record access log browser: paging,
// filtering, detail, reports and exports.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/store"
)

type State struct {
	Logs          []domain.AuditLog     `json:"logs"`
	Pagination    domain.Pagination     `json:"pagination"`
	Filter        domain.AuditLogFilter `json:"filter"`
	Selected      *domain.AuditLog      `json:"selectedLog"`
	Loading       bool                  `json:"loading"`
	Error         *string               `json:"error"`
	ReportLoading bool                  `json:"reportLoading"`
	ReportError   *string               `json:"reportError"`
	Report        *domain.AuditReport   `json:"report"`
	Export        []byte                `json:"-"`
}

func InitialState() State {
	return State{
		Logs:       []domain.AuditLog{},
		Pagination: domain.Pagination{Page: domain.DefaultAuditPage, PageSize: domain.DefaultAuditPageSize},
		Filter:     domain.AuditLogFilter{Page: domain.DefaultAuditPage, PageSize: domain.DefaultAuditPageSize},
	}
}

const (
	TypeLoad                  = "[Audit] Load Audit Logs"
	TypeLoadSuccess           = "[Audit] Load Audit Logs Success"
	TypeLoadFailure           = "[Audit] Load Audit Logs Failure"
	TypeSetFilter             = "[Audit] Set Audit Filter"
	TypeSelect                = "[Audit] Select Audit Log"
	TypeClearSelected         = "[Audit] Clear Selected Audit Log"
	TypeLoadDetail            = "[Audit] Load Audit Log Detail"
	TypeLoadDetailSuccess     = "[Audit] Load Audit Log Detail Success"
	TypeLoadDetailFailure     = "[Audit] Load Audit Log Detail Failure"
	TypeGenerateReport        = "[Audit] Generate Audit Report"
	TypeGenerateReportSuccess = "[Audit] Generate Audit Report Success"
	TypeGenerateReportFailure = "[Audit] Generate Audit Report Failure"
	TypeExport                = "[Audit] Export Audit Logs"
	TypeExportSuccess         = "[Audit] Export Audit Logs Success"
	TypeExportFailure         = "[Audit] Export Audit Logs Failure"
	TypeReset                 = "[Audit] Reset Audit State"
)

// Load fetches with Filter, or with the state's filter when Filter is nil.
type Load struct{ Filter *domain.AuditLogFilter }
type LoadSuccess struct {
	Logs       []domain.AuditLog
	Pagination domain.Pagination
}
type LoadFailure struct{ Error string }

// SetFilter merges into the current filter and reloads from page 1.
type SetFilter struct{ Filter domain.AuditLogFilter }
type Select struct{ Log domain.AuditLog }
type ClearSelected struct{}
type LoadDetail struct{ ID int }
type LoadDetailSuccess struct{ Log domain.AuditLog }
type LoadDetailFailure struct{ Error string }
type GenerateReport struct{ Filter domain.AuditLogFilter }
type GenerateReportSuccess struct{ Report domain.AuditReport }
type GenerateReportFailure struct{ Error string }
type Export struct {
	Filter domain.AuditLogFilter
	Format string
}
type ExportSuccess struct{ Data []byte }
type ExportFailure struct{ Error string }
type Reset struct{}

func (Load) Type() string                  { return TypeLoad }
func (LoadSuccess) Type() string           { return TypeLoadSuccess }
func (LoadFailure) Type() string           { return TypeLoadFailure }
func (SetFilter) Type() string             { return TypeSetFilter }
func (Select) Type() string                { return TypeSelect }
func (ClearSelected) Type() string         { return TypeClearSelected }
func (LoadDetail) Type() string            { return TypeLoadDetail }
func (LoadDetailSuccess) Type() string     { return TypeLoadDetailSuccess }
func (LoadDetailFailure) Type() string     { return TypeLoadDetailFailure }
func (GenerateReport) Type() string        { return TypeGenerateReport }
func (GenerateReportSuccess) Type() string { return TypeGenerateReportSuccess }
func (GenerateReportFailure) Type() string { return TypeGenerateReportFailure }
func (Export) Type() string                { return TypeExport }
func (ExportSuccess) Type() string         { return TypeExportSuccess }
func (ExportFailure) Type() string         { return TypeExportFailure }
func (Reset) Type() string                 { return TypeReset }

func Reduce(s State, action store.Action) State {
	switch a := action.(type) {
	case Load:
		if a.Filter != nil {
			s.Filter = *a.Filter
		}
		s.Loading, s.Error = true, nil
	case LoadSuccess:
		s.Logs, s.Pagination = a.Logs, a.Pagination
		s.Loading, s.Error = false, nil
	case LoadFailure:
		s.Loading, s.Error = false, domain.Ptr(a.Error)

	case SetFilter:
		s.Filter = s.Filter.Merge(a.Filter)
		s.Filter.Page = 1
		s.Loading, s.Error = true, nil

	case Select:
		s.Selected = domain.Ptr(a.Log)
	case ClearSelected:
		s.Selected = nil

	case LoadDetail:
		s.Loading, s.Error = true, nil
	case LoadDetailSuccess:
		s.Selected = domain.Ptr(a.Log)
		s.Loading, s.Error = false, nil
	case LoadDetailFailure:
		s.Loading, s.Error = false, domain.Ptr(a.Error)

	case GenerateReport:
		s.ReportLoading, s.ReportError = true, nil
	case GenerateReportSuccess:
		s.Report = domain.Ptr(a.Report)
		s.ReportLoading, s.ReportError = false, nil
	case GenerateReportFailure:
		s.ReportLoading, s.ReportError = false, domain.Ptr(a.Error)

	case Export:
		s.Loading, s.Error = true, nil
	case ExportSuccess:
		s.Export = a.Data
		s.Loading, s.Error = false, nil
	case ExportFailure:
		s.Loading, s.Error = false, domain.Ptr(a.Error)

	case Reset:
		return InitialState()
	}
	return s
}

// Effects calls the audit-log endpoints. It reads the store's filter when
// reloading after SetFilter.
type Effects struct {
	svc   ports.AuditLogService
	store *store.Store[State]
	log   zerolog.Logger
}

func NewEffects(svc ports.AuditLogService, log zerolog.Logger) *Effects {
	return &Effects{svc: svc, log: log}
}

func (e *Effects) Register(s *store.Store[State]) {
	e.store = s
	s.On(TypeLoad, "audit.load", e.load)
	s.On(TypeSetFilter, "audit.load", e.load)
	s.On(TypeLoadDetail, "audit.loadDetail", e.loadDetail)
	s.On(TypeGenerateReport, "audit.report", e.report)
	s.On(TypeExport, "audit.export", e.export)
}

func (e *Effects) load(ctx context.Context, _ store.Action) ([]store.Action, error) {
	filter := store.Select(e.store, func(s State) domain.AuditLogFilter { return s.Filter })
	page, err := e.svc.List(ctx, filter)
	if err != nil {
		e.log.Warn().Err(err).Msg("failed to load audit logs")
		return []store.Action{LoadFailure{Error: err.Error()}}, nil
	}
	return []store.Action{LoadSuccess{Logs: page.Data, Pagination: page.Pagination}}, nil
}

func (e *Effects) loadDetail(ctx context.Context, action store.Action) ([]store.Action, error) {
	l, err := e.svc.Get(ctx, action.(LoadDetail).ID)
	if err != nil {
		return []store.Action{LoadDetailFailure{Error: err.Error()}}, nil
	}
	return []store.Action{LoadDetailSuccess{Log: *l}}, nil
}

func (e *Effects) report(ctx context.Context, action store.Action) ([]store.Action, error) {
	r, err := e.svc.Report(ctx, action.(GenerateReport).Filter)
	if err != nil {
		return []store.Action{GenerateReportFailure{Error: err.Error()}}, nil
	}
	return []store.Action{GenerateReportSuccess{Report: *r}}, nil
}

func (e *Effects) export(ctx context.Context, action store.Action) ([]store.Action, error) {
	a := action.(Export)
	b, err := e.svc.Export(ctx, a.Filter, a.Format)
	if err != nil {
		return []store.Action{ExportFailure{Error: err.Error()}}, nil
	}
	return []store.Action{ExportSuccess{Data: b}}, nil
}
