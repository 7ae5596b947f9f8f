package domain

import (
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultAuditPage     = 1
	DefaultAuditPageSize = 20
)

// AuditLog records one access to a medical record.
type AuditLog struct {
	ID                         int       `json:"id"`
	UserID                     int       `json:"userId"`
	MedicalHistoryID           int       `json:"medicalHistoryId"`
	PatientDetailsID           int       `json:"patientDetailsId"`
	AccessTime                 time.Time `json:"accessTime"`
	Purpose                    string    `json:"purpose"`
	AccessingClinicID          int       `json:"accessingClinicId"`
	MedicalRecordOwnerClinicID int       `json:"medicalRecordOwnerClinicId"`
	HadValidConsent            bool      `json:"hadValidConsent"`
	Reason                     string    `json:"reason,omitempty"`
	IPAddress                  string    `json:"ipAddress"`
	SessionID                  string    `json:"sessionId"`
}

// AuditLogFilter narrows an audit log query. Zero values are omitted.
type AuditLogFilter struct {
	DateFrom   *time.Time `json:"dateFrom,omitempty"`
	DateTo     *time.Time `json:"dateTo,omitempty"`
	UserID     *int       `json:"userId,omitempty"`
	ClinicID   *int       `json:"clinicId,omitempty"`
	PatientID  *int       `json:"patientId,omitempty"`
	HasConsent *bool      `json:"hasConsent,omitempty"`
	SearchTerm string     `json:"searchTerm,omitempty"`
	Page       int        `json:"page,omitempty"`
	PageSize   int        `json:"pageSize,omitempty"`
}

// Merge overlays the set fields of o onto f.
func (f AuditLogFilter) Merge(o AuditLogFilter) AuditLogFilter {
	if o.DateFrom != nil {
		f.DateFrom = o.DateFrom
	}
	if o.DateTo != nil {
		f.DateTo = o.DateTo
	}
	if o.UserID != nil {
		f.UserID = o.UserID
	}
	if o.ClinicID != nil {
		f.ClinicID = o.ClinicID
	}
	if o.PatientID != nil {
		f.PatientID = o.PatientID
	}
	if o.HasConsent != nil {
		f.HasConsent = o.HasConsent
	}
	if o.SearchTerm != "" {
		f.SearchTerm = o.SearchTerm
	}
	if o.Page > 0 {
		f.Page = o.Page
	}
	if o.PageSize > 0 {
		f.PageSize = o.PageSize
	}
	return f
}

// Values encodes the filter as query parameters.
func (f AuditLogFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if f.DateFrom != nil {
		v.Set("dateFrom", f.DateFrom.Format(time.RFC3339))
	}
	if f.DateTo != nil {
		v.Set("dateTo", f.DateTo.Format(time.RFC3339))
	}
	if f.UserID != nil {
		v.Set("userId", strconv.Itoa(*f.UserID))
	}
	if f.ClinicID != nil {
		v.Set("clinicId", strconv.Itoa(*f.ClinicID))
	}
	if f.PatientID != nil {
		v.Set("patientId", strconv.Itoa(*f.PatientID))
	}
	if f.HasConsent != nil {
		v.Set("hasConsent", strconv.FormatBool(*f.HasConsent))
	}
	if f.SearchTerm != "" {
		v.Set("searchTerm", f.SearchTerm)
	}
	return v
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// AuditLogPage is one page of audit log results.
type AuditLogPage struct {
	Data       []AuditLog `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type AccessByUser struct {
	UserID         int       `json:"userId"`
	UserName       string    `json:"userName"`
	AccessCount    int       `json:"accessCount"`
	LastAccessTime time.Time `json:"lastAccessTime"`
}

type AccessByClinic struct {
	ClinicID              int    `json:"clinicId"`
	ClinicName            string `json:"clinicName"`
	AccessCount           int    `json:"accessCount"`
	ConsentViolationCount int    `json:"consentViolationCount"`
}

type AccessByDate struct {
	Date                  time.Time `json:"date"`
	AccessCount           int       `json:"accessCount"`
	ConsentViolationCount int       `json:"consentViolationCount"`
}

type AuditReport struct {
	TotalAccesses     int              `json:"totalAccesses"`
	AccessesByUser    []AccessByUser   `json:"accessesByUser"`
	AccessesByClinic  []AccessByClinic `json:"accessesByClinic"`
	AccessesByDate    []AccessByDate   `json:"accessesByDate"`
	ConsentViolations int              `json:"consentViolations"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}
