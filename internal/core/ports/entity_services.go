package ports

import (
	"context"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

type ClinicService interface {
	List(ctx context.Context) ([]domain.Clinic, error)
	Create(ctx context.Context, userID int, clinic domain.Clinic) (*domain.Clinic, error)
	Update(ctx context.Context, clinic domain.Clinic) error
}

type PatientService interface {
	List(ctx context.Context, clinicID int) ([]domain.Patient, error)
	Create(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	Update(ctx context.Context, patient domain.Patient) error
	Delete(ctx context.Context, id int) error
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id int) error
}

type RoleService interface {
	List(ctx context.Context, clinicID *int) ([]domain.Role, error)
	Get(ctx context.Context, id int) (*domain.Role, error)
	Create(ctx context.Context, role domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role domain.Role) error
	Delete(ctx context.Context, id int) error
}

type AppointmentService interface {
	List(ctx context.Context, clinicID int) ([]domain.Appointment, error)
	Create(ctx context.Context, appt domain.Appointment) error
}

type PrescriptionService interface {
	Create(ctx context.Context, p domain.Prescription) (*domain.Prescription, error)
	Get(ctx context.Context, id int) (*domain.Prescription, error)
	QR(ctx context.Context, id int) ([]byte, error)
	Validate(ctx context.Context, code string) (*domain.PrescriptionValidation, error)
	ListByPatient(ctx context.Context, patientID int) ([]domain.Prescription, error)
}

type MedicalHistoryService interface {
	Create(ctx context.Context, h domain.MedicalHistory) (*domain.MedicalHistory, error)
	ListByPatient(ctx context.Context, patientID int) ([]domain.MedicalHistory, error)
}

type AuditLogService interface {
	List(ctx context.Context, filter domain.AuditLogFilter) (*domain.AuditLogPage, error)
	Get(ctx context.Context, id int) (*domain.AuditLog, error)
	Report(ctx context.Context, filter domain.AuditLogFilter) (*domain.AuditReport, error)
	Export(ctx context.Context, filter domain.AuditLogFilter, format string) ([]byte, error)
}

type ConsentService interface {
	ListByPatient(ctx context.Context, patientID int) ([]domain.PatientConsent, error)
	Request(ctx context.Context, req domain.ConsentRequest) (*domain.PatientConsent, error)
	Approve(ctx context.Context, approval domain.ConsentApproval) (*domain.PatientConsent, error)
	Reject(ctx context.Context, consentID int) error
	Revoke(ctx context.Context, consentID int) error
}
