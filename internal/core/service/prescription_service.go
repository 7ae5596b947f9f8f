package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const (
	prescriptionEndpoint   = "Prescription"
	medicalHistoryEndpoint = "medicalhistory"
)

type PrescriptionService struct {
	api ports.APIClient
}

func NewPrescriptionService(api ports.APIClient) *PrescriptionService {
	return &PrescriptionService{api: api}
}

func (s *PrescriptionService) Create(ctx context.Context, p domain.Prescription) (*domain.Prescription, error) {
	var out domain.Prescription
	if err := s.api.Post(ctx, prescriptionEndpoint, p, &out); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}
	return &out, nil
}

func (s *PrescriptionService) Get(ctx context.Context, id int) (*domain.Prescription, error) {
	var out domain.Prescription
	if err := s.api.Get(ctx, prescriptionEndpoint+"/"+strconv.Itoa(id), &out); err != nil {
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return &out, nil
}

// QR returns the QR image bytes as served by the backend.
func (s *PrescriptionService) QR(ctx context.Context, id int) ([]byte, error) {
	b, err := s.api.GetRaw(ctx, prescriptionEndpoint+"/"+strconv.Itoa(id)+"/qr")
	if err != nil {
		return nil, fmt.Errorf("prescription qr: %w", err)
	}
	return b, nil
}

func (s *PrescriptionService) Validate(ctx context.Context, code string) (*domain.PrescriptionValidation, error) {
	var out domain.PrescriptionValidation
	if err := s.api.Get(ctx, prescriptionEndpoint+"/validate/"+url.PathEscape(code), &out); err != nil {
		return nil, fmt.Errorf("validate prescription: %w", err)
	}
	return &out, nil
}

func (s *PrescriptionService) ListByPatient(ctx context.Context, patientID int) ([]domain.Prescription, error) {
	var out []domain.Prescription
	if err := s.api.Get(ctx, prescriptionEndpoint+"/patient/"+strconv.Itoa(patientID), &out); err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return out, nil
}

type MedicalHistoryService struct {
	api ports.APIClient
}

func NewMedicalHistoryService(api ports.APIClient) *MedicalHistoryService {
	return &MedicalHistoryService{api: api}
}

func (s *MedicalHistoryService) Create(ctx context.Context, h domain.MedicalHistory) (*domain.MedicalHistory, error) {
	var out domain.MedicalHistory
	if err := s.api.Post(ctx, medicalHistoryEndpoint, h, &out); err != nil {
		return nil, fmt.Errorf("create medical history: %w", err)
	}
	return &out, nil
}

func (s *MedicalHistoryService) ListByPatient(ctx context.Context, patientID int) ([]domain.MedicalHistory, error) {
	var out []domain.MedicalHistory
	if err := s.api.Get(ctx, medicalHistoryEndpoint+"/patient/"+strconv.Itoa(patientID), &out); err != nil {
		return nil, fmt.Errorf("list medical history: %w", err)
	}
	return out, nil
}
