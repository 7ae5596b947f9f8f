package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const (
	patientEndpoint     = "patient"
	appointmentEndpoint = "appointments"
)

type PatientService struct {
	api ports.APIClient
}

func NewPatientService(api ports.APIClient) *PatientService {
	return &PatientService{api: api}
}

func (s *PatientService) List(ctx context.Context, clinicID int) ([]domain.Patient, error) {
	var out []domain.Patient
	if err := s.api.Get(ctx, patientEndpoint+"?clinicId="+strconv.Itoa(clinicID), &out); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return out, nil
}

func (s *PatientService) Create(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	var out domain.Patient
	if err := s.api.Post(ctx, patientEndpoint, patient, &out); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return &out, nil
}

func (s *PatientService) Update(ctx context.Context, patient domain.Patient) error {
	if patient.ID == nil {
		return fmt.Errorf("update patient: %w", domain.ErrNotFound)
	}
	if err := s.api.Put(ctx, patientEndpoint+"/"+strconv.Itoa(*patient.ID), patient, nil); err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

func (s *PatientService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, patientEndpoint+"/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

type AppointmentService struct {
	api ports.APIClient
}

func NewAppointmentService(api ports.APIClient) *AppointmentService {
	return &AppointmentService{api: api}
}

func (s *AppointmentService) List(ctx context.Context, clinicID int) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := s.api.Get(ctx, appointmentEndpoint+"?clinicId="+strconv.Itoa(clinicID), &out); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

func (s *AppointmentService) Create(ctx context.Context, appt domain.Appointment) error {
	if err := s.api.Post(ctx, appointmentEndpoint, appt, nil); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}
