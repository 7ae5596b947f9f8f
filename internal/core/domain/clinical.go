package domain

import (
	"encoding/json"
	"time"
)

type PrescriptionItem struct {
	ID             *int   `json:"id,omitempty"`
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
	Instructions   string `json:"instructions,omitempty"`
}

type Prescription struct {
	ID          *int               `json:"id,omitempty"`
	PatientID   int                `json:"patientId"`
	PatientName string             `json:"patientName,omitempty"`
	DoctorID    *int               `json:"doctorId,omitempty"`
	DoctorName  string             `json:"doctorName,omitempty"`
	CreatedAt   *time.Time         `json:"createdAt,omitempty"`
	ExpiresAt   *time.Time         `json:"expiresAt,omitempty"`
	Diagnosis   string             `json:"diagnosis,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Items       []PrescriptionItem `json:"items"`
	UniqueCode  string             `json:"uniqueCode,omitempty"`
}

// PrescriptionValidation is the public answer for a scanned prescription code.
type PrescriptionValidation struct {
	Valid        bool          `json:"valid"`
	Message      string        `json:"message,omitempty"`
	Prescription *Prescription `json:"prescription,omitempty"`
}

// MedicalHistory is one history entry. SpecialtyData holds a
// specialty-specific JSON document as an opaque string.
type MedicalHistory struct {
	ID            *int       `json:"id,omitempty"`
	PatientID     int        `json:"patientId"`
	Specialty     string     `json:"specialty,omitempty"`
	Diagnoses     string     `json:"diagnoses"`
	Allergies     string     `json:"allergies"`
	Notes         string     `json:"notes"`
	SpecialtyData string     `json:"specialtyData,omitempty"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
}

// EncodeSpecialtyData stores v as the entry's specialty payload.
func (m *MedicalHistory) EncodeSpecialtyData(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.SpecialtyData = string(b)
	return nil
}

// DecodeSpecialtyData unmarshals the specialty payload into v. An empty
// payload leaves v untouched.
func (m MedicalHistory) DecodeSpecialtyData(v any) error {
	if m.SpecialtyData == "" {
		return nil
	}
	return json.Unmarshal([]byte(m.SpecialtyData), v)
}
