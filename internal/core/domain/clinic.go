package domain

// ClockTime is an hour/minute pair used for opening hours and appointment slots.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Clinic is a tenant.
type Clinic struct {
	ID          *int       `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	ContactInfo string     `json:"contactInfo"`
	Open        *ClockTime `json:"open,omitempty"`
	Close       *ClockTime `json:"close,omitempty"`
}

// Patient belongs to one clinic.
type Patient struct {
	ID               *int    `json:"id,omitempty"`
	Name             string  `json:"name"`
	Middlename       string  `json:"middlename"`
	Lastname         string  `json:"lastname"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	Address          string  `json:"address"`
	DOB              string  `json:"dob"`
	Gender           string  `json:"gender"`
	EmergencyContact string  `json:"emergencyContact"`
	ClinicID         *int    `json:"clinicId,omitempty"`
	Clinic           *Clinic `json:"clinic,omitempty"`
}

// CalendarDate is the date part of an appointment.
type CalendarDate struct {
	Year      int  `json:"year"`
	Month     int  `json:"month"`
	Day       int  `json:"day"`
	DayOfWeek *int `json:"dayOfWeek,omitempty"`
}

// Appointment links a patient, a practitioner and a clinic at a point in time.
type Appointment struct {
	PatientID *int         `json:"patientId,omitempty"`
	UserID    *int         `json:"userId,omitempty"`
	ClinicID  *int         `json:"clinicId,omitempty"`
	Status    string       `json:"status"`
	Notes     string       `json:"notes,omitempty"`
	Date      CalendarDate `json:"date"`
	Time      ClockTime    `json:"time"`
}
