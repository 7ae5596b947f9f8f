package forms

// OptionSource names a backend list used to fill a select.
type OptionSource string

const (
	SourceClinics OptionSource = "clinics"
	SourceRoles   OptionSource = "roles"
)

const (
	EntityPatient     = "patient"
	EntityAppointment = "appointment"
	EntityClinic      = "clinic"
	EntityUser        = "user"
	EntityRole        = "role"
)

// FieldConfig is a static field entry. Validate uses validator tag syntax and
// may hold one rule or several comma-separated ones.
type FieldConfig struct {
	Key      string
	Label    string
	Type     FieldType
	Default  any
	Validate string
	Options  []Option
	Source   OptionSource
	Disabled bool
}

// Configs maps entity types to their field layout.
var Configs = map[string][]FieldConfig{
	EntityPatient: {
		{Key: "name", Label: "Name", Type: Text, Validate: "required"},
		{Key: "middlename", Label: "Middle Name", Type: Text},
		{Key: "lastname", Label: "Last Name", Type: Text, Validate: "required"},
		{Key: "email", Label: "Email", Type: Email, Validate: "required,email"},
		{Key: "phone", Label: "Phone", Type: Tel, Validate: "required"},
		{Key: "address", Label: "Address", Type: Text, Validate: "required"},
		{Key: "dob", Label: "Date of Birth", Type: Date, Validate: "required"},
		{Key: "gender", Label: "Gender", Type: Select, Options: GenderOptions, Validate: "required"},
		{Key: "emergencyContact", Label: "Emergency Contact", Type: Tel, Validate: "required"},
		{Key: "clinic", Label: "Clinic", Type: Select, Source: SourceClinics, Validate: "required"},
	},
	EntityAppointment: {
		{Key: "patientId", Label: "Patient", Type: Number, Validate: "required"},
		{Key: "userId", Label: "Practitioner", Type: Number, Validate: "required"},
		{Key: "clinicId", Label: "Clinic", Type: Number},
		{Key: "date", Label: "Date", Type: Date, Validate: "required"},
		{Key: "time", Label: "Time", Type: Time, Validate: "required"},
		{Key: "status", Label: "Status", Type: Select, Default: "Pending", Options: StatusOptions, Validate: "required"},
		{Key: "notes", Label: "Notes", Type: Text, Validate: "required,max=500"},
	},
	EntityClinic: {
		{Key: "name", Label: "Name", Type: Text, Validate: "required"},
		{Key: "location", Label: "Location", Type: Text, Validate: "required"},
		{Key: "contactInfo", Label: "Contact Info", Type: Tel},
		{Key: "open", Label: "Opens", Type: Time},
		{Key: "close", Label: "Closes", Type: Time},
	},
	EntityUser: {
		{Key: "name", Label: "Name", Type: Text, Validate: "required"},
		{Key: "email", Label: "Email", Type: Email, Validate: "required,email"},
		{Key: "password", Label: "Password", Type: Password, Validate: "min=6"},
		{Key: "specialty", Label: "Specialty", Type: Text},
		{Key: "professionalLicenseNumber", Label: "License Number", Type: Text},
		{Key: "clinic", Label: "Clinic", Type: Select, Source: SourceClinics},
		{Key: "roleId", Label: "Role", Type: Select, Source: SourceRoles},
	},
	EntityRole: {
		{Key: "name", Label: "Name", Type: Text, Validate: "required"},
		{Key: "description", Label: "Description", Type: Text},
	},
}

// clinicOptionEntities load the clinic list before the form is built.
var clinicOptionEntities = map[string]bool{EntityPatient: true, EntityUser: true}
