package domain

// Backend user roles, as carried by the login response and the role claim.
const (
	RoleSuperAdmin         = "SuperAdmin"
	RoleAccountAdmin       = "AccountAdmin"
	RoleClinicAdmin        = "ClinicAdmin"
	RoleDoctor             = "Doctor"
	RoleHealthProfessional = "HealthProfessional"
	RoleReceptionist       = "Receptionist"
	RolePatient            = "Patient"
)

var clinicRequiringRoles = map[string]struct{}{
	RoleDoctor:             {},
	RoleHealthProfessional: {},
	RoleReceptionist:       {},
	RolePatient:            {},
	RoleClinicAdmin:        {},
}

var clinicExemptRoles = map[string]struct{}{
	RoleSuperAdmin:   {},
	RoleAccountAdmin: {},
}

// RequiresClinic reports whether a session with this role must be scoped to a clinic.
func RequiresClinic(role string) bool {
	_, ok := clinicRequiringRoles[role]
	return ok
}

// ClinicExempt reports whether the role spans all clinics.
func ClinicExempt(role string) bool {
	_, ok := clinicExemptRoles[role]
	return ok
}

// Permission is a fine-grained capability carried in the token or derived from roles.
type Permission string

const (
	PermViewAuditLogs        Permission = "VIEW_AUDIT_LOGS"
	PermManageAuditLogs      Permission = "MANAGE_AUDIT_LOGS"
	PermExportAuditLogs      Permission = "EXPORT_AUDIT_LOGS"
	PermGenerateAuditReports Permission = "GENERATE_AUDIT_REPORTS"
	PermViewConsent          Permission = "VIEW_CONSENT"
	PermApproveConsent       Permission = "APPROVE_CONSENT"
	PermRevokeConsent        Permission = "REVOKE_CONSENT"
	PermViewMedicalHistory   Permission = "VIEW_MEDICAL_HISTORY"
	PermManageMedicalHistory Permission = "MANAGE_MEDICAL_HISTORY"
)

// rolePermissions maps the upper-case role names found in the roles claim.
var rolePermissions = map[string][]Permission{
	"SUPER_ADMIN": {
		PermViewAuditLogs, PermManageAuditLogs, PermExportAuditLogs, PermGenerateAuditReports,
		PermViewConsent, PermApproveConsent, PermRevokeConsent,
		PermViewMedicalHistory, PermManageMedicalHistory,
	},
	"ADMIN": {
		PermViewAuditLogs, PermManageAuditLogs, PermExportAuditLogs, PermGenerateAuditReports,
		PermViewConsent, PermApproveConsent,
		PermViewMedicalHistory, PermManageMedicalHistory,
	},
	"CLINIC_ADMIN": {
		PermViewAuditLogs, PermExportAuditLogs,
		PermViewConsent, PermApproveConsent,
		PermViewMedicalHistory,
	},
	"DOCTOR":  {PermViewMedicalHistory, PermViewConsent},
	"NURSE":   {PermViewMedicalHistory},
	"PATIENT": {PermViewConsent, PermRevokeConsent},
}

// PermissionsForRoles returns the union of permissions granted by roles.
// Unknown roles grant nothing.
func PermissionsForRoles(roles []string) []Permission {
	seen := make(map[Permission]struct{})
	var out []Permission
	for _, r := range roles {
		for _, p := range rolePermissions[r] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
