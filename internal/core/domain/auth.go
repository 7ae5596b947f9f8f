package domain

// DefaultSpecialty is assigned when the profile does not carry one.
const DefaultSpecialty = "General"

// AuthState is the process-wide session snapshot. Nullable fields are pointers
// so that "absent" survives a JSON round-trip.
type AuthState struct {
	UserID    *int    `json:"userId"`
	UserToken *string `json:"userToken"`
	ClinicID  *int    `json:"clinicId"`
	Specialty *string `json:"specialty"`
	Error     *string `json:"error"`
	Loading   bool    `json:"loading"`
}

// InitialAuthState returns the anonymous, idle state.
func InitialAuthState() AuthState {
	return AuthState{}
}

// SessionPhase is derived from AuthState; it is never stored.
type SessionPhase string

const (
	PhaseAnonymous      SessionPhase = "anonymous"
	PhaseAuthenticating SessionPhase = "authenticating"
	PhaseAuthenticated  SessionPhase = "authenticated"
	PhaseClinicResolved SessionPhase = "clinic_resolved"
	PhaseError          SessionPhase = "error"
)

// Phase classifies the state. Loading wins over everything else so a
// profile refresh on an authenticated session still reads as in-flight.
func (s AuthState) Phase() SessionPhase {
	switch {
	case s.Loading:
		return PhaseAuthenticating
	case s.Error != nil && s.UserToken == nil:
		return PhaseError
	case s.UserToken == nil:
		return PhaseAnonymous
	case s.ClinicID != nil:
		return PhaseClinicResolved
	default:
		return PhaseAuthenticated
	}
}

// LoggedIn reports whether a bearer token is held.
func (s AuthState) LoggedIn() bool {
	return s.UserToken != nil && *s.UserToken != ""
}

// Token returns the bearer token or "".
func (s AuthState) Token() string {
	if s.UserToken == nil {
		return ""
	}
	return *s.UserToken
}

// Equal compares field values rather than pointer identity.
func (s AuthState) Equal(o AuthState) bool {
	return eqPtr(s.UserID, o.UserID) &&
		eqPtr(s.UserToken, o.UserToken) &&
		eqPtr(s.ClinicID, o.ClinicID) &&
		eqPtr(s.Specialty, o.Specialty) &&
		eqPtr(s.Error, o.Error) &&
		s.Loading == o.Loading
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// LoginResponse is the backend's answer to User/login.
type LoginResponse struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Token       string   `json:"token"`
	Role        string   `json:"role"`
	AccountID   *int     `json:"accountId,omitempty"`
	ClinicID    *int     `json:"clinicId,omitempty"`
	Specialty   string   `json:"specialty,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Profile is the backend's answer to User/me.
type Profile struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Specialty string `json:"specialty"`
}
