// Package auth is the session slice: actions, the reducer that applies them,
// selectors, and the effects that talk to the backend.
package auth

const (
	TypeLogin                  = "[Auth] Login"
	TypeLoginSuccess           = "[Auth] Login Success"
	TypeLoginFailure           = "[Auth] Login Failure"
	TypeLoadUserProfile        = "[Auth] Load User Profile"
	TypeLoadUserProfileSuccess = "[Auth] Load User Profile Success"
	TypeLoadUserProfileFailure = "[Auth] Load User Profile Failure"
	TypeLogout                 = "[Auth] Logout"
	TypeRehydrate              = "[Auth] Rehydrate State"
	TypeSetClinic              = "[Clinic] Set Clinic"
	TypeSetLoading             = "[Auth] Set Loading"
)

// Login starts authentication. The password never reaches the state.
type Login struct {
	Email    string
	Password string
}

// LoginSuccess carries the authenticated identity. Role is used only to
// decide whether a clinic must be resolved; it is not stored.
type LoginSuccess struct {
	UserID    int
	UserToken string
	ClinicID  *int
	Specialty *string
	Role      string
}

type LoginFailure struct {
	Error string
}

type LoadUserProfile struct{}

type LoadUserProfileSuccess struct {
	Specialty string
}

type LoadUserProfileFailure struct {
	Error string
}

type Logout struct{}

// RehydrateAuthState restores a persisted session at startup.
type RehydrateAuthState struct {
	UserID    *int
	UserToken *string
	ClinicID  *int
	Specialty *string
}

type SetClinic struct {
	ClinicID *int
}

type SetLoading struct {
	Loading bool
}

func (Login) Type() string                  { return TypeLogin }
func (LoginSuccess) Type() string           { return TypeLoginSuccess }
func (LoginFailure) Type() string           { return TypeLoginFailure }
func (LoadUserProfile) Type() string        { return TypeLoadUserProfile }
func (LoadUserProfileSuccess) Type() string { return TypeLoadUserProfileSuccess }
func (LoadUserProfileFailure) Type() string { return TypeLoadUserProfileFailure }
func (Logout) Type() string                 { return TypeLogout }
func (RehydrateAuthState) Type() string     { return TypeRehydrate }
func (SetClinic) Type() string              { return TypeSetClinic }
func (SetLoading) Type() string             { return TypeSetLoading }
