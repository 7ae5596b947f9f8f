package auth

import (
	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/store"
)

// Reduce is the auth transition table. Unknown actions return state unchanged.
func Reduce(state domain.AuthState, action store.Action) domain.AuthState {
	switch a := action.(type) {
	case Login:
		state.Loading = true
		state.Error = nil

	case LoginSuccess:
		state.UserID = domain.Ptr(a.UserID)
		state.UserToken = domain.Ptr(a.UserToken)
		state.ClinicID = nonZero(a.ClinicID)
		state.Specialty = nonEmpty(a.Specialty)
		state.Error = nil
		state.Loading = false

	case LoginFailure:
		state.Error = domain.Ptr(a.Error)
		state.Loading = false

	case LoadUserProfile:
		state.Loading = true
		state.Error = nil

	case LoadUserProfileSuccess:
		// A profile answer arriving after logout belongs to a dead session.
		if state.UserToken == nil {
			return state
		}
		state.Specialty = domain.Ptr(a.Specialty)
		state.Error = nil
		state.Loading = false

	case LoadUserProfileFailure:
		if state.UserToken == nil {
			return state
		}
		state.Specialty = domain.Ptr(domain.DefaultSpecialty)
		state.Error = domain.Ptr(a.Error)
		state.Loading = false

	case Logout:
		return domain.InitialAuthState()

	case RehydrateAuthState:
		state.UserID = a.UserID
		state.UserToken = a.UserToken
		state.ClinicID = nonZero(a.ClinicID)
		state.Specialty = nonEmpty(a.Specialty)
		state.Loading = false
		state.Error = nil
		// A token is meaningless without the identity it was issued to.
		if state.UserToken != nil && state.UserID == nil {
			state.UserToken = nil
		}

	case SetClinic:
		state.ClinicID = nonZero(a.ClinicID)
		state.Error = nil

	case SetLoading:
		state.Loading = a.Loading
	}
	return state
}

func nonZero(id *int) *int {
	if id == nil || *id == 0 {
		return nil
	}
	return domain.Ptr(*id)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return domain.Ptr(*s)
}
