package auth

import "github.com/clinicdesk/clinic-console/internal/core/domain"

func SelectUserID(s domain.AuthState) *int { return s.UserID }

func SelectToken(s domain.AuthState) string { return s.Token() }

func SelectClinicID(s domain.AuthState) *int { return s.ClinicID }

func SelectSpecialty(s domain.AuthState) *string { return s.Specialty }

func SelectError(s domain.AuthState) *string { return s.Error }

func SelectLoading(s domain.AuthState) bool { return s.Loading }

func SelectIsLoggedIn(s domain.AuthState) bool { return s.LoggedIn() }

func SelectPhase(s domain.AuthState) domain.SessionPhase { return s.Phase() }
