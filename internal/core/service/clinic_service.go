package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const clinicEndpoint = "clinic"

// ClinicService lists and edits clinics. Concurrent List calls share one
// backend request.
type ClinicService struct {
	api   ports.APIClient
	group singleflight.Group
	log   zerolog.Logger
}

func NewClinicService(api ports.APIClient, log zerolog.Logger) *ClinicService {
	return &ClinicService{api: api, log: log}
}

func (s *ClinicService) List(ctx context.Context) ([]domain.Clinic, error) {
	v, err, shared := s.group.Do(clinicEndpoint, func() (any, error) {
		var clinics []domain.Clinic
		if err := s.api.Get(ctx, clinicEndpoint, &clinics); err != nil {
			return nil, err
		}
		return clinics, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	if shared {
		s.log.Debug().Msg("clinic list request coalesced")
	}
	return v.([]domain.Clinic), nil
}

func (s *ClinicService) Create(ctx context.Context, userID int, clinic domain.Clinic) (*domain.Clinic, error) {
	var out domain.Clinic
	if err := s.api.Post(ctx, clinicEndpoint+"?userId="+strconv.Itoa(userID), clinic, &out); err != nil {
		return nil, fmt.Errorf("create clinic: %w", err)
	}
	return &out, nil
}

func (s *ClinicService) Update(ctx context.Context, clinic domain.Clinic) error {
	if err := s.api.Put(ctx, clinicEndpoint, clinic, nil); err != nil {
		return fmt.Errorf("update clinic: %w", err)
	}
	return nil
}
