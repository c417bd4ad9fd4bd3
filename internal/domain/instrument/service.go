package instrument

import (
	"context"
	"fmt"
)

// Service handles payment instrument business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Instrument, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	inst, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrument: %w", err)
	}
	return inst, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Instrument, error) {
	instruments, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	return instruments, nil
}

func (s *Service) Deactivate(ctx context.Context, id, userID int64) error {
	if err := s.repo.Deactivate(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to deactivate instrument: %w", err)
	}
	return nil
}
