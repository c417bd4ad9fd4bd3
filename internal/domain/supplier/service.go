package supplier

import "context"

// Service contains the business logic for supplier registry operations.
type Service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a supplier after validation.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Supplier, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// List retrieves all suppliers of a user.
func (s *Service) List(ctx context.Context, userID int64) ([]*Supplier, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Get retrieves one supplier owned by the user.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Supplier, error) {
	sup, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplierNotFound
	}
	return sup, nil
}

// Update applies a partial update to a supplier owned by the user.
func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*Supplier, error) {
	if params.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	sup, err := s.repo.Update(ctx, id, userID, params)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplierNotFound
	}
	return sup, nil
}

// Deactivate soft-deletes a supplier owned by the user.
func (s *Service) Deactivate(ctx context.Context, id, userID int64) error {
	return s.repo.Deactivate(ctx, id, userID)
}
