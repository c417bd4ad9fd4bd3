package credit

import (
	"context"
	"time"
)

// Service contains the business logic for the credit ledger.
type Service struct {
	repo Repository

	now func() time.Time
}

// NewService creates a new credit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create records a credit. Receipt date defaults to today.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Credit, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if params.ReceiptDate == nil {
		n := s.now()
		today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
		params.ReceiptDate = &today
	}

	return s.repo.Create(ctx, params)
}

// List retrieves credits matching the filter.
func (s *Service) List(ctx context.Context, userID int64, filter Filter) ([]*CreditView, error) {
	return s.repo.List(ctx, userID, filter)
}

// Get retrieves one credit owned by the user.
func (s *Service) Get(ctx context.Context, id, userID int64) (*CreditView, error) {
	c, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCreditNotFound
	}
	return c, nil
}

// Update applies a partial edit to a credit owned by the user.
func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) error {
	if params.IsEmpty() {
		return ErrNothingToUpdate
	}
	if params.Amount != nil && !params.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return s.repo.Update(ctx, id, userID, params)
}

// Delete removes a credit owned by the user.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}
