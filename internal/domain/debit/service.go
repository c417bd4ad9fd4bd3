package debit

import (
	"context"
	"fmt"
	"time"

	"contas/internal/domain/catalog"
	"contas/internal/domain/supplier"
)

// Service contains the business logic of the debit ledger: installment
// generation, listing, the overdue sweep, settlement and edits.
type Service struct {
	repo      Repository
	suppliers supplier.Repository
	catalog   catalog.Repository

	now func() time.Time
}

// NewService creates a new debit ledger service.
func NewService(repo Repository, suppliers supplier.Repository, cat catalog.Repository) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		catalog:   cat,
		now:       time.Now,
	}
}

// CreateLaunch validates the request, derives the installment schedule and
// persists header plus installments atomically.
func (s *Service) CreateLaunch(ctx context.Context, params CreateParams) (*Launch, error) {
	if !params.TotalAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if params.InstallmentCount < 1 {
		return nil, ErrInvalidCount
	}

	// Ownership check by lookup, not by trusting the supplier id.
	sup, err := s.suppliers.GetByID(ctx, params.SupplierID, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify supplier: %w", err)
	}
	if sup == nil {
		return nil, ErrSupplierNotFound
	}

	docType, err := s.catalog.GetDocumentType(ctx, params.DocumentTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document type: %w", err)
	}
	if docType != nil {
		if params.InstallmentCount > 1 && !docType.AllowsInstallments {
			return nil, ErrInstallmentsDenied
		}
		if docType.RequiresCardBrand && params.CardBrandID == nil {
			return nil, ErrCardBrandRequired
		}
	}

	if params.LaunchDate == nil {
		today := dateOnly(s.now())
		params.LaunchDate = &today
	}
	if params.FirstDueDate == nil {
		firstDue := params.LaunchDate.AddDate(0, 0, 30)
		params.FirstDueDate = &firstDue
	}

	plan := BuildSchedule(params.TotalAmount, params.InstallmentCount, *params.FirstDueDate)

	return s.repo.CreateLaunch(ctx, params, plan)
}

// ListLaunches retrieves launch headers for a user.
func (s *Service) ListLaunches(ctx context.Context, userID int64, supplierID *int64) ([]*LaunchView, error) {
	return s.repo.ListLaunches(ctx, userID, supplierID)
}

// ListInstallments retrieves enriched installment rows matching the filter.
func (s *Service) ListInstallments(ctx context.Context, userID int64, filter Filter) ([]*InstallmentView, error) {
	return s.repo.ListInstallments(ctx, userID, filter)
}

// GetInstallment retrieves one enriched installment owned by the user.
func (s *Service) GetInstallment(ctx context.Context, id, userID int64) (*InstallmentView, error) {
	view, err := s.repo.GetInstallment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrInstallmentNotFound
	}
	return view, nil
}

// SweepOverdue transitions OPEN installments due before today to OVERDUE.
// Safe to call repeatedly; a second run transitions nothing.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	return s.repo.SweepOverdue(ctx, dateOnly(s.now()))
}

// OverdueCountsByUser reports current overdue counts per user.
func (s *Service) OverdueCountsByUser(ctx context.Context) ([]OverdueCount, error) {
	return s.repo.OverdueCountsByUser(ctx)
}

// Settle records a payment. Paid date defaults to today and paid amount to
// the scheduled amount. The transition to PAID is a direct overwrite: an
// already PAID or CANCELLED installment is settled again without complaint,
// which matches how corrections are entered today.
func (s *Service) Settle(ctx context.Context, id, userID int64, params SettleParams) error {
	view, err := s.repo.GetInstallment(ctx, id, userID)
	if err != nil {
		return err
	}
	if view == nil {
		return ErrInstallmentNotFound
	}

	paidDate := dateOnly(s.now())
	if params.PaidDate != nil {
		paidDate = *params.PaidDate
	}

	paidAmount := view.Amount
	if params.PaidAmount != nil {
		paidAmount = *params.PaidAmount
	}

	return s.repo.Settle(ctx, id, paidDate, paidAmount, params.Notes)
}

// UpdateInstallment applies a partial edit after verifying ownership.
func (s *Service) UpdateInstallment(ctx context.Context, id, userID int64, params UpdateParams) error {
	if params.IsEmpty() {
		return ErrNothingToUpdate
	}

	view, err := s.repo.GetInstallment(ctx, id, userID)
	if err != nil {
		return err
	}
	if view == nil {
		return ErrInstallmentNotFound
	}

	return s.repo.UpdateInstallment(ctx, id, params)
}

// dateOnly truncates a timestamp to midnight so due-date comparisons work on
// whole days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
