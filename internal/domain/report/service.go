package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/domain/debit"
	"contas/internal/domain/supplier"
)

// Service assembles the read-side reports. It consumes the debit and
// supplier repositories directly for the joins the statement query does
// not cover.
type Service struct {
	repo      Repository
	suppliers supplier.Repository
	debits    debit.Repository
}

func NewService(repo Repository, suppliers supplier.Repository, debits debit.Repository) *Service {
	return &Service{repo: repo, suppliers: suppliers, debits: debits}
}

// Statement returns the running statement for the window with the
// cumulative balance computed over the sorted entries. An empty window
// yields an empty statement, not an error.
func (s *Service) Statement(ctx context.Context, userID int64, from, to time.Time) ([]*StatementEntry, error) {
	entries, err := s.repo.Statement(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build statement: %w", err)
	}

	balance := decimal.Zero
	for _, e := range entries {
		if e.Kind == KindCredit {
			balance = balance.Add(e.Amount)
		} else {
			balance = balance.Sub(e.Amount)
		}
		e.Balance = balance
	}
	return entries, nil
}

// MonthlyDebits lists every installment due within the calendar month,
// regardless of status.
func (s *Service) MonthlyDebits(ctx context.Context, userID int64, year int, month time.Month) ([]*debit.InstallmentView, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	views, err := s.debits.ListInstallments(ctx, userID, debit.Filter{From: &first, To: &last})
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly debits: %w", err)
	}
	return views, nil
}

// SupplierReport returns the supplier profile, its installments in the
// optional window, and the aggregate stats. Paid totals use the actual
// paid amount when one was recorded, falling back to the scheduled amount.
func (s *Service) SupplierReport(ctx context.Context, userID, supplierID int64, from, to *time.Time) (*SupplierReport, error) {
	sup, err := s.suppliers.GetByID(ctx, supplierID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supplier: %w", err)
	}
	if sup == nil {
		return nil, supplier.ErrSupplierNotFound
	}

	views, err := s.debits.ListInstallments(ctx, userID, debit.Filter{
		SupplierID: &supplierID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier installments: %w", err)
	}

	stats := SupplierStats{PaidTotal: decimal.Zero, OpenTotal: decimal.Zero}
	for _, v := range views {
		stats.TotalCount++
		switch v.StatusID {
		case debit.StatusPaid:
			stats.PaidCount++
			amount := v.Amount
			if v.PaidAmount != nil {
				amount = *v.PaidAmount
			}
			stats.PaidTotal = stats.PaidTotal.Add(amount)
		case debit.StatusOpen:
			stats.OpenCount++
			stats.OpenTotal = stats.OpenTotal.Add(v.Amount)
		case debit.StatusOverdue:
			stats.OverdueCount++
			stats.OpenTotal = stats.OpenTotal.Add(v.Amount)
		}
	}

	return &SupplierReport{Supplier: sup, Installments: views, Stats: stats}, nil
}

// Summary returns the dashboard totals for the window.
func (s *Service) Summary(ctx context.Context, userID int64, from, to time.Time) (*PeriodSummary, error) {
	summary, err := s.repo.PeriodTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build period summary: %w", err)
	}
	summary.Balance = summary.Credits.Sub(summary.Debits)
	return summary, nil
}
