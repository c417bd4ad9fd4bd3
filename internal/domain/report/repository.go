package report

import (
	"context"
	"time"
)

// Repository defines the read-side queries behind the reports. Entries come
// back sorted by date with credits before debits on the same day; the
// running balance is filled in by the service.
type Repository interface {
	Statement(ctx context.Context, userID int64, from, to time.Time) ([]*StatementEntry, error)

	// PeriodTotals returns credit and debit sums for the window. Balance is
	// left zero for the service to derive.
	PeriodTotals(ctx context.Context, userID int64, from, to time.Time) (*PeriodSummary, error)
}
