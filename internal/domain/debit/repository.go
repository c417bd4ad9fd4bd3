package debit

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for debit ledger data access.
// This interface is defined in the domain layer, but implemented in the
// infrastructure layer.
type Repository interface {
	// CreateLaunch persists a launch header together with its computed
	// installments as one atomic unit. Either everything commits or
	// nothing does.
	CreateLaunch(ctx context.Context, params CreateParams, plan []InstallmentPlan) (*Launch, error)

	// ListLaunches retrieves launch headers for a user, newest first,
	// optionally narrowed to one supplier.
	ListLaunches(ctx context.Context, userID int64, supplierID *int64) ([]*LaunchView, error)

	// ListInstallments retrieves enriched installment rows for a user,
	// ordered by due date then supplier name.
	ListInstallments(ctx context.Context, userID int64, filter Filter) ([]*InstallmentView, error)

	// GetInstallment retrieves a single enriched installment, verifying
	// ownership through the launch join. Returns (nil, nil) when the row
	// does not exist or belongs to another user.
	GetInstallment(ctx context.Context, id, userID int64) (*InstallmentView, error)

	// SweepOverdue transitions every OPEN installment due strictly before
	// today to OVERDUE and returns the number of rows affected.
	SweepOverdue(ctx context.Context, today time.Time) (int64, error)

	// OverdueCountsByUser returns, per user, how many installments are
	// currently OVERDUE. Used for post-sweep notifications.
	OverdueCountsByUser(ctx context.Context) ([]OverdueCount, error)

	// Settle records a payment on an installment: status PAID plus the
	// paid date, paid amount and notes. Callers must have verified
	// ownership beforehand.
	Settle(ctx context.Context, id int64, paidDate time.Time, paidAmount decimal.Decimal, notes *string) error

	// UpdateInstallment applies a partial update to an installment.
	// Callers must have verified ownership beforehand.
	UpdateInstallment(ctx context.Context, id int64, params UpdateParams) error
}
