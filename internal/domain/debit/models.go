package debit

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Installment status ids. These are seeded with fixed ids because the
// sweep, the settlement path and the reports all branch on the literals.
const (
	StatusOpen      int64 = 1
	StatusPaid      int64 = 2
	StatusOverdue   int64 = 3
	StatusCancelled int64 = 4
)

// Domain errors
var (
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrInvalidAmount       = errors.New("total amount must be greater than zero")
	ErrInvalidCount        = errors.New("installment count must be at least 1")
	ErrInstallmentsDenied  = errors.New("document type does not allow installments")
	ErrCardBrandRequired   = errors.New("document type requires a card brand")
	ErrNothingToUpdate     = errors.New("no fields supplied for update")
)

// Launch represents a debit obligation header. The header is immutable once
// created; only its installments change state afterwards.
type Launch struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userId"`
	SupplierID       int64           `json:"supplierId"`
	PaymentFormID    int64           `json:"paymentFormId"`
	DocumentTypeID   int64           `json:"documentTypeId"`
	CardBrandID      *int64          `json:"cardBrandId,omitempty"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Description      string          `json:"description"`
	InstallmentCount int             `json:"installmentCount"`
	LaunchDate       time.Time       `json:"launchDate"`
	Notes            *string         `json:"notes,omitempty"`
}

// LaunchView is a launch header with its lookup descriptions resolved.
type LaunchView struct {
	Launch
	SupplierName string  `json:"supplierName"`
	DocumentType string  `json:"documentType"`
	PaymentForm  string  `json:"paymentForm"`
	CardBrand    *string `json:"cardBrand,omitempty"`
}

// Installment is one scheduled payment slice of a launch.
type Installment struct {
	ID         int64            `json:"id"`
	LaunchID   int64            `json:"launchId"`
	Number     int              `json:"number"`
	Amount     decimal.Decimal  `json:"amount"`
	DueDate    time.Time        `json:"dueDate"`
	StatusID   int64            `json:"statusId"`
	PaidDate   *time.Time       `json:"paidDate,omitempty"`
	PaidAmount *decimal.Decimal `json:"paidAmount,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// InstallmentView is the denormalized read model used by listings and
// dashboards: one row carries everything the UI needs without extra calls.
type InstallmentView struct {
	Installment
	SupplierID        int64           `json:"supplierId"`
	SupplierName      string          `json:"supplierName"`
	DocumentType      string          `json:"documentType"`
	PaymentForm       string          `json:"paymentForm"`
	CardBrand         *string         `json:"cardBrand,omitempty"`
	StatusDescription string          `json:"statusDescription"`
	StatusColor       string          `json:"statusColor"`
	LaunchDescription string          `json:"launchDescription"`
	LaunchTotal       decimal.Decimal `json:"launchTotal"`
	LaunchCount       int             `json:"launchCount"`
}

// CreateParams contains parameters for creating a launch.
type CreateParams struct {
	UserID           int64
	SupplierID       int64
	PaymentFormID    int64
	DocumentTypeID   int64
	CardBrandID      *int64
	TotalAmount      decimal.Decimal
	Description      string
	InstallmentCount int
	LaunchDate       *time.Time
	FirstDueDate     *time.Time
	Notes            *string
}

// Filter narrows installment listings. All supplied predicates are combined
// with AND; the owning user is always implicit.
type Filter struct {
	SupplierID *int64
	StatusID   *int64
	From       *time.Time
	To         *time.Time
}

// SettleParams contains the optional overrides for recording a payment.
type SettleParams struct {
	PaidDate   *time.Time
	PaidAmount *decimal.Decimal
	Notes      *string
}

// UpdateParams is a partial update of a single installment. Only non-nil
// fields are written.
type UpdateParams struct {
	Amount   *decimal.Decimal
	DueDate  *time.Time
	StatusID *int64
	Notes    *string
}

// IsEmpty reports whether no field was supplied.
func (p UpdateParams) IsEmpty() bool {
	return p.Amount == nil && p.DueDate == nil && p.StatusID == nil && p.Notes == nil
}

// OverdueCount is the per-user result of a sweep, used for notifications.
type OverdueCount struct {
	UserID int64
	Count  int64
}
