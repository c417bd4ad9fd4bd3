package credit

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrCreditNotFound  = errors.New("credit not found")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrNothingToUpdate = errors.New("no fields supplied for update")
)

// Credit is a single income event: salary, bonus, refund. No installments.
type Credit struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	CreditTypeID int64           `json:"creditTypeId"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
	ReceiptDate  time.Time       `json:"receiptDate"`
	Notes        *string         `json:"notes,omitempty"`
	RecordedAt   time.Time       `json:"recordedAt"`
}

// CreditView resolves the credit type description for listings.
type CreditView struct {
	Credit
	CreditType string `json:"creditType"`
}

// CreateParams contains parameters for recording a credit.
type CreateParams struct {
	UserID       int64
	CreditTypeID int64
	Amount       decimal.Decimal
	Description  *string
	ReceiptDate  *time.Time
	Notes        *string
}

// Filter narrows credit listings; all predicates combine with AND.
type Filter struct {
	CreditTypeID *int64
	From         *time.Time
	To           *time.Time
}

// UpdateParams is a partial update; only non-nil fields are changed.
type UpdateParams struct {
	CreditTypeID *int64
	Amount       *decimal.Decimal
	Description  *string
	ReceiptDate  *time.Time
	Notes        *string
}

// IsEmpty reports whether no field was supplied.
func (p UpdateParams) IsEmpty() bool {
	return p.CreditTypeID == nil && p.Amount == nil && p.Description == nil &&
		p.ReceiptDate == nil && p.Notes == nil
}
