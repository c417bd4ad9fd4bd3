package instrument

import (
	"errors"
	"time"
)

// Instrument kinds
var validKinds = map[string]struct{}{
	"CREDIT_CARD": {},
	"DEBIT_CARD":  {},
	"PIX":         {},
}

// Domain errors
var (
	ErrInstrumentNotFound = errors.New("payment instrument not found")
	ErrInvalidKind        = errors.New("invalid payment instrument kind")
	ErrBankRequired       = errors.New("bank is required")
)

// Instrument is a payment instrument registered by a user: a card or a PIX
// key tied to a bank.
type Instrument struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Kind      string    `json:"kind"` // CREDIT_CARD, DEBIT_CARD, PIX
	Bank      string    `json:"bank"`
	Brand     *string   `json:"brand,omitempty"`    // cards only
	LastFour  *string   `json:"lastFour,omitempty"` // cards only
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for registering an instrument.
type CreateParams struct {
	UserID   int64
	Kind     string
	Bank     string
	Brand    *string
	LastFour *string
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	if p.Bank == "" {
		return ErrBankRequired
	}
	return nil
}

// IsValidKind checks if the provided kind is valid.
func IsValidKind(k string) bool {
	_, ok := validKinds[k]
	return ok
}
