package supplier

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrNameRequired     = errors.New("supplier name is required")
	ErrNothingToUpdate  = errors.New("no fields supplied for update")
)

// Supplier is a vendor/creditor registered by one user.
type Supplier struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	TaxID     *string   `json:"taxId,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for registering a supplier.
type CreateParams struct {
	UserID int64
	Name   string
	TaxID  *string
	Phone  *string
	Email  *string
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateParams is a partial update; only non-nil fields are changed.
type UpdateParams struct {
	Name   *string
	TaxID  *string
	Phone  *string
	Email  *string
	Active *bool
}

// IsEmpty reports whether no field was supplied.
func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.TaxID == nil && p.Phone == nil && p.Email == nil && p.Active == nil
}
