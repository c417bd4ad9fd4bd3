package credit

import "context"

// Repository defines the interface for credit ledger data access.
type Repository interface {
	// Create records a new credit event.
	Create(ctx context.Context, params CreateParams) (*Credit, error)

	// List retrieves credits of a user matching the filter, most recent
	// receipt date first.
	List(ctx context.Context, userID int64, filter Filter) ([]*CreditView, error)

	// GetByID retrieves one credit scoped to its owner. Returns
	// (nil, nil) when absent or owned by someone else.
	GetByID(ctx context.Context, id, userID int64) (*CreditView, error)

	// Update applies a partial update scoped to the owner.
	Update(ctx context.Context, id, userID int64, params UpdateParams) error

	// Delete removes a credit scoped to the owner.
	Delete(ctx context.Context, id, userID int64) error
}
