package supplier

import "context"

// Repository defines the interface for supplier data access.
type Repository interface {
	// Create registers a new supplier for a user.
	Create(ctx context.Context, params CreateParams) (*Supplier, error)

	// ListByUserID retrieves all suppliers of a user ordered by name.
	ListByUserID(ctx context.Context, userID int64) ([]*Supplier, error)

	// GetByID retrieves one supplier scoped to its owner. Returns
	// (nil, nil) when absent or owned by someone else.
	GetByID(ctx context.Context, id, userID int64) (*Supplier, error)

	// Update applies a partial update scoped to the owner.
	Update(ctx context.Context, id, userID int64, params UpdateParams) (*Supplier, error)

	// Deactivate soft-deletes a supplier scoped to the owner.
	Deactivate(ctx context.Context, id, userID int64) error
}
