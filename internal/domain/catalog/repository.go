package catalog

import "context"

// Repository defines the interface for reference-data access.
type Repository interface {
	ListPaymentForms(ctx context.Context) ([]*PaymentForm, error)
	ListDocumentTypes(ctx context.Context) ([]*DocumentType, error)

	// GetDocumentType returns (nil, nil) when the id is unknown.
	GetDocumentType(ctx context.Context, id int64) (*DocumentType, error)

	ListCardBrands(ctx context.Context) ([]*CardBrand, error)
	ListStatuses(ctx context.Context) ([]*Status, error)
	ListCreditTypes(ctx context.Context) ([]*CreditType, error)
}
