package catalog

// Reference data shared by every user: how something was paid, what kind of
// document backs it, which card brand, installment status and credit type.
// Seeded once at migration time; ids are stable afterwards.

type PaymentForm struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type DocumentType struct {
	ID                 int64  `json:"id"`
	Description        string `json:"description"`
	RequiresCardBrand  bool   `json:"requiresCardBrand"`
	AllowsInstallments bool   `json:"allowsInstallments"`
	Active             bool   `json:"active"`
}

type CardBrand struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Status is the id/description/color tuple backing the installment
// lifecycle. Ids 1..4 are fixed: Open, Paid, Overdue, Cancelled.
type Status struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type CreditType struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
