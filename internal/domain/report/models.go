package report

import (
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/domain/debit"
	"contas/internal/domain/supplier"
)

// Entry kinds in a running statement.
const (
	KindCredit = "CREDIT"
	KindDebit  = "DEBIT"
)

// StatementEntry is one line of the running statement: a credit receipt
// or an installment due-event, with the cumulative balance after it.
type StatementEntry struct {
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// SupplierStats aggregates the installments of a single supplier.
type SupplierStats struct {
	TotalCount   int             `json:"totalCount"`
	PaidCount    int             `json:"paidCount"`
	OpenCount    int             `json:"openCount"`
	OverdueCount int             `json:"overdueCount"`
	PaidTotal    decimal.Decimal `json:"paidTotal"`
	OpenTotal    decimal.Decimal `json:"openTotal"`
}

// SupplierReport is a supplier profile with its installments and stats.
type SupplierReport struct {
	Supplier     *supplier.Supplier       `json:"supplier"`
	Installments []*debit.InstallmentView `json:"installments"`
	Stats        SupplierStats            `json:"stats"`
}

// PeriodSummary is the dashboard aggregate for an inclusive date window.
// Debits are bucketed by installment due date, not by launch date.
type PeriodSummary struct {
	Credits    decimal.Decimal `json:"credits"`
	Debits     decimal.Decimal `json:"debits"`
	DebitsOpen decimal.Decimal `json:"debitsOpen"`
	DebitsPaid decimal.Decimal `json:"debitsPaid"`
	Balance    decimal.Decimal `json:"balance"`
}
