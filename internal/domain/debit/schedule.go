package debit

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentPlan is one computed slice of a payment schedule, ready to be
// persisted alongside its launch header.
type InstallmentPlan struct {
	Number  int
	Amount  decimal.Decimal
	DueDate time.Time
}

// installmentIntervalDays is the fixed cadence between due dates. Deliberately
// a flat 30 days rather than calendar months: schedules generated by earlier
// versions of the system depend on it.
const installmentIntervalDays = 30

// BuildSchedule splits total into count slices due at a fixed 30-day cadence
// starting at firstDue. Every slice except the last gets the rounded
// per-installment value; the last absorbs all rounding drift so that the sum
// of the slices equals total exactly.
func BuildSchedule(total decimal.Decimal, count int, firstDue time.Time) []InstallmentPlan {
	perInstallment := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	runningSum := perInstallment.Mul(decimal.NewFromInt(int64(count - 1)))
	lastAmount := total.Sub(runningSum).Round(2)

	plans := make([]InstallmentPlan, 0, count)
	for i := 0; i < count; i++ {
		amount := perInstallment
		if i == count-1 {
			amount = lastAmount
		}
		plans = append(plans, InstallmentPlan{
			Number: i + 1,
			Amount: amount,
			// Calendar arithmetic: a flat duration would drift across
			// DST transitions and land a day early.
			DueDate: firstDue.AddDate(0, 0, i*installmentIntervalDays),
		})
	}

	return plans
}
