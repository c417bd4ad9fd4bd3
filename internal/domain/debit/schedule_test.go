package debit

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildSchedule_SingleInstallment(t *testing.T) {
	firstDue := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	plans := BuildSchedule(decimal.NewFromFloat(250.00), 1, firstDue)

	if len(plans) != 1 {
		t.Fatalf("len(plans) = %d, want 1", len(plans))
	}
	if !plans[0].Amount.Equal(decimal.NewFromFloat(250.00)) {
		t.Errorf("Amount = %s, want 250", plans[0].Amount)
	}
	if plans[0].Number != 1 {
		t.Errorf("Number = %d, want 1", plans[0].Number)
	}
	if !plans[0].DueDate.Equal(firstDue) {
		t.Errorf("DueDate = %v, want %v", plans[0].DueDate, firstDue)
	}
}

func TestBuildSchedule_EvenSplit(t *testing.T) {
	firstDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	plans := BuildSchedule(decimal.NewFromFloat(300.00), 3, firstDue)

	if len(plans) != 3 {
		t.Fatalf("len(plans) = %d, want 3", len(plans))
	}
	for i, p := range plans {
		if !p.Amount.Equal(decimal.NewFromFloat(100.00)) {
			t.Errorf("plans[%d].Amount = %s, want 100", i, p.Amount)
		}
	}
}

func TestBuildSchedule_LastAbsorbsRounding(t *testing.T) {
	firstDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	plans := BuildSchedule(decimal.NewFromFloat(100.00), 3, firstDue)

	if len(plans) != 3 {
		t.Fatalf("len(plans) = %d, want 3", len(plans))
	}
	if !plans[0].Amount.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("plans[0].Amount = %s, want 33.33", plans[0].Amount)
	}
	if !plans[1].Amount.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("plans[1].Amount = %s, want 33.33", plans[1].Amount)
	}
	if !plans[2].Amount.Equal(decimal.NewFromFloat(33.34)) {
		t.Errorf("plans[2].Amount = %s, want 33.34", plans[2].Amount)
	}
}

func TestBuildSchedule_SumEqualsTotal(t *testing.T) {
	firstDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	totals := []string{"100.00", "99.99", "1234.56", "0.01", "7777.77"}
	counts := []int{1, 2, 3, 6, 7, 12, 24}

	for _, totalStr := range totals {
		total := decimal.RequireFromString(totalStr)
		for _, count := range counts {
			plans := BuildSchedule(total, count, firstDue)

			sum := decimal.Zero
			for _, p := range plans {
				sum = sum.Add(p.Amount)
			}
			if !sum.Equal(total) {
				t.Errorf("sum of %d installments of %s = %s, want %s", count, totalStr, sum, totalStr)
			}
		}
	}
}

func TestBuildSchedule_ThirtyDayCadence(t *testing.T) {
	firstDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	plans := BuildSchedule(decimal.NewFromFloat(400.00), 4, firstDue)

	for i, p := range plans {
		want := firstDue.AddDate(0, 0, 30*i)
		if !p.DueDate.Equal(want) {
			t.Errorf("plans[%d].DueDate = %v, want %v", i, p.DueDate, want)
		}
		if p.Number != i+1 {
			t.Errorf("plans[%d].Number = %d, want %d", i, p.Number, i+1)
		}
	}
}

func TestBuildSchedule_CadenceAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// The November fall-back sits between the first and second due dates;
	// a flat 720h step would land the second installment a day early.
	firstDue := time.Date(2025, 10, 15, 0, 0, 0, 0, loc)
	plans := BuildSchedule(decimal.NewFromFloat(300.00), 3, firstDue)

	for i, p := range plans {
		want := firstDue.AddDate(0, 0, 30*i)
		if !p.DueDate.Equal(want) {
			t.Errorf("plans[%d].DueDate = %v, want %v", i, p.DueDate, want)
		}
		if y, m, d := p.DueDate.Date(); y != want.Year() || m != want.Month() || d != want.Day() {
			t.Errorf("plans[%d] calendar date = %04d-%02d-%02d, want %s",
				i, y, m, d, want.Format("2006-01-02"))
		}
	}
}
