package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildSchedule_SettlesPrincipal(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	terms := Terms{Amount: d("100000"), InterestRate: d("12"), Tenure: 12}

	sched, err := BuildSchedule(terms, start)
	if err != nil {
		t.Fatalf("BuildSchedule: %v", err)
	}
	if len(sched) != 12 {
		t.Fatalf("len = %d, want 12", len(sched))
	}

	first := sched[0]
	if first.Period != 1 || !first.DueDate.Equal(time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first row = %+v", first)
	}
	if !first.Interest.Equal(d("1000")) || !first.Payment.Equal(d("8884.88")) {
		t.Fatalf("first interest/payment = %s/%s", first.Interest, first.Payment)
	}

	if last := sched[len(sched)-1]; !last.Balance.IsZero() {
		t.Fatalf("final balance = %s", last.Balance)
	}

	total := decimal.Zero
	for _, e := range sched {
		total = total.Add(e.Principal)
		if !e.Payment.Equal(e.Principal.Add(e.Interest)) {
			t.Fatalf("period %d: payment %s != principal %s + interest %s", e.Period, e.Payment, e.Principal, e.Interest)
		}
	}
	if !total.Equal(terms.Amount) {
		t.Fatalf("principal sum = %s, want %s", total, terms.Amount)
	}
}

func TestBuildSchedule_InvalidTerms(t *testing.T) {
	_, err := BuildSchedule(Terms{Amount: d("1000"), InterestRate: d("0"), Tenure: 12}, time.Now())
	if !errors.Is(err, ErrInvalidTerms) {
		t.Fatalf("err = %v, want ErrInvalidTerms", err)
	}
}
