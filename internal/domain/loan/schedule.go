package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type ScheduleEntry struct {
	Period    int             `json:"period"`
	DueDate   time.Time       `json:"due_date"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// BuildSchedule splits every installment into interest and principal.
// Interest is rounded per period; the final installment settles whatever
// balance is left so that principal portions add up to the loan amount.
func BuildSchedule(t Terms, start time.Time) ([]ScheduleEntry, error) {
	emi, err := ComputeEMI(t.Amount, t.InterestRate, t.Tenure)
	if err != nil {
		return nil, err
	}
	r := monthlyRate(t.InterestRate)
	balance := t.Amount
	out := make([]ScheduleEntry, 0, t.Tenure)

	for k := 1; k <= t.Tenure; k++ {
		interest := balance.Mul(r).Round(2)
		principal := emi.Amount.Sub(interest)
		payment := emi.Amount
		if k == t.Tenure || principal.GreaterThan(balance) {
			principal = balance
			payment = principal.Add(interest)
		}
		balance = balance.Sub(principal)
		out = append(out, ScheduleEntry{
			Period:    k,
			DueDate:   start.AddDate(0, k, 0),
			Payment:   payment,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
		if balance.IsZero() {
			break
		}
	}
	return out, nil
}
