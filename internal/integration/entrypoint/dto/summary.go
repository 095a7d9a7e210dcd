package dto

import (
	"github.com/finance-tracker/ledger-api/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// SummaryResponse is the period summary. Amounts are miliunits.
type SummaryResponse struct {
	RemainingAmount int64                   `json:"remainingAmount"`
	IncomeAmount    int64                   `json:"incomeAmount"`
	ExpensesAmount  int64                   `json:"expensesAmount"`
	IncomeChange    float64                 `json:"incomeChange"`
	ExpensesChange  float64                 `json:"expensesChange"`
	Categories      []CategoryTotalResponse `json:"categories"`
	Days            []DayTotalResponse      `json:"days"`
}

// CategoryTotalResponse is one entry of the category breakdown.
type CategoryTotalResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DayTotalResponse is one entry of the daily series.
type DayTotalResponse struct {
	Date     string `json:"date"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
}

// ToSummaryResponse converts a computed summary to its response form.
func ToSummaryResponse(s *summary.Summary) SummaryResponse {
	categories := make([]CategoryTotalResponse, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = CategoryTotalResponse{Name: c.Name, Value: c.Value}
	}

	days := make([]DayTotalResponse, len(s.Days))
	for i, d := range s.Days {
		days[i] = DayTotalResponse{
			Date:     d.Date.Format(valueobject.DateLayout),
			Income:   d.Income,
			Expenses: d.Expenses,
		}
	}

	return SummaryResponse{
		RemainingAmount: s.RemainingAmount,
		IncomeAmount:    s.IncomeAmount,
		ExpensesAmount:  s.ExpensesAmount,
		IncomeChange:    s.IncomeChange,
		ExpensesChange:  s.ExpensesChange,
		Categories:      categories,
		Days:            days,
	}
}
