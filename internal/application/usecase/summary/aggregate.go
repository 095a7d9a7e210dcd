package summary

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

const (
	// DefaultTopCategories is how many categories are listed before the rest is folded into "Other".
	DefaultTopCategories = 5

	// UncategorizedName labels expenses without a (known) category.
	UncategorizedName = "Uncategorized"

	// OtherCategoryName labels the bucket that collects categories beyond the top N.
	OtherCategoryName = "Other"
)

// Options tunes the aggregation.
type Options struct {
	TopCategories int
}

// CategoryTotal is the absolute expense total of one category, in miliunits.
type CategoryTotal struct {
	Name  string
	Value int64
}

// DayTotal holds the income and the absolute expenses of a single day, in miliunits.
type DayTotal struct {
	Date     time.Time
	Income   int64
	Expenses int64
}

// Summary is the aggregated view of a period. Amounts are miliunits;
// ExpensesAmount is the signed (non-positive) sum of expenses.
type Summary struct {
	RemainingAmount int64
	IncomeAmount    int64
	ExpensesAmount  int64
	IncomeChange    float64
	ExpensesChange  float64
	Categories      []CategoryTotal
	Days            []DayTotal
}

type totals struct {
	income   int64
	expenses int64
}

// Aggregate computes the summary of rng from the current and previous period transactions.
// It performs no I/O and never mutates its inputs.
func Aggregate(
	rng valueobject.DateRange,
	current, previous []*entity.Transaction,
	categories []*entity.Category,
	opts Options,
) (*Summary, error) {
	if !rng.IsValid() {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidRange,
			"range start must not be after its end",
			domainerror.ErrInvalidRange,
		)
	}

	cur := sumTotals(current)
	prev := sumTotals(previous)

	return &Summary{
		RemainingAmount: cur.income + cur.expenses,
		IncomeAmount:    cur.income,
		ExpensesAmount:  cur.expenses,
		IncomeChange:    ComputePercentChange(cur.income, prev.income),
		ExpensesChange:  ComputePercentChange(cur.expenses, prev.expenses),
		Categories:      breakdownByCategory(current, categories, opts.topCategories()),
		Days:            dailySeries(rng, current),
	}, nil
}

func (o Options) topCategories() int {
	if o.TopCategories <= 0 {
		return DefaultTopCategories
	}
	return o.TopCategories
}

func sumTotals(transactions []*entity.Transaction) totals {
	var t totals
	for _, tx := range transactions {
		switch {
		case tx.Amount > 0:
			t.income += tx.Amount
		case tx.Amount < 0:
			t.expenses += tx.Amount
		}
	}
	return t
}

// breakdownByCategory groups expenses by category, sorts them by value descending
// (ties by name) and folds everything past topN into a trailing "Other" bucket.
func breakdownByCategory(transactions []*entity.Transaction, categories []*entity.Category, topN int) []CategoryTotal {
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	// uuid.Nil collects uncategorized expenses.
	byCategory := make(map[uuid.UUID]int64)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		key := uuid.Nil
		if tx.CategoryID != nil {
			if _, ok := names[*tx.CategoryID]; ok {
				key = *tx.CategoryID
			}
		}
		byCategory[key] += -tx.Amount
	}

	sorted := make([]CategoryTotal, 0, len(byCategory))
	for id, value := range byCategory {
		name := UncategorizedName
		if id != uuid.Nil {
			name = names[id]
		}
		sorted = append(sorted, CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Name < sorted[j].Name
	})

	if len(sorted) <= topN {
		return sorted
	}

	var other int64
	for _, ct := range sorted[topN:] {
		other += ct.Value
	}
	result := make([]CategoryTotal, 0, topN+1)
	result = append(result, sorted[:topN]...)
	return append(result, CategoryTotal{Name: OtherCategoryName, Value: other})
}

// dailySeries returns one entry per day of rng, zero-filled, in ascending order.
func dailySeries(rng valueobject.DateRange, transactions []*entity.Transaction) []DayTotal {
	days := rng.EachDay()
	series := make([]DayTotal, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		series[i] = DayTotal{Date: d}
		index[d.Format(valueobject.DateLayout)] = i
	}

	for _, tx := range transactions {
		i, ok := index[valueobject.TruncateToDay(tx.Date).Format(valueobject.DateLayout)]
		if !ok {
			continue
		}
		switch {
		case tx.Amount > 0:
			series[i].Income += tx.Amount
		case tx.Amount < 0:
			series[i].Expenses += -tx.Amount
		}
	}

	return series
}
