// Package summary contains the ledger summary use case and its aggregation engine.
package summary

import (
	"time"

	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
)

// DefaultRangeDays is the length of the window used when no start date is given.
const DefaultRangeDays = 30

// ResolvedRange holds the requested period and the equally long period right before it.
type ResolvedRange struct {
	Current  valueobject.DateRange
	Previous valueobject.DateRange
}

// ResolveRange turns optional yyyy-MM-dd bounds into a concrete date range.
// An empty to means today (UTC day of now); an empty from means defaultDays days ending at to.
func ResolveRange(from, to string, now time.Time, defaultDays int) (*ResolvedRange, error) {
	if defaultDays <= 0 {
		defaultDays = DefaultRangeDays
	}

	end := valueobject.TruncateToDay(now)
	if to != "" {
		parsed, err := valueobject.ParseDate(to)
		if err != nil {
			return nil, domainerror.NewSummaryError(
				domainerror.ErrCodeInvalidDateFormat,
				"to must be a date in yyyy-MM-dd format",
				domainerror.ErrInvalidDateFormat,
			)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -(defaultDays - 1))
	if from != "" {
		parsed, err := valueobject.ParseDate(from)
		if err != nil {
			return nil, domainerror.NewSummaryError(
				domainerror.ErrCodeInvalidDateFormat,
				"from must be a date in yyyy-MM-dd format",
				domainerror.ErrInvalidDateFormat,
			)
		}
		start = parsed
	}

	current := valueobject.DateRange{Start: start, End: end}
	if !current.IsValid() {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidRange,
			"from must not be after to",
			domainerror.ErrInvalidRange,
		)
	}

	return &ResolvedRange{
		Current:  current,
		Previous: current.Previous(),
	}, nil
}
