package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"basketcli/pkg/contracts/domain"
)

// sexReplaceMap is the explicit set of placeholder tokens known to appear in
// the sex column, mapped onto the canonical Other category. Matching is exact
// and case-sensitive. Tokens outside this map and outside the canonical
// categories pass through unchanged so new anomalies stay visible instead of
// disappearing into Other.
var sexReplaceMap = map[string]string{
	"kvkktalepsilindi": domain.SexOther,
	"UNKNOWN":          domain.SexOther,
}

// CleaningOperation records one value the cleaner rewrote, for the report's
// data quality section.
type CleaningOperation struct {
	CustomerID string `json:"customer_id"`
	Field      string `json:"field"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	Reason     string `json:"reason"`
}

// CleanResult holds the cleaned customer table together with an audit trail
// of every substitution performed.
type CleanResult struct {
	Customers  []domain.CustomerRecord `json:"customers"`
	Operations []CleaningOperation     `json:"operations"`
	AgeMedian  float64                 `json:"age_median"`
}

// Cleaner normalizes the customer table: placeholder sex tokens become the
// canonical Other category and out-of-range ages are imputed with the column
// median. Rows are never dropped, the output always has the same row count
// and customer id multiset as the input so the downstream join stays intact.
type Cleaner struct {
	logger      *slog.Logger
	maxValidAge int
}

// NewCleaner creates a cleaner. maxValidAge is the largest age treated as
// genuine; values above it are imputed. Zero or negative falls back to 100.
func NewCleaner(logger *slog.Logger, maxValidAge int) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if maxValidAge <= 0 {
		maxValidAge = 100
	}
	return &Cleaner{logger: logger, maxValidAge: maxValidAge}
}

// CleanCustomers returns a cleaned copy of the customer table. The input
// slice is not modified.
//
// The age median is computed once, before any substitution, over the ages
// that are within the valid range; every age above the valid maximum is then
// replaced with that single scalar. The median is deliberately not recomputed
// after substitutions; that is the statistical contract that makes cleaning
// idempotent (imputed values never exceed the valid maximum). A column with
// no in-range age at all has nothing to impute from, so anomalous ages are
// left untouched in that case.
func (c *Cleaner) CleanCustomers(customers []domain.CustomerRecord) CleanResult {
	result := CleanResult{
		Customers: make([]domain.CustomerRecord, len(customers)),
	}
	copy(result.Customers, customers)

	median, hasMedian := ageMedian(customers, c.maxValidAge)
	result.AgeMedian = median
	imputedAge := int(math.Round(median))

	for i := range result.Customers {
		record := &result.Customers[i]

		if canonical, ok := sexReplaceMap[record.Sex]; ok && record.Sex != canonical {
			result.Operations = append(result.Operations, CleaningOperation{
				CustomerID: record.CustomerID,
				Field:      "sex",
				OldValue:   record.Sex,
				NewValue:   canonical,
				Reason:     "placeholder_token",
			})
			record.Sex = canonical
		}

		if record.CustomerAge > c.maxValidAge && hasMedian {
			result.Operations = append(result.Operations, CleaningOperation{
				CustomerID: record.CustomerID,
				Field:      "customer_age",
				OldValue:   fmt.Sprintf("%d", record.CustomerAge),
				NewValue:   fmt.Sprintf("%d", imputedAge),
				Reason:     "age_out_of_range",
			})
			record.CustomerAge = imputedAge
		}
	}

	c.logger.Info("cleaned customer table",
		slog.Int("rows", len(result.Customers)),
		slog.Int("substitutions", len(result.Operations)),
		slog.Float64("age_median", result.AgeMedian))

	return result
}

// ageMedian computes the median of the in-range ages as loaded, before any
// substitution. An even-length column yields the mean of the two middle
// values. The second return is false when no age is within range.
func ageMedian(customers []domain.CustomerRecord, maxValidAge int) (float64, bool) {
	ages := make([]float64, 0, len(customers))
	for _, record := range customers {
		if record.CustomerAge <= maxValidAge {
			ages = append(ages, float64(record.CustomerAge))
		}
	}
	if len(ages) == 0 {
		return 0, false
	}
	sort.Float64s(ages)

	mid := len(ages) / 2
	if len(ages)%2 == 1 {
		return ages[mid], true
	}
	return (ages[mid-1] + ages[mid]) / 2, true
}
