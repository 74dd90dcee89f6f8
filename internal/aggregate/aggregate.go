package aggregate

import (
	"sort"

	"basketcli/pkg/contracts/domain"
)

// KeyUnknown labels rows whose grouping attribute is missing (a basket with
// no matching customer, or a value outside its bucket domain). Keeping these
// rows visible under their own key is deliberate: dropping them would make
// absence indistinguishable from zero.
const KeyUnknown = "Unknown"

// KeyFunc extracts the grouping key for a record. ok false excludes the
// record from the grouping entirely.
type KeyFunc func(domain.JoinedRecord) (key string, ok bool)

// ValueFunc extracts the numeric value to reduce for a record.
type ValueFunc func(domain.JoinedRecord) float64

// Reducer collapses the values collected for one group into a single number.
// Reducers receive at least one value.
type Reducer func(values []float64) float64

// Built-in reducers over basket quantities.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func Mean(values []float64) float64 {
	return Sum(values) / float64(len(values))
}

func Count(values []float64) float64 {
	return float64(len(values))
}

func Min(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func Max(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// BasketCount is the standard ValueFunc for quantity aggregations.
func BasketCount(record domain.JoinedRecord) float64 {
	return float64(record.BasketCount)
}

// GroupReduce groups records by keyFn and reduces valueFn over each group.
func GroupReduce(records []domain.JoinedRecord, keyFn KeyFunc, valueFn ValueFunc, reduce Reducer) map[string]float64 {
	groups := make(map[string][]float64)
	for _, record := range records {
		key, ok := keyFn(record)
		if !ok {
			continue
		}
		groups[key] = append(groups[key], valueFn(record))
	}

	result := make(map[string]float64, len(groups))
	for key, values := range groups {
		result[key] = reduce(values)
	}
	return result
}

// KeyValue is one entry of an ordered aggregation result.
type KeyValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Reindex orders a grouping result over a fixed enumerated domain. Every
// domain key appears exactly once, with zero when no row matched, so charts
// and reports never silently omit an empty category. Keys outside the domain
// (such as KeyUnknown) are appended afterwards in ascending key order rather
// than discarded.
func Reindex(result map[string]float64, domainKeys []string) []KeyValue {
	ordered := make([]KeyValue, 0, len(domainKeys))
	seen := make(map[string]bool, len(domainKeys))
	for _, key := range domainKeys {
		ordered = append(ordered, KeyValue{Key: key, Value: result[key]})
		seen[key] = true
	}

	var extra []string
	for key := range result {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		ordered = append(ordered, KeyValue{Key: key, Value: result[key]})
	}

	return ordered
}

// SortedDesc orders a grouping result by descending value. Ties are broken by
// ascending key so repeated runs over the same input produce identical
// orderings.
func SortedDesc(result map[string]float64) []KeyValue {
	ordered := make([]KeyValue, 0, len(result))
	for key, value := range result {
		ordered = append(ordered, KeyValue{Key: key, Value: value})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Value != ordered[j].Value {
			return ordered[i].Value > ordered[j].Value
		}
		return ordered[i].Key < ordered[j].Key
	})
	return ordered
}

// SortedByKey orders a grouping result by ascending key. Used for date-keyed
// series where chronological order is wanted.
func SortedByKey(result map[string]float64) []KeyValue {
	ordered := make([]KeyValue, 0, len(result))
	for key, value := range result {
		ordered = append(ordered, KeyValue{Key: key, Value: value})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Key < ordered[j].Key
	})
	return ordered
}

// TopN returns the first n entries of the descending ordering of result,
// with the same deterministic tie-break as SortedDesc.
func TopN(result map[string]float64, n int) []KeyValue {
	ordered := SortedDesc(result)
	if n > 0 && len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}
