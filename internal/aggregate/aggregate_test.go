package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basketcli/pkg/contracts/domain"
)

func record(productID, sex, dayOfWeek string, count int) domain.JoinedRecord {
	return domain.JoinedRecord{
		BasketRecord:  domain.BasketRecord{CustomerID: "C", ProductID: productID, BasketCount: count, BasketDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		CustomerKnown: sex != "",
		Sex:           sex,
		DayOfWeek:     dayOfWeek,
	}
}

func TestReducers(t *testing.T) {
	values := []float64{4, 1, 3}

	tests := []struct {
		name    string
		reducer Reducer
		want    float64
	}{
		{"sum", Sum, 8},
		{"mean", Mean, 8.0 / 3.0},
		{"count", Count, 3},
		{"min", Min, 1},
		{"max", Max, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.reducer(values), 1e-9)
		})
	}
}

func TestGroupReduce(t *testing.T) {
	records := []domain.JoinedRecord{
		record("P1", "Male", "Monday", 3),
		record("P2", "Male", "Monday", 5),
		record("P1", "Female", "Tuesday", 2),
	}

	tests := []struct {
		name    string
		keyFn   KeyFunc
		reducer Reducer
		want    map[string]float64
	}{
		{
			name:    "sum by product",
			keyFn:   func(r domain.JoinedRecord) (string, bool) { return r.ProductID, true },
			reducer: Sum,
			want:    map[string]float64{"P1": 5, "P2": 5},
		},
		{
			name:    "count by sex",
			keyFn:   func(r domain.JoinedRecord) (string, bool) { return r.Sex, true },
			reducer: Count,
			want:    map[string]float64{"Male": 2, "Female": 1},
		},
		{
			name:    "max by product",
			keyFn:   func(r domain.JoinedRecord) (string, bool) { return r.ProductID, true },
			reducer: Max,
			want:    map[string]float64{"P1": 3, "P2": 5},
		},
		{
			name:    "excluded records are skipped",
			keyFn:   func(r domain.JoinedRecord) (string, bool) { return r.ProductID, r.ProductID == "P1" },
			reducer: Sum,
			want:    map[string]float64{"P1": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupReduce(records, tt.keyFn, BasketCount, tt.reducer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReindex_ZeroFill(t *testing.T) {
	// Only 5 of 7 weekdays present; the two absent ones must still be
	// reported, with zero rather than omitted.
	result := map[string]float64{
		"Monday":    3,
		"Tuesday":   1,
		"Wednesday": 2,
		"Thursday":  4,
		"Friday":    5,
	}

	ordered := Reindex(result, domain.Weekdays())
	require.Len(t, ordered, 7)

	byKey := make(map[string]float64)
	for _, kv := range ordered {
		byKey[kv.Key] = kv.Value
	}
	assert.Equal(t, 0.0, byKey["Saturday"])
	assert.Equal(t, 0.0, byKey["Sunday"])
	assert.Equal(t, 3.0, byKey["Monday"])

	// Domain order preserved.
	assert.Equal(t, "Monday", ordered[0].Key)
	assert.Equal(t, "Sunday", ordered[6].Key)
}

func TestReindex_SurfacesOutOfDomainKeys(t *testing.T) {
	result := map[string]float64{
		domain.AgeGroup18To25: 5,
		KeyUnknown:            2,
	}

	ordered := Reindex(result, domain.AgeGroups())
	require.Len(t, ordered, 6)
	assert.Equal(t, KeyValue{Key: KeyUnknown, Value: 2}, ordered[5])
}

func TestSortedDesc_StableTieBreak(t *testing.T) {
	result := map[string]float64{
		"P3": 5,
		"P1": 5,
		"P2": 7,
	}

	// Repeated runs must yield identical order: descending value, ties by
	// ascending key.
	want := []KeyValue{{"P2", 7}, {"P1", 5}, {"P3", 5}}
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, SortedDesc(result))
	}
}

func TestTopN(t *testing.T) {
	result := map[string]float64{"P1": 1, "P2": 9, "P3": 5, "P4": 5}

	tests := []struct {
		name string
		n    int
		want []KeyValue
	}{
		{"top 2", 2, []KeyValue{{"P2", 9}, {"P3", 5}}},
		{"top 3 with tie", 3, []KeyValue{{"P2", 9}, {"P3", 5}, {"P4", 5}}},
		{"n larger than groups", 10, []KeyValue{{"P2", 9}, {"P3", 5}, {"P4", 5}, {"P1", 1}}},
		{"zero means all", 0, []KeyValue{{"P2", 9}, {"P3", 5}, {"P4", 5}, {"P1", 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopN(result, tt.n))
		})
	}
}

func TestSortedByKey(t *testing.T) {
	result := map[string]float64{"2024-01-03": 1, "2024-01-01": 2, "2024-01-02": 3}

	ordered := SortedByKey(result)
	require.Len(t, ordered, 3)
	assert.Equal(t, "2024-01-01", ordered[0].Key)
	assert.Equal(t, "2024-01-03", ordered[2].Key)
}
