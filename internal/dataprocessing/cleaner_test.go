package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basketcli/pkg/contracts/domain"
)

func TestCleaner_SexNormalization(t *testing.T) {
	tests := []struct {
		name    string
		sex     string
		wantSex string
	}{
		{
			name:    "kvkk deletion placeholder",
			sex:     "kvkktalepsilindi",
			wantSex: domain.SexOther,
		},
		{
			name:    "unknown placeholder",
			sex:     "UNKNOWN",
			wantSex: domain.SexOther,
		},
		{
			name:    "canonical male untouched",
			sex:     "Male",
			wantSex: "Male",
		},
		{
			name:    "canonical female untouched",
			sex:     "Female",
			wantSex: "Female",
		},
		{
			name:    "unrecognized token passes through",
			sex:     "unknown", // lower case, not in the map: matching is exact
			wantSex: "unknown",
		},
		{
			name:    "empty passes through",
			sex:     "",
			wantSex: "",
		},
	}

	cleaner := NewCleaner(nil, 100)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleaner.CleanCustomers([]domain.CustomerRecord{
				{CustomerID: "C1", Sex: tt.sex, CustomerAge: 30, Tenure: 45},
			})

			require.Len(t, result.Customers, 1)
			assert.Equal(t, tt.wantSex, result.Customers[0].Sex)
		})
	}
}

func TestCleaner_AgeImputation(t *testing.T) {
	tests := []struct {
		name       string
		ages       []int
		wantAges   []int
		wantMedian float64
	}{
		{
			name:       "anomaly replaced by median of valid ages",
			ages:       []int{30, 150},
			wantAges:   []int{30, 30},
			wantMedian: 30,
		},
		{
			name:       "odd count of valid ages",
			ages:       []int{20, 30, 40, 500},
			wantAges:   []int{20, 30, 40, 30},
			wantMedian: 30,
		},
		{
			name:       "even count uses mean of middle values",
			ages:       []int{20, 30, 40, 50, 999},
			wantAges:   []int{20, 30, 40, 50, 35},
			wantMedian: 35,
		},
		{
			name:       "boundary age 100 is valid",
			ages:       []int{100, 40},
			wantAges:   []int{100, 40},
			wantMedian: 70,
		},
		{
			name:       "boundary age 101 is imputed",
			ages:       []int{101, 40},
			wantAges:   []int{40, 40},
			wantMedian: 40,
		},
		{
			name:     "all ages anomalous leaves values untouched",
			ages:     []int{150, 200},
			wantAges: []int{150, 200},
		},
	}

	cleaner := NewCleaner(nil, 100)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := make([]domain.CustomerRecord, len(tt.ages))
			for i, age := range tt.ages {
				customers[i] = domain.CustomerRecord{CustomerID: "C", CustomerAge: age}
			}

			result := cleaner.CleanCustomers(customers)

			got := make([]int, len(result.Customers))
			for i, c := range result.Customers {
				got[i] = c.CustomerAge
			}
			assert.Equal(t, tt.wantAges, got)
			assert.Equal(t, tt.wantMedian, result.AgeMedian)
		})
	}
}

func TestCleaner_MedianComputedBeforeSubstitution(t *testing.T) {
	// Three anomalies, one valid age. The median must come from the single
	// pre-correction valid value, not shift as anomalies are replaced.
	cleaner := NewCleaner(nil, 100)
	result := cleaner.CleanCustomers([]domain.CustomerRecord{
		{CustomerID: "C1", CustomerAge: 150},
		{CustomerID: "C2", CustomerAge: 42},
		{CustomerID: "C3", CustomerAge: 200},
		{CustomerID: "C4", CustomerAge: 300},
	})

	for _, c := range result.Customers {
		assert.Equal(t, 42, c.CustomerAge)
	}
}

func TestCleaner_Idempotence(t *testing.T) {
	cleaner := NewCleaner(nil, 100)
	input := []domain.CustomerRecord{
		{CustomerID: "C1", Sex: "Male", CustomerAge: 30, Tenure: 45},
		{CustomerID: "C2", Sex: "UNKNOWN", CustomerAge: 150, Tenure: 70},
		{CustomerID: "C3", Sex: "kvkktalepsilindi", CustomerAge: 100, Tenure: 10},
	}

	once := cleaner.CleanCustomers(input)
	twice := cleaner.CleanCustomers(once.Customers)

	assert.Equal(t, once.Customers, twice.Customers)
	assert.Empty(t, twice.Operations, "second pass must be a no-op")
}

func TestCleaner_PreservesRowsAndInput(t *testing.T) {
	cleaner := NewCleaner(nil, 100)
	input := []domain.CustomerRecord{
		{CustomerID: "C1", Sex: "UNKNOWN", CustomerAge: 150, Tenure: 70},
		{CustomerID: "C2", Sex: "Male", CustomerAge: 30, Tenure: 45},
	}

	result := cleaner.CleanCustomers(input)

	// Same row count, same ids in the same order; only sex and age changed.
	require.Len(t, result.Customers, len(input))
	for i := range input {
		assert.Equal(t, input[i].CustomerID, result.Customers[i].CustomerID)
		assert.Equal(t, input[i].Tenure, result.Customers[i].Tenure)
	}

	// Input slice untouched.
	assert.Equal(t, "UNKNOWN", input[0].Sex)
	assert.Equal(t, 150, input[0].CustomerAge)
}

func TestCleaner_OperationsAudit(t *testing.T) {
	cleaner := NewCleaner(nil, 100)
	result := cleaner.CleanCustomers([]domain.CustomerRecord{
		{CustomerID: "C1", Sex: "Male", CustomerAge: 30, Tenure: 45},
		{CustomerID: "C2", Sex: "UNKNOWN", CustomerAge: 150, Tenure: 70},
	})

	require.Len(t, result.Operations, 2)
	assert.Equal(t, "C2", result.Operations[0].CustomerID)
	assert.Equal(t, "sex", result.Operations[0].Field)
	assert.Equal(t, "UNKNOWN", result.Operations[0].OldValue)
	assert.Equal(t, domain.SexOther, result.Operations[0].NewValue)
	assert.Equal(t, "customer_age", result.Operations[1].Field)
	assert.Equal(t, "150", result.Operations[1].OldValue)
	assert.Equal(t, "30", result.Operations[1].NewValue)
}

func TestNewCleaner_Defaults(t *testing.T) {
	cleaner := NewCleaner(nil, 0)
	assert.Equal(t, 100, cleaner.maxValidAge)
	assert.NotNil(t, cleaner.logger)
}
