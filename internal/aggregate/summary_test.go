package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basketcli/pkg/contracts/domain"
)

func enrichedRecord(customerID, productID string, count int, date, sex, ageGroup, dayOfWeek string) domain.JoinedRecord {
	d, _ := time.Parse("2006-01-02", date)
	return domain.JoinedRecord{
		BasketRecord:  domain.BasketRecord{CustomerID: customerID, ProductID: productID, BasketCount: count, BasketDate: d},
		CustomerKnown: sex != "",
		Sex:           sex,
		AgeGroup:      ageGroup,
		DayOfWeek:     dayOfWeek,
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	ctx := context.Background()
	records := []domain.JoinedRecord{
		enrichedRecord("C1", "P1", 3, "2024-01-01", domain.SexMale, domain.AgeGroup26To35, "Monday"),
		enrichedRecord("C1", "P2", 5, "2024-01-01", domain.SexMale, domain.AgeGroup26To35, "Monday"),
		enrichedRecord("C2", "P1", 2, "2024-01-02", domain.SexOther, domain.AgeGroup26To35, "Tuesday"),
	}

	summary, err := NewSummarizer(nil, 10).Summarize(ctx, records)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 10.0, summary.TotalQuantity)
	assert.InDelta(t, 10.0/3.0, summary.MeanPerLine, 1e-9)

	// P1 and P2 tie at 5; ascending product id breaks the tie.
	require.Len(t, summary.ProductSales, 2)
	assert.Equal(t, KeyValue{"P1", 5}, summary.ProductSales[0])
	assert.Equal(t, KeyValue{"P2", 5}, summary.ProductSales[1])

	// Gender sums: Male 8, Diğer 2.
	require.Len(t, summary.GenderSales, 2)
	assert.Equal(t, KeyValue{domain.SexMale, 8}, summary.GenderSales[0])
	assert.Equal(t, KeyValue{domain.SexOther, 2}, summary.GenderSales[1])

	// Day series is zero-filled over all seven days.
	require.Len(t, summary.DaySales, 7)
	assert.Equal(t, KeyValue{"Monday", 8}, summary.DaySales[0])
	assert.Equal(t, KeyValue{"Sunday", 0}, summary.DaySales[6])

	// Age group series zero-filled over the full bucket domain.
	require.Len(t, summary.AgeGroupSales, 5)
	assert.Equal(t, KeyValue{domain.AgeGroup18To25, 0}, summary.AgeGroupSales[0])
	assert.Equal(t, KeyValue{domain.AgeGroup26To35, 10}, summary.AgeGroupSales[1])

	// Tenure series present even though no record carries a tenure group;
	// buckets report zero plus the surfaced Unknown bucket.
	require.Len(t, summary.TenureSales, 5)
	assert.Equal(t, KeyValue{domain.TenureGroupNew, 0}, summary.TenureSales[0])
	assert.Equal(t, KeyValue{KeyUnknown, 10}, summary.TenureSales[4])

	// Daily series chronological.
	require.Len(t, summary.DailySales, 2)
	assert.Equal(t, KeyValue{"2024-01-01", 8}, summary.DailySales[0])
	assert.Equal(t, KeyValue{"2024-01-02", 2}, summary.DailySales[1])
}

func TestSummarizer_GenderPivot(t *testing.T) {
	ctx := context.Background()
	records := []domain.JoinedRecord{
		enrichedRecord("C1", "P1", 3, "2024-01-01", domain.SexMale, "", "Monday"),
		enrichedRecord("C2", "P1", 2, "2024-01-02", domain.SexOther, "", "Tuesday"),
		enrichedRecord("C3", "P2", 5, "2024-01-02", domain.SexMale, "", "Tuesday"),
		enrichedRecord("C9", "P2", 1, "2024-01-03", "", "", "Wednesday"), // unknown customer
	}

	summary, err := NewSummarizer(nil, 2).Summarize(ctx, records)
	require.NoError(t, err)

	require.Len(t, summary.GenderPivot, 2)

	// Pivot rows follow top-product order and are rectangular: every row has
	// the same sex columns, zero-filled.
	assert.Equal(t, "P2", summary.GenderPivot[0].ProductID)
	assert.Equal(t, "P1", summary.GenderPivot[1].ProductID)

	wantColumns := []string{domain.SexOther, domain.SexMale, KeyUnknown}
	for _, row := range summary.GenderPivot {
		assert.ElementsMatch(t, wantColumns, row.SexColumns())
	}

	assert.Equal(t, 5.0, summary.GenderPivot[0].BySex[domain.SexMale])
	assert.Equal(t, 1.0, summary.GenderPivot[0].BySex[KeyUnknown])
	assert.Equal(t, 0.0, summary.GenderPivot[0].BySex[domain.SexOther])
	assert.Equal(t, 3.0, summary.GenderPivot[1].BySex[domain.SexMale])
	assert.Equal(t, 2.0, summary.GenderPivot[1].BySex[domain.SexOther])
}

func TestSummarizer_TopNBound(t *testing.T) {
	ctx := context.Background()
	records := []domain.JoinedRecord{
		enrichedRecord("C1", "P1", 1, "2024-01-01", domain.SexMale, "", "Monday"),
		enrichedRecord("C1", "P2", 2, "2024-01-01", domain.SexMale, "", "Monday"),
		enrichedRecord("C1", "P3", 3, "2024-01-01", domain.SexMale, "", "Monday"),
	}

	summary, err := NewSummarizer(nil, 2).Summarize(ctx, records)
	require.NoError(t, err)

	assert.Len(t, summary.ProductSales, 3)
	assert.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "P3", summary.TopProducts[0].Key)
}

func TestSummarizer_EmptyInput(t *testing.T) {
	summary, err := NewSummarizer(nil, 10).Summarize(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalRows)
	assert.Zero(t, summary.TotalQuantity)
	assert.Zero(t, summary.MeanPerLine)
	assert.Empty(t, summary.ProductSales)
	// Fixed-domain series still report their full domains.
	assert.Len(t, summary.DaySales, 7)
	assert.Len(t, summary.AgeGroupSales, 5)
	assert.Len(t, summary.TenureSales, 4)
}

func TestSummarizer_DeterministicAcrossRuns(t *testing.T) {
	ctx := context.Background()
	records := []domain.JoinedRecord{
		enrichedRecord("C1", "P1", 5, "2024-01-01", domain.SexMale, "", "Monday"),
		enrichedRecord("C1", "P2", 5, "2024-01-01", domain.SexMale, "", "Monday"),
		enrichedRecord("C1", "P3", 5, "2024-01-01", domain.SexMale, "", "Monday"),
	}

	first, err := NewSummarizer(nil, 2).Summarize(ctx, records)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := NewSummarizer(nil, 2).Summarize(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, first.TopProducts, again.TopProducts)
		assert.Equal(t, first.ProductSales, again.ProductSales)
	}
}
