package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"basketcli/internal/aggregate"
	"basketcli/internal/dataprocessing"
	apperrors "basketcli/internal/errors"
	"basketcli/pkg/contracts/domain"
)

// SegmentInsight is one segment's share of sales plus the strategic
// recommendation attached to it.
type SegmentInsight struct {
	Segment        string  `json:"segment"`
	Quantity       float64 `json:"quantity"`
	Share          float64 `json:"share"` // percent of total quantity
	Recommendation string  `json:"recommendation,omitempty"`
}

// Report is the narrated view of one pipeline run, ready to render.
type Report struct {
	GeneratedAt   time.Time `json:"generated_at"`
	RunID         string    `json:"run_id"`
	TotalRows     int       `json:"total_rows"`
	TotalQuantity float64   `json:"total_quantity"`
	MeanPerLine   float64   `json:"mean_per_line"`

	TopProducts []aggregate.KeyValue           `json:"top_products"`
	GenderPivot []aggregate.ProductGenderSales `json:"gender_pivot"`

	GenderShares []SegmentInsight `json:"gender_shares"`
	AgeShares    []SegmentInsight `json:"age_shares"`
	DayShares    []SegmentInsight `json:"day_shares"`
	TenureShares []SegmentInsight `json:"tenure_shares"`

	PeakDay     string `json:"peak_day"`
	LeadProduct string `json:"lead_product"`

	CleaningOps []dataprocessing.CleaningOperation `json:"cleaning_ops"`
	AgeMedian   float64                            `json:"age_median"`
}

// Segment recommendations, keyed by the bucket labels the business uses.
// These are fixed strategy lines, not derived from the data beyond picking
// which segments they attach to.
var tenureRecommendations = map[string]string{
	domain.TenureGroupNew:       "Early lifecycle: invest in onboarding offers to secure a second purchase.",
	domain.TenureGroupMid:       "Developing habit: targeted cross-sell can lift basket size before loyalty plateaus.",
	domain.TenureGroupLoyal:     "Established: enroll in the loyalty program and protect with service quality.",
	domain.TenureGroupVeryLoyal: "Advocates: reward retention and use for referral campaigns.",
}

var ageRecommendations = map[string]string{
	domain.AgeGroup18To25: "Price-sensitive segment: promote entry-level bundles and social channels.",
	domain.AgeGroup26To35: "Core growth segment: prioritize app engagement and subscription offers.",
	domain.AgeGroup36To45: "High basket potential: family-sized packs and scheduled delivery.",
	domain.AgeGroup46To55: "Stable repeat buyers: emphasize quality and availability over discounts.",
	domain.AgeGroup55Plus: "Loyal but channel-conservative: keep classic assortment and simple flows.",
}

// Build assembles the narrated report from the aggregate summary and the
// cleaner's audit trail. Pure function of its inputs apart from the
// timestamp.
func Build(runID string, summary *aggregate.Summary, clean dataprocessing.CleanResult) *Report {
	r := &Report{
		GeneratedAt:   time.Now(),
		RunID:         runID,
		TotalRows:     summary.TotalRows,
		TotalQuantity: summary.TotalQuantity,
		MeanPerLine:   summary.MeanPerLine,
		TopProducts:   summary.TopProducts,
		GenderPivot:   summary.GenderPivot,
		CleaningOps:   clean.Operations,
		AgeMedian:     clean.AgeMedian,
	}

	r.GenderShares = shares(summary.GenderSales, summary.TotalQuantity, nil)
	r.AgeShares = shares(summary.AgeGroupSales, summary.TotalQuantity, ageRecommendations)
	r.DayShares = shares(summary.DaySales, summary.TotalQuantity, nil)
	r.TenureShares = shares(summary.TenureSales, summary.TotalQuantity, tenureRecommendations)

	if len(summary.TopProducts) > 0 {
		r.LeadProduct = summary.TopProducts[0].Key
	}
	r.PeakDay = peak(summary.DaySales)

	return r
}

// shares converts a series into percent-of-total insights, attaching
// recommendations where the segment has one.
func shares(series []aggregate.KeyValue, total float64, recommendations map[string]string) []SegmentInsight {
	insights := make([]SegmentInsight, 0, len(series))
	for _, kv := range series {
		insight := SegmentInsight{
			Segment:  kv.Key,
			Quantity: kv.Value,
		}
		if total > 0 {
			insight.Share = kv.Value / total * 100
		}
		if recommendations != nil {
			insight.Recommendation = recommendations[kv.Key]
		}
		insights = append(insights, insight)
	}
	return insights
}

// peak returns the key with the highest value; ties resolve to the earlier
// key in series order, which is deterministic for the fixed-domain series.
func peak(series []aggregate.KeyValue) string {
	best := ""
	bestValue := 0.0
	for _, kv := range series {
		if kv.Value > bestValue {
			best = kv.Key
			bestValue = kv.Value
		}
	}
	return best
}

// Render writes the report as plain text.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	section := func(title string) {
		b.WriteString("\n" + rule + "\n")
		b.WriteString(title + "\n")
		b.WriteString(rule + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("BASKET ANALYTICS REPORT\n")
	b.WriteString(fmt.Sprintf("Generated: %s   Run: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"), r.RunID))
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Transaction lines: %d\n", r.TotalRows))
	b.WriteString(fmt.Sprintf("Total quantity sold: %.0f\n", r.TotalQuantity))
	b.WriteString(fmt.Sprintf("Mean quantity per line: %.2f\n", r.MeanPerLine))

	section(fmt.Sprintf("TOP %d PRODUCTS", len(r.TopProducts)))
	for i, kv := range r.TopProducts {
		b.WriteString(fmt.Sprintf("%2d. %-16s %8.0f\n", i+1, kv.Key, kv.Value))
	}
	if r.LeadProduct != "" {
		b.WriteString(fmt.Sprintf("\nLead product %s; keep it stocked and use it as an anchor for bundles.\n", r.LeadProduct))
	}

	if len(r.GenderPivot) > 0 {
		section("TOP PRODUCTS BY GENDER")
		sexColumns := r.GenderPivot[0].SexColumns()
		b.WriteString(fmt.Sprintf("%-16s", "product_id"))
		for _, sex := range sexColumns {
			b.WriteString(fmt.Sprintf(" %12s", sex))
		}
		b.WriteString("\n")
		for _, row := range r.GenderPivot {
			b.WriteString(fmt.Sprintf("%-16s", row.ProductID))
			for _, sex := range sexColumns {
				b.WriteString(fmt.Sprintf(" %12.0f", row.BySex[sex]))
			}
			b.WriteString("\n")
		}
	}

	section("SALES BY GENDER")
	writeShares(&b, r.GenderShares)

	section("SALES BY AGE GROUP")
	writeShares(&b, r.AgeShares)

	section("SALES BY DAY OF WEEK")
	writeShares(&b, r.DayShares)
	if r.PeakDay != "" {
		b.WriteString(fmt.Sprintf("\nPeak day is %s; schedule stock replenishment and campaigns ahead of it.\n", r.PeakDay))
	}

	section("SALES BY TENURE SEGMENT")
	writeShares(&b, r.TenureShares)

	section("DATA QUALITY")
	b.WriteString(fmt.Sprintf("Cleaning substitutions applied: %d (age median used for imputation: %.1f)\n", len(r.CleaningOps), r.AgeMedian))
	for _, op := range r.CleaningOps {
		b.WriteString(fmt.Sprintf("  %-12s %-13s %q -> %q (%s)\n", op.CustomerID, op.Field, op.OldValue, op.NewValue, op.Reason))
	}

	b.WriteString("\n" + rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeShares(b *strings.Builder, insights []SegmentInsight) {
	for _, insight := range insights {
		b.WriteString(fmt.Sprintf("%-16s %8.0f  %5.1f%%\n", insight.Segment, insight.Quantity, insight.Share))
		if insight.Recommendation != "" {
			b.WriteString(fmt.Sprintf("                 %s\n", insight.Recommendation))
		}
	}
}

// Save renders the report to a text file.
func (r *Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("failed to create report directory", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create report file", err).WithContext("path", path)
	}
	defer file.Close()

	if err := r.Render(file); err != nil {
		return apperrors.NewStorageError("failed to render report", err)
	}

	slog.Info("wrote report", slog.String("path", path))
	return nil
}
