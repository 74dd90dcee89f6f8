package exporter

import (
	"basketcli/internal/aggregate"
	"basketcli/internal/dataprocessing"
	"basketcli/pkg/contracts/domain"
)

// enrichedHeaders is the column layout of the derived table artifact. Basket
// columns first, then joined customer attributes, then derived features, in
// pipeline order.
var enrichedHeaders = []string{
	"customer_id", "product_id", "basket_count", "basket_date",
	"customer_known", "sex", "customer_age", "tenure",
	"year", "month", "day_of_week", "iso_week", "age_group", "tenure_group",
}

// WriteEnriched writes the fully-featured joined table to fileName inside the
// output directory. Missing customer attributes render as empty cells, never
// as zeros.
func (w *CSVWriter) WriteEnriched(fileName string, records []domain.JoinedRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		sex, age, tenure := "", "", ""
		if r.CustomerKnown {
			sex = r.Sex
			age = formatInt(r.CustomerAge)
			tenure = formatInt(r.Tenure)
		}
		rows = append(rows, []string{
			r.CustomerID,
			r.ProductID,
			formatInt(r.BasketCount),
			r.BasketDate.Format("2006-01-02"),
			formatBool(r.CustomerKnown),
			sex,
			age,
			tenure,
			formatInt(r.Year),
			formatInt(r.Month),
			r.DayOfWeek,
			formatInt(r.ISOWeek),
			r.AgeGroup,
			r.TenureGroup,
		})
	}
	return w.WriteSimpleCSV(fileName, enrichedHeaders, rows)
}

// WriteSeries writes one aggregated key/value series. The series name becomes
// the file name and the key column header.
func (w *CSVWriter) WriteSeries(series, keyHeader string, values []aggregate.KeyValue) error {
	rows := make([][]string, 0, len(values))
	for _, kv := range values {
		rows = append(rows, []string{kv.Key, formatQuantity(kv.Value)})
	}
	return w.WriteSimpleCSV(seriesFileName(series), []string{keyHeader, "basket_count"}, rows)
}

// WriteGenderPivot writes the top-product by sex breakdown as a rectangular
// table, one row per product, one column per sex.
func (w *CSVWriter) WriteGenderPivot(fileName string, pivot []aggregate.ProductGenderSales) error {
	if len(pivot) == 0 {
		return w.WriteSimpleCSV(fileName, []string{"product_id"}, nil)
	}

	sexColumns := pivot[0].SexColumns()
	headers := append([]string{"product_id"}, sexColumns...)

	rows := make([][]string, 0, len(pivot))
	for _, row := range pivot {
		cells := make([]string, 0, len(headers))
		cells = append(cells, row.ProductID)
		for _, sex := range sexColumns {
			cells = append(cells, formatQuantity(row.BySex[sex]))
		}
		rows = append(rows, cells)
	}
	return w.WriteSimpleCSV(fileName, headers, rows)
}

// WriteCleaningOps writes the cleaner's audit trail so corrected source
// values stay reviewable after the run.
func (w *CSVWriter) WriteCleaningOps(fileName string, ops []dataprocessing.CleaningOperation) error {
	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, []string{op.CustomerID, op.Field, op.OldValue, op.NewValue, op.Reason})
	}
	return w.WriteSimpleCSV(fileName, []string{"customer_id", "field", "old_value", "new_value", "reason"}, rows)
}
