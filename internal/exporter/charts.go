package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"basketcli/internal/aggregate"
	apperrors "basketcli/internal/errors"
)

// ChartWriter renders the fixed set of chart artifacts into a single xlsx
// workbook: one sheet per aggregate series, each with its data range and an
// embedded chart. The workbook is a pure function of the Summary; nothing in
// it feeds back into the pipeline.
type ChartWriter struct {
	logger *slog.Logger
}

// NewChartWriter creates a chart writer
func NewChartWriter(logger *slog.Logger) *ChartWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWriter{logger: logger}
}

// chartSpec describes one sheet plus its embedded chart
type chartSpec struct {
	sheet     string
	title     string
	keyHeader string
	chartType excelize.ChartType
	series    []aggregate.KeyValue
}

// WriteWorkbook writes the chart workbook to path.
func (c *ChartWriter) WriteWorkbook(path string, summary *aggregate.Summary) error {
	file := excelize.NewFile()
	defer file.Close()

	specs := []chartSpec{
		{"TopProducts", "Top Selling Products", "product_id", excelize.Bar, summary.TopProducts},
		{"GenderSales", "Sales by Gender", "sex", excelize.Pie, summary.GenderSales},
		{"AgeGroupSales", "Sales by Age Group", "age_group", excelize.Col, summary.AgeGroupSales},
		{"DayOfWeekSales", "Sales by Day of Week", "day_of_week", excelize.Col, summary.DaySales},
		{"TenureSales", "Sales by Tenure Group", "tenure_group", excelize.Col, summary.TenureSales},
		{"DailySales", "Daily Sales", "basket_date", excelize.Line, summary.DailySales},
	}

	for _, spec := range specs {
		if err := c.addChartSheet(file, spec); err != nil {
			return err
		}
	}

	// Drop the implicit default sheet so the workbook opens on the first chart
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return apperrors.NewStorageError("failed to remove default sheet", err)
	}
	index, err := file.GetSheetIndex("TopProducts")
	if err != nil {
		return apperrors.NewStorageError("failed to locate first chart sheet", err)
	}
	file.SetActiveSheet(index)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("failed to create charts directory", err)
		}
	}
	if err := file.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save chart workbook", err).WithContext("path", path)
	}

	c.logger.Info("wrote chart workbook",
		slog.String("path", path),
		slog.Int("charts", len(specs)))

	return nil
}

// addChartSheet writes one series to its own sheet and embeds a chart over
// the data range.
func (c *ChartWriter) addChartSheet(file *excelize.File, spec chartSpec) error {
	if _, err := file.NewSheet(spec.sheet); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to create sheet %s", spec.sheet), err)
	}

	header := []interface{}{spec.keyHeader, "basket_count"}
	if err := file.SetSheetRow(spec.sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write header of sheet %s", spec.sheet), err)
	}

	for i, kv := range spec.series {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{kv.Key, kv.Value}
		if err := file.SetSheetRow(spec.sheet, cell, &row); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d of sheet %s", i+2, spec.sheet), err)
		}
	}

	// A chart over an empty range renders blank but still keeps the category
	// visible in the data sheet, so zero-row series stay chartable.
	lastRow := len(spec.series) + 1
	if lastRow < 2 {
		lastRow = 2
	}

	chart := &excelize.Chart{
		Type: spec.chartType,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", spec.sheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", spec.sheet, lastRow),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", spec.sheet, lastRow),
		}},
		Title: []excelize.RichTextRun{{Text: spec.title}},
		Legend: excelize.ChartLegend{
			Position: "bottom",
		},
	}

	if err := file.AddChart(spec.sheet, "D2", chart); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to add chart to sheet %s", spec.sheet), err)
	}

	return nil
}
