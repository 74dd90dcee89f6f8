package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"basketcli/internal/errors"
	"basketcli/pkg/contracts/domain"
)

// dateLayout is the accepted basket_date format.
const dateLayout = "2006-01-02"

// Each input file has an explicit schema: the set of columns it must carry,
// resolved by name so column order in the file is free. Relying on the
// reader to infer types is exactly how silent mis-typing happens, so every
// cell is parsed against its declared semantic type and a bad cell fails the
// run with a DataFormat error.
var (
	basketColumns   = []string{"customer_id", "product_id", "basket_count", "basket_date"}
	customerColumns = []string{"customer_id", "sex", "customer_age", "tenure"}
)

// LoadBaskets reads basket_details.csv into basket records.
// The file must exist and carry all declared columns; any unparseable cell
// fails the load. There are no retries, a bad input is a configuration error
// the caller reports and terminates on.
func LoadBaskets(path string) ([]domain.BasketRecord, error) {
	rows, header, err := readTable(path, basketColumns)
	if err != nil {
		return nil, err
	}

	records := make([]domain.BasketRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // header is line 1

		count, err := parseIntCell(row[header["basket_count"]], "basket_count", path, line)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, errors.NewDataFormatError(
				fmt.Sprintf("%s line %d: basket_count must not be negative, got %d", path, line, count), nil)
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(row[header["basket_date"]]))
		if err != nil {
			return nil, errors.NewDataFormatError(
				fmt.Sprintf("%s line %d: parse basket_date", path, line), err)
		}

		records = append(records, domain.BasketRecord{
			CustomerID:  strings.TrimSpace(row[header["customer_id"]]),
			ProductID:   strings.TrimSpace(row[header["product_id"]]),
			BasketCount: count,
			BasketDate:  date,
		})
	}

	slog.Info("loaded basket records",
		slog.String("path", path),
		slog.Int("rows", len(records)))

	return records, nil
}

// LoadCustomers reads customer_details.csv into customer records. Values are
// loaded as-is; normalization of the sex column and age anomaly correction
// belong to CleanCustomers.
func LoadCustomers(path string) ([]domain.CustomerRecord, error) {
	rows, header, err := readTable(path, customerColumns)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CustomerRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2

		age, err := parseIntCell(row[header["customer_age"]], "customer_age", path, line)
		if err != nil {
			return nil, err
		}

		tenure, err := parseIntCell(row[header["tenure"]], "tenure", path, line)
		if err != nil {
			return nil, err
		}

		records = append(records, domain.CustomerRecord{
			CustomerID:  strings.TrimSpace(row[header["customer_id"]]),
			Sex:         strings.TrimSpace(row[header["sex"]]),
			CustomerAge: age,
			Tenure:      tenure,
		})
	}

	slog.Info("loaded customer records",
		slog.String("path", path),
		slog.Int("rows", len(records)))

	return records, nil
}

// readTable opens a delimited file, validates its header against the declared
// schema and returns the data rows plus a column name to index mapping.
func readTable(path string, required []string) ([][]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewDataSourceError(
			fmt.Sprintf("open input file %s", path), err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, errors.NewDataSourceError(
			fmt.Sprintf("read header of %s", path), err).WithContext("path", path)
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		// spreadsheet exports often prefix the first header cell with a BOM
		name = strings.TrimPrefix(name, "\ufeff")
		header[strings.TrimSpace(name)] = i
	}

	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, nil, errors.NewSchemaError(
				fmt.Sprintf("%s: required column %q not found in header %v", path, col, headerRow)).
				WithContext("path", path).
				WithContext("column", col)
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewDataFormatError(
				fmt.Sprintf("read data row of %s", path), err).WithContext("path", path)
		}
		rows = append(rows, row)
	}

	return rows, header, nil
}

// parseIntCell parses a numeric cell, failing the run on anything that is not
// an integer. Numbers may carry thousands separators from spreadsheet exports.
func parseIntCell(cell, column, path string, line int) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, errors.NewDataFormatError(
			fmt.Sprintf("%s line %d: parse %s %q", path, line, column, cell), err)
	}
	return value, nil
}
