// Package csv loads the base production dataset from CSV exports of the
// plant's master workbook.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// Loader handles loading base production records from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var baseHeader = []string{
	"article_id", "center_id", "annual_volume", "oee", "pieces_per_minute",
	"shift_hours", "setup_hours", "personnel_ratio",
}

// LoadBaseRows loads base rows from a CSV file.
//
// Exports of the master workbook carry spreadsheet artifacts: identifier
// cells rendered as floats ("1234.0") and NaN-ish center cells for dropped
// rows. Identifiers are normalized through exact decimal parsing and rows
// without a usable center are skipped, matching how the dataset has always
// been cleaned.
func (l *Loader) LoadBaseRows(ctx context.Context, filename string) ([]entities.BaseRow, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open base dataset %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read base dataset CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("base dataset CSV must have header and at least one data row")
	}

	header := records[0]
	if !headerMatches(header, baseHeader) {
		return nil, fmt.Errorf("base dataset CSV header mismatch. Expected: %v, Got: %v", baseHeader, header)
	}

	var rows []entities.BaseRow
	for i, record := range records[1:] {
		if len(record) != len(baseHeader) {
			return nil, fmt.Errorf("base dataset CSV row %d: expected %d columns, got %d", i+2, len(baseHeader), len(record))
		}

		center := normalizeID(record[1])
		if center == "" {
			continue
		}

		row, err := parseBaseRow(record, center)
		if err != nil {
			return nil, fmt.Errorf("base dataset CSV row %d: %w", i+2, err)
		}
		rows = append(rows, *row)
	}

	return rows, nil
}

func parseBaseRow(record []string, center string) (*entities.BaseRow, error) {
	article := normalizeID(record[0])
	if article == "" {
		return nil, fmt.Errorf("article id cannot be empty")
	}

	annualVolume, err := parseFloat(record[2], "annual_volume")
	if err != nil {
		return nil, err
	}
	oee, err := parseFloat(record[3], "oee")
	if err != nil {
		return nil, err
	}
	ppm, err := parseFloat(record[4], "pieces_per_minute")
	if err != nil {
		return nil, err
	}
	shiftHours, err := parseShiftHours(record[5])
	if err != nil {
		return nil, err
	}
	setupHours, err := parseFloat(record[6], "setup_hours")
	if err != nil {
		return nil, err
	}
	personnelRatio, err := parseFloat(record[7], "personnel_ratio")
	if err != nil {
		return nil, err
	}
	if personnelRatio == 0 {
		personnelRatio = 1.0
	}

	return entities.NewBaseRow(
		entities.ArticleID(article),
		entities.CenterID(center),
		annualVolume,
		oee,
		ppm,
		shiftHours,
		setupHours,
		personnelRatio,
	)
}

// normalizeID cleans an identifier cell. Numeric cells are parsed exactly so
// a "1234.0" float artifact collapses to "1234"; NaN-ish placeholders become
// empty.
func normalizeID(cell string) string {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "nan.0":
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// Not numeric, use as-is.
		return s
	}
	if !d.IsInteger() {
		return s
	}
	return d.Truncate(0).String()
}

func parseFloat(cell, field string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, cell, err)
	}
	return d.InexactFloat64(), nil
}

func parseShiftHours(cell string) (int, error) {
	v, err := parseFloat(cell, "shift_hours")
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return entities.DefaultGlobalShiftHours, nil
	}
	h := int(v)
	if float64(h) != v || !entities.IsValidShiftHours(h) {
		return 0, fmt.Errorf("invalid shift_hours %q: must be one of %v", cell, entities.ValidShiftHours)
	}
	return h, nil
}

func headerMatches(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}
