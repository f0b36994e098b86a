// Package export builds the flat CSV data handed to the spreadsheet and
// printable-summary collaborators. Only the data shapes live here; file
// delivery belongs to the callers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/evergreenpantry/pantryledger/internal/aggregate"
)

// HeaderFromRow derives a deterministic header from a row's keys
// (sorted), for exports without a fixed column order.
func HeaderFromRow(row map[string]string) []string {
	header := make([]string, 0, len(row))
	for k := range row {
		header = append(header, k)
	}
	sort.Strings(header)
	return header
}

// Write encodes rows as CSV: the header first, then one record per row
// with values pulled by header key. Missing keys become empty cells.
func Write(w io.Writer, header []string, rows []map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			record[i] = row[key]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MonthlySummaryHeader is the fixed header of the monthly summary export.
var MonthlySummaryHeader = []string{"Date", "Visits", "Persons"}

// MonthlySummary flattens a month aggregate into the monthly-summary
// rows: one row per active day in ascending order, followed by the month
// total and the unduplicated compliance counts.
func MonthlySummary(monthKey string, m aggregate.Month) []map[string]string {
	days := make([]string, 0, len(m.ByDay))
	for day := range m.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	rows := make([]map[string]string, 0, len(days)+3)
	for _, day := range days {
		t := m.ByDay[day]
		rows = append(rows, map[string]string{
			"Date":    day,
			"Visits":  fmt.Sprint(t.Visits),
			"Persons": fmt.Sprint(t.Persons),
		})
	}
	rows = append(rows,
		map[string]string{
			"Date":    monthKey + " Total",
			"Visits":  fmt.Sprint(m.Totals.Visits),
			"Persons": fmt.Sprint(m.Totals.Persons),
		},
		map[string]string{
			"Date":    "Unduplicated Households",
			"Visits":  fmt.Sprint(m.Unduplicated.Households),
			"Persons": "",
		},
		map[string]string{
			"Date":    "Unduplicated Persons",
			"Visits":  "",
			"Persons": fmt.Sprint(m.Unduplicated.Persons),
		},
	)
	return rows
}
