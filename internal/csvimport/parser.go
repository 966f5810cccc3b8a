// Package csvimport turns uploaded car CSV text into canonical predictor records.
package csvimport

import (
	"math"
	"strconv"
	"strings"

	"carprice/internal/domain"
)

// RawRow is one parsed data line before schema reconciliation. Values are
// float64 for numeric columns and string for everything else.
type RawRow struct {
	Line   int
	Fields map[string]interface{}
}

// String returns the trimmed string value of a column, or "" if absent.
func (r RawRow) String(column string) string {
	switch v := r.Fields[column].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Number returns the numeric value of a column, or 0 if absent.
func (r RawRow) Number(column string) float64 {
	if v, ok := r.Fields[column].(float64); ok {
		return v
	}
	return 0
}

// Result holds the rows and coercion warnings produced by Parse.
type Result struct {
	Header   []string
	Rows     []RawRow
	Warnings []domain.CoercionWarning
}

// Parse splits raw CSV text into rows keyed by the header line.
//
// Parsing is lenient: a row with fewer values than the header gets "" or 0
// for the missing columns, and a numeric cell that does not parse becomes 0
// with a warning. Blank lines are skipped.
func Parse(text string) *Result {
	lines := strings.Split(text, "\n")
	res := &Result{Header: splitFields(lines[0])}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		values := splitFields(lines[i])
		row := RawRow{Line: i + 1, Fields: make(map[string]interface{}, len(res.Header))}

		for col, name := range res.Header {
			var value string
			if col < len(values) {
				value = values[col]
			}
			if !domain.NumericColumns[name] {
				row.Fields[name] = value
				continue
			}
			n, ok := coerceNumber(value)
			if !ok {
				res.Warnings = append(res.Warnings, domain.CoercionWarning{
					Line:   row.Line,
					Column: name,
					Value:  value,
				})
			}
			row.Fields[name] = n
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// coerceNumber parses v as a float. Empty values are 0 without a warning;
// anything else that is not a finite number is 0 and reported as not ok.
func coerceNumber(v string) (float64, bool) {
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
