package csvexport

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"carprice/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultBaseName is the download name used when the upload had no usable name.
const DefaultBaseName = "car_price_predictions"

// columns defines the CSV header row.
var columns = []string{"car_ID", "predicted_price"}

// Writer wraps csv.Writer for exporting prediction results.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WritePredictions writes one row per prediction. The first column is a
// 1-based sequence number, not the original car_ID, since the predictor does
// not echo identifiers back.
func (w *Writer) WritePredictions(preds []domain.PredictionResult) error {
	for i := range preds {
		row := []string{strconv.Itoa(i + 1), formatPrice(preds[i].PredictedPrice)}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Export writes the header and all predictions, then flushes.
func Export(out io.Writer, preds []domain.PredictionResult) error {
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WritePredictions(preds); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(domain.RoundPrice(v), 'f', 0, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the download filename for a result export.
// Format: {sanitized_upload_stem}_predictions.{ext}, or DefaultBaseName.{ext}.
func BuildFilename(uploadName string, format domain.ExportFormat) string {
	stem := SanitizeFilename(strings.TrimSuffix(uploadName, filepath.Ext(uploadName)))
	if stem == "" {
		return DefaultBaseName + "." + string(format)
	}
	return stem + "_predictions." + string(format)
}
