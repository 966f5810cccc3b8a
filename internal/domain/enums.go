package domain

// RecordShape identifies which of the two observed CSV schemas a row uses.
type RecordShape string

const (
	// ShapeComposite rows carry a pre-joined CarName column.
	ShapeComposite RecordShape = "composite"
	// ShapeSplit rows carry carbrand + cartype and the extra risk rating and
	// dimensional columns.
	ShapeSplit RecordShape = "split"
	// ShapeUnknown rows resolve to neither shape and are rejected.
	ShapeUnknown RecordShape = "unknown"
)

// Column names used by both CSV schemas.
const (
	ColumnCarID    = "car_ID"
	ColumnCarName  = "CarName"
	ColumnCarBrand = "carbrand"
	ColumnCarType  = "cartype"
)

// NumericColumns lists the columns coerced to float64 when parsing CSV.
var NumericColumns = map[string]bool{
	"car_ID":           true,
	"symboling":        true,
	"wheelbase":        true,
	"carlength":        true,
	"carwidth":         true,
	"carheight":        true,
	"curbweight":       true,
	"enginesize":       true,
	"boreratio":        true,
	"stroke":           true,
	"compressionratio": true,
	"horsepower":       true,
	"peakrpm":          true,
	"citympg":          true,
	"highwaympg":       true,
}

// ExportFormat selects the download format for batch results.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
