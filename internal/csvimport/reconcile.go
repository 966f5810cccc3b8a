package csvimport

import (
	"strings"

	"carprice/internal/domain"
)

// DetectShape reports which naming schema a row uses.
func DetectShape(row RawRow) domain.RecordShape {
	if row.String(domain.ColumnCarName) != "" {
		return domain.ShapeComposite
	}
	if row.String(domain.ColumnCarBrand) != "" && row.String(domain.ColumnCarType) != "" {
		return domain.ShapeSplit
	}
	return domain.ShapeUnknown
}

// Reconcile resolves a raw row of either schema into the canonical record.
// Split rows get CarName = "<brand> <type>" and lose carbrand/cartype; rows
// that resolve to no name fail with a *domain.ValidationError.
func Reconcile(row RawRow) (domain.CarRecord, error) {
	switch DetectShape(row) {
	case domain.ShapeSplit:
		row.Fields[domain.ColumnCarName] = row.String(domain.ColumnCarBrand) + " " + row.String(domain.ColumnCarType)
		delete(row.Fields, domain.ColumnCarBrand)
		delete(row.Fields, domain.ColumnCarType)
	case domain.ShapeUnknown:
		return domain.CarRecord{}, domain.NewMissingNameError(row.Number(domain.ColumnCarID), row.Line)
	}
	return toRecord(row), nil
}

// ReconcileAll reconciles every row, stopping at the first invalid one.
func ReconcileAll(rows []RawRow) ([]domain.CarRecord, error) {
	records := make([]domain.CarRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := Reconcile(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReconcileForm resolves a single-entry form through the same shape rules
// as a CSV row. The form has no identifier, so the record gets car_ID 1.
func ReconcileForm(form domain.CarForm) (domain.CarRecord, error) {
	row := RawRow{Line: 1, Fields: map[string]interface{}{
		domain.ColumnCarID:    float64(1),
		domain.ColumnCarName:  strings.TrimSpace(form.CarName),
		domain.ColumnCarBrand: strings.TrimSpace(form.CarBrand),
		domain.ColumnCarType:  strings.TrimSpace(form.CarType),
		"symboling":           form.Symboling,
		"fueltype":            form.FuelType,
		"aspiration":          form.Aspiration,
		"doornumber":          form.DoorNumber,
		"carbody":             form.CarBody,
		"drivewheel":          form.DriveWheel,
		"enginelocation":      form.EngineLocation,
		"wheelbase":           form.WheelBase,
		"carlength":           form.CarLength,
		"carwidth":            form.CarWidth,
		"carheight":           form.CarHeight,
		"curbweight":          form.CurbWeight,
		"enginetype":          form.EngineType,
		"cylindernumber":      form.CylinderNumber,
		"enginesize":          form.EngineSize,
		"fuelsystem":          form.FuelSystem,
		"boreratio":           form.BoreRatio,
		"stroke":              form.Stroke,
		"compressionratio":    form.CompressionRatio,
		"horsepower":          form.Horsepower,
		"peakrpm":             form.PeakRPM,
		"citympg":             form.CityMPG,
		"highwaympg":          form.HighwayMPG,
	}}
	return Reconcile(row)
}

func toRecord(row RawRow) domain.CarRecord {
	return domain.CarRecord{
		CarID:            row.Number("car_ID"),
		Symboling:        row.Number("symboling"),
		CarName:          row.String("CarName"),
		FuelType:         row.String("fueltype"),
		Aspiration:       row.String("aspiration"),
		DoorNumber:       row.String("doornumber"),
		CarBody:          row.String("carbody"),
		DriveWheel:       row.String("drivewheel"),
		EngineLocation:   row.String("enginelocation"),
		WheelBase:        row.Number("wheelbase"),
		CarLength:        row.Number("carlength"),
		CarWidth:         row.Number("carwidth"),
		CarHeight:        row.Number("carheight"),
		CurbWeight:       row.Number("curbweight"),
		EngineType:       row.String("enginetype"),
		CylinderNumber:   row.String("cylindernumber"),
		EngineSize:       row.Number("enginesize"),
		FuelSystem:       row.String("fuelsystem"),
		BoreRatio:        row.Number("boreratio"),
		Stroke:           row.Number("stroke"),
		CompressionRatio: row.Number("compressionratio"),
		Horsepower:       row.Number("horsepower"),
		PeakRPM:          row.Number("peakrpm"),
		CityMPG:          row.Number("citympg"),
		HighwayMPG:       row.Number("highwaympg"),
	}
}
