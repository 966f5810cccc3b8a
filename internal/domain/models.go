package domain

import "time"

// CarRecord is the canonical request unit accepted by the price predictor.
// JSON field names match the predictor's input schema exactly.
type CarRecord struct {
	CarID            float64 `json:"car_ID"`
	Symboling        float64 `json:"symboling"`
	CarName          string  `json:"CarName"`
	FuelType         string  `json:"fueltype"`
	Aspiration       string  `json:"aspiration"`
	DoorNumber       string  `json:"doornumber"`
	CarBody          string  `json:"carbody"`
	DriveWheel       string  `json:"drivewheel"`
	EngineLocation   string  `json:"enginelocation"`
	WheelBase        float64 `json:"wheelbase"`
	CarLength        float64 `json:"carlength"`
	CarWidth         float64 `json:"carwidth"`
	CarHeight        float64 `json:"carheight"`
	CurbWeight       float64 `json:"curbweight"`
	EngineType       string  `json:"enginetype"`
	CylinderNumber   string  `json:"cylindernumber"`
	EngineSize       float64 `json:"enginesize"`
	FuelSystem       string  `json:"fuelsystem"`
	BoreRatio        float64 `json:"boreratio"`
	Stroke           float64 `json:"stroke"`
	CompressionRatio float64 `json:"compressionratio"`
	Horsepower       float64 `json:"horsepower"`
	PeakRPM          float64 `json:"peakrpm"`
	CityMPG          float64 `json:"citympg"`
	HighwayMPG       float64 `json:"highwaympg"`
}

// CarForm is the single-entry form payload. It accepts either naming shape:
// a pre-joined CarName, or CarBrand + CarType.
type CarForm struct {
	CarName          string  `json:"CarName"`
	CarBrand         string  `json:"carbrand"`
	CarType          string  `json:"cartype"`
	Symboling        float64 `json:"symboling"`
	FuelType         string  `json:"fueltype" binding:"required"`
	Aspiration       string  `json:"aspiration" binding:"required"`
	DoorNumber       string  `json:"doornumber" binding:"required"`
	CarBody          string  `json:"carbody" binding:"required"`
	DriveWheel       string  `json:"drivewheel" binding:"required"`
	EngineLocation   string  `json:"enginelocation" binding:"required"`
	WheelBase        float64 `json:"wheelbase"`
	CarLength        float64 `json:"carlength"`
	CarWidth         float64 `json:"carwidth"`
	CarHeight        float64 `json:"carheight"`
	CurbWeight       float64 `json:"curbweight"`
	EngineType       string  `json:"enginetype" binding:"required"`
	CylinderNumber   string  `json:"cylindernumber" binding:"required"`
	EngineSize       float64 `json:"enginesize"`
	FuelSystem       string  `json:"fuelsystem" binding:"required"`
	BoreRatio        float64 `json:"boreratio"`
	Stroke           float64 `json:"stroke"`
	CompressionRatio float64 `json:"compressionratio"`
	Horsepower       float64 `json:"horsepower"`
	PeakRPM          float64 `json:"peakrpm"`
	CityMPG          float64 `json:"citympg"`
	HighwayMPG       float64 `json:"highwaympg"`
}

// PredictionResult is one predicted price. Results carry no record ID; they
// are aligned with the submitted batch by position.
type PredictionResult struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// PredictionResponse is the predictor's response body.
type PredictionResponse struct {
	Predictions []PredictionResult `json:"predictions"`
}

// SinglePrediction is returned for the single-entry form.
type SinglePrediction struct {
	CarName        string  `json:"car_name"`
	PredictedPrice float64 `json:"predicted_price"`
	Formatted      string  `json:"formatted_price"`
}

// CoercionWarning reports a numeric cell that could not be parsed and was
// replaced by zero.
type CoercionWarning struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// BatchState is the per-session state of the batch upload flow.
type BatchState struct {
	FileName    string             `json:"file_name,omitempty"`
	Loading     bool               `json:"loading"`
	Predictions []PredictionResult `json:"predictions,omitempty"`
	Error       string             `json:"error,omitempty"`
	Warnings    []CoercionWarning  `json:"warnings,omitempty"`
	Sequence    uint64             `json:"sequence"`
	ArchiveKey  string             `json:"archive_key,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (s *BatchState) Clone() *BatchState {
	if s == nil {
		return nil
	}
	out := *s
	if s.Predictions != nil {
		out.Predictions = append([]PredictionResult(nil), s.Predictions...)
	}
	if s.Warnings != nil {
		out.Warnings = append([]CoercionWarning(nil), s.Warnings...)
	}
	return &out
}

// HasResults reports whether the last upload produced predictions.
func (s *BatchState) HasResults() bool {
	return s != nil && len(s.Predictions) > 0
}
