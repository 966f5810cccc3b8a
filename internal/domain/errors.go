package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrEmptyBatch         = errors.New("no valid data found in CSV file")
	ErrBatchTooLarge      = errors.New("batch exceeds maximum size")
	ErrPredictionFailed   = errors.New("prediction failed")
	ErrStaleUpload        = errors.New("upload superseded by a newer upload")
	ErrNoResults          = errors.New("no prediction results to export")
	ErrArchiveDisabled    = errors.New("result archiving is not enabled")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidJSON        = errors.New("request body is not valid JSON")
	ErrUpstreamNotReady   = errors.New("prediction service is not ready")
)

// ValidationError reports a record that cannot resolve a composite name.
type ValidationError struct {
	CarID  float64
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s for car ID %s (line %d)", e.Reason, strconv.FormatFloat(e.CarID, 'f', -1, 64), e.Line)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewMissingNameError creates the ValidationError for a row with no CarName.
func NewMissingNameError(carID float64, line int) *ValidationError {
	return &ValidationError{CarID: carID, Line: line, Reason: "missing CarName"}
}

// BatchTooLargeError carries the offending and allowed batch sizes.
type BatchTooLargeError struct {
	Size int
	Max  int
}

func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("batch of %d records exceeds maximum of %d", e.Size, e.Max)
}

func (e *BatchTooLargeError) Unwrap() error {
	return ErrBatchTooLarge
}

// UpstreamError indicates the relay's forwarded call to the predictor failed.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("API responded with status: %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
