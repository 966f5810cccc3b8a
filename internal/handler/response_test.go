package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"carprice/internal/domain"
	"carprice/internal/handler"
	"carprice/internal/predictor"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.NewMissingNameError(3, 4), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("wrapped: %w", domain.ErrEmptyBatch), http.StatusBadRequest, "EMPTY_BATCH"},
		{&domain.BatchTooLargeError{Size: 101, Max: 100}, http.StatusUnprocessableEntity, "BATCH_TOO_LARGE"},
		{&predictor.Error{StatusCode: 500}, http.StatusBadGateway, "PREDICTION_FAILED"},
		{domain.ErrStaleUpload, http.StatusConflict, "UPLOAD_SUPERSEDED"},
		{domain.ErrNoResults, http.StatusNotFound, "NO_RESULTS"},
		{domain.ErrUpstreamNotReady, http.StatusServiceUnavailable, "UPSTREAM_NOT_READY"},
		{errors.New("anything else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_ValidationMessageNamesRecord(t *testing.T) {
	_, _, msg := handler.MapDomainError(domain.NewMissingNameError(3, 4))
	assert.Equal(t, "missing CarName for car ID 3 (line 4)", msg)
}
