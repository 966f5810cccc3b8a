package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"carprice/internal/domain"
)

func fakePredictor(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var records []domain.CarRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&records))
		resp := domain.PredictionResponse{Predictions: make([]domain.PredictionResult, len(records))}
		for i, rec := range records {
			resp.Predictions[i].PredictedPrice = 100 * rec.Horsepower
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunPredict(t *testing.T) {
	srv := fakePredictor(t)
	dir := t.TempDir()
	opts := predictOptions{
		File:    writeInput(t, "car_ID,CarName,horsepower\n1,audi 100ls,102\n2,bmw x3,182\n"),
		APIBase: srv.URL,
		Out:     filepath.Join(dir, "out.csv"),
		XLSX:    filepath.Join(dir, "out.xlsx"),
		Timeout: 5 * time.Second,
	}

	var stdout bytes.Buffer
	require.NoError(t, runPredict(context.Background(), opts, &stdout))

	assert.Contains(t, stdout.String(), "$10,200")
	assert.Contains(t, stdout.String(), "$18,200")

	csvOut, err := os.ReadFile(opts.Out)
	require.NoError(t, err)
	assert.Equal(t, "\xef\xbb\xbfcar_ID,predicted_price\n1,10200\n2,18200\n", string(csvOut))

	f, err := excelize.OpenFile(opts.XLSX)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Predictions")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRunPredict_ReportsWarningsAndFailures(t *testing.T) {
	srv := fakePredictor(t)

	var stdout bytes.Buffer
	err := runPredict(context.Background(), predictOptions{
		File:    writeInput(t, "car_ID,CarName,horsepower\n1,audi 100ls,fast\n"),
		APIBase: srv.URL,
	}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `horsepower value "fast" is not a number`)

	err = runPredict(context.Background(), predictOptions{
		File:    writeInput(t, "car_ID,CarName\n1,\n"),
		APIBase: srv.URL,
	}, &stdout)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = runPredict(context.Background(), predictOptions{File: filepath.Join(t.TempDir(), "missing.csv")}, &stdout)
	assert.Error(t, err)
}

func TestPredictCmd_RequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"predict"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
