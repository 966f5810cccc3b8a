package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"carprice/internal/csvexport"
	"carprice/internal/csvimport"
	"carprice/internal/domain"
	"carprice/internal/metrics"
	"carprice/internal/port"
)

// User-facing messages stored in BatchState.Error, one per failure class.
const (
	MsgProcessFailed    = "Failed to process CSV file. Please check the format and try again."
	MsgNoValidData      = "No valid data found in CSV file."
	MsgPredictionFailed = "Failed to get predictions. Please try again later."
	MsgPredictionReject = "The prediction service rejected the data. Please check the values and try again."
)

// BatchServiceConfig holds batch limits and optional archive settings.
type BatchServiceConfig struct {
	MaxSize       int
	Bucket        string
	PresignExpiry int64
}

// BatchService orchestrates CSV upload, prediction, and export per session.
type BatchService interface {
	ProcessUpload(ctx context.Context, sessionID, fileName string, contents []byte) (*domain.BatchState, error)
	State(ctx context.Context, sessionID string) *domain.BatchState
	Reset(ctx context.Context, sessionID string)
	ExportResults(ctx context.Context, sessionID string, w io.Writer) error
	ExportWorkbook(ctx context.Context, sessionID string, w io.Writer) error
	ArchiveURL(ctx context.Context, sessionID string) (string, error)
	PredictSingle(ctx context.Context, form domain.CarForm) (*domain.SinglePrediction, error)
}

type batchService struct {
	predictor port.Predictor
	store     port.BatchStore
	storage   port.ObjectStorage
	metrics   *metrics.PredictionMetrics
	cfg       BatchServiceConfig

	mu  sync.Mutex
	seq uint64
}

// NewBatchService creates a new BatchService. storage and m may be nil; a nil
// storage disables archiving.
func NewBatchService(
	predictor port.Predictor,
	store port.BatchStore,
	storage port.ObjectStorage,
	m *metrics.PredictionMetrics,
	cfg BatchServiceConfig,
) BatchService {
	return &batchService{
		predictor: predictor,
		store:     store,
		storage:   storage,
		metrics:   m,
		cfg:       cfg,
	}
}

// ProcessUpload runs one upload through parse, reconcile, and predict. The
// session's previous state is discarded as soon as the upload starts. If a
// newer upload or a reset happens while the predictor call is in flight, this
// upload's outcome is dropped and ErrStaleUpload is returned.
func (s *batchService) ProcessUpload(ctx context.Context, sessionID, fileName string, contents []byte) (*domain.BatchState, error) {
	seq := s.begin(sessionID, fileName)

	parsed := csvimport.Parse(string(contents))
	records, err := csvimport.ReconcileAll(parsed.Rows)
	if err == nil && len(records) == 0 {
		err = domain.ErrEmptyBatch
	}
	if err == nil && s.cfg.MaxSize > 0 && len(records) > s.cfg.MaxSize {
		err = &domain.BatchTooLargeError{Size: len(records), Max: s.cfg.MaxSize}
	}
	if err != nil {
		log.Printf("batch.ProcessUpload: session %s file %q: %v", sessionID, fileName, err)
		s.metrics.ObserveBatch(metrics.OutcomeInvalid)
		return s.fail(sessionID, seq, parsed.Warnings, err)
	}

	preds, err := s.predictor.PredictBatch(ctx, records)
	if err != nil {
		log.Printf("batch.ProcessUpload: session %s: predicting %d records: %v", sessionID, len(records), err)
		s.metrics.ObserveBatch(metrics.OutcomeFailure)
		return s.fail(sessionID, seq, parsed.Warnings, err)
	}

	state, err := s.commit(sessionID, seq, func(st *domain.BatchState) {
		st.Predictions = preds
		st.Warnings = parsed.Warnings
		st.Error = ""
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveBatch(metrics.OutcomeSuccess)
	prices := make([]float64, len(preds))
	for i := range preds {
		prices[i] = preds[i].PredictedPrice
	}
	s.metrics.ObservePredictions(prices...)

	if s.storage != nil {
		if key, err := s.archive(ctx, sessionID, fileName, preds); err != nil {
			log.Printf("batch.ProcessUpload: archiving results for session %s: %v", sessionID, err)
		} else if archived, err := s.commit(sessionID, seq, func(st *domain.BatchState) { st.ArchiveKey = key }); err == nil {
			state = archived
		}
	}

	return state, nil
}

func (s *batchService) State(_ context.Context, sessionID string) *domain.BatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.store.Get(sessionID); ok {
		return st
	}
	return &domain.BatchState{}
}

func (s *batchService) Reset(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Delete(sessionID)
}

// ExportResults writes the session's predictions as CSV.
func (s *batchService) ExportResults(ctx context.Context, sessionID string, w io.Writer) error {
	st := s.State(ctx, sessionID)
	if !st.HasResults() {
		return domain.ErrNoResults
	}
	if err := csvexport.Export(w, st.Predictions); err != nil {
		return fmt.Errorf("batch.ExportResults: %w", err)
	}
	return nil
}

// ExportWorkbook writes the session's predictions as an XLSX workbook.
func (s *batchService) ExportWorkbook(ctx context.Context, sessionID string, w io.Writer) error {
	st := s.State(ctx, sessionID)
	if !st.HasResults() {
		return domain.ErrNoResults
	}
	if err := csvexport.WriteWorkbook(w, st.Predictions); err != nil {
		return fmt.Errorf("batch.ExportWorkbook: %w", err)
	}
	return nil
}

// ArchiveURL returns a presigned download URL for the session's archived results.
func (s *batchService) ArchiveURL(ctx context.Context, sessionID string) (string, error) {
	if s.storage == nil {
		return "", domain.ErrArchiveDisabled
	}
	st := s.State(ctx, sessionID)
	if st.ArchiveKey == "" {
		return "", domain.ErrNoResults
	}
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, st.ArchiveKey, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("batch.ArchiveURL: %w", err)
	}
	return url, nil
}

// PredictSingle resolves a form record and submits it as a batch of one.
func (s *batchService) PredictSingle(ctx context.Context, form domain.CarForm) (*domain.SinglePrediction, error) {
	record, err := csvimport.ReconcileForm(form)
	if err != nil {
		return nil, err
	}

	result, err := s.predictor.PredictSingle(ctx, record)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePredictions(result.PredictedPrice)

	return &domain.SinglePrediction{
		CarName:        record.CarName,
		PredictedPrice: result.PredictedPrice,
		Formatted:      domain.FormatPriceWhole(result.PredictedPrice),
	}, nil
}

// begin clears the session and marks it loading under a new sequence number.
func (s *batchService) begin(sessionID, fileName string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.store.Put(sessionID, &domain.BatchState{
		FileName:  fileName,
		Loading:   true,
		Sequence:  s.seq,
		UpdatedAt: time.Now(),
	})
	return s.seq
}

// commit applies fn to the session state if seq is still the current upload.
func (s *batchService) commit(sessionID string, seq uint64, fn func(*domain.BatchState)) (*domain.BatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.store.Get(sessionID)
	if !ok || st.Sequence != seq {
		s.metrics.ObserveBatch(metrics.OutcomeStale)
		log.Printf("batch.commit: session %s: dropping result of superseded upload %d", sessionID, seq)
		return nil, domain.ErrStaleUpload
	}

	fn(st)
	st.Loading = false
	st.UpdatedAt = time.Now()
	s.store.Put(sessionID, st)
	return st.Clone(), nil
}

func (s *batchService) fail(sessionID string, seq uint64, warnings []domain.CoercionWarning, cause error) (*domain.BatchState, error) {
	state, err := s.commit(sessionID, seq, func(st *domain.BatchState) {
		st.Predictions = nil
		st.Warnings = warnings
		st.Error = UserMessage(cause)
	})
	if err != nil {
		return nil, err
	}
	return state, cause
}

func (s *batchService) archive(ctx context.Context, sessionID, fileName string, preds []domain.PredictionResult) (string, error) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	if err := csvexport.Export(&buf, preds); err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/%s.csv", sessionID, uuid.New().String())
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        &buf,
		ContentType: "text/csv; charset=utf-8",
		FileName:    csvexport.BuildFilename(fileName, domain.ExportFormatCSV),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// UserMessage maps a batch failure to the message shown to the user.
func UserMessage(err error) string {
	var tooLarge *domain.BatchTooLargeError
	var validation *domain.ValidationError
	var predErr interface{ IsClientError() bool }

	switch {
	case errors.Is(err, domain.ErrEmptyBatch):
		return MsgNoValidData
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("CSV file has %d records; the maximum per upload is %d.", tooLarge.Size, tooLarge.Max)
	case errors.As(err, &validation):
		return fmt.Sprintf("%s (%s)", MsgProcessFailed, validation.Error())
	case errors.As(err, &predErr) && predErr.IsClientError():
		return MsgPredictionReject
	case errors.Is(err, domain.ErrPredictionFailed):
		return MsgPredictionFailed
	default:
		return MsgProcessFailed
	}
}
