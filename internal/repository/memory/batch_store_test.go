package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carprice/internal/domain"
)

func TestBatchStore_PutGetDelete(t *testing.T) {
	store := NewBatchStore(time.Minute)

	_, ok := store.Get("s1")
	assert.False(t, ok)

	store.Put("s1", &domain.BatchState{
		FileName:    "cars.csv",
		Predictions: []domain.PredictionResult{{PredictedPrice: 100}},
		Sequence:    3,
	})

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "cars.csv", got.FileName)
	assert.Equal(t, uint64(3), got.Sequence)

	store.Delete("s1")
	_, ok = store.Get("s1")
	assert.False(t, ok)
}

func TestBatchStore_ReturnsCopies(t *testing.T) {
	store := NewBatchStore(time.Minute)
	state := &domain.BatchState{Predictions: []domain.PredictionResult{{PredictedPrice: 100}}}
	store.Put("s1", state)

	state.Predictions[0].PredictedPrice = 1

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, float64(100), got.Predictions[0].PredictedPrice)

	got.Predictions[0].PredictedPrice = 2
	again, _ := store.Get("s1")
	assert.Equal(t, float64(100), again.Predictions[0].PredictedPrice)
}

func TestBatchStore_SessionsAreIsolated(t *testing.T) {
	store := NewBatchStore(time.Minute)
	store.Put("a", &domain.BatchState{FileName: "a.csv"})
	store.Put("b", &domain.BatchState{FileName: "b.csv"})

	a, _ := store.Get("a")
	b, _ := store.Get("b")
	assert.Equal(t, "a.csv", a.FileName)
	assert.Equal(t, "b.csv", b.FileName)
}

func TestBatchStore_Expires(t *testing.T) {
	store := NewBatchStore(20 * time.Millisecond)
	store.Put("s1", &domain.BatchState{FileName: "cars.csv"})

	assert.Eventually(t, func() bool {
		_, ok := store.Get("s1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
