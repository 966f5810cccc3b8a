package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"carprice/internal/domain"
	"carprice/internal/middleware"
	"carprice/internal/service"
)

// maxRelayBody caps the size of a relayed prediction request.
const maxRelayBody = 10 << 20

// relayErrorMessage is the fixed error string of the relay failure envelope.
const relayErrorMessage = "Failed to predict car price"

// RelayError is the relay's failure body. It intentionally differs from
// APIResponse because existing clients of the relay expect this shape.
type RelayError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// PredictHandler handles the prediction relay and the single-entry form.
type PredictHandler struct {
	relayService service.RelayService
	batchService service.BatchService
}

// NewPredictHandler creates a new PredictHandler.
func NewPredictHandler(relayService service.RelayService, batchService service.BatchService) *PredictHandler {
	return &PredictHandler{relayService: relayService, batchService: batchService}
}

// Relay handles POST /api/predict. The request body is forwarded unmodified
// to the upstream predictor and a successful response is mirrored back.
func (h *PredictHandler) Relay(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRelayBody))
	if err != nil {
		respondRelayError(c, err)
		return
	}

	resp, err := h.relayService.Forward(c.Request.Context(), body)
	if err != nil {
		respondRelayError(c, err)
		return
	}

	c.Data(resp.StatusCode, resp.ContentType, resp.Body)
}

func respondRelayError(c *gin.Context, err error) {
	requestID, _ := c.Get(middleware.ContextKeyRequestID)
	log.Printf("[%s] predictHandler.Relay: %v", requestID, err)

	details := err.Error()
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		details = "request body too large"
	}
	c.JSON(http.StatusInternalServerError, RelayError{Error: relayErrorMessage, Details: details})
}

// PredictSingle handles POST /api/cars/predict
func (h *PredictHandler) PredictSingle(c *gin.Context) {
	var form domain.CarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.batchService.PredictSingle(c.Request.Context(), form)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
