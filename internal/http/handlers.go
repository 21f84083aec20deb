package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rankings-api/internal/logger"
	"rankings-api/internal/models"
	"rankings-api/internal/rankings"

	"github.com/gorilla/mux"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	rankingsService rankings.RankingsService
	logger          logger.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	rankingsService rankings.RankingsService,
	logger logger.Service,
) *Handler {
	return &Handler{
		rankingsService: rankingsService,
		logger:          logger,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// GetRankings handles GET /api/rankings?domains=a.com,b.com and
// GET /api/rankings/{domains}
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	domains := mux.Vars(r)["domains"]
	if domains == "" {
		domains = r.URL.Query().Get("domains")
	}
	if domains == "" {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "domains parameter is required", "")
		return
	}

	h.logger.LogInfo(ctx, logger.OpGetRankings, fmt.Sprintf("Rankings requested for: %s", domains), map[string]interface{}{
		"domains": domains,
	})

	result, err := h.rankingsService.GetRankings(ctx, domains)
	if err != nil {
		severity := models.LogSeverityMedium
		statusCode := h.getStatusCodeForError(err)
		if statusCode == http.StatusInternalServerError {
			severity = models.LogSeverityHigh
		}
		h.logger.LogError(ctx, logger.OpGetRankings, domains, "Rankings request failed", err, severity, nil)
		h.writeErrorResponse(w, r, statusCode, "rankings request failed", err.Error())
		return
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, result); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpGetRankings, domains, "Failed to encode response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpGetRankings, domains, fmt.Sprintf("Returned rankings for %d domains", len(result)), nil)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", nil)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := ErrorResponse{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(r.Context(), logger.OpResponseEncode, "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

// getStatusCodeForError maps service errors to HTTP status codes.
// Client-input problems are 4xx; store infrastructure problems stay 5xx.
func (h *Handler) getStatusCodeForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidDomain),
		errors.Is(err, models.ErrNoDomainsProvided):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoRankedDomains):
		return http.StatusNotFound
	case errors.Is(err, models.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
