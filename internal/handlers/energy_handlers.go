package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"energyguard/internal/history"
	"energyguard/internal/models"
	"energyguard/internal/services"
	"energyguard/pkg/logging"
	"energyguard/pkg/metrics"
)

// EnergyHandler handles energy monitoring API endpoints
type EnergyHandler struct {
	monitorService *services.MonitorService
	logger         *logging.StructuredLogger
	metrics        *metrics.Collector
	sessionHeader  string
}

// NewEnergyHandler creates a new energy handler
func NewEnergyHandler(
	monitorService *services.MonitorService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
	sessionHeader string,
) *EnergyHandler {
	return &EnergyHandler{
		monitorService: monitorService,
		logger:         logger,
		metrics:        metricsCollector,
		sessionHeader:  sessionHeader,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ReadingRequest is the JSON body for reading analysis. Sector and time of
// day arrive as free-form strings and are normalized here at the boundary.
type ReadingRequest struct {
	UsageKWh           float64 `json:"usage_kwh"`
	ExpectedKWh        float64 `json:"expected_kwh"`
	Sector             string  `json:"sector"`
	TimeOfDay          string  `json:"time_of_day"`
	SunlightAvailable  bool    `json:"sunlight_available"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
}

// AnalyzeResponse bundles the analysis and recommendation for one reading
type AnalyzeResponse struct {
	SessionID      string                 `json:"session_id"`
	AlertBanner    string                 `json:"alert_banner"`
	Analysis       *models.AnalysisResult `json:"analysis"`
	Recommendation *models.Recommendation `json:"recommendation"`
}

// HistoryResponse lists the recorded entries of a session
type HistoryResponse struct {
	SessionID string          `json:"session_id"`
	Entries   []history.Entry `json:"entries"`
	Count     int             `json:"count"`
}

// TimeseriesResponse carries the aligned series of a session
type TimeseriesResponse struct {
	SessionID string              `json:"session_id"`
	Series    *history.Timeseries `json:"series"`
}

// AnalyzeReading handles POST /api/v1/readings/analyze
func (h *EnergyHandler) AnalyzeReading(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/v1/readings/analyze").Observe(duration.Seconds())
	}()

	var req ReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordAPIError("decode_error", "/api/v1/readings/analyze")
		h.sendError(w, r, "invalid request body: numeric fields must be valid numbers", http.StatusBadRequest)
		return
	}

	// A missing or blank session header starts a fresh session; the ID is
	// echoed back so the client can continue it.
	sessionID := r.Header.Get(h.sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reading := models.Reading{
		UsageKWh:           req.UsageKWh,
		ExpectedKWh:        req.ExpectedKWh,
		Sector:             models.ParseSector(req.Sector),
		TimeOfDay:          models.ParseTimeOfDay(req.TimeOfDay),
		SunlightAvailable:  req.SunlightAvailable,
		TemperatureCelsius: req.TemperatureCelsius,
		RecordedAt:         time.Now().UTC(),
	}

	result, recommendation, err := h.monitorService.AnalyzeReading(ctx, sessionID, reading)
	if err != nil {
		var validationErr *models.ValidationError
		var limitErr *history.SessionLimitError

		switch {
		case errors.As(err, &validationErr):
			h.metrics.RecordAPIError("validation_error", "/api/v1/readings/analyze")
			h.sendError(w, r, validationErr.Message, http.StatusBadRequest)
		case errors.As(err, &limitErr):
			h.metrics.RecordAPIError("session_limit", "/api/v1/readings/analyze")
			h.sendError(w, r, limitErr.Error(), http.StatusServiceUnavailable)
		default:
			h.logger.Error(ctx, "[API_ANALYZE_ERROR] Failed to analyze reading", logging.Fields{
				"session_id": sessionID,
			}, err)
			h.metrics.RecordAPIError("internal_error", "/api/v1/readings/analyze")
			h.sendError(w, r, "failed to analyze reading", http.StatusInternalServerError)
		}
		return
	}

	response := AnalyzeResponse{
		SessionID:      sessionID,
		AlertBanner:    result.AlertLevel.Banner(),
		Analysis:       result,
		Recommendation: recommendation,
	}

	w.Header().Set(h.sessionHeader, sessionID)
	h.metrics.RecordAPIRequest("/api/v1/readings/analyze", "POST", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// GetTimeseries handles GET /api/v1/sessions/{id}/timeseries
func (h *EnergyHandler) GetTimeseries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	timer := h.metrics.NewTimer(h.metrics.APIRequestDuration.WithLabelValues("/api/v1/sessions/timeseries"))
	defer timer.ObserveDuration()

	sessionID := mux.Vars(r)["id"]

	series, err := h.monitorService.Timeseries(ctx, sessionID)
	if err != nil {
		var notFoundErr *services.NotFoundError
		var insufficientErr *services.InsufficientDataError

		switch {
		case errors.As(err, &notFoundErr):
			h.metrics.RecordAPIError("not_found", "/api/v1/sessions/timeseries")
			h.sendError(w, r, notFoundErr.Error(), http.StatusNotFound)
		case errors.As(err, &insufficientErr):
			h.metrics.RecordAPIError("insufficient_data", "/api/v1/sessions/timeseries")
			h.sendError(w, r, insufficientErr.Error(), http.StatusConflict)
		default:
			h.logger.Error(ctx, "[API_TIMESERIES_ERROR] Failed to build timeseries", logging.Fields{
				"session_id": sessionID,
			}, err)
			h.metrics.RecordAPIError("internal_error", "/api/v1/sessions/timeseries")
			h.sendError(w, r, "failed to build timeseries", http.StatusInternalServerError)
		}
		return
	}

	response := TimeseriesResponse{
		SessionID: sessionID,
		Series:    series,
	}

	h.metrics.RecordAPIRequest("/api/v1/sessions/timeseries", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// GetHistory handles GET /api/v1/sessions/{id}/history
func (h *EnergyHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/v1/sessions/history").Observe(duration.Seconds())
	}()

	sessionID := mux.Vars(r)["id"]

	entries, err := h.monitorService.HistoryEntries(ctx, sessionID)
	if err != nil {
		var notFoundErr *services.NotFoundError
		if errors.As(err, &notFoundErr) {
			h.metrics.RecordAPIError("not_found", "/api/v1/sessions/history")
			h.sendError(w, r, notFoundErr.Error(), http.StatusNotFound)
			return
		}

		h.logger.Error(ctx, "[API_HISTORY_ERROR] Failed to get history", logging.Fields{
			"session_id": sessionID,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/v1/sessions/history")
		h.sendError(w, r, "failed to get history", http.StatusInternalServerError)
		return
	}

	response := HistoryResponse{
		SessionID: sessionID,
		Entries:   entries,
		Count:     len(entries),
	}

	h.metrics.RecordAPIRequest("/api/v1/sessions/history", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// EndSession handles DELETE /api/v1/sessions/{id}
func (h *EnergyHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := mux.Vars(r)["id"]

	h.monitorService.EndSession(ctx, sessionID)

	h.metrics.RecordAPIRequest("/api/v1/sessions", "DELETE", "204")
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *EnergyHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *EnergyHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *EnergyHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all energy API routes
func (h *EnergyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/readings/analyze", h.AnalyzeReading).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}/timeseries", h.GetTimeseries).Methods("GET")
	router.HandleFunc("/api/v1/sessions/{id}/history", h.GetHistory).Methods("GET")
	router.HandleFunc("/api/v1/sessions/{id}", h.EndSession).Methods("DELETE")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
