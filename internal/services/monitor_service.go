package services

import (
	"context"
	"fmt"
	"time"

	"energyguard/internal/analytics"
	"energyguard/internal/history"
	"energyguard/internal/models"
	"energyguard/internal/recommend"
	"energyguard/pkg/logging"
	"energyguard/pkg/metrics"
)

// MinTimeseriesEntries is the number of recorded readings required before the
// cumulative timeseries view is available.
const MinTimeseriesEntries = 2

// MonitorService runs the full analysis pipeline for a session: validate the
// reading, derive the analysis, record it into the session history, and build
// the recommendation.
type MonitorService struct {
	sessions *history.Store
	engine   *recommend.Engine
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewMonitorService creates a new monitor service.
func NewMonitorService(sessions *history.Store, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *MonitorService {
	return &MonitorService{
		sessions: sessions,
		engine:   recommend.NewEngine(),
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// AnalyzeReading processes one reading for a session. Anomaly detection runs
// against the history as it was before this reading; the reading is appended
// afterward so it becomes the comparison point for the next one.
func (s *MonitorService) AnalyzeReading(ctx context.Context, sessionID string, reading models.Reading) (*models.AnalysisResult, *models.Recommendation, error) {
	startTime := time.Now()

	if err := reading.Validate(); err != nil {
		s.logger.Warn(ctx, "[ANALYZE_REJECTED] Reading failed validation", logging.Fields{
			"session_id":   sessionID,
			"expected_kwh": reading.ExpectedKWh,
		})
		s.metrics.RecordAnalysisError("validation_error")
		return nil, nil, err
	}

	sessionHistory, err := s.sessions.GetOrCreate(sessionID)
	if err != nil {
		s.metrics.RecordAnalysisError("session_limit")
		return nil, nil, fmt.Errorf("failed to open session: %w", err)
	}

	ratio, err := analytics.UsageRatio(reading)
	if err != nil {
		s.metrics.RecordAnalysisError("validation_error")
		return nil, nil, err
	}

	anomaly := analytics.DetectAnomaly(reading, sessionHistory)
	alertLevel := analytics.AlertLevelFor(ratio, anomaly)
	score := analytics.EfficiencyScore(ratio)
	recoveredKWh, remainingKWh := analytics.WasteRecovery(reading)

	sessionHistory.Add(reading, recoveredKWh, remainingKWh)

	result := &models.AnalysisResult{
		Ratio:           ratio,
		Anomaly:         anomaly,
		AlertLevel:      alertLevel,
		EfficiencyScore: score,
		RecoveredKWh:    recoveredKWh,
		RemainingKWh:    remainingKWh,
	}

	recommendation := s.engine.Analyze(reading, *result)

	duration := time.Since(startTime)
	s.metrics.RecordAnalysis(string(alertLevel), anomaly, score, recommendation.ConfidencePercent, duration)
	s.metrics.SetActiveSessions(s.sessions.Len())

	s.logger.Info(ctx, "[ANALYZE_COMPLETE] Reading analyzed", logging.Fields{
		"session_id":    sessionID,
		"usage_kwh":     reading.UsageKWh,
		"ratio":         ratio,
		"anomaly":       anomaly,
		"alert_level":   string(alertLevel),
		"score":         score,
		"recovered_kwh": recoveredKWh,
		"remaining_kwh": remainingKWh,
		"confidence":    recommendation.ConfidencePercent,
		"history_len":   sessionHistory.Len(),
		"duration_ms":   duration.Milliseconds(),
	})

	return result, &recommendation, nil
}

// Timeseries returns the aligned usage/recovered/remaining sequences for a
// session. At least MinTimeseriesEntries readings must have been recorded.
func (s *MonitorService) Timeseries(ctx context.Context, sessionID string) (*history.Timeseries, error) {
	sessionHistory, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, &NotFoundError{Resource: "session", ID: sessionID}
	}

	if sessionHistory.Len() < MinTimeseriesEntries {
		return nil, &InsufficientDataError{
			Needed: MinTimeseriesEntries,
			Have:   sessionHistory.Len(),
		}
	}

	series := sessionHistory.Series()

	s.logger.Debug(ctx, "[TIMESERIES] Series built", logging.Fields{
		"session_id": sessionID,
		"steps":      len(series.Steps),
	})

	return &series, nil
}

// HistoryEntries returns the recorded entries of a session in insertion order.
func (s *MonitorService) HistoryEntries(ctx context.Context, sessionID string) ([]history.Entry, error) {
	sessionHistory, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, &NotFoundError{Resource: "session", ID: sessionID}
	}
	return sessionHistory.Entries(), nil
}

// EndSession discards a session and its history.
func (s *MonitorService) EndSession(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
	s.metrics.SetActiveSessions(s.sessions.Len())

	s.logger.Info(ctx, "[SESSION_END] Session discarded", logging.Fields{
		"session_id": sessionID,
	})
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}

// InsufficientDataError is returned when a cumulative view is requested
// before enough readings have been recorded.
type InsufficientDataError struct {
	Needed int
	Have   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("at least %d readings required, have %d", e.Needed, e.Have)
}

func (e *InsufficientDataError) IsTransient() bool {
	return true
}
