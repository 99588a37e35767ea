package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the EnergyGuard API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "EnergyGuard API",
			"description": "Energy monitoring platform: per-reading waste recovery analysis, rule-based alerting, and diagnosis recommendations",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "EnergyGuard Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/v1/readings/analyze": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Analyze an energy reading",
					"description": "Computes ratio, anomaly, alert level, efficiency score, and the recovered/remaining waste split, records the reading into the session history, and returns a rule-based recommendation",
					"parameters": []map[string]interface{}{
						{
							"name":        "X-Session-ID",
							"in":          "header",
							"description": "Monitoring session ID; a new session is created and echoed back when absent",
							"required":    false,
							"schema":      map[string]string{"type": "string"},
						},
					},
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"usage_kwh", "expected_kwh"},
									"properties": map[string]interface{}{
										"usage_kwh":           map[string]string{"type": "number"},
										"expected_kwh":        map[string]string{"type": "number"},
										"sector":              map[string]interface{}{"type": "string", "example": "Factory"},
										"time_of_day":         map[string]interface{}{"type": "string", "example": "Day"},
										"sunlight_available":  map[string]string{"type": "boolean"},
										"temperature_celsius": map[string]string{"type": "number"},
									},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Analysis and recommendation",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"session_id":   map[string]string{"type": "string"},
											"alert_banner": map[string]string{"type": "string"},
											"analysis": map[string]interface{}{
												"type": "object",
												"properties": map[string]interface{}{
													"ratio":            map[string]string{"type": "number"},
													"anomaly":          map[string]string{"type": "boolean"},
													"alert_level":      map[string]interface{}{"type": "string", "enum": []string{"NORMAL", "WARNING", "CRITICAL"}},
													"efficiency_score": map[string]string{"type": "number"},
													"recovered_kwh":    map[string]string{"type": "number"},
													"remaining_kwh":    map[string]string{"type": "number"},
												},
											},
											"recommendation": map[string]interface{}{
												"type": "object",
												"properties": map[string]interface{}{
													"reasons": map[string]interface{}{
														"type":  "array",
														"items": map[string]string{"type": "string"},
													},
													"actions": map[string]interface{}{
														"type": "array",
														"items": map[string]interface{}{
															"type": "object",
															"properties": map[string]interface{}{
																"priority": map[string]interface{}{"type": "string", "enum": []string{"LOW", "MEDIUM", "HIGH", "IMMEDIATE"}},
																"text":     map[string]string{"type": "string"},
															},
														},
													},
													"confidence_percent": map[string]string{"type": "integer"},
												},
											},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{
							"description": "Invalid body or non-positive expected usage",
						},
					},
				},
			},
			"/api/v1/sessions/{id}/timeseries": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get session timeseries",
					"description": "Aligned usage/recovered/remaining sequences indexed by monitoring step; requires at least two recorded readings",
					"parameters": []map[string]interface{}{
						{
							"name":     "id",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Timeseries",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"session_id": map[string]string{"type": "string"},
											"series": map[string]interface{}{
												"type": "object",
												"properties": map[string]interface{}{
													"steps":         map[string]interface{}{"type": "array", "items": map[string]string{"type": "integer"}},
													"usage_kwh":     map[string]interface{}{"type": "array", "items": map[string]string{"type": "number"}},
													"recovered_kwh": map[string]interface{}{"type": "array", "items": map[string]string{"type": "number"}},
													"remaining_kwh": map[string]interface{}{"type": "array", "items": map[string]string{"type": "number"}},
												},
											},
										},
									},
								},
							},
						},
						"404": map[string]interface{}{"description": "Unknown session"},
						"409": map[string]interface{}{"description": "Fewer than two readings recorded"},
					},
				},
			},
			"/api/v1/sessions/{id}/history": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get session history",
					"description": "Recorded readings with their recovered/remaining values in insertion order",
					"parameters": []map[string]interface{}{
						{
							"name":     "id",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Session history"},
						"404": map[string]interface{}{"description": "Unknown session"},
					},
				},
			},
			"/api/v1/sessions/{id}": map[string]interface{}{
				"delete": map[string]interface{}{
					"summary":     "End a session",
					"description": "Discards the session and its history",
					"parameters": []map[string]interface{}{
						{
							"name":     "id",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"204": map[string]interface{}{"description": "Session discarded"},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API is running",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
