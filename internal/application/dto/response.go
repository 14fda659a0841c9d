package dto

import (
	"time"
)

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"No data available from Binance" validate:"required"` // Main error message
	Details string `json:"details,omitempty" example:"provider unreachable: HTTP 502"`         // Underlying cause, when useful
	Code    string `json:"code,omitempty" example:"NO_DATA"`                                   // Stable machine-readable code
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"ok" validate:"required"`                      // Always "ok" while the process serves requests
	Timestamp time.Time `json:"timestamp" example:"2026-01-01T10:30:00Z" validate:"required"` // When the health check was performed
}

// StreamMessage is one frame pushed over the WebSocket stream
// @Description Merged snapshot pushed over /api/stream
type StreamMessage struct {
	Type      string                      `json:"type" example:"snapshot" enums:"snapshot,error"`
	Timestamp time.Time                   `json:"timestamp"`
	Data      map[string]*ExchangeMetrics `json:"data,omitempty"`
	Error     string                      `json:"error,omitempty"`
}

// ExchangeMetrics documents the canonical per-pair record for Swagger
// @Description Normalized P2P order-book metrics for one exchange/asset pair
type ExchangeMetrics struct {
	Volume    float64   `json:"volume" example:"152340.5"`                                  // Sum of listed quantity
	Orders    int       `json:"orders" example:"20"`                                        // Number of listings summed
	AvgPrice  float64   `json:"avgPrice" example:"1.0012"`                                  // Mean listing price
	Timestamp time.Time `json:"timestamp" example:"2026-01-01T10:30:00Z"`                   // Normalization time
	Exchange  string    `json:"exchange" example:"binance" enums:"binance,bybit,okx,kucoin"` // Provider id
	Asset     string    `json:"asset,omitempty" example:"USDT" enums:"USDC,USDT"`           // Asset tag
	Note      string    `json:"note,omitempty" example:"Simulated data - API requires authentication"`
}

func NewHealthResponse(now time.Time) *HealthResponse {
	return &HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC(),
	}
}
