package dto

import (
	"errors"
	"fmt"
	"net/http"

	"p2p-volume-tracker/internal/domain/entities"
)

const (
	CodeNoData            = "NO_DATA"
	CodeAuthRequired      = "AUTH_REQUIRED"
	CodeUnreachable       = "UPSTREAM_UNREACHABLE"
	CodeSchemaMismatch    = "UPSTREAM_SCHEMA_MISMATCH"
	CodeUnsupportedPair   = "UNSUPPORTED_PAIR"
	CodeAggregationFailed = "AGGREGATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)

// ErrorMapper traduce errores de dominio a respuestas HTTP
type ErrorMapper struct{}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// PairError maps a failed single-pair fetch to a status code and body.
// "No data" outcomes are 404; transport and parse failures are 500.
func (m *ErrorMapper) PairError(pair entities.Pair, err error) (int, *ErrorResponse) {
	name := pair.Exchange.DisplayName()

	switch {
	case errors.Is(err, entities.ErrUnsupportedPair):
		return http.StatusNotFound, &ErrorResponse{
			Error:   "Unsupported exchange pair",
			Details: err.Error(),
			Code:    CodeUnsupportedPair,
		}
	case errors.Is(err, entities.ErrProviderAuthRequired):
		return http.StatusNotFound, &ErrorResponse{
			Error: fmt.Sprintf("%s API requires authentication or no data available", name),
			Code:  CodeAuthRequired,
		}
	case errors.Is(err, entities.ErrProviderEmptyResult):
		return http.StatusNotFound, &ErrorResponse{
			Error: fmt.Sprintf("No data available from %s", name),
			Code:  CodeNoData,
		}
	case errors.Is(err, entities.ErrUpstreamSchemaMismatch):
		return http.StatusInternalServerError, &ErrorResponse{
			Error:   fmt.Sprintf("Failed to fetch %s data", name),
			Details: err.Error(),
			Code:    CodeSchemaMismatch,
		}
	default:
		return http.StatusInternalServerError, &ErrorResponse{
			Error:   fmt.Sprintf("Failed to fetch %s data", name),
			Details: errorDetails(err),
			Code:    CodeUnreachable,
		}
	}
}

// AggregationError maps a failed merge to its response
func (m *ErrorMapper) AggregationError(err error) (int, *ErrorResponse) {
	return http.StatusInternalServerError, &ErrorResponse{
		Error: "Failed to fetch exchange data",
		Code:  CodeAggregationFailed,
	}
}

// ToExchangeMetrics converts a domain record into its documented wire shape
func ToExchangeMetrics(m *entities.ExchangeMetrics) *ExchangeMetrics {
	return &ExchangeMetrics{
		Volume:    m.Volume,
		Orders:    m.Orders,
		AvgPrice:  m.AvgPrice,
		Timestamp: m.Timestamp,
		Exchange:  string(m.Exchange),
		Asset:     string(m.Asset),
		Note:      m.Note,
	}
}

// ToAggregateData converts a merged response for the stream
func ToAggregateData(resp entities.AggregateResponse) map[string]*ExchangeMetrics {
	data := make(map[string]*ExchangeMetrics, len(resp))
	for key, m := range resp {
		if m != nil {
			data[key] = ToExchangeMetrics(m)
		}
	}
	return data
}

func errorDetails(err error) string {
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}
