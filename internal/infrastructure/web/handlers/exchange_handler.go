package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"p2p-volume-tracker/internal/application/dto"
	"p2p-volume-tracker/internal/domain/interfaces"
	"p2p-volume-tracker/internal/infrastructure/logging"
)

// ExchangeHandler serves the per-pair and merged P2P endpoints
type ExchangeHandler struct {
	service interfaces.AggregationService
	mapper  *dto.ErrorMapper
}

// NewExchangeHandler creates a new instance of the exchange handler
func NewExchangeHandler(service interfaces.AggregationService) *ExchangeHandler {
	return &ExchangeHandler{
		service: service,
		mapper:  dto.NewErrorMapper(),
	}
}

// GetPair godoc
// @Summary P2P metrics for one exchange/asset pair
// @Description Calls the exchange's public P2P endpoint once and returns normalized metrics. The "p2p" suffix is an alias for USDC.
// @Tags exchanges
// @Produce json
// @Param exchange path string true "Exchange id" Enums(binance, bybit, okx, kucoin)
// @Param asset path string true "Asset" Enums(p2p, usdc, usdt)
// @Success 200 {object} dto.ExchangeMetrics "Normalized metrics"
// @Failure 404 {object} dto.ErrorResponse "No listings, authentication required, or unknown pair"
// @Failure 500 {object} dto.ErrorResponse "Exchange unreachable or unexpected reply"
// @Router /api/{exchange}-{asset} [post]
// @Router /api/{exchange}-{asset} [get]
func (h *ExchangeHandler) GetPair(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := r.Context()

	request, err := dto.NewPairRequest(vars["exchange"], vars["asset"])
	if err != nil {
		writeJSONResponse(w, http.StatusNotFound, &dto.ErrorResponse{
			Error:   "Unsupported exchange pair",
			Details: err.Error(),
			Code:    dto.CodeUnsupportedPair,
		})
		return
	}

	m, err := h.service.FetchPair(ctx, request.Pair)
	if err != nil {
		status, body := h.mapper.PairError(request.Pair, err)
		writeJSONResponse(w, status, body)
		return
	}

	writeJSONResponse(w, http.StatusOK, m)
}

// GetAllExchanges godoc
// @Summary Merged P2P metrics
// @Description Fetches every configured pair concurrently and returns those that reported, keyed by "exchange-asset" (or bare exchange in single-asset deployments). Failed pairs are omitted.
// @Tags exchanges
// @Produce json
// @Success 200 {object} map[string]dto.ExchangeMetrics "Reporting pairs"
// @Failure 500 {object} dto.ErrorResponse "Aggregation failed"
// @Router /api/all-exchanges [get]
func (h *ExchangeHandler) GetAllExchanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := h.service.Aggregate(ctx)
	if err != nil {
		logging.ErrorWithError(ctx, "Error fetching all exchanges", err, nil)
		status, body := h.mapper.AggregationError(err)
		writeJSONResponse(w, status, body)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// NotFound answers unknown routes with the standard error body
func (h *ExchangeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusNotFound, &dto.ErrorResponse{
		Error: "Not found",
		Code:  dto.CodeNotFound,
	})
}

// MethodNotAllowed answers a known route called with the wrong verb
func (h *ExchangeHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusMethodNotAllowed, &dto.ErrorResponse{
		Error:   "Method not allowed",
		Details: r.Method + " " + r.URL.Path,
		Code:    dto.CodeMethodNotAllowed,
	})
}
