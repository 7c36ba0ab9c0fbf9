package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/internal/valuation"
	"dcf-analyzer/pkg/logger"
)

// ValuationHandler handles valuation API endpoints.
type ValuationHandler struct {
	data   *marketdata.Service
	engine *valuation.Engine
	logger *logger.Logger
}

// NewValuationHandler creates a new valuation handler.
func NewValuationHandler(data *marketdata.Service, engine *valuation.Engine, log *logger.Logger) *ValuationHandler {
	return &ValuationHandler{
		data:   data,
		engine: engine,
		logger: log,
	}
}

// ScenarioFailure reports one scenario that could not be valued.
type ScenarioFailure struct {
	Scenario valuation.Scenario `json:"scenario"`
	Error    string             `json:"error"`
}

// ValuationResponse is the response body for GET /api/v1/valuation/{ticker}.
type ValuationResponse struct {
	Ticker   string                      `json:"ticker"`
	Company  string                      `json:"company,omitempty"`
	Source   string                      `json:"source"`
	Results  []*valuation.ScenarioResult `json:"results"`
	Failures []ScenarioFailure           `json:"failures,omitempty"`
}

// GetValuation runs the DCF model for a ticker.
// GET /api/v1/valuation/{ticker}?scenario=base&refresh=true
func (h *ValuationHandler) GetValuation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	var scenarios []valuation.Scenario
	if scenarioStr := r.URL.Query().Get("scenario"); scenarioStr != "" {
		scenario, err := valuation.ParseScenario(scenarioStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "unknown scenario (expected base, optimistic or pessimistic)")
			return
		}
		scenarios = []valuation.Scenario{scenario}
	} else {
		scenarios = valuation.Scenarios
	}

	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	bundle, err := h.data.Bundle(ctx, ticker, refresh)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to fetch valuation data")
		respondError(w, http.StatusBadGateway, "Failed to fetch data for "+ticker)
		return
	}

	response := ValuationResponse{
		Ticker:  ticker,
		Company: bundle.Overview.Name,
		Source:  h.data.SourceName(),
	}

	allInsufficient := true
	for _, scenario := range scenarios {
		result, err := h.engine.Valuate(ticker, bundle, scenario)
		if err != nil {
			if !errors.Is(err, valuation.ErrInsufficientData) {
				allInsufficient = false
			}
			response.Failures = append(response.Failures, ScenarioFailure{
				Scenario: scenario,
				Error:    err.Error(),
			})
			continue
		}
		response.Results = append(response.Results, result)
	}

	// Every scenario failing means the input data cannot support a
	// valuation at all.
	if len(response.Results) == 0 {
		status := http.StatusInternalServerError
		if allInsufficient {
			status = http.StatusUnprocessableEntity
		}
		respondJSON(w, status, response)
		return
	}

	respondJSON(w, http.StatusOK, response)
}
