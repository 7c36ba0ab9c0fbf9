package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"dcf-analyzer/internal/marketdata/cache"
	"dcf-analyzer/pkg/logger"
)

// CacheHandler handles cache inspection endpoints.
type CacheHandler struct {
	store  cache.Store
	logger *logger.Logger
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(store cache.Store, log *logger.Logger) *CacheHandler {
	return &CacheHandler{
		store:  store,
		logger: log,
	}
}

// GetEntries lists cached payloads.
// GET /api/v1/cache
func (h *CacheHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}

	entries, err := h.store.Entries(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list cache entries")
		respondError(w, http.StatusInternalServerError, "Failed to list cache entries")
		return
	}

	if entries == nil {
		entries = []cache.Entry{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

// Clear removes cached payloads for one ticker, or all of them.
// DELETE /api/v1/cache
// DELETE /api/v1/cache/{ticker}
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}

	var tickers []string
	if ticker := strings.ToUpper(mux.Vars(r)["ticker"]); ticker != "" {
		tickers = []string{ticker}
	}

	removed, err := h.store.Delete(r.Context(), tickers...)
	if err != nil {
		h.logger.WithError(err).Error("Failed to clear cache")
		respondError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
	})
}
