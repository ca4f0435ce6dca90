package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/poolwatch/poolwatch/internal/engine"
	"github.com/poolwatch/poolwatch/internal/logger"
	"github.com/poolwatch/poolwatch/internal/provider"
)

var webLogger = logger.GetForComponent("web_server")

// PoolStore is the data access the API needs: lookup plus enumeration.
type PoolStore interface {
	provider.PoolProvider
	provider.PoolLister
}

// SnapshotSaver persists computed valuations. Optional; nil disables it.
type SnapshotSaver interface {
	SaveValuationSnapshot(ctx context.Context, poolID, liquidityUSD string) (int64, error)
}

// WebServer handles HTTP requests for pool valuation data
type WebServer struct {
	router *mux.Router
	port   string
	pools  PoolStore
	engine *engine.Engine
	saver  SnapshotSaver
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, pools PoolStore, eng *engine.Engine, saver SnapshotSaver) *WebServer {
	if port == "" {
		port = "8080"
	}

	server := &WebServer{
		router: mux.NewRouter(),
		port:   port,
		pools:  pools,
		engine: eng,
		saver:  saver,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (ws *WebServer) setupRoutes() {
	ws.router.HandleFunc("/health", ws.handleHealth).Methods("GET")

	api := ws.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", ws.handleHealth).Methods("GET")
	api.HandleFunc("/pools", ws.handleListPools).Methods("GET")
	api.HandleFunc("/pools/{id}/liquidity", ws.handlePoolLiquidity).Methods("GET")
}

// Start begins serving HTTP requests
func (ws *WebServer) Start() error {
	webLogger.Info().Str("port", ws.port).Msg("Starting web server")
	return http.ListenAndServe(":"+ws.port, ws.router)
}

// Handler exposes the router, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ws.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type poolSummary struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Type    string `json:"pool_type"`
	Tokens  int    `json:"token_count"`
}

func (ws *WebServer) handleListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := ws.pools.ListPools(r.Context())
	if err != nil {
		webLogger.Error().Err(err).Msg("Failed to list pools")
		ws.writeError(w, http.StatusInternalServerError, "failed to list pools")
		return
	}

	summaries := make([]poolSummary, 0, len(pools))
	for _, pool := range pools {
		summaries = append(summaries, poolSummary{
			ID:      pool.ID,
			Address: pool.Address,
			Type:    string(pool.Type),
			Tokens:  len(pool.Tokens),
		})
	}
	ws.writeJSON(w, http.StatusOK, summaries)
}

type liquidityResponse struct {
	PoolID       string `json:"pool_id"`
	PoolType     string `json:"pool_type"`
	LiquidityUSD string `json:"liquidity_usd"`
	ComputedAt   string `json:"computed_at"`
}

func (ws *WebServer) handlePoolLiquidity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pool, err := ws.pools.GetPool(r.Context(), id)
	if err != nil {
		if errors.Is(err, provider.ErrPoolNotFound) {
			ws.writeError(w, http.StatusNotFound, "pool not found")
			return
		}
		webLogger.Error().Err(err).Str("poolID", id).Msg("Failed to load pool")
		ws.writeError(w, http.StatusInternalServerError, "failed to load pool")
		return
	}

	liquidity, err := ws.engine.GetLiquidity(r.Context(), pool)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrUnsupportedPoolType),
			errors.Is(err, engine.ErrInsufficientPriceData),
			errors.Is(err, engine.ErrMalformedSnapshot),
			errors.Is(err, engine.ErrArithmetic):
			ws.writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			webLogger.Error().Err(err).Str("poolID", id).Msg("Valuation failed")
			ws.writeError(w, http.StatusInternalServerError, "valuation failed")
		}
		return
	}

	if ws.saver != nil {
		if _, err := ws.saver.SaveValuationSnapshot(r.Context(), pool.ID, liquidity); err != nil {
			webLogger.Error().Err(err).Str("poolID", pool.ID).Msg("Failed to persist valuation snapshot")
		}
	}

	ws.writeJSON(w, http.StatusOK, liquidityResponse{
		PoolID:       pool.ID,
		PoolType:     string(pool.Type),
		LiquidityUSD: liquidity,
		ComputedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (ws *WebServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		webLogger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (ws *WebServer) writeError(w http.ResponseWriter, status int, message string) {
	ws.writeJSON(w, status, map[string]string{"error": message})
}
