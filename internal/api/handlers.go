/*
Package api
File: handlers.go
Description:
    HTTP handlers for the REST API.
    They decode JSON requests, call the game Service and encode JSON responses.
    All locking is done by the Service; handlers hold no state of their own.
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/everforgeworks/harvest-craft/internal/game"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 4 << 10

// Request DTOs

type FarmRequest struct {
	PlayerID string `json:"player_id"`
}

type CraftRequest struct {
	PlayerID string          `json:"player_id"`
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Code     game.Code         `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Handlers binds the REST endpoints to a game Service.
type Handlers struct {
	svc *game.Service
	hub *Hub
}

// NewHandlers creates the handler set. hub may be nil to disable /ws.
func NewHandlers(svc *game.Service, hub *Hub) *Handlers {
	return &Handlers{svc: svc, hub: hub}
}

// Routes registers every endpoint on a new ServeMux.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()

	// Information Endpoints
	mux.HandleFunc("GET /api/craftables", h.HandleGetCraftables)
	mux.HandleFunc("GET /api/farm", h.HandleGetFarm)

	// Action Endpoints
	mux.HandleFunc("POST /api/farms", h.HandleCreateFarm)
	mux.HandleFunc("POST /api/craft", h.HandleCraft)

	// Real-Time WebSocket Endpoint
	if h.hub != nil {
		mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(h.hub, w, r)
		})
	}
	return mux
}

// HandleGetCraftables returns the default craftable catalog entries.
func (h *Handlers) HandleGetCraftables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Craftables())
}

// HandleGetFarm returns the current farm snapshot for ?player_id=.
func (h *Handlers) HandleGetFarm(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}
	st, err := h.svc.Farm(playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandleCreateFarm creates a farm with the catalog's starting balance.
func (h *Handlers) HandleCreateFarm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req FarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.NewFarm(req.PlayerID))
}

// HandleCraft applies a craft action to the player's farm.
func (h *Handlers) HandleCraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	st, err := h.svc.Craft(req.PlayerID, req.Item, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var gerr *game.Error
	if !errors.As(err, &gerr) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, statusFor(gerr.Code), ErrorResponse{
		Code:     gerr.Code,
		Message:  gerr.Message,
		Metadata: gerr.Metadata,
	})
}

func statusFor(code game.Code) int {
	switch code {
	case game.CodeFarmNotFound:
		return http.StatusNotFound
	case game.CodeNotCraftable, game.CodeItemDisabled:
		return http.StatusForbidden
	case game.CodeInvalidAmount:
		return http.StatusBadRequest
	case game.CodeMissingPrerequisite:
		return http.StatusConflict
	case game.CodeInsufficientBalance, game.CodeInsufficientIngredient:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// CorsMiddleware lets browser clients on other origins call the API.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
