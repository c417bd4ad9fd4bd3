package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"contas/internal/domain/instrument"
	"contas/internal/shared/middleware"
)

type InstrumentHandler struct {
	instruments *instrument.Service
}

func NewInstrumentHandler(instruments *instrument.Service) *InstrumentHandler {
	return &InstrumentHandler{instruments: instruments}
}

type CreateInstrumentRequest struct {
	Kind     string  `json:"kind"`
	Bank     string  `json:"bank"`
	Brand    *string `json:"brand,omitempty"`
	LastFour *string `json:"lastFour,omitempty"`
}

// HandleInstruments routes collection-level instrument requests.
func (h *InstrumentHandler) HandleInstruments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleInstrumentByID handles deactivation of a specific instrument.
func (h *InstrumentHandler) HandleInstrumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid instrument ID", http.StatusBadRequest)
		return
	}

	if err := h.instruments.Deactivate(r.Context(), id, userID); err != nil {
		if errors.Is(err, instrument.ErrInstrumentNotFound) {
			http.Error(w, "Instrument not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deactivating instrument %d: %v", id, err)
		http.Error(w, "Failed to deactivate instrument", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InstrumentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	instruments, err := h.instruments.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing instruments for user %d: %v", userID, err)
		http.Error(w, "Failed to list instruments", http.StatusInternalServerError)
		return
	}

	if instruments == nil {
		instruments = []*instrument.Instrument{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(instruments)
}

func (h *InstrumentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateInstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	inst, err := h.instruments.Create(r.Context(), instrument.CreateParams{
		UserID:   userID,
		Kind:     req.Kind,
		Bank:     req.Bank,
		Brand:    req.Brand,
		LastFour: req.LastFour,
	})
	if err != nil {
		if errors.Is(err, instrument.ErrInvalidKind) || errors.Is(err, instrument.ErrBankRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating instrument for user %d: %v", userID, err)
		http.Error(w, "Failed to create instrument", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inst)
}
