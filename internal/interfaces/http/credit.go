package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/domain/credit"
	"contas/internal/shared/middleware"
)

type CreditHandler struct {
	credits *credit.Service
}

func NewCreditHandler(credits *credit.Service) *CreditHandler {
	return &CreditHandler{credits: credits}
}

type CreateCreditRequest struct {
	CreditTypeID int64           `json:"creditTypeId"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
	ReceiptDate  *string         `json:"receiptDate,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

type UpdateCreditRequest struct {
	CreditTypeID *int64           `json:"creditTypeId,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Description  *string          `json:"description,omitempty"`
	ReceiptDate  *string          `json:"receiptDate,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// HandleCredits routes collection-level credit requests.
func (h *CreditHandler) HandleCredits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCreditByID routes requests for a specific credit.
func (h *CreditHandler) HandleCreditByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CreditHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receiptDate, err := parseOptionalDate(req.ReceiptDate)
	if err != nil {
		http.Error(w, "Invalid receipt date", http.StatusBadRequest)
		return
	}

	c, err := h.credits.Create(r.Context(), credit.CreateParams{
		UserID:       userID,
		CreditTypeID: req.CreditTypeID,
		Amount:       req.Amount,
		Description:  req.Description,
		ReceiptDate:  receiptDate,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, credit.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating credit for user %d: %v", userID, err)
		http.Error(w, "Failed to create credit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *CreditHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()

	creditTypeID, err := parseOptionalID(q.Get("creditTypeId"))
	if err != nil {
		http.Error(w, "Invalid credit type ID", http.StatusBadRequest)
		return
	}

	filter := credit.Filter{CreditTypeID: creditTypeID}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "Invalid from date", http.StatusBadRequest)
			return
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "Invalid to date", http.StatusBadRequest)
			return
		}
		filter.To = &to
	}

	credits, err := h.credits.List(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing credits for user %d: %v", userID, err)
		http.Error(w, "Failed to list credits", http.StatusInternalServerError)
		return
	}

	if credits == nil {
		credits = []*credit.CreditView{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(credits)
}

func (h *CreditHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid credit ID", http.StatusBadRequest)
		return
	}

	c, err := h.credits.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, credit.ErrCreditNotFound) {
			http.Error(w, "Credit not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting credit %d: %v", id, err)
		http.Error(w, "Failed to get credit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *CreditHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid credit ID", http.StatusBadRequest)
		return
	}

	var req UpdateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receiptDate, err := parseOptionalDate(req.ReceiptDate)
	if err != nil {
		http.Error(w, "Invalid receipt date", http.StatusBadRequest)
		return
	}

	err = h.credits.Update(r.Context(), id, userID, credit.UpdateParams{
		CreditTypeID: req.CreditTypeID,
		Amount:       req.Amount,
		Description:  req.Description,
		ReceiptDate:  receiptDate,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, credit.ErrCreditNotFound):
			http.Error(w, "Credit not found", http.StatusNotFound)
		case errors.Is(err, credit.ErrNothingToUpdate), errors.Is(err, credit.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error updating credit %d: %v", id, err)
			http.Error(w, "Failed to update credit", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CreditHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid credit ID", http.StatusBadRequest)
		return
	}

	if err := h.credits.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, credit.ErrCreditNotFound) {
			http.Error(w, "Credit not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting credit %d: %v", id, err)
		http.Error(w, "Failed to delete credit", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
