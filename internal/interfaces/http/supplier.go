package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"contas/internal/domain/supplier"
	"contas/internal/shared/middleware"
)

type SupplierHandler struct {
	suppliers *supplier.Service
}

func NewSupplierHandler(suppliers *supplier.Service) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

type CreateSupplierRequest struct {
	Name  string  `json:"name"`
	TaxID *string `json:"taxId,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type UpdateSupplierRequest struct {
	Name   *string `json:"name,omitempty"`
	TaxID  *string `json:"taxId,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// HandleSuppliers routes collection-level requests by method.
func (h *SupplierHandler) HandleSuppliers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSupplierByID routes requests for a specific supplier.
func (h *SupplierHandler) HandleSupplierByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDeactivate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SupplierHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	suppliers, err := h.suppliers.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing suppliers for user %d: %v", userID, err)
		http.Error(w, "Failed to list suppliers", http.StatusInternalServerError)
		return
	}

	if suppliers == nil {
		suppliers = []*supplier.Supplier{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suppliers)
}

func (h *SupplierHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.suppliers.Create(r.Context(), supplier.CreateParams{
		UserID: userID,
		Name:   req.Name,
		TaxID:  req.TaxID,
		Phone:  req.Phone,
		Email:  req.Email,
	})
	if err != nil {
		if errors.Is(err, supplier.ErrNameRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating supplier for user %d: %v", userID, err)
		http.Error(w, "Failed to create supplier", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

func (h *SupplierHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid supplier ID", http.StatusBadRequest)
		return
	}

	s, err := h.suppliers.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, supplier.ErrSupplierNotFound) {
			http.Error(w, "Supplier not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting supplier %d: %v", id, err)
		http.Error(w, "Failed to get supplier", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func (h *SupplierHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid supplier ID", http.StatusBadRequest)
		return
	}

	var req UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.suppliers.Update(r.Context(), id, userID, supplier.UpdateParams{
		Name:   req.Name,
		TaxID:  req.TaxID,
		Phone:  req.Phone,
		Email:  req.Email,
		Active: req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, supplier.ErrSupplierNotFound):
			http.Error(w, "Supplier not found", http.StatusNotFound)
		case errors.Is(err, supplier.ErrNothingToUpdate):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error updating supplier %d: %v", id, err)
			http.Error(w, "Failed to update supplier", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func (h *SupplierHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid supplier ID", http.StatusBadRequest)
		return
	}

	if err := h.suppliers.Deactivate(r.Context(), id, userID); err != nil {
		if errors.Is(err, supplier.ErrSupplierNotFound) {
			http.Error(w, "Supplier not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deactivating supplier %d: %v", id, err)
		http.Error(w, "Failed to deactivate supplier", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment as an int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
