package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/domain/debit"
	"contas/internal/shared/middleware"
)

type DebitHandler struct {
	debits *debit.Service
}

func NewDebitHandler(debits *debit.Service) *DebitHandler {
	return &DebitHandler{debits: debits}
}

type CreateLaunchRequest struct {
	SupplierID       int64           `json:"supplierId"`
	PaymentFormID    int64           `json:"paymentFormId"`
	DocumentTypeID   int64           `json:"documentTypeId"`
	CardBrandID      *int64          `json:"cardBrandId,omitempty"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Description      string          `json:"description"`
	InstallmentCount int             `json:"installmentCount"`
	LaunchDate       *string         `json:"launchDate,omitempty"`
	FirstDueDate     *string         `json:"firstDueDate,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}

type SettleRequest struct {
	PaidDate   *string          `json:"paidDate,omitempty"`
	PaidAmount *decimal.Decimal `json:"paidAmount,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

type UpdateInstallmentRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	DueDate  *string          `json:"dueDate,omitempty"`
	StatusID *int64           `json:"statusId,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// HandleLaunches routes collection-level launch requests.
func (h *DebitHandler) HandleLaunches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListLaunches(w, r)
	case http.MethodPost:
		h.handleCreateLaunch(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DebitHandler) handleCreateLaunch(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateLaunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	launchDate, err := parseOptionalDate(req.LaunchDate)
	if err != nil {
		http.Error(w, "Invalid launch date", http.StatusBadRequest)
		return
	}
	firstDueDate, err := parseOptionalDate(req.FirstDueDate)
	if err != nil {
		http.Error(w, "Invalid first due date", http.StatusBadRequest)
		return
	}

	count := req.InstallmentCount
	if count == 0 {
		count = 1
	}

	l, err := h.debits.CreateLaunch(r.Context(), debit.CreateParams{
		UserID:           userID,
		SupplierID:       req.SupplierID,
		PaymentFormID:    req.PaymentFormID,
		DocumentTypeID:   req.DocumentTypeID,
		CardBrandID:      req.CardBrandID,
		TotalAmount:      req.TotalAmount,
		Description:      req.Description,
		InstallmentCount: count,
		LaunchDate:       launchDate,
		FirstDueDate:     firstDueDate,
		Notes:            req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, debit.ErrSupplierNotFound):
			http.Error(w, "Supplier not found", http.StatusNotFound)
		case errors.Is(err, debit.ErrInvalidAmount),
			errors.Is(err, debit.ErrInvalidCount),
			errors.Is(err, debit.ErrInstallmentsDenied),
			errors.Is(err, debit.ErrCardBrandRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error creating launch for user %d: %v", userID, err)
			http.Error(w, "Failed to create launch", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(l)
}

func (h *DebitHandler) handleListLaunches(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	supplierID, err := parseOptionalID(r.URL.Query().Get("supplierId"))
	if err != nil {
		http.Error(w, "Invalid supplier ID", http.StatusBadRequest)
		return
	}

	launches, err := h.debits.ListLaunches(r.Context(), userID, supplierID)
	if err != nil {
		log.Printf("Error listing launches for user %d: %v", userID, err)
		http.Error(w, "Failed to list launches", http.StatusInternalServerError)
		return
	}

	if launches == nil {
		launches = []*debit.LaunchView{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(launches)
}

// HandleInstallments lists installments. The overdue sweep runs first so
// the listing never shows a stale OPEN row that is already past due.
func (h *DebitHandler) HandleInstallments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := h.debits.SweepOverdue(r.Context()); err != nil {
		// The listing is still correct data, just possibly stale.
		log.Printf("Overdue sweep before listing failed: %v", err)
	}

	filter, err := installmentFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	views, err := h.debits.ListInstallments(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing installments for user %d: %v", userID, err)
		http.Error(w, "Failed to list installments", http.StatusInternalServerError)
		return
	}

	if views == nil {
		views = []*debit.InstallmentView{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// HandleInstallmentByID routes requests for a specific installment.
func (h *DebitHandler) HandleInstallmentByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetInstallment(w, r)
	case http.MethodPut:
		h.handleUpdateInstallment(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DebitHandler) handleGetInstallment(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid installment ID", http.StatusBadRequest)
		return
	}

	view, err := h.debits.GetInstallment(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, debit.ErrInstallmentNotFound) {
			http.Error(w, "Installment not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting installment %d: %v", id, err)
		http.Error(w, "Failed to get installment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *DebitHandler) handleUpdateInstallment(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid installment ID", http.StatusBadRequest)
		return
	}

	var req UpdateInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		http.Error(w, "Invalid due date", http.StatusBadRequest)
		return
	}

	err = h.debits.UpdateInstallment(r.Context(), id, userID, debit.UpdateParams{
		Amount:   req.Amount,
		DueDate:  dueDate,
		StatusID: req.StatusID,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, debit.ErrInstallmentNotFound):
			http.Error(w, "Installment not found", http.StatusNotFound)
		case errors.Is(err, debit.ErrNothingToUpdate):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error updating installment %d: %v", id, err)
			http.Error(w, "Failed to update installment", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSettle records a payment against an installment.
func (h *DebitHandler) HandleSettle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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
		http.Error(w, "Invalid installment ID", http.StatusBadRequest)
		return
	}

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	paidDate, err := parseOptionalDate(req.PaidDate)
	if err != nil {
		http.Error(w, "Invalid paid date", http.StatusBadRequest)
		return
	}

	err = h.debits.Settle(r.Context(), id, userID, debit.SettleParams{
		PaidDate:   paidDate,
		PaidAmount: req.PaidAmount,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, debit.ErrInstallmentNotFound) {
			http.Error(w, "Installment not found", http.StatusNotFound)
			return
		}
		log.Printf("Error settling installment %d: %v", id, err)
		http.Error(w, "Failed to settle installment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSweep forces the overdue sweep and returns how many rows changed.
func (h *DebitHandler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	swept, err := h.debits.SweepOverdue(r.Context())
	if err != nil {
		log.Printf("Error running overdue sweep: %v", err)
		http.Error(w, "Failed to run sweep", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"swept": swept})
}

func installmentFilterFromQuery(r *http.Request) (debit.Filter, error) {
	var filter debit.Filter

	q := r.URL.Query()

	supplierID, err := parseOptionalID(q.Get("supplierId"))
	if err != nil {
		return filter, errors.New("invalid supplier ID")
	}
	filter.SupplierID = supplierID

	statusID, err := parseOptionalID(q.Get("statusId"))
	if err != nil {
		return filter, errors.New("invalid status ID")
	}
	filter.StatusID = statusID

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("invalid from date")
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("invalid to date")
		}
		filter.To = &to
	}

	return filter, nil
}

func parseOptionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
