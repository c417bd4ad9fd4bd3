package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"contas/internal/domain/debit"
	"contas/internal/domain/report"
	"contas/internal/domain/supplier"
	"contas/internal/shared/middleware"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// HandleStatement returns the running statement for a date window.
// Omitted bounds widen to everything on that side.
func (h *ReportHandler) HandleStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	from, to, err := windowFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.reports.Statement(r.Context(), userID, from, to)
	if err != nil {
		log.Printf("Error building statement for user %d: %v", userID, err)
		http.Error(w, "Failed to build statement", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []*report.StatementEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// HandleMonthlyDebits lists every installment due in a calendar month.
func (h *ReportHandler) HandleMonthlyDebits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 1900 || year > 9999 {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}

	views, err := h.reports.MonthlyDebits(r.Context(), userID, year, time.Month(month))
	if err != nil {
		log.Printf("Error building monthly report for user %d: %v", userID, err)
		http.Error(w, "Failed to build monthly report", http.StatusInternalServerError)
		return
	}

	if views == nil {
		views = []*debit.InstallmentView{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// HandleSupplierReport returns the per-supplier report with stats.
func (h *ReportHandler) HandleSupplierReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	supplierID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid supplier ID", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	fromRaw, toRaw := q.Get("from"), q.Get("to")
	from, err := parseOptionalDate(&fromRaw)
	if err != nil {
		http.Error(w, "Invalid from date", http.StatusBadRequest)
		return
	}
	to, err := parseOptionalDate(&toRaw)
	if err != nil {
		http.Error(w, "Invalid to date", http.StatusBadRequest)
		return
	}

	rep, err := h.reports.SupplierReport(r.Context(), userID, supplierID, from, to)
	if err != nil {
		if errors.Is(err, supplier.ErrSupplierNotFound) {
			http.Error(w, "Supplier not found", http.StatusNotFound)
			return
		}
		log.Printf("Error building supplier report %d: %v", supplierID, err)
		http.Error(w, "Failed to build supplier report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// HandleSummary returns the dashboard totals for a date window.
func (h *ReportHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	from, to, err := windowFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.reports.Summary(r.Context(), userID, from, to)
	if err != nil {
		log.Printf("Error building summary for user %d: %v", userID, err)
		http.Error(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// windowFromQuery reads from/to query dates, defaulting to an unbounded
// window on either side.
func windowFromQuery(r *http.Request) (time.Time, time.Time, error) {
	from := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, errors.New("invalid from date")
		}
		from = parsed
	}
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, errors.New("invalid to date")
		}
		to = parsed
	}

	return from, to, nil
}
