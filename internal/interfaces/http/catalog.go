package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"contas/internal/domain/catalog"
)

// CatalogHandler serves the lookup tables that populate form selects.
type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

func (h *CatalogHandler) HandlePaymentForms(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "payment forms", h.catalog.ListPaymentForms)
}

func (h *CatalogHandler) HandleDocumentTypes(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "document types", h.catalog.ListDocumentTypes)
}

func (h *CatalogHandler) HandleCardBrands(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "card brands", h.catalog.ListCardBrands)
}

func (h *CatalogHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "statuses", h.catalog.ListStatuses)
}

func (h *CatalogHandler) HandleCreditTypes(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "credit types", h.catalog.ListCreditTypes)
}

func serveList[T any](w http.ResponseWriter, r *http.Request, what string, load func(context.Context) ([]*T, error)) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := load(r.Context())
	if err != nil {
		log.Printf("Error listing %s: %v", what, err)
		http.Error(w, "Failed to list "+what, http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []*T{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
