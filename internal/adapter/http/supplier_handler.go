package http

import (
	"errors"
	"net/http"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

type SupplierHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewSupplierHandler(service interfaces.CatalogService, logger logger.Logger) *SupplierHandler {
	return &SupplierHandler{
		service: service,
		logger:  logger,
	}
}

// ListSuppliers serves GET /suppliers: the aggregated catalog, one record
// per supplier.
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		h.logger.Error("suppliers_fetch_failed", "Failed to list suppliers", "", nil, err)
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "catalog unavailable", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	respondJSON(w, http.StatusOK, suppliers)
}
