package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// CreateOrderRequest carries one order: the meal date, the client tax id
// and one line per supplier. Quantity fields default to zero; the valor_*
// fields are optional as a group. A line without any of them has its unit
// prices resolved from the catalog at order time.
type CreateOrderRequest struct {
	DataRefeicao string             `json:"data_refeicao"`
	CNPJ         string             `json:"cnpj"`
	Items        []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	Fornecedor     string  `json:"fornecedor"`
	Cafe           float64 `json:"cafe"`
	AlmocoMarmitex float64 `json:"almoco_marmitex"`
	AlmocoLocal    float64 `json:"almoco_local"`
	JantaMarmitex  float64 `json:"janta_marmitex"`
	JantaLocal     float64 `json:"janta_local"`
	Gelo           float64 `json:"gelo"`

	ValorCafe           *float64 `json:"valor_cafe,omitempty"`
	ValorAlmocoMarmitex *float64 `json:"valor_almoco_marmitex,omitempty"`
	ValorAlmocoLocal    *float64 `json:"valor_almoco_local,omitempty"`
	ValorJantaMarmitex  *float64 `json:"valor_janta_marmitex,omitempty"`
	ValorJantaLocal     *float64 `json:"valor_janta_local,omitempty"`
	ValorGelo           *float64 `json:"valor_gelo,omitempty"`
}

type CreateOrderResponse struct {
	Success bool    `json:"success"`
	ID      int64   `json:"id"`
	Total   float64 `json:"total"`
	Message string  `json:"message"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if validationErrors := validateCreateOrderRequest(req); len(validationErrors) > 0 {
		h.logger.Error("validation_failed", "Order validation failed", "", map[string]interface{}{
			"errors": validationErrors,
		}, fmt.Errorf("validation failed"))
		respondValidationErrors(w, validationErrors)
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), toCommand(req))
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to place order", "", nil, err)
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			respondError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, domain.ErrCatalogUnavailable):
			respondError(w, http.StatusServiceUnavailable, "catalog unavailable", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "storage failure", err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, CreateOrderResponse{
		Success: true,
		ID:      result.ID,
		Total:   result.Total,
		Message: "Order saved successfully",
	})
}

func validateCreateOrderRequest(req CreateOrderRequest) []ValidationError {
	var validationErrors []ValidationError

	if strings.TrimSpace(req.DataRefeicao) == "" {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "data_refeicao",
			Message: "meal date is required",
		})
	}
	if strings.TrimSpace(req.CNPJ) == "" {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "cnpj",
			Message: "cnpj is required",
		})
	}
	if len(req.Items) < 1 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "items",
			Message: "order must contain at least 1 item",
		})
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Fornecedor) == "" {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fmt.Sprintf("items[%d].fornecedor", i),
				Message: "fornecedor is required",
			})
		}
	}

	return validationErrors
}

func toCommand(req CreateOrderRequest) interfaces.PlaceOrderCommand {
	items := make([]interfaces.OrderItemCommand, len(req.Items))
	for i, item := range req.Items {
		items[i] = interfaces.OrderItemCommand{
			Fornecedor: strings.TrimSpace(item.Fornecedor),
			Quantities: map[domain.Category]float64{
				domain.CategoryCafe:           item.Cafe,
				domain.CategoryAlmocoMarmitex: item.AlmocoMarmitex,
				domain.CategoryAlmocoLocal:    item.AlmocoLocal,
				domain.CategoryJantaMarmitex:  item.JantaMarmitex,
				domain.CategoryJantaLocal:     item.JantaLocal,
				domain.CategoryGelo:           item.Gelo,
			},
			UnitPrices: item.unitPrices(),
		}
	}
	return interfaces.PlaceOrderCommand{
		DataRefeicao: strings.TrimSpace(req.DataRefeicao),
		CNPJ:         strings.TrimSpace(req.CNPJ),
		Items:        items,
	}
}

// unitPrices returns nil when the request carried no price fields at all,
// which tells the service to resolve them from the catalog. A partially
// filled set counts as supplied, with absent categories at zero.
func (i OrderItemRequest) unitPrices() map[domain.Category]float64 {
	supplied := i.ValorCafe != nil || i.ValorAlmocoMarmitex != nil || i.ValorAlmocoLocal != nil ||
		i.ValorJantaMarmitex != nil || i.ValorJantaLocal != nil || i.ValorGelo != nil
	if !supplied {
		return nil
	}

	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return map[domain.Category]float64{
		domain.CategoryCafe:           deref(i.ValorCafe),
		domain.CategoryAlmocoMarmitex: deref(i.ValorAlmocoMarmitex),
		domain.CategoryAlmocoLocal:    deref(i.ValorAlmocoLocal),
		domain.CategoryJantaMarmitex:  deref(i.ValorJantaMarmitex),
		domain.CategoryJantaLocal:     deref(i.ValorJantaLocal),
		domain.CategoryGelo:           deref(i.ValorGelo),
	}
}
