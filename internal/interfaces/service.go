package interfaces

import (
	"context"

	"github.com/pbarros/fornecedores/internal/domain"
)

type CatalogService interface {
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

// PriceSource resolves current unit prices for a supplier, used when an
// order request does not carry its own prices.
type PriceSource interface {
	UnitPrices(ctx context.Context, fornecedor string) (map[domain.Category]float64, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error)
}

type PhotoRelay interface {
	Put(sessionID, payload string)
	Get(sessionID string) (string, bool)
	EvictExpired() int
}

// PlaceOrderCommand carries a decoded order request into the service layer.
type PlaceOrderCommand struct {
	DataRefeicao string
	CNPJ         string
	Items        []OrderItemCommand
}

// OrderItemCommand is one line of the request. A nil UnitPrices map means
// the caller supplied no prices and they must be looked up from the catalog.
type OrderItemCommand struct {
	Fornecedor string
	Quantities map[domain.Category]float64
	UnitPrices map[domain.Category]float64
}

type PlaceOrderResult struct {
	ID      int64
	Total   float64
	Backend string
}
