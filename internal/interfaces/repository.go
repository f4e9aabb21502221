package interfaces

import (
	"context"

	"github.com/pbarros/fornecedores/internal/domain"
)

// CatalogSource fetches the raw catalog snapshot. Its only contract is
// "execute query, return rows"; aggregation happens in the catalog service.
type CatalogSource interface {
	FetchRows(ctx context.Context) ([]domain.CatalogRow, error)
	Close() error
}

// OrderStore persists priced orders. The concrete backend (PostgreSQL or
// the embedded SQLite fallback) is selected once at startup; Save appends
// one durable row per order line inside a single transaction and returns
// the id of the first inserted row.
type OrderStore interface {
	Save(ctx context.Context, order *domain.Order) (int64, error)
	Name() string
	Close()
}
