package catalog

import (
	"context"
	"fmt"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

// Service folds raw catalog rows into per-supplier records. It holds no
// state of its own; the source is an external collaborator and may be nil
// when the catalog is not configured.
type Service struct {
	source interfaces.CatalogSource
	logger logger.Logger
}

func NewService(source interfaces.CatalogSource, logger logger.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// ListSuppliers fetches the current snapshot and aggregates it. Unmapped
// meal-type labels are logged, never errored.
func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	suppliers, unmapped := domain.AggregateCatalog(rows)
	for _, label := range unmapped {
		s.logger.Debug("unmapped_meal_type", "Catalog row skipped, label matches no category", "", map[string]interface{}{
			"tipo_forn": label,
		})
	}

	return suppliers, nil
}

// UnitPrices resolves a fresh price list for one supplier, keyed by the
// exact supplier name. Used by order placement when the request carries no
// prices of its own.
func (s *Service) UnitPrices(ctx context.Context, fornecedor string) (map[domain.Category]float64, error) {
	suppliers, err := s.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		if suppliers[i].Fornecedor == fornecedor {
			return suppliers[i].UnitPrices(), nil
		}
	}
	return nil, fmt.Errorf("%w: supplier %q not in catalog", domain.ErrNotFound, fornecedor)
}

func (s *Service) fetch(ctx context.Context) ([]domain.CatalogRow, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: catalog source not configured", domain.ErrCatalogUnavailable)
	}
	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		s.logger.Error("catalog_fetch_failed", "Failed to fetch catalog rows", "", nil, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return rows, nil
}
