package order

import (
	"context"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

// Service prices incoming orders and writes them through the selected
// storage backend. The publisher is optional; when present, a best-effort
// order-placed event follows every successful save.
type Service struct {
	store     interfaces.OrderStore
	prices    interfaces.PriceSource
	publisher interfaces.EventPublisher
	logger    logger.Logger
}

func NewService(store interfaces.OrderStore, prices interfaces.PriceSource, publisher interfaces.EventPublisher, logger logger.Logger) *Service {
	return &Service{
		store:     store,
		prices:    prices,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, cmd interfaces.PlaceOrderCommand) (*interfaces.PlaceOrderResult, error) {
	lines := make([]domain.OrderLine, len(cmd.Items))
	for i, item := range cmd.Items {
		lines[i] = domain.OrderLine{
			Fornecedor: item.Fornecedor,
			Quantities: item.Quantities,
			UnitPrices: item.UnitPrices,
		}
	}

	// Validation happens before any price lookup or write, so an invalid
	// request has no side effects.
	order, err := domain.NewOrder(cmd.DataRefeicao, cmd.CNPJ, lines)
	if err != nil {
		s.logger.Error("validation_failed", "Order validation failed", "", nil, err)
		return nil, err
	}

	for i := range order.Lines {
		if order.Lines[i].UnitPrices != nil {
			continue
		}
		prices, err := s.prices.UnitPrices(ctx, order.Lines[i].Fornecedor)
		if err != nil {
			s.logger.Error("price_lookup_failed", "Failed to resolve unit prices", "", map[string]interface{}{
				"fornecedor": order.Lines[i].Fornecedor,
			}, err)
			return nil, err
		}
		order.Lines[i].UnitPrices = prices
	}

	order.Price()

	id, err := s.store.Save(ctx, order)
	if err != nil {
		s.logger.Error("order_save_failed", "Failed to persist order", "", map[string]interface{}{
			"backend": s.store.Name(),
		}, err)
		return nil, err
	}

	s.logger.Info("order_saved", "Order persisted", "", map[string]interface{}{
		"record_id":   id,
		"total_geral": order.TotalGeral,
		"backend":     s.store.Name(),
	})

	s.publishPlaced(ctx, id, order)

	return &interfaces.PlaceOrderResult{
		ID:      id,
		Total:   order.TotalGeral,
		Backend: s.store.Name(),
	}, nil
}

// publishPlaced emits the advisory event. The write is the source of truth,
// so a publish failure is logged and swallowed.
func (s *Service) publishPlaced(ctx context.Context, id int64, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	fornecedores := make([]string, len(order.Lines))
	for i := range order.Lines {
		fornecedores[i] = order.Lines[i].Fornecedor
	}

	msg := interfaces.OrderPlacedMessage{
		RecordID:     id,
		DataRefeicao: order.DataRefeicao,
		CNPJ:         order.CNPJ,
		Fornecedores: fornecedores,
		TotalGeral:   order.TotalGeral,
		CreatedAt:    order.CreatedAt,
	}

	if err := s.publisher.PublishOrderPlaced(ctx, msg); err != nil {
		s.logger.Warn("event_publish_failed", "Order-placed event dropped", "", map[string]interface{}{
			"record_id": id,
		})
	}
}
