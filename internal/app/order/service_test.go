package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

type fakeStore struct {
	saved  []*domain.Order
	nextID int64
	err    error
}

func (f *fakeStore) Save(ctx context.Context, order *domain.Order) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, order)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeStore) Name() string { return "fake" }
func (f *fakeStore) Close()       {}

type fakePrices struct {
	prices map[string]map[domain.Category]float64
	err    error
	calls  int
}

func (f *fakePrices) UnitPrices(ctx context.Context, fornecedor string) (map[domain.Category]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.prices[fornecedor]
	if !ok {
		return nil, fmt.Errorf("%w: supplier %q not in catalog", domain.ErrNotFound, fornecedor)
	}
	return p, nil
}

type fakePublisher struct {
	published []interfaces.OrderPlacedMessage
	err       error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, msg interfaces.OrderPlacedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func testLogger() logger.Logger {
	return logger.NewWithWriter("test", io.Discard)
}

func validCommand() interfaces.PlaceOrderCommand {
	return interfaces.PlaceOrderCommand{
		DataRefeicao: "2025-09-18",
		CNPJ:         "12323430000123",
		Items: []interfaces.OrderItemCommand{
			{
				Fornecedor: "ACME",
				Quantities: map[domain.Category]float64{
					domain.CategoryCafe:           3,
					domain.CategoryAlmocoMarmitex: 2,
				},
				UnitPrices: map[domain.Category]float64{
					domain.CategoryCafe:           15.00,
					domain.CategoryAlmocoMarmitex: 25.00,
				},
			},
		},
	}
}

func TestPlaceOrder_SuppliedPrices(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store, &fakePrices{}, nil, testLogger())

	result, err := service.PlaceOrder(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, 95.00, result.Total)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, 45.00, saved.Lines[0].Subtotals[domain.CategoryCafe])
	assert.Equal(t, 50.00, saved.Lines[0].Subtotals[domain.CategoryAlmocoMarmitex])
	assert.Equal(t, 95.00, saved.TotalGeral)
}

func TestPlaceOrder_LooksUpPricesWhenAbsent(t *testing.T) {
	store := &fakeStore{}
	prices := &fakePrices{prices: map[string]map[domain.Category]float64{
		"ACME": {domain.CategoryCafe: 10.00},
	}}
	service := NewService(store, prices, nil, testLogger())

	cmd := validCommand()
	cmd.Items[0].UnitPrices = nil
	cmd.Items[0].Quantities = map[domain.Category]float64{domain.CategoryCafe: 4}

	result, err := service.PlaceOrder(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 40.00, result.Total)
	assert.Equal(t, 1, prices.calls)
}

func TestPlaceOrder_SuppliedPricesSkipLookup(t *testing.T) {
	prices := &fakePrices{}
	service := NewService(&fakeStore{}, prices, nil, testLogger())

	_, err := service.PlaceOrder(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Zero(t, prices.calls)
}

func TestPlaceOrder_ValidationFailurePerformsNoWrite(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store, &fakePrices{}, nil, testLogger())

	tests := []struct {
		name   string
		mutate func(*interfaces.PlaceOrderCommand)
	}{
		{"missing meal date", func(c *interfaces.PlaceOrderCommand) { c.DataRefeicao = "" }},
		{"missing cnpj", func(c *interfaces.PlaceOrderCommand) { c.CNPJ = "" }},
		{"no items", func(c *interfaces.PlaceOrderCommand) { c.Items = nil }},
		{"item without supplier", func(c *interfaces.PlaceOrderCommand) { c.Items[0].Fornecedor = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			_, err := service.PlaceOrder(context.Background(), cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, store.saved)
		})
	}
}

func TestPlaceOrder_StorageErrorSurfaced(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("%w: disk full", domain.ErrStorage)}
	service := NewService(store, &fakePrices{}, nil, testLogger())

	_, err := service.PlaceOrder(context.Background(), validCommand())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPlaceOrder_CatalogUnavailableSurfaced(t *testing.T) {
	store := &fakeStore{}
	prices := &fakePrices{err: fmt.Errorf("%w: no source", domain.ErrCatalogUnavailable)}
	service := NewService(store, prices, nil, testLogger())

	cmd := validCommand()
	cmd.Items[0].UnitPrices = nil

	_, err := service.PlaceOrder(context.Background(), cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Empty(t, store.saved)
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	service := NewService(&fakeStore{}, &fakePrices{}, publisher, testLogger())

	result, err := service.PlaceOrder(context.Background(), validCommand())
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	msg := publisher.published[0]
	assert.Equal(t, result.ID, msg.RecordID)
	assert.Equal(t, []string{"ACME"}, msg.Fornecedores)
	assert.Equal(t, 95.00, msg.TotalGeral)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker gone")}
	store := &fakeStore{}
	service := NewService(store, &fakePrices{}, publisher, testLogger())

	result, err := service.PlaceOrder(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	require.Len(t, store.saved, 1)
}
