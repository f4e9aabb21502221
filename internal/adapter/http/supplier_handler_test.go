package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarros/fornecedores/internal/domain"
)

type stubCatalogService struct {
	suppliers []domain.Supplier
	err       error
}

func (s *stubCatalogService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers, s.err
}

func TestListSuppliers_Success(t *testing.T) {
	service := &stubCatalogService{suppliers: []domain.Supplier{
		{Fornecedor: "ACME", CPFCNPJ: "11.222.333/0001-00", Cafe: 15.00, AlmocoMarmitex: 25.00},
		{Fornecedor: "BETA", CPFCNPJ: "22.333.444/0001-00", Gelo: 5.00},
	}}
	handler := NewSupplierHandler(service, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	rec := httptest.NewRecorder()
	handler.ListSuppliers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var suppliers []domain.Supplier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suppliers))
	require.Len(t, suppliers, 2)
	assert.Equal(t, "ACME", suppliers[0].Fornecedor)
	assert.Equal(t, 15.00, suppliers[0].Cafe)
	assert.Equal(t, 5.00, suppliers[1].Gelo)
}

func TestListSuppliers_EmptyCatalogIsAnEmptyArray(t *testing.T) {
	handler := NewSupplierHandler(&stubCatalogService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	rec := httptest.NewRecorder()
	handler.ListSuppliers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListSuppliers_CatalogUnavailable(t *testing.T) {
	service := &stubCatalogService{err: fmt.Errorf("%w: catalog source not configured", domain.ErrCatalogUnavailable)}
	handler := NewSupplierHandler(service, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	rec := httptest.NewRecorder()
	handler.ListSuppliers(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "catalog unavailable", resp.Error)
	assert.NotEmpty(t, resp.Message)
}

func TestListSuppliers_MethodNotAllowed(t *testing.T) {
	handler := NewSupplierHandler(&stubCatalogService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/suppliers", nil)
	rec := httptest.NewRecorder()
	handler.ListSuppliers(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
