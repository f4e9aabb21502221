package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/pbarros/fornecedores/internal/config"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

const queryTimeout = 30 * time.Second

// catalogSource reads the supplier price table from SQL Server. Rows come
// back ordered by supplier and meal type so aggregation input is stable
// across snapshots.
type catalogSource struct {
	db *sql.DB
}

func NewCatalogSource(cfg config.CatalogConfig) (interfaces.CatalogSource, error) {
	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
		RawQuery: url.Values{
			"database":     {cfg.Database},
			"encrypt":      {"true"},
			"dial timeout": {"30"},
		}.Encode(),
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog connection: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &catalogSource{db: db}, nil
}

func (s *catalogSource) FetchRows(ctx context.Context) ([]domain.CatalogRow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const query = `
		SELECT FORNECEDOR, CPF_CNPJ, VALOR, TIPO_FORN
		FROM tb_fornecedores
		ORDER BY FORNECEDOR, TIPO_FORN
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tb_fornecedores: %w", err)
	}
	defer rows.Close()

	var result []domain.CatalogRow
	for rows.Next() {
		var (
			fornecedor sql.NullString
			cpfCNPJ    sql.NullString
			valor      sql.NullFloat64
			tipoForn   sql.NullString
		)
		if err := rows.Scan(&fornecedor, &cpfCNPJ, &valor, &tipoForn); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		result = append(result, domain.CatalogRow{
			Fornecedor: fornecedor.String,
			CPFCNPJ:    cpfCNPJ.String,
			Valor:      valor.Float64,
			TipoForn:   tipoForn.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	return result, nil
}

func (s *catalogSource) Close() error {
	return s.db.Close()
}
