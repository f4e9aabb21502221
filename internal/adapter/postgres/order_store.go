package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pbarros/fornecedores/internal/config"
	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

const connectTimeout = 10 * time.Second

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS refeicoes (
		id BIGSERIAL PRIMARY KEY,
		data_refeicao TEXT NOT NULL,
		cnpj TEXT NOT NULL,
		fornecedor TEXT NOT NULL,
		cafe_qty DOUBLE PRECISION DEFAULT 0,
		cafe_valor_unitario DOUBLE PRECISION DEFAULT 0,
		cafe_total DOUBLE PRECISION DEFAULT 0,
		almoco_marmitex_qty DOUBLE PRECISION DEFAULT 0,
		almoco_marmitex_valor_unitario DOUBLE PRECISION DEFAULT 0,
		almoco_marmitex_total DOUBLE PRECISION DEFAULT 0,
		almoco_local_qty DOUBLE PRECISION DEFAULT 0,
		almoco_local_valor_unitario DOUBLE PRECISION DEFAULT 0,
		almoco_local_total DOUBLE PRECISION DEFAULT 0,
		janta_marmitex_qty DOUBLE PRECISION DEFAULT 0,
		janta_marmitex_valor_unitario DOUBLE PRECISION DEFAULT 0,
		janta_marmitex_total DOUBLE PRECISION DEFAULT 0,
		janta_local_qty DOUBLE PRECISION DEFAULT 0,
		janta_local_valor_unitario DOUBLE PRECISION DEFAULT 0,
		janta_local_total DOUBLE PRECISION DEFAULT 0,
		gelo_qty DOUBLE PRECISION DEFAULT 0,
		gelo_valor_unitario DOUBLE PRECISION DEFAULT 0,
		gelo_total DOUBLE PRECISION DEFAULT 0,
		total_geral DOUBLE PRECISION DEFAULT 0,
		data_criacao TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

const insertSQL = `
	INSERT INTO refeicoes (
		data_refeicao, cnpj, fornecedor,
		cafe_qty, cafe_valor_unitario, cafe_total,
		almoco_marmitex_qty, almoco_marmitex_valor_unitario, almoco_marmitex_total,
		almoco_local_qty, almoco_local_valor_unitario, almoco_local_total,
		janta_marmitex_qty, janta_marmitex_valor_unitario, janta_marmitex_total,
		janta_local_qty, janta_local_valor_unitario, janta_local_total,
		gelo_qty, gelo_valor_unitario, gelo_total,
		total_geral, data_criacao
	) VALUES (
		$1, $2, $3,
		$4, $5, $6,
		$7, $8, $9,
		$10, $11, $12,
		$13, $14, $15,
		$16, $17, $18,
		$19, $20, $21,
		$22, $23
	)
	RETURNING id
`

// OrderStore writes priced orders to PostgreSQL, one row per order line,
// inside a single transaction per save.
type OrderStore struct {
	pool *pgxpool.Pool
}

// NewOrderStore connects to the primary store, verifies the connection
// within a bounded timeout, and ensures the target table exists. Existing
// schemas are never altered.
func NewOrderStore(ctx context.Context, cfg *config.Config) (*OrderStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure refeicoes table: %w", err)
	}

	return &OrderStore{pool: pool}, nil
}

func (s *OrderStore) Save(ctx context.Context, order *domain.Order) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	var firstID int64
	for i := range order.Lines {
		line := &order.Lines[i]
		var id int64
		err := tx.QueryRow(ctx, insertSQL,
			order.DataRefeicao, order.CNPJ, line.Fornecedor,
			line.Quantities[domain.CategoryCafe], line.UnitPrices[domain.CategoryCafe], line.Subtotals[domain.CategoryCafe],
			line.Quantities[domain.CategoryAlmocoMarmitex], line.UnitPrices[domain.CategoryAlmocoMarmitex], line.Subtotals[domain.CategoryAlmocoMarmitex],
			line.Quantities[domain.CategoryAlmocoLocal], line.UnitPrices[domain.CategoryAlmocoLocal], line.Subtotals[domain.CategoryAlmocoLocal],
			line.Quantities[domain.CategoryJantaMarmitex], line.UnitPrices[domain.CategoryJantaMarmitex], line.Subtotals[domain.CategoryJantaMarmitex],
			line.Quantities[domain.CategoryJantaLocal], line.UnitPrices[domain.CategoryJantaLocal], line.Subtotals[domain.CategoryJantaLocal],
			line.Quantities[domain.CategoryGelo], line.UnitPrices[domain.CategoryGelo], line.Subtotals[domain.CategoryGelo],
			order.TotalGeral, order.CreatedAt,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to insert order line: %v", domain.ErrStorage, err)
		}
		if i == 0 {
			firstID = id
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: failed to commit order: %v", domain.ErrStorage, err)
	}
	return firstID, nil
}

func (s *OrderStore) Name() string {
	return "postgresql"
}

func (s *OrderStore) Close() {
	s.pool.Close()
}

var _ interfaces.OrderStore = (*OrderStore)(nil)
