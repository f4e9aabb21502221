package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/pbarros/fornecedores/internal/domain"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS refeicoes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		data_refeicao TEXT NOT NULL,
		cnpj TEXT NOT NULL,
		fornecedor TEXT NOT NULL,
		cafe_qty REAL DEFAULT 0,
		cafe_valor_unitario REAL DEFAULT 0,
		cafe_total REAL DEFAULT 0,
		almoco_marmitex_qty REAL DEFAULT 0,
		almoco_marmitex_valor_unitario REAL DEFAULT 0,
		almoco_marmitex_total REAL DEFAULT 0,
		almoco_local_qty REAL DEFAULT 0,
		almoco_local_valor_unitario REAL DEFAULT 0,
		almoco_local_total REAL DEFAULT 0,
		janta_marmitex_qty REAL DEFAULT 0,
		janta_marmitex_valor_unitario REAL DEFAULT 0,
		janta_marmitex_total REAL DEFAULT 0,
		janta_local_qty REAL DEFAULT 0,
		janta_local_valor_unitario REAL DEFAULT 0,
		janta_local_total REAL DEFAULT 0,
		gelo_qty REAL DEFAULT 0,
		gelo_valor_unitario REAL DEFAULT 0,
		gelo_total REAL DEFAULT 0,
		total_geral REAL DEFAULT 0,
		data_criacao TIMESTAMP DEFAULT CURRENT_TIMESTAMP
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
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// OrderStore is the embedded fallback backend: a local SQLite file that
// accepts order writes when PostgreSQL is unreachable or unconfigured.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(path string) (*OrderStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// WAL keeps concurrent readers out of the writer's way; a single open
	// connection avoids SQLITE_BUSY under the one-writer model.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure refeicoes table: %w", err)
	}

	return &OrderStore{db: db}, nil
}

func (s *OrderStore) Save(ctx context.Context, order *domain.Order) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	var firstID int64
	for i := range order.Lines {
		line := &order.Lines[i]
		res, err := tx.ExecContext(ctx, insertSQL,
			order.DataRefeicao, order.CNPJ, line.Fornecedor,
			line.Quantities[domain.CategoryCafe], line.UnitPrices[domain.CategoryCafe], line.Subtotals[domain.CategoryCafe],
			line.Quantities[domain.CategoryAlmocoMarmitex], line.UnitPrices[domain.CategoryAlmocoMarmitex], line.Subtotals[domain.CategoryAlmocoMarmitex],
			line.Quantities[domain.CategoryAlmocoLocal], line.UnitPrices[domain.CategoryAlmocoLocal], line.Subtotals[domain.CategoryAlmocoLocal],
			line.Quantities[domain.CategoryJantaMarmitex], line.UnitPrices[domain.CategoryJantaMarmitex], line.Subtotals[domain.CategoryJantaMarmitex],
			line.Quantities[domain.CategoryJantaLocal], line.UnitPrices[domain.CategoryJantaLocal], line.Subtotals[domain.CategoryJantaLocal],
			line.Quantities[domain.CategoryGelo], line.UnitPrices[domain.CategoryGelo], line.Subtotals[domain.CategoryGelo],
			order.TotalGeral, order.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to insert order line: %v", domain.ErrStorage, err)
		}
		if i == 0 {
			id, err := res.LastInsertId()
			if err != nil {
				return 0, fmt.Errorf("%w: failed to read inserted id: %v", domain.ErrStorage, err)
			}
			firstID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: failed to commit order: %v", domain.ErrStorage, err)
	}
	return firstID, nil
}

func (s *OrderStore) Name() string {
	return "sqlite"
}

func (s *OrderStore) Close() {
	s.db.Close()
}

var _ interfaces.OrderStore = (*OrderStore)(nil)
