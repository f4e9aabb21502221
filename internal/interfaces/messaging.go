package interfaces

import (
	"context"
	"time"
)

// OrderPlacedMessage is the advisory event published after a successful
// save. Consumers must tolerate loss: delivery is fire-and-forget.
type OrderPlacedMessage struct {
	RecordID     int64     `json:"record_id"`
	DataRefeicao string    `json:"data_refeicao"`
	CNPJ         string    `json:"cnpj"`
	Fornecedores []string  `json:"fornecedores"`
	TotalGeral   float64   `json:"total_geral"`
	CreatedAt    time.Time `json:"created_at"`
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlacedMessage) error
	Close() error
}
