package domain

import (
	"fmt"
	"time"
)

// OrderLine is one supplier's share of an order: quantities per category,
// the unit prices they were charged at, and the derived subtotals.
type OrderLine struct {
	Fornecedor string
	Quantities map[Category]float64
	UnitPrices map[Category]float64
	Subtotals  map[Category]float64
	LineTotal  float64
}

// Order is a priced meal order. It is immutable once persisted; a failed
// save leaves no trace of it.
type Order struct {
	DataRefeicao string
	CNPJ         string
	Lines        []OrderLine
	TotalGeral   float64
	CreatedAt    time.Time
}

// NewOrder validates the mandatory fields and returns an unpriced order.
// Quantities and prices are not range-checked: negative values are accepted
// and multiply normally.
func NewOrder(dataRefeicao, cnpj string, lines []OrderLine) (*Order, error) {
	if dataRefeicao == "" {
		return nil, fmt.Errorf("%w: data_refeicao is required", ErrValidation)
	}
	if cnpj == "" {
		return nil, fmt.Errorf("%w: cnpj is required", ErrValidation)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for i, line := range lines {
		if line.Fornecedor == "" {
			return nil, fmt.Errorf("%w: items[%d].fornecedor is required", ErrValidation, i)
		}
	}

	return &Order{
		DataRefeicao: dataRefeicao,
		CNPJ:         cnpj,
		Lines:        lines,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Price computes subtotal = quantity * unit price for every category of
// every line, the per-line totals, and the grand total. Absent quantities
// or prices count as zero.
func (o *Order) Price() {
	total := 0.0
	for i := range o.Lines {
		line := &o.Lines[i]
		line.Subtotals = make(map[Category]float64, len(Categories))
		line.LineTotal = 0
		for _, c := range Categories {
			subtotal := line.Quantities[c] * line.UnitPrices[c]
			line.Subtotals[c] = subtotal
			line.LineTotal += subtotal
		}
		total += line.LineTotal
	}
	o.TotalGeral = total
}
