package domain

// CatalogRow is one raw tb_fornecedores row: a single price for a single
// meal type of a single supplier.
type CatalogRow struct {
	Fornecedor string
	CPFCNPJ    string
	TipoForn   string
	Valor      float64
}

// Supplier is the aggregated catalog record: one entry per supplier with a
// price slot for every recognized category. JSON keys match the wire format
// consumed by the frontend.
type Supplier struct {
	Fornecedor     string  `json:"fornecedor"`
	CPFCNPJ        string  `json:"cpf_cnpj"`
	Cafe           float64 `json:"cafe"`
	AlmocoMarmitex float64 `json:"almoco_marmitex"`
	AlmocoLocal    float64 `json:"almoco_local"`
	JantaMarmitex  float64 `json:"janta_marmitex"`
	JantaLocal     float64 `json:"janta_local"`
	Gelo           float64 `json:"gelo"`
}

// Price returns the unit price for a category slot.
func (s *Supplier) Price(c Category) float64 {
	switch c {
	case CategoryCafe:
		return s.Cafe
	case CategoryAlmocoMarmitex:
		return s.AlmocoMarmitex
	case CategoryAlmocoLocal:
		return s.AlmocoLocal
	case CategoryJantaMarmitex:
		return s.JantaMarmitex
	case CategoryJantaLocal:
		return s.JantaLocal
	case CategoryGelo:
		return s.Gelo
	}
	return 0
}

// SetPrice overwrites the price for a category slot.
func (s *Supplier) SetPrice(c Category, v float64) {
	switch c {
	case CategoryCafe:
		s.Cafe = v
	case CategoryAlmocoMarmitex:
		s.AlmocoMarmitex = v
	case CategoryAlmocoLocal:
		s.AlmocoLocal = v
	case CategoryJantaMarmitex:
		s.JantaMarmitex = v
	case CategoryJantaLocal:
		s.JantaLocal = v
	case CategoryGelo:
		s.Gelo = v
	}
}

// UnitPrices returns all category prices as a map, for order pricing.
func (s *Supplier) UnitPrices() map[Category]float64 {
	prices := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		prices[c] = s.Price(c)
	}
	return prices
}

// AggregateCatalog folds flat catalog rows into one Supplier per distinct
// supplier name, in first-seen order. The tax id is the first non-empty
// value seen for the supplier. Duplicate rows for the same supplier and
// category overwrite the slot (last write in row order wins); rows whose
// label matches no recognized category are skipped and returned so the
// caller can log them. Malformed rows never fail the aggregation.
func AggregateCatalog(rows []CatalogRow) ([]Supplier, []string) {
	byName := make(map[string]*Supplier)
	var order []string
	var unmapped []string

	for _, row := range rows {
		s, ok := byName[row.Fornecedor]
		if !ok {
			s = &Supplier{Fornecedor: row.Fornecedor}
			byName[row.Fornecedor] = s
			order = append(order, row.Fornecedor)
		}
		if s.CPFCNPJ == "" && row.CPFCNPJ != "" {
			s.CPFCNPJ = row.CPFCNPJ
		}

		category, ok := CategoryForLabel(row.TipoForn)
		if !ok {
			unmapped = append(unmapped, row.TipoForn)
			continue
		}
		s.SetPrice(category, row.Valor)
	}

	suppliers := make([]Supplier, 0, len(order))
	for _, name := range order {
		suppliers = append(suppliers, *byName[name])
	}
	return suppliers, unmapped
}
