package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
)

const dateLayout = "2006-01-02"

// ParseFilter converte as seleções recebidas da CLI ou da API em um Filter.
// Datas vazias deixam o intervalo aberto; products nil seleciona todos os produtos.
func ParseFilter(from, to string, products []string) (entity.Filter, error) {
	var filter entity.Filter

	if from != "" {
		t, err := time.Parse(dateLayout, strings.TrimSpace(from))
		if err != nil {
			return entity.Filter{}, fmt.Errorf("from %q: %w", from, types.ErrInvalidDateLiteral)
		}
		filter.From = &t
	}

	if to != "" {
		t, err := time.Parse(dateLayout, strings.TrimSpace(to))
		if err != nil {
			return entity.Filter{}, fmt.Errorf("to %q: %w", to, types.ErrInvalidDateLiteral)
		}
		filter.To = &t
	}

	if products != nil {
		filter.Products = make([]string, 0, len(products))
		for _, p := range products {
			if p = strings.TrimSpace(p); p != "" {
				filter.Products = append(filter.Products, p)
			}
		}
	}

	if err := validateFilter(filter); err != nil {
		return entity.Filter{}, err
	}
	return filter, nil
}

func validateFilter(filter entity.Filter) error {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return types.ErrInvalidDateRange
	}
	return nil
}

// filterSales mantém os dias dentro do intervalo inclusivo.
func filterSales(sales []entity.SalesRecord, filter entity.Filter) []entity.SalesRecord {
	out := make([]entity.SalesRecord, 0, len(sales))
	for _, s := range sales {
		if filter.From != nil && s.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.Date.After(*filter.To) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// filterProducts mantém os produtos selecionados na ordem do dataset.
func filterProducts(products []entity.ProductRecord, filter entity.Filter) []entity.ProductRecord {
	if filter.Products == nil {
		out := make([]entity.ProductRecord, len(products))
		copy(out, products)
		return out
	}

	selected := make(map[string]bool, len(filter.Products))
	for _, name := range filter.Products {
		selected[name] = true
	}

	out := make([]entity.ProductRecord, 0, len(filter.Products))
	for _, p := range products {
		if selected[p.Name] {
			out = append(out, p)
		}
	}
	return out
}
