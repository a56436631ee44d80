package data

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultSeed      int64 = 42
	DefaultStartDate       = "2024-01-01"
	DefaultDays            = 30
)

// DefaultProducts são os produtos gerados quando a configuração não define outros.
var DefaultProducts = []string{"Product A", "Product B", "Product C", "Product D", "Product E"}

// Settings controla o gerador de dados sintéticos.
type Settings struct {
	Seed      int64
	StartDate time.Time
	Days      int
	Products  []string
}

// DataRepositoryImpl implementa o DataRepository gerando dados sintéticos
// reproduzíveis a partir de uma semente.
type DataRepositoryImpl struct {
	settings Settings
}

// NewDataRepository cria uma nova implementação do DataRepository.
// Valores zerados em settings recebem os padrões.
func NewDataRepository(settings Settings) repository.DataRepository {
	if settings.Seed == 0 {
		settings.Seed = DefaultSeed
	}
	if settings.StartDate.IsZero() {
		settings.StartDate, _ = time.Parse("2006-01-02", DefaultStartDate)
	}
	if settings.Days <= 0 {
		settings.Days = DefaultDays
	}
	if len(settings.Products) == 0 {
		settings.Products = DefaultProducts
	}
	return &DataRepositoryImpl{settings: settings}
}

// ParseStartDate converte a data inicial da configuração (YYYY-MM-DD).
func ParseStartDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", value, err)
	}
	return t, nil
}

// GetSalesData gera uma série diária: receita ~ Normal(5000, 1000),
// pedidos ~ Poisson(50) e clientes ~ Poisson(35).
func (r *DataRepositoryImpl) GetSalesData(ctx context.Context) ([]entity.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(r.settings.Seed))
	revenue := distuv.Normal{Mu: 5000, Sigma: 1000}
	orders := distuv.Poisson{Lambda: 50}
	customers := distuv.Poisson{Lambda: 35}

	sales := make([]entity.SalesRecord, r.settings.Days)
	for i := range sales {
		sales[i] = entity.SalesRecord{
			Date:      r.settings.StartDate.AddDate(0, 0, i),
			Revenue:   decimal.NewFromFloat(revenue.Quantile(openUnit(rng))).Round(2),
			Orders:    poissonQuantile(orders, openUnit(rng)),
			Customers: poissonQuantile(customers, openUnit(rng)),
		}
	}
	return sales, nil
}

// GetProductData gera o resumo por produto: vendas ~ Uniform(10000, 50000),
// unidades em [100, 1000) e avaliação ~ Uniform(3.5, 5.0) com uma casa decimal.
func (r *DataRepositoryImpl) GetProductData(ctx context.Context) ([]entity.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Semente deslocada para que produtos e vendas não compartilhem a sequência.
	rng := rand.New(rand.NewSource(r.settings.Seed + 1))
	sales := distuv.Uniform{Min: 10000, Max: 50000}
	rating := distuv.Uniform{Min: 3.5, Max: 5.0}

	products := make([]entity.ProductRecord, len(r.settings.Products))
	for i, name := range r.settings.Products {
		products[i] = entity.ProductRecord{
			Name:      name,
			Sales:     decimal.NewFromFloat(sales.Quantile(rng.Float64())).Round(2),
			UnitsSold: 100 + rng.Intn(900),
			Rating:    math.Round(rating.Quantile(rng.Float64())*10) / 10,
		}
	}
	return products, nil
}

// openUnit devolve um valor uniforme em (0, 1), evitando os extremos onde
// o quantil da normal diverge.
func openUnit(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

// poissonQuantile inverte a CDF da Poisson: menor k com CDF(k) >= u.
func poissonQuantile(dist distuv.Poisson, u float64) int {
	limit := int(dist.Lambda*10) + 10
	for k := 0; k < limit; k++ {
		if dist.CDF(float64(k)) >= u {
			return k
		}
	}
	return limit
}
