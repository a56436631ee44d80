package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSalesData_Defaults(t *testing.T) {
	repo := NewDataRepository(Settings{})

	sales, err := repo.GetSalesData(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, DefaultDays)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range sales {
		assert.Equal(t, start.AddDate(0, 0, i), s.Date)
		assert.GreaterOrEqual(t, s.Orders, 0)
		assert.GreaterOrEqual(t, s.Customers, 0)
		assert.LessOrEqual(t, int(s.Revenue.Exponent()), 0)
		assert.GreaterOrEqual(t, s.Revenue.Exponent(), int32(-2))
	}
}

func TestGetSalesData_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := NewDataRepository(Settings{Seed: 7}).GetSalesData(ctx)
	require.NoError(t, err)
	b, err := NewDataRepository(Settings{Seed: 7}).GetSalesData(ctx)
	require.NoError(t, err)
	c, err := NewDataRepository(Settings{Seed: 8}).GetSalesData(ctx)
	require.NoError(t, err)

	for i := range a {
		assert.True(t, a[i].Revenue.Equal(b[i].Revenue))
		assert.Equal(t, a[i].Orders, b[i].Orders)
	}
	assert.NotEqual(t, a[0].Revenue.String()+a[1].Revenue.String(), c[0].Revenue.String()+c[1].Revenue.String())
}

func TestGetProductData_Bounds(t *testing.T) {
	repo := NewDataRepository(Settings{Products: []string{"Alpha", "Beta", "Gamma"}})

	products, err := repo.GetProductData(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		p := products[i]
		assert.Equal(t, name, p.Name)
		assert.True(t, p.Sales.InexactFloat64() >= 10000 && p.Sales.InexactFloat64() <= 50000, "sales %s", p.Sales)
		assert.True(t, p.UnitsSold >= 100 && p.UnitsSold < 1000)
		assert.True(t, p.Rating >= 3.5 && p.Rating <= 5.0)
	}
}

func TestGetSalesData_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataRepository(Settings{}).GetSalesData(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseStartDate(t *testing.T) {
	got, err := ParseStartDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	zero, err := ParseStartDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseStartDate("05/03/2024")
	assert.Error(t, err)
}
