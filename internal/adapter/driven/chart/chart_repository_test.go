package chart

import (
	"bytes"
	"context"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sampleSales(days int) []entity.SalesRecord {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sales := make([]entity.SalesRecord, days)
	for i := range sales {
		sales[i] = entity.SalesRecord{
			Date:      start.AddDate(0, 0, i),
			Revenue:   decimal.NewFromInt(int64(4000 + i*100)),
			Orders:    40 + i,
			Customers: 30 + i,
		}
	}
	return sales
}

func sampleProducts() []entity.ProductRecord {
	return []entity.ProductRecord{
		{Name: "Product A", Sales: decimal.NewFromInt(12000), UnitsSold: 300, Rating: 4.1},
		{Name: "Product B", Sales: decimal.NewFromInt(45500), UnitsSold: 820, Rating: 4.8},
		{Name: "Product C", Sales: decimal.NewFromInt(23000), UnitsSold: 150, Rating: 3.9},
	}
}

func TestRenderCharts(t *testing.T) {
	repo := NewChartRepository()

	charts, err := repo.RenderCharts(context.Background(), sampleSales(10), sampleProducts())
	require.NoError(t, err)
	require.NotNil(t, charts.RevenueTrend)
	require.NotNil(t, charts.ProductSales)

	for _, img := range []*entity.ChartImage{charts.RevenueTrend, charts.ProductSales} {
		assert.True(t, bytes.HasPrefix(img.Data, pngSignature), "%s is not a PNG", img.ID)
		assert.Equal(t, 1050, img.Width)
		assert.Equal(t, 600, img.Height)
		assert.Equal(t, 150, img.DPI)

		cfg, err := png.DecodeConfig(bytes.NewReader(img.Data))
		require.NoError(t, err)
		assert.Equal(t, img.Width, cfg.Width)
		assert.Equal(t, img.Height, cfg.Height)
	}

	assert.Equal(t, entity.ChartRevenueTrend, charts.RevenueTrend.ID)
	assert.Equal(t, entity.ChartProductSales, charts.ProductSales.ID)
}

func TestRenderCharts_EmptySales(t *testing.T) {
	_, err := NewChartRepository().RenderCharts(context.Background(), nil, sampleProducts())

	var renderErr *types.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, entity.ChartRevenueTrend, renderErr.Chart)
	assert.ErrorIs(t, err, types.ErrEmptyDataset)
}

func TestRenderChart_OnlyRequestedChart(t *testing.T) {
	repo := NewChartRepository()
	ctx := context.Background()

	bars, err := repo.RenderChart(ctx, entity.ChartProductSales, nil, sampleProducts())
	require.NoError(t, err)
	assert.Equal(t, entity.ChartProductSales, bars.ID)
	assert.True(t, bytes.HasPrefix(bars.Data, pngSignature))

	_, err = repo.RenderChart(ctx, entity.ChartRevenueTrend, nil, sampleProducts())
	assert.ErrorIs(t, err, types.ErrEmptyDataset)

	_, err = repo.RenderChart(ctx, "pie", sampleSales(3), sampleProducts())
	assert.ErrorIs(t, err, types.ErrUnknownChart)
}

func TestRenderCharts_EmptyProducts(t *testing.T) {
	charts, err := NewChartRepository().RenderCharts(context.Background(), sampleSales(3), nil)
	require.NoError(t, err)
	require.NotNil(t, charts.ProductSales)
	assert.True(t, bytes.HasPrefix(charts.ProductSales.Data, pngSignature))
}

func TestRenderCharts_SingleDay(t *testing.T) {
	charts, err := NewChartRepository().RenderCharts(context.Background(), sampleSales(1), sampleProducts()[:1])
	require.NoError(t, err)
	assert.NotEmpty(t, charts.RevenueTrend.Data)
}

func TestRenderCharts_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChartRepository().RenderCharts(ctx, sampleSales(3), sampleProducts())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderCharts_IsolatedAcrossCalls(t *testing.T) {
	repo := NewChartRepository()
	ctx := context.Background()

	first, err := repo.RenderCharts(ctx, sampleSales(5), sampleProducts())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]entity.ChartSet, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.RenderCharts(ctx, sampleSales(5), sampleProducts())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, first.RevenueTrend.Data, results[i].RevenueTrend.Data)
		assert.Equal(t, first.ProductSales.Data, results[i].ProductSales.Data)
	}
}

func TestRenderThumbnail(t *testing.T) {
	repo := NewChartRepository()
	charts, err := repo.RenderCharts(context.Background(), sampleSales(5), sampleProducts())
	require.NoError(t, err)

	thumb, err := repo.RenderThumbnail(*charts.RevenueTrend, 350)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 350, cfg.Width)
	assert.Equal(t, 200, cfg.Height)

	same, err := repo.RenderThumbnail(*charts.RevenueTrend, 5000)
	require.NoError(t, err)
	assert.Equal(t, charts.RevenueTrend.Data, same)

	_, err = repo.RenderThumbnail(*charts.RevenueTrend, 0)
	assert.ErrorIs(t, err, types.ErrInvalidChartWidth)

	_, err = repo.RenderThumbnail(entity.ChartImage{ID: "broken", Data: []byte("nope")}, 100)
	var renderErr *types.RenderError
	assert.ErrorAs(t, err, &renderErr)
}
