package repository

import (
	"context"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
)

// ChartRepository renders the dashboard charts as raster images.
type ChartRepository interface {
	RenderCharts(ctx context.Context, sales []entity.SalesRecord, products []entity.ProductRecord) (entity.ChartSet, error)
	RenderChart(ctx context.Context, chartID string, sales []entity.SalesRecord, products []entity.ProductRecord) (*entity.ChartImage, error)
	RenderThumbnail(img entity.ChartImage, width int) ([]byte, error)
}
