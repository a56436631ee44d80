package repository

import (
	"context"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
)

// DataRepository provides the datasets displayed on the dashboard.
type DataRepository interface {
	GetSalesData(ctx context.Context) ([]entity.SalesRecord, error)
	GetProductData(ctx context.Context) ([]entity.ProductRecord, error)
}
