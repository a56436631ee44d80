package entity

const (
	ChartRevenueTrend = "revenue_trend"
	ChartProductSales = "product_sales"
)

// ChartImage is a rendered raster chart ready to be embedded in a report.
type ChartImage struct {
	ID     string `json:"id"`
	Data   []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	DPI    int    `json:"dpi"`
}

// ChartSet groups the charts rendered for one export.
type ChartSet struct {
	RevenueTrend *ChartImage `json:"revenue_trend,omitempty"`
	ProductSales *ChartImage `json:"product_sales,omitempty"`
}

// Get returns the chart with the given identifier, or nil.
func (s ChartSet) Get(id string) *ChartImage {
	switch id {
	case ChartRevenueTrend:
		return s.RevenueTrend
	case ChartProductSales:
		return s.ProductSales
	}
	return nil
}
