package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metrics holds the key figures shown on the dashboard and in the report summary.
type Metrics struct {
	PeriodStart         time.Time       `json:"period_start"`
	PeriodEnd           time.Time       `json:"period_end"`
	Days                int             `json:"days"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	AverageDailyRevenue decimal.Decimal `json:"average_daily_revenue"`
	TotalOrders         int             `json:"total_orders"`
	TotalCustomers      int             `json:"total_customers"`
	TopProduct          string          `json:"top_product,omitempty"`
}

// HasSales reports whether the metrics cover at least one day of sales.
func (m Metrics) HasSales() bool {
	return m.Days > 0
}

// Summarize computes the metrics for already filtered data. The top product is the
// one with the highest sales; on a tie the first one in input order wins.
func Summarize(sales []SalesRecord, products []ProductRecord) Metrics {
	m := Metrics{
		TotalRevenue:        decimal.Zero,
		AverageDailyRevenue: decimal.Zero,
	}

	for i, s := range sales {
		if i == 0 || s.Date.Before(m.PeriodStart) {
			m.PeriodStart = s.Date
		}
		if i == 0 || s.Date.After(m.PeriodEnd) {
			m.PeriodEnd = s.Date
		}
		m.TotalRevenue = m.TotalRevenue.Add(s.Revenue)
		m.TotalOrders += s.Orders
		m.TotalCustomers += s.Customers
	}

	m.Days = len(sales)
	if m.Days > 0 {
		m.AverageDailyRevenue = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.Days))).Round(2)
	}

	var top *ProductRecord
	for i := range products {
		if top == nil || products[i].Sales.GreaterThan(top.Sales) {
			top = &products[i]
		}
	}
	if top != nil {
		m.TopProduct = top.Name
	}

	return m
}
