package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord represents the aggregated sales for a single day.
type SalesRecord struct {
	Date      time.Time       `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	Orders    int             `json:"orders"`
	Customers int             `json:"customers"`
}
