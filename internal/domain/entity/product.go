package entity

import "github.com/shopspring/decimal"

// ProductRecord represents the performance summary of a single product.
type ProductRecord struct {
	Name      string          `json:"product"`
	Sales     decimal.Decimal `json:"sales"`
	UnitsSold int             `json:"units_sold"`
	Rating    float64         `json:"rating"`
}
