package entity

import (
	"fmt"
	"time"
)

const (
	PDFMimeType  = "application/pdf"
	CSVMimeType  = "text/csv"
	JSONMimeType = "application/json"
	XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Filter holds the selections made by the user in the dashboard.
// A nil Products slice selects every product.
type Filter struct {
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
	Products []string   `json:"products,omitempty"`
}

// DashboardView is the filtered state shown to the user.
type DashboardView struct {
	Filter   Filter          `json:"filter"`
	Sales    []SalesRecord   `json:"sales"`
	Products []ProductRecord `json:"products"`
	Metrics  Metrics         `json:"metrics"`
}

// ReportInput is everything the report builder needs. Data is already filtered.
type ReportInput struct {
	Sales    []SalesRecord
	Products []ProductRecord
	Notes    string
	Charts   ChartSet
}

// ExportResult is the outcome of a successful export, kept by the caller until downloaded.
type ExportResult struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	MIMEType    string    `json:"mime_type"`
	Data        []byte    `json:"-"`
	GeneratedAt time.Time `json:"generated_at"`
	PageCount   int       `json:"page_count"`
	Location    string    `json:"location,omitempty"`
}

const (
	ReportBaseName   = "Dashboard_Report"
	SalesBaseName    = "Dashboard_Sales"
	ProductsBaseName = "Dashboard_Products"
	DataBaseName     = "Dashboard_Data"
)

// ExportFilename builds "{base}_{YYYYMMDD_HHMMSS}.{ext}" from the generation time.
func ExportFilename(base, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, at.Format("20060102_150405"), ext)
}
