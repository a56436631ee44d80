package repository

import (
	"io"
	"time"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
)

type ExportRepository interface {
	// PDF report: build + serialize, all-or-nothing.
	ExportToPDF(input entity.ReportInput, generatedAt time.Time) ([]byte, int, error)
	SaveReport(data []byte, filename, outputDir string) (string, error)

	// Dataset downloads
	ExportSalesToCSV(w io.Writer, sales []entity.SalesRecord) error
	ExportProductsToCSV(w io.Writer, products []entity.ProductRecord) error
	ExportToJSON(w io.Writer, v interface{}) error
	ExportToXLSX(w io.Writer, sales []entity.SalesRecord, products []entity.ProductRecord) error
}
