package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"github.com/xuri/excelize/v2"
)

const (
	salesSheet    = "Sales"
	productsSheet = "Products"
)

var (
	salesHeader    = []string{"Date", "Revenue", "Orders", "Customers"}
	productsHeader = []string{"Product", "Sales", "Units_Sold", "Rating"}
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	opts []BuildOption
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository(opts ...BuildOption) repository.ExportRepository {
	return &ExportRepositoryImpl{opts: opts}
}

// --- Relatório PDF ---

// ExportToPDF constrói e serializa o relatório. Nenhum byte é devolvido se qualquer etapa falhar.
func (r *ExportRepositoryImpl) ExportToPDF(input entity.ReportInput, generatedAt time.Time) ([]byte, int, error) {
	doc, err := BuildReport(input, generatedAt, r.opts...)
	if err != nil {
		return nil, 0, err
	}

	data, err := Serialize(doc)
	if err != nil {
		return nil, 0, err
	}

	return data, doc.PageCount(), nil
}

// SaveReport grava o relatório em outputDir via arquivo temporário + rename.
// Falhas de escrita abortam; a remoção do temporário é best-effort.
func (r *ExportRepositoryImpl) SaveReport(data []byte, filename, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return "", &types.IOError{Op: "create", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", &types.IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &types.IOError{Op: "close", Path: tmpName, Err: err}
	}

	target := filepath.Join(dir, filepath.Base(filename))
	if err := os.Rename(tmpName, target); err != nil {
		return "", &types.IOError{Op: "rename", Path: target, Err: err}
	}

	return filepath.Abs(target)
}

// --- Downloads de datasets ---

func (r *ExportRepositoryImpl) ExportSalesToCSV(w io.Writer, sales []entity.SalesRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(salesHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, s := range sales {
		record := []string{
			s.Date.Format("2006-01-02"),
			s.Revenue.StringFixed(2),
			strconv.Itoa(s.Orders),
			strconv.Itoa(s.Customers),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (r *ExportRepositoryImpl) ExportProductsToCSV(w io.Writer, products []entity.ProductRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(productsHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.Name,
			p.Sales.StringFixed(2),
			strconv.Itoa(p.UnitsSold),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (r *ExportRepositoryImpl) ExportToJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON data: %w", err)
	}
	return nil
}

// ExportToXLSX grava uma planilha com as abas Sales e Products.
func (r *ExportRepositoryImpl) ExportToXLSX(w io.Writer, sales []entity.SalesRecord, products []entity.ProductRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return fmt.Errorf("error creating XLSX sheet: %w", err)
	}
	if _, err := f.NewSheet(productsSheet); err != nil {
		return fmt.Errorf("error creating XLSX sheet: %w", err)
	}

	salesRows := make([][]interface{}, 0, len(sales))
	for _, s := range sales {
		salesRows = append(salesRows, []interface{}{
			s.Date.Format("2006-01-02"), s.Revenue.InexactFloat64(), s.Orders, s.Customers,
		})
	}
	if err := writeSheet(f, salesSheet, salesHeader, salesRows); err != nil {
		return err
	}

	productRows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		productRows = append(productRows, []interface{}{
			p.Name, p.Sales.InexactFloat64(), p.UnitsSold, p.Rating,
		})
	}
	if err := writeSheet(f, productsSheet, productsHeader, productRows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing XLSX data: %w", err)
	}
	return nil
}

// --- Funções Auxiliares ---

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}

	for i, row := range append([][]interface{}{headerRow}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("error addressing XLSX cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing XLSX row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

// ensureDir garante que o diretório de saída exista; vazio significa o diretório atual.
func ensureDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &types.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return dir, nil
}
