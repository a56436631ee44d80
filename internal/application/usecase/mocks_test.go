package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
)

type mockDataRepository struct {
	mock.Mock
}

func (m *mockDataRepository) GetSalesData(ctx context.Context) ([]entity.SalesRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.SalesRecord), args.Error(1)
}

func (m *mockDataRepository) GetProductData(ctx context.Context) ([]entity.ProductRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.ProductRecord), args.Error(1)
}

type mockChartRepository struct {
	mock.Mock
}

func (m *mockChartRepository) RenderCharts(ctx context.Context, sales []entity.SalesRecord, products []entity.ProductRecord) (entity.ChartSet, error) {
	args := m.Called(ctx, sales, products)
	return args.Get(0).(entity.ChartSet), args.Error(1)
}

func (m *mockChartRepository) RenderChart(ctx context.Context, chartID string, sales []entity.SalesRecord, products []entity.ProductRecord) (*entity.ChartImage, error) {
	args := m.Called(ctx, chartID, sales, products)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChartImage), args.Error(1)
}

func (m *mockChartRepository) RenderThumbnail(img entity.ChartImage, width int) ([]byte, error) {
	args := m.Called(img, width)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockExportRepository struct {
	mock.Mock
}

func (m *mockExportRepository) ExportToPDF(input entity.ReportInput, generatedAt time.Time) ([]byte, int, error) {
	args := m.Called(input, generatedAt)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}

func (m *mockExportRepository) SaveReport(data []byte, filename, outputDir string) (string, error) {
	args := m.Called(data, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) ExportSalesToCSV(w io.Writer, sales []entity.SalesRecord) error {
	args := m.Called(w, sales)
	return args.Error(0)
}

func (m *mockExportRepository) ExportProductsToCSV(w io.Writer, products []entity.ProductRecord) error {
	args := m.Called(w, products)
	return args.Error(0)
}

func (m *mockExportRepository) ExportToJSON(w io.Writer, v interface{}) error {
	args := m.Called(w, v)
	return args.Error(0)
}

func (m *mockExportRepository) ExportToXLSX(w io.Writer, sales []entity.SalesRecord, products []entity.ProductRecord) error {
	args := m.Called(w, sales, products)
	return args.Error(0)
}

type mockPublisherRepository struct {
	mock.Mock
}

func (m *mockPublisherRepository) GetAccountID(ctx context.Context, profile string) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *mockPublisherRepository) Publish(ctx context.Context, profile, bucket, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, profile, bucket, key, data, contentType)
	return args.String(0), args.Error(1)
}

// stubConsole grava as mensagens para as asserções.
type stubConsole struct {
	lines []string
	bars  []types.BarItem
	table *stubTable
}

func (c *stubConsole) Print(a ...interface{})                 { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *stubConsole) Printf(format string, a ...interface{}) { c.lines = append(c.lines, fmt.Sprintf(format, a...)) }
func (c *stubConsole) Println(a ...interface{})               { c.lines = append(c.lines, fmt.Sprintln(a...)) }

func (c *stubConsole) LogInfo(format string, a ...interface{}) {
	c.lines = append(c.lines, "INFO "+fmt.Sprintf(format, a...))
}

func (c *stubConsole) LogWarning(format string, a ...interface{}) {
	c.lines = append(c.lines, "WARN "+fmt.Sprintf(format, a...))
}

func (c *stubConsole) LogError(format string, a ...interface{}) {
	c.lines = append(c.lines, "ERROR "+fmt.Sprintf(format, a...))
}

func (c *stubConsole) LogSuccess(format string, a ...interface{}) {
	c.lines = append(c.lines, "OK "+fmt.Sprintf(format, a...))
}

func (c *stubConsole) Status(string) types.StatusHandle { return stubStatus{} }

func (c *stubConsole) CreateTable() types.TableInterface {
	c.table = &stubTable{}
	return c.table
}

func (c *stubConsole) DisplaySalesBars(items []types.BarItem) { c.bars = items }

type stubStatus struct{}

func (stubStatus) Update(string) {}
func (stubStatus) Stop()         {}

type stubTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *stubTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *stubTable) AddRow(cells ...interface{})            { t.rows = append(t.rows, cells) }
func (t *stubTable) Render() string                         { return fmt.Sprint(t.rows) }
