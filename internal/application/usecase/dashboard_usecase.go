package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/format"
)

const (
	DatasetSales    = "sales"
	DatasetProducts = "products"

	FormatPDF  = "pdf"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// DashboardUseCase handles the dashboard view and its exports.
type DashboardUseCase struct {
	dataRepo   repository.DataRepository
	chartRepo  repository.ChartRepository
	exportRepo repository.ExportRepository
	publisher  repository.PublisherRepository
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	dataRepo repository.DataRepository,
	chartRepo repository.ChartRepository,
	exportRepo repository.ExportRepository,
	publisher repository.PublisherRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		dataRepo:   dataRepo,
		chartRepo:  chartRepo,
		exportRepo: exportRepo,
		publisher:  publisher,
		console:    console,
		now:        time.Now,
	}
}

// LoadDashboard busca os datasets, aplica o filtro e calcula as métricas.
func (uc *DashboardUseCase) LoadDashboard(ctx context.Context, filter entity.Filter) (entity.DashboardView, error) {
	if err := validateFilter(filter); err != nil {
		return entity.DashboardView{}, err
	}

	sales, err := uc.dataRepo.GetSalesData(ctx)
	if err != nil {
		return entity.DashboardView{}, fmt.Errorf("error loading sales data: %w", err)
	}

	products, err := uc.dataRepo.GetProductData(ctx)
	if err != nil {
		return entity.DashboardView{}, fmt.Errorf("error loading product data: %w", err)
	}

	view := entity.DashboardView{
		Filter:   filter,
		Sales:    filterSales(sales, filter),
		Products: filterProducts(products, filter),
	}
	view.Metrics = entity.Summarize(view.Sales, view.Products)

	return view, nil
}

// GenerateReport executa o pipeline completo: dados, gráficos, montagem e serialização.
// Qualquer falha descarta o resultado inteiro.
func (uc *DashboardUseCase) GenerateReport(ctx context.Context, filter entity.Filter, notes string) (*entity.ExportResult, error) {
	generatedAt := uc.now()

	view, err := uc.LoadDashboard(ctx, filter)
	if err != nil {
		return nil, err
	}

	charts, err := uc.chartRepo.RenderCharts(ctx, view.Sales, view.Products)
	if err != nil {
		return nil, err
	}

	input := entity.ReportInput{
		Sales:    view.Sales,
		Products: view.Products,
		Notes:    notes,
		Charts:   charts,
	}

	data, pages, err := uc.exportRepo.ExportToPDF(input, generatedAt)
	if err != nil {
		return nil, err
	}

	return &entity.ExportResult{
		ID:          uuid.NewString(),
		Filename:    entity.ExportFilename(entity.ReportBaseName, FormatPDF, generatedAt),
		MIMEType:    entity.PDFMimeType,
		Data:        data,
		GeneratedAt: generatedAt,
		PageCount:   pages,
	}, nil
}

// RenderChart devolve o PNG de um gráfico; width > 0 gera uma miniatura.
func (uc *DashboardUseCase) RenderChart(ctx context.Context, filter entity.Filter, chartID string, width int) ([]byte, error) {
	if chartID != entity.ChartRevenueTrend && chartID != entity.ChartProductSales {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownChart, chartID)
	}
	if width < 0 {
		return nil, types.ErrInvalidChartWidth
	}

	view, err := uc.LoadDashboard(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Só o gráfico pedido é desenhado; um período sem vendas não impede o de produtos.
	img, err := uc.chartRepo.RenderChart(ctx, chartID, view.Sales, view.Products)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownChart, chartID)
	}

	if width == 0 {
		return img.Data, nil
	}
	return uc.chartRepo.RenderThumbnail(*img, width)
}

// ExportDataset grava o dataset filtrado em w e devolve o MIME type usado.
func (uc *DashboardUseCase) ExportDataset(ctx context.Context, filter entity.Filter, dataset, exportFormat string, w io.Writer) (string, error) {
	if dataset != DatasetSales && dataset != DatasetProducts {
		return "", fmt.Errorf("%w: %s", types.ErrUnknownDataset, dataset)
	}

	mimeType, err := datasetMimeType(exportFormat)
	if err != nil {
		return "", err
	}

	view, err := uc.LoadDashboard(ctx, filter)
	if err != nil {
		return "", err
	}

	switch exportFormat {
	case FormatCSV:
		if dataset == DatasetSales {
			err = uc.exportRepo.ExportSalesToCSV(w, view.Sales)
		} else {
			err = uc.exportRepo.ExportProductsToCSV(w, view.Products)
		}
	case FormatJSON:
		if dataset == DatasetSales {
			err = uc.exportRepo.ExportToJSON(w, view.Sales)
		} else {
			err = uc.exportRepo.ExportToJSON(w, view.Products)
		}
	case FormatXLSX:
		err = uc.exportRepo.ExportToXLSX(w, view.Sales, view.Products)
	}
	if err != nil {
		return "", err
	}

	return mimeType, nil
}

func datasetMimeType(exportFormat string) (string, error) {
	switch exportFormat {
	case FormatCSV:
		return entity.CSVMimeType, nil
	case FormatJSON:
		return entity.JSONMimeType, nil
	case FormatXLSX:
		return entity.XLSXMimeType, nil
	}
	return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, exportFormat)
}

// RunExport executa o fluxo da CLI: mostra as métricas, gera o relatório e
// grava os formatos pedidos em args.Dir.
func (uc *DashboardUseCase) RunExport(ctx context.Context, args *types.CLIArgs) error {
	filter, err := ParseFilter(args.From, args.To, args.Products)
	if err != nil {
		return err
	}

	status := uc.console.Status("Loading dashboard data...")
	view, err := uc.LoadDashboard(ctx, filter)
	status.Stop()
	if err != nil {
		return err
	}

	uc.displayMetrics(view)

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{FormatPDF}
	}

	for _, reportType := range reportTypes {
		switch strings.ToLower(reportType) {
		case FormatPDF:
			if err := uc.exportReport(ctx, filter, args); err != nil {
				uc.console.LogError("%s", types.UserMessage(err))
				return err
			}
		case FormatCSV:
			uc.saveDataset(ctx, filter, DatasetSales, FormatCSV, entity.SalesBaseName, args.Dir)
			uc.saveDataset(ctx, filter, DatasetProducts, FormatCSV, entity.ProductsBaseName, args.Dir)
		case FormatJSON:
			uc.saveDataset(ctx, filter, DatasetSales, FormatJSON, entity.SalesBaseName, args.Dir)
			uc.saveDataset(ctx, filter, DatasetProducts, FormatJSON, entity.ProductsBaseName, args.Dir)
		case FormatXLSX:
			uc.saveDataset(ctx, filter, DatasetSales, FormatXLSX, entity.DataBaseName, args.Dir)
		default:
			uc.console.LogWarning("Unsupported report type '%s' ignored", reportType)
		}
	}

	return nil
}

func (uc *DashboardUseCase) exportReport(ctx context.Context, filter entity.Filter, args *types.CLIArgs) error {
	status := uc.console.Status("Generating PDF report...")
	result, err := uc.GenerateReport(ctx, filter, args.Notes)
	status.Stop()
	if err != nil {
		return err
	}

	path, err := uc.exportRepo.SaveReport(result.Data, result.Filename, args.Dir)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Successfully exported report to PDF (%d pages): %s", result.PageCount, path)

	if args.S3Bucket == "" {
		return nil
	}

	if accountID, err := uc.publisher.GetAccountID(ctx, args.AWSProfile); err != nil {
		uc.console.LogWarning("Could not resolve AWS account ID: %s", err)
	} else {
		uc.console.LogInfo("Publishing report to account %s", accountID)
	}

	key := objectKey(args.S3Prefix, result.Filename)
	location, err := uc.publisher.Publish(ctx, args.AWSProfile, args.S3Bucket, key, result.Data, result.MIMEType)
	if err != nil {
		uc.console.LogError("Failed to publish report: %s", err)
		return nil
	}
	uc.console.LogSuccess("Report published to %s", location)
	return nil
}

// saveDataset grava um dataset em disco; falhas são registradas e não interrompem os demais formatos.
func (uc *DashboardUseCase) saveDataset(ctx context.Context, filter entity.Filter, dataset, exportFormat, baseName, dir string) {
	var buf bytes.Buffer
	if _, err := uc.ExportDataset(ctx, filter, dataset, exportFormat, &buf); err != nil {
		uc.console.LogError("Failed to export %s to %s: %s", dataset, strings.ToUpper(exportFormat), err)
		return
	}

	filename := entity.ExportFilename(baseName, exportFormat, uc.now())
	path, err := uc.exportRepo.SaveReport(buf.Bytes(), filename, dir)
	if err != nil {
		uc.console.LogError("Failed to export %s to %s: %s", dataset, strings.ToUpper(exportFormat), err)
		return
	}
	uc.console.LogSuccess("Successfully exported %s to %s: %s", dataset, strings.ToUpper(exportFormat), path)
}

// displayMetrics mostra as métricas em tabela e as vendas por produto em barras.
func (uc *DashboardUseCase) displayMetrics(view entity.DashboardView) {
	m := view.Metrics

	period := "no sales data"
	if m.HasSales() {
		period = fmt.Sprintf("%s to %s", m.PeriodStart.Format(dateLayout), m.PeriodEnd.Format(dateLayout))
	}
	topProduct := m.TopProduct
	if topProduct == "" {
		topProduct = "N/A"
	}

	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	table.AddRow("Period", period)
	table.AddRow("Total Revenue", format.Currency(m.TotalRevenue, 2))
	table.AddRow("Average Daily Revenue", format.Currency(m.AverageDailyRevenue, 2))
	table.AddRow("Total Orders", format.Integer(m.TotalOrders))
	table.AddRow("Total Customers Served", format.Integer(m.TotalCustomers))
	table.AddRow("Top Performing Product", pterm.FgGreen.Sprint(topProduct))
	uc.console.Print(table.Render())

	if len(view.Products) == 0 {
		uc.console.LogWarning("No products selected")
		return
	}

	items := make([]types.BarItem, len(view.Products))
	for i, p := range view.Products {
		items[i] = types.BarItem{Label: p.Name, Value: p.Sales.InexactFloat64()}
	}
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint("Sales by Product"))
	uc.console.DisplaySalesBars(items)
}

func objectKey(prefix, filename string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return filename
	}
	return prefix + "/" + filename
}
