package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/format"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/sanitize"
)

// Layout em polegadas, página Letter.
const (
	pageWidth     = 8.5
	pageHeight    = 11.0
	pageMargin    = 0.5
	chartWidth    = 6.5
	chartHeight   = 3.7
	chartPadding  = 0.3
	headingHeight = 0.3
	headingGap    = 0.1
	rowHeight     = 0.25
	lineHeight    = 0.2
	fontFamily    = "Arial"
	headerText    = "Dashboard Report"
	titleText     = "Business Dashboard Report"
	emptyTableRow = "No products selected"
	creatorName   = "dashboard-report"
)

// Seções do corpo do relatório, na ordem em que são desenhadas.
const (
	SectionTitle        = "title"
	SectionSummary      = "summary"
	SectionRevenueTrend = "revenue_trend"
	SectionProductTable = "product_table"
	SectionProductSales = "product_sales"
	SectionNotes        = "notes"
)

type tableColumn struct {
	title string
	width float64
	align string
}

var productColumns = []tableColumn{
	{title: "Product", width: 1.8, align: "L"},
	{title: "Sales ($)", width: 1.5, align: "R"},
	{title: "Units Sold", width: 1.5, align: "C"},
	{title: "Rating", width: 1.2, align: "C"},
}

// Document é o relatório paginado em memória, antes da serialização.
// Depois de serializado ele não muda mais.
type Document struct {
	pdf         *gofpdf.Fpdf
	generatedAt time.Time
	sections    []string
	data        []byte
}

// GeneratedAt devolve o momento de construção usado no rodapé e no título.
func (d *Document) GeneratedAt() time.Time {
	return d.generatedAt
}

// Sections devolve as seções desenhadas, em ordem.
func (d *Document) Sections() []string {
	out := make([]string, len(d.sections))
	copy(out, d.sections)
	return out
}

// HasSection informa se a seção foi incluída no documento.
func (d *Document) HasSection(section string) bool {
	for _, s := range d.sections {
		if s == section {
			return true
		}
	}
	return false
}

// PageCount devolve o número de páginas do documento.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

type buildConfig struct {
	compress bool
}

// BuildOption ajusta a construção do relatório.
type BuildOption func(*buildConfig)

// WithCompression liga ou desliga a compressão dos streams do PDF.
func WithCompression(enabled bool) BuildOption {
	return func(c *buildConfig) {
		c.compress = enabled
	}
}

// reportBuilder guarda o estado de uma única construção.
type reportBuilder struct {
	pdf    *gofpdf.Fpdf
	doc    *Document
	err    error
	widths map[int]bool
}

// BuildReport monta o relatório de estrutura fixa a partir de dados já filtrados.
// Todo texto passa pelo sanitizador antes de entrar no PDF.
func BuildReport(input entity.ReportInput, generatedAt time.Time, opts ...BuildOption) (*Document, error) {
	cfg := buildConfig{compress: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(cfg.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(titleText, false)
	pdf.SetCreator(creatorName, false)

	doc := &Document{pdf: pdf, generatedAt: generatedAt}
	b := &reportBuilder{pdf: pdf, doc: doc, widths: make(map[int]bool)}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, headingHeight, b.tr(headerText), "", 1, "C", false, 0, "")
		pdf.Ln(0.1)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(0, 0, 0)
		footer := fmt.Sprintf("Page %d - Generated on %s", pdf.PageNo(), generatedAt.Format("2006-01-02 15:04"))
		pdf.CellFormat(0, lineHeight, b.tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	metrics := entity.Summarize(input.Sales, input.Products)

	b.drawTitle(generatedAt)
	b.drawSummary(metrics)
	b.drawChart(SectionRevenueTrend, "Revenue Trend Analysis", input.Charts.RevenueTrend)
	b.drawProductTable(input.Products)
	b.drawChart(SectionProductSales, "Product Sales Comparison", input.Charts.ProductSales)
	b.drawNotes(input.Notes)

	if b.err != nil {
		return nil, b.err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("error building PDF document: %w", err)
	}

	return doc, nil
}

// tr converte o texto para Latin-1; o primeiro erro de codificação aborta a construção.
func (b *reportBuilder) tr(text string) string {
	out, err := sanitize.Encode(text)
	if err != nil {
		b.fail(err)
		return ""
	}
	return out
}

func (b *reportBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *reportBuilder) mark(section string) {
	b.doc.sections = append(b.doc.sections, section)
}

// ensureSpace inicia uma nova página se h não couber na área imprimível restante.
func (b *reportBuilder) ensureSpace(h float64) {
	if b.pdf.GetY()+h > pageHeight-pageMargin {
		b.pdf.AddPage()
	}
}

func (b *reportBuilder) sectionHeading(title string) {
	b.pdf.SetFont(fontFamily, "B", 16)
	b.pdf.CellFormat(0, headingHeight, b.tr(title), "", 1, "L", false, 0, "")
	b.pdf.Ln(headingGap)
}

func (b *reportBuilder) drawTitle(generatedAt time.Time) {
	pdf := b.pdf

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 0.4, b.tr(titleText), "", 1, "C", false, 0, "")
	pdf.Ln(0.2)

	pdf.SetFont(fontFamily, "", 12)
	generated := "Report generated on: " + generatedAt.Format("January 02, 2006 at 03:04 PM")
	pdf.CellFormat(0, lineHeight, b.tr(generated), "", 1, "C", false, 0, "")
	pdf.Ln(0.3)

	b.mark(SectionTitle)
}

func (b *reportBuilder) drawSummary(m entity.Metrics) {
	b.sectionHeading("Executive Summary")

	b.pdf.SetFont(fontFamily, "", 12)
	b.pdf.MultiCell(0, lineHeight, b.tr(summaryText(m)), "", "L", false)
	b.pdf.Ln(0.2)

	b.mark(SectionSummary)
}

// summaryText monta o texto do resumo executivo. Os bullets viram "*" no sanitizador.
func summaryText(m entity.Metrics) string {
	var sb strings.Builder

	if m.HasSales() {
		fmt.Fprintf(&sb, "This dashboard report provides insights into business performance for the period %s to %s.\n\n",
			m.PeriodStart.Format("January 02"), m.PeriodEnd.Format("January 02, 2006"))
	} else {
		sb.WriteString("This dashboard report covers a selection with no sales data.\n\n")
	}

	topProduct := m.TopProduct
	if topProduct == "" {
		topProduct = "N/A"
	}

	sb.WriteString("Key Metrics:\n")
	fmt.Fprintf(&sb, "• Total Revenue: %s\n", format.Currency(m.TotalRevenue, 2))
	fmt.Fprintf(&sb, "• Average Daily Revenue: %s\n", format.Currency(m.AverageDailyRevenue, 2))
	fmt.Fprintf(&sb, "• Total Orders: %s\n", format.Integer(m.TotalOrders))
	fmt.Fprintf(&sb, "• Total Customers Served: %s\n", format.Integer(m.TotalCustomers))
	fmt.Fprintf(&sb, "• Top Performing Product: %s", topProduct)

	return sb.String()
}

// drawChart centraliza a imagem do gráfico. A imagem é registrada direto da
// memória, sem arquivo temporário.
func (b *reportBuilder) drawChart(section, title string, img *entity.ChartImage) {
	if img == nil || len(img.Data) == 0 {
		return
	}

	data, err := b.distinctWidth(img.Data)
	if err != nil {
		b.fail(fmt.Errorf("error reading chart image %s: %w", img.ID, err))
		return
	}

	pdf := b.pdf
	b.ensureSpace(headingHeight + headingGap + chartHeight)
	b.sectionHeading(title)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(img.ID, opts, bytes.NewReader(data))
	if !pdf.Ok() {
		return
	}

	x := (pageWidth - chartWidth) / 2
	pdf.ImageOptions(img.ID, x, pdf.GetY(), chartWidth, chartHeight, false, opts, 0, "")
	pdf.Ln(chartHeight + chartPadding)

	b.mark(section)
}

// distinctWidth garante uma largura em pixels diferente para cada imagem do
// documento. O gofpdf ordena os objetos de imagem apenas pela largura; com
// larguras iguais a ordem vem do map e o PDF muda a cada execução.
// Em caso de empate a imagem ganha colunas brancas à direita.
func (b *reportBuilder) distinctWidth(data []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if !b.widths[cfg.Width] {
		b.widths[cfg.Width] = true
		return data, nil
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	width := cfg.Width
	for b.widths[width] {
		width++
	}
	b.widths[width] = true

	padded := imaging.Paste(imaging.New(width, cfg.Height, color.White), src, image.Pt(0, 0))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, padded, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *reportBuilder) drawProductTable(products []entity.ProductRecord) {
	pdf := b.pdf

	b.ensureSpace(headingHeight + headingGap + 2*rowHeight)
	b.sectionHeading("Product Performance")
	b.tableHeader()

	pdf.SetFont(fontFamily, "", 10)
	if len(products) == 0 {
		pdf.CellFormat(tableWidth(), rowHeight, b.tr(emptyTableRow), "1", 1, "C", false, 0, "")
	}

	nameColumn := productColumns[0]
	for _, p := range products {
		name := b.tr(p.Name)
		lines := len(pdf.SplitLines([]byte(name), nameColumn.width))
		if lines < 1 {
			lines = 1
		}
		h := float64(lines) * rowHeight

		// O cabeçalho da tabela se repete quando a linha cai em outra página.
		if pdf.GetY()+h > pageHeight-pageMargin {
			pdf.AddPage()
			b.tableHeader()
			pdf.SetFont(fontFamily, "", 10)
		}

		cells := []string{
			name,
			format.Currency(p.Sales, 0),
			format.Integer(p.UnitsSold),
			format.Rating(p.Rating),
		}

		// Nomes longos quebram em várias linhas; as demais colunas acompanham a altura.
		x, y := pdf.GetXY()
		for i, col := range productColumns {
			pdf.Rect(x, y, col.width, h, "D")
			pdf.SetXY(x, y)
			if i == 0 {
				pdf.MultiCell(col.width, rowHeight, cells[i], "", col.align, false)
			} else {
				pdf.CellFormat(col.width, h, cells[i], "", 0, col.align, false, 0, "")
			}
			x += col.width
		}
		pdf.SetXY(pageMargin, y+h)
	}

	pdf.Ln(chartPadding)
	b.mark(SectionProductTable)
}

func (b *reportBuilder) tableHeader() {
	b.pdf.SetFont(fontFamily, "B", 11)
	for _, col := range productColumns {
		b.pdf.CellFormat(col.width, rowHeight, b.tr(col.title), "1", 0, "C", false, 0, "")
	}
	b.pdf.Ln(rowHeight)
}

func (b *reportBuilder) drawNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}

	b.ensureSpace(headingHeight + headingGap + lineHeight)
	b.sectionHeading("Additional Notes")

	b.pdf.SetFont(fontFamily, "", 12)
	b.pdf.MultiCell(0, lineHeight, b.tr(notes), "", "L", false)

	b.mark(SectionNotes)
}

func tableWidth() float64 {
	total := 0.0
	for _, col := range productColumns {
		total += col.width
	}
	return total
}
