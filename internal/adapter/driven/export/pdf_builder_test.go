package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
)

var generatedAt = time.Date(2024, 2, 3, 14, 5, 0, 0, time.UTC)

// testPNG gera um PNG 70x40; shade muda o conteúdo sem mudar a largura.
func testPNG(t *testing.T, id string, shade uint8) *entity.ChartImage {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 70, 40))
	for x := 0; x < 70; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: shade, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &entity.ChartImage{ID: id, Data: buf.Bytes(), Width: 70, Height: 40, DPI: 150}
}

func sampleInput(t *testing.T) entity.ReportInput {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sales := make([]entity.SalesRecord, 0, 3)
	for i := 0; i < 3; i++ {
		sales = append(sales, entity.SalesRecord{
			Date:      start.AddDate(0, 0, i),
			Revenue:   decimal.NewFromInt(int64(4000 + i*500)),
			Orders:    50 + i,
			Customers: 30 + i,
		})
	}

	return entity.ReportInput{
		Sales: sales,
		Products: []entity.ProductRecord{
			{Name: "Product A", Sales: decimal.NewFromInt(1000), UnitsSold: 120, Rating: 4.0},
			{Name: "Product B", Sales: decimal.NewFromInt(2000), UnitsSold: 340, Rating: 4.7},
		},
		Notes: "Café — 100% ‘done’",
		Charts: entity.ChartSet{
			RevenueTrend: testPNG(t, entity.ChartRevenueTrend, 200),
			ProductSales: testPNG(t, entity.ChartProductSales, 40),
		},
	}
}

func TestBuildReport_FullDocument(t *testing.T) {
	doc, err := BuildReport(sampleInput(t), generatedAt)
	require.NoError(t, err)

	assert.Equal(t, []string{
		SectionTitle, SectionSummary, SectionRevenueTrend,
		SectionProductTable, SectionProductSales, SectionNotes,
	}, doc.Sections())
	assert.Equal(t, generatedAt, doc.GeneratedAt())
	assert.GreaterOrEqual(t, doc.PageCount(), 1)

	data, err := Serialize(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBuildReport_TextIsSanitized(t *testing.T) {
	doc, err := BuildReport(sampleInput(t), generatedAt, WithCompression(false))
	require.NoError(t, err)

	data, err := Serialize(doc)
	require.NoError(t, err)

	assert.Contains(t, string(data), "Caf\xe9 -- 100% 'done'")
	assert.Contains(t, string(data), "* Top Performing Product: Product B")
	assert.Contains(t, string(data), "Page 1 - Generated on 2024-02-03 14:05")
	assert.Contains(t, string(data), "Report generated on: February 03, 2024 at 02:05 PM")
	assert.NotContains(t, string(data), "•")
}

func TestBuildReport_IsDeterministic(t *testing.T) {
	input := sampleInput(t)
	require.NotEqual(t, input.Charts.RevenueTrend.Data, input.Charts.ProductSales.Data)

	var want []byte
	for i := 0; i < 20; i++ {
		doc, err := BuildReport(input, generatedAt)
		require.NoError(t, err)

		data, err := Serialize(doc)
		require.NoError(t, err)

		if want == nil {
			want = data
			continue
		}
		require.Equal(t, want, data, "build %d differs", i)
	}
}

func TestBuildReport_SameWidthChartsGetDistinctWidths(t *testing.T) {
	doc, err := BuildReport(sampleInput(t), generatedAt, WithCompression(false))
	require.NoError(t, err)

	data, err := Serialize(doc)
	require.NoError(t, err)

	assert.Contains(t, string(data), "/Width 70")
	assert.Contains(t, string(data), "/Width 71")
}

func TestDistinctWidth(t *testing.T) {
	b := &reportBuilder{widths: make(map[int]bool)}
	first := testPNG(t, "a", 10).Data
	second := testPNG(t, "b", 20).Data

	out, err := b.distinctWidth(first)
	require.NoError(t, err)
	assert.Equal(t, first, out)

	out, err = b.distinctWidth(second)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 71, cfg.Width)
	assert.Equal(t, 40, cfg.Height)

	_, err = b.distinctWidth([]byte("not a png"))
	assert.Error(t, err)
}

func TestBuildReport_BlankNotesOmitted(t *testing.T) {
	for _, notes := range []string{"", "   ", "\n\t "} {
		input := sampleInput(t)
		input.Notes = notes

		doc, err := BuildReport(input, generatedAt)
		require.NoError(t, err)
		assert.False(t, doc.HasSection(SectionNotes), "notes %q", notes)
	}
}

func TestBuildReport_EmptyProducts(t *testing.T) {
	input := sampleInput(t)
	input.Products = nil

	doc, err := BuildReport(input, generatedAt, WithCompression(false))
	require.NoError(t, err)
	assert.True(t, doc.HasSection(SectionProductTable))

	data, err := Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), emptyTableRow)
	assert.Contains(t, string(data), "* Top Performing Product: N/A")
}

func TestBuildReport_EmptySales(t *testing.T) {
	input := sampleInput(t)
	input.Sales = nil
	input.Charts.RevenueTrend = nil

	doc, err := BuildReport(input, generatedAt, WithCompression(false))
	require.NoError(t, err)
	assert.False(t, doc.HasSection(SectionRevenueTrend))

	data, err := Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "no sales data")
	assert.Contains(t, string(data), "* Total Revenue: $0.00")
}

func TestBuildReport_MissingChartsSkipped(t *testing.T) {
	input := sampleInput(t)
	input.Charts = entity.ChartSet{}

	doc, err := BuildReport(input, generatedAt)
	require.NoError(t, err)

	assert.False(t, doc.HasSection(SectionRevenueTrend))
	assert.False(t, doc.HasSection(SectionProductSales))
	assert.True(t, doc.HasSection(SectionProductTable))
}

func TestBuildReport_InvalidChartImage(t *testing.T) {
	input := sampleInput(t)
	input.Charts.ProductSales = &entity.ChartImage{ID: entity.ChartProductSales, Data: []byte("not a png")}

	doc, err := BuildReport(input, generatedAt)
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestBuildReport_LongTablePaginates(t *testing.T) {
	input := sampleInput(t)
	input.Products = nil
	for i := 0; i < 80; i++ {
		input.Products = append(input.Products, entity.ProductRecord{
			Name:      fmt.Sprintf("Product %02d", i),
			Sales:     decimal.NewFromInt(int64(10000 + i)),
			UnitsSold: 100 + i,
			Rating:    4.2,
		})
	}

	doc, err := BuildReport(input, generatedAt, WithCompression(false))
	require.NoError(t, err)
	assert.Greater(t, doc.PageCount(), 2)

	data, err := Serialize(doc)
	require.NoError(t, err)
	assert.Greater(t, bytes.Count(data, []byte("(Units Sold)")), 1)
	assert.Contains(t, string(data), fmt.Sprintf("Page %d - Generated on", doc.PageCount()))
}

func TestBuildReport_LongProductNameWraps(t *testing.T) {
	input := sampleInput(t)
	input.Products = []entity.ProductRecord{
		{Name: "An extraordinarily long product name that cannot fit", Sales: decimal.NewFromInt(10), UnitsSold: 1, Rating: 3.9},
		{Name: "Short", Sales: decimal.NewFromInt(5), UnitsSold: 2, Rating: 4.0},
	}

	doc, err := BuildReport(input, generatedAt, WithCompression(false))
	require.NoError(t, err)

	data, err := Serialize(doc)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "(An extraordinarily")
	assert.Contains(t, out, "fit)Tj")
	assert.Contains(t, out, "(Short)Tj")
	assert.NotContains(t, out, "...)Tj")
}

func TestSummaryText_TopProduct(t *testing.T) {
	input := sampleInput(t)
	m := entity.Summarize(input.Sales, input.Products)

	text := summaryText(m)
	assert.Contains(t, text, "for the period January 01 to January 03, 2024.")
	assert.Contains(t, text, "• Total Revenue: $13,500.00")
	assert.Contains(t, text, "• Average Daily Revenue: $4,500.00")
	assert.Contains(t, text, "• Total Orders: 153")
	assert.Contains(t, text, "• Total Customers Served: 93")
	assert.Contains(t, text, "• Top Performing Product: Product B")
}

func TestSerialize(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		data, err := Serialize(nil)
		assert.ErrorIs(t, err, types.ErrNilDocument)
		assert.Nil(t, data)
	})

	t.Run("repeated calls return the same bytes", func(t *testing.T) {
		doc, err := BuildReport(sampleInput(t), generatedAt)
		require.NoError(t, err)

		first, err := Serialize(doc)
		require.NoError(t, err)
		first[0] = 'X'

		second, err := Serialize(doc)
		require.NoError(t, err)
		third, err := Serialize(doc)
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(second, []byte("%PDF-")))
		assert.Equal(t, second, third)
	})
}
