package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/entity"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/format"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Dimensões de saída: 7x4 polegadas a 150 DPI (1050x600 px).
const (
	chartWidth  = 7 * vg.Inch
	chartHeight = 4 * vg.Inch
	chartDPI    = 150
)

var (
	gridColor   = color.Gray{Y: 220}
	lineColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	barColor    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	barEdge     = color.RGBA{R: 0, G: 0, B: 128, A: 255}
	valueColor  = color.Gray{Y: 40}
	thumbFilter = imaging.Lanczos
)

// ChartRepositoryImpl implementa o ChartRepository com gonum/plot.
// Cada chamada monta seu próprio plot e canvas; não há estado global.
type ChartRepositoryImpl struct{}

// NewChartRepository cria uma nova implementação do ChartRepository.
func NewChartRepository() repository.ChartRepository {
	return &ChartRepositoryImpl{}
}

// RenderCharts desenha o gráfico de tendência de receita e o de vendas por produto.
func (r *ChartRepositoryImpl) RenderCharts(ctx context.Context, sales []entity.SalesRecord, products []entity.ProductRecord) (entity.ChartSet, error) {
	if err := ctx.Err(); err != nil {
		return entity.ChartSet{}, err
	}

	trend, err := r.renderRevenueTrend(sales)
	if err != nil {
		return entity.ChartSet{}, err
	}

	if err := ctx.Err(); err != nil {
		return entity.ChartSet{}, err
	}

	productSales, err := r.renderProductSales(products)
	if err != nil {
		return entity.ChartSet{}, err
	}

	return entity.ChartSet{RevenueTrend: trend, ProductSales: productSales}, nil
}

// RenderChart desenha apenas o gráfico pedido.
func (r *ChartRepositoryImpl) RenderChart(ctx context.Context, chartID string, sales []entity.SalesRecord, products []entity.ProductRecord) (*entity.ChartImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch chartID {
	case entity.ChartRevenueTrend:
		return r.renderRevenueTrend(sales)
	case entity.ChartProductSales:
		return r.renderProductSales(products)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownChart, chartID)
	}
}

// RenderThumbnail reduz um gráfico para a largura indicada, mantendo a proporção.
func (r *ChartRepositoryImpl) RenderThumbnail(img entity.ChartImage, width int) ([]byte, error) {
	if width <= 0 {
		return nil, types.ErrInvalidChartWidth
	}

	src, err := imaging.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, &types.RenderError{Chart: img.ID, Err: fmt.Errorf("error decoding chart image: %w", err)}
	}

	if width >= src.Bounds().Dx() {
		return img.Data, nil
	}

	thumbnail := imaging.Resize(src, width, 0, thumbFilter)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.PNG); err != nil {
		return nil, &types.RenderError{Chart: img.ID, Err: fmt.Errorf("error encoding thumbnail: %w", err)}
	}
	return buf.Bytes(), nil
}

func (r *ChartRepositoryImpl) renderRevenueTrend(sales []entity.SalesRecord) (*entity.ChartImage, error) {
	if len(sales) == 0 {
		return nil, &types.RenderError{Chart: entity.ChartRevenueTrend, Err: types.ErrEmptyDataset}
	}

	p := newPlot("Daily Revenue Trend", "Date", "Revenue ($)")
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	pts := make(plotter.XYs, len(sales))
	for i, s := range sales {
		pts[i].X = float64(s.Date.Unix())
		pts[i].Y = s.Revenue.InexactFloat64()
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, &types.RenderError{Chart: entity.ChartRevenueTrend, Err: err}
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = lineColor
	points.Radius = vg.Points(2.5)
	p.Add(line, points)

	return encode(p, entity.ChartRevenueTrend)
}

func (r *ChartRepositoryImpl) renderProductSales(products []entity.ProductRecord) (*entity.ChartImage, error) {
	p := newPlot("Product Sales Comparison", "Product", "Sales ($)")

	if len(products) > 0 {
		values := make(plotter.Values, len(products))
		names := make([]string, len(products))
		xys := make(plotter.XYs, len(products))
		labels := make([]string, len(products))
		maxValue := 0.0

		for i, prod := range products {
			v := prod.Sales.InexactFloat64()
			values[i] = v
			names[i] = prod.Name
			xys[i].X = float64(i)
			xys[i].Y = v
			labels[i] = format.Currency(prod.Sales, 0)
			maxValue = math.Max(maxValue, v)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(40))
		if err != nil {
			return nil, &types.RenderError{Chart: entity.ChartProductSales, Err: err}
		}
		bars.Color = barColor
		bars.LineStyle.Color = barEdge
		bars.LineStyle.Width = vg.Points(1)
		p.Add(bars)
		p.NominalX(names...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter

		valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, &types.RenderError{Chart: entity.ChartProductSales, Err: err}
		}
		for i := range valueLabels.TextStyle {
			valueLabels.TextStyle[i].XAlign = text.XCenter
			valueLabels.TextStyle[i].Color = valueColor
		}
		valueLabels.Offset = vg.Point{Y: vg.Points(3)}
		p.Add(valueLabels)

		// Espaço acima da barra mais alta para o rótulo de valor.
		p.Y.Min = math.Min(0, p.Y.Min)
		p.Y.Max = maxValue * 1.15
	}

	return encode(p, entity.ChartProductSales)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// encode desenha o plot em um canvas próprio e devolve o PNG.
func encode(p *plot.Plot, id string) (img *entity.ChartImage, err error) {
	// Falhas internas do backend de desenho viram RenderError.
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = &types.RenderError{Chart: id, Err: fmt.Errorf("plot panic: %v", rec)}
		}
	}()

	canvas := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(chartDPI))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, &types.RenderError{Chart: id, Err: fmt.Errorf("error encoding PNG: %w", err)}
	}

	bounds := canvas.Image().Bounds()
	return &entity.ChartImage{
		ID:     id,
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		DPI:    chartDPI,
	}, nil
}
