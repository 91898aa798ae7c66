// Package pdf genera los reportes PDF (ventas, inventario y trabajos) con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título     │  Período + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: encabezado azul + una fila por registro              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES alineados a la derecha                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/textil-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// column describe una columna de la tabla: etiqueta, ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// SalesPDF ventas por día y tienda.
func (g *MarotoReportGenerator) SalesPDF(_ context.Context, r *reports.SalesReport) ([]byte, error) {
	cols := []column{
		{"Fecha", 2, align.Left},
		{"Tienda", 4, align.Left},
		{"Ventas", 1, align.Center},
		{"Unidades", 2, align.Right},
		{"Total", 3, align.Right},
	}
	cells := make([][]string, 0, len(r.Rows))
	for _, d := range r.Rows {
		cells = append(cells, []string{
			d.Day.Format("02/01/2006"),
			d.StoreName,
			strconv.Itoa(d.Count),
			formatQty(d.Units),
			formatMoney(r.Currency, d.Total),
		})
	}
	totals := [][2]string{
		{"Ventas:", strconv.Itoa(r.Count)},
		{"Unidades:", formatQty(r.Units)},
		{"TOTAL VENDIDO:", formatMoney(r.Currency, r.Total)},
	}
	return render(r.Header, cols, cells, totals)
}

// InventoryPDF stock de una tienda valorizado al costo promedio.
func (g *MarotoReportGenerator) InventoryPDF(_ context.Context, r *reports.InventoryReport) ([]byte, error) {
	cols := []column{
		{"SKU", 2, align.Left},
		{"Producto", 4, align.Left},
		{"Cant.", 1, align.Center},
		{"Mín.", 1, align.Center},
		{"Costo prom.", 2, align.Right},
		{"Valor", 2, align.Right},
	}
	cells := make([][]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		name := l.ProductName
		if l.IsLow() {
			name += " (bajo)"
		}
		cells = append(cells, []string{
			l.SKU,
			name,
			formatQty(l.Quantity),
			formatQty(l.MinQuantity),
			formatMoney(r.Currency, l.UnitCost),
			formatMoney(r.Currency, l.Quantity.Mul(l.UnitCost)),
		})
	}
	totals := [][2]string{
		{"Unidades:", formatQty(r.TotalUnits)},
		{"VALOR TOTAL:", formatMoney(r.Currency, r.TotalValue)},
	}
	return render(r.Header, cols, cells, totals)
}

// JobsPDF trabajos completados por costurero.
func (g *MarotoReportGenerator) JobsPDF(_ context.Context, r *reports.JobsReport) ([]byte, error) {
	cols := []column{
		{"Costurero", 4, align.Left},
		{"Trabajos", 2, align.Center},
		{"Prendas", 2, align.Center},
		{"Tela (kg)", 2, align.Right},
		{"Mano de obra", 2, align.Right},
	}
	cells := make([][]string, 0, len(r.Rows))
	for _, s := range r.Rows {
		cells = append(cells, []string{
			s.SeamstressName,
			strconv.Itoa(s.Jobs),
			strconv.Itoa(s.Pieces),
			formatQty(s.FabricKg),
			formatMoney(r.Currency, s.LaborTotal),
		})
	}
	totals := [][2]string{
		{"Prendas:", strconv.Itoa(r.TotalPieces)},
		{"TOTAL A PAGAR:", formatMoney(r.Currency, r.TotalLabor)},
	}
	return render(r.Header, cols, cells, totals)
}

func render(h reports.Header, cols []column, cells [][]string, totals [][2]string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(h.Title, true).
		WithAuthor(h.Company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(h))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(3))

	m.AddRows(tableHeaderRow(cols))
	if len(cells) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin registros para el período seleccionado.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for i, c := range cells {
		m.AddRows(tableDetailRow(cols, c, i%2 == 1))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + título (izq) y período + fecha de emisión (der).
func headerRow(h reports.Header) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(h.Company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(h.Title, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(h.Subtitle, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+h.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRow(cols []column, cells []string, striped bool) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(cells[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cs...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// totalsRow: bloque de totales alineado a la derecha; la última línea va destacada.
func totalsRow(totals [][2]string) core.Row {
	labels := make([]core.Component, 0, len(totals))
	values := make([]core.Component, 0, len(totals))
	for i, t := range totals {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: float64(i) * 6}
		v := props.Text{Size: 9, Align: align.Right, Right: 1, Top: float64(i) * 6}
		if i == len(totals)-1 {
			p.Size, p.Color = 10, colorPrimary
			v.Size, v.Color, v.Style = 10, colorPrimary, fontstyle.Bold
		}
		labels = append(labels, text.New(t[0], p))
		values = append(values, text.New(t[1], v))
	}
	return row.New(float64(len(totals))*6+4).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
