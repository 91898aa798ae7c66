// Package reports arma los números del tablero y de los reportes PDF.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopProducts = 5

// Config datos del encabezado de los PDF.
type Config struct {
	CompanyName string
	Currency    string
}

// ReportUseCase tablero y reportes. Solo lectura.
type ReportUseCase struct {
	reportRepo     repository.ReportRepository
	stockRepo      repository.StockRepository
	storeRepo      repository.StoreRepository
	seamstressRepo repository.SeamstressRepository
	generator      PDFGenerator
	cfg            Config
	now            func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	stockRepo repository.StockRepository,
	storeRepo repository.StoreRepository,
	seamstressRepo repository.SeamstressRepository,
	generator PDFGenerator,
	cfg Config,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:     reportRepo,
		stockRepo:      stockRepo,
		storeRepo:      storeRepo,
		seamstressRepo: seamstressRepo,
		generator:      generator,
		cfg:            cfg,
		now:            time.Now,
	}
}

// Summary construye el resumen del tablero. Las cinco consultas corren en paralelo.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type countResult struct {
		n   int
		err error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	jobsCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		t, c, err := uc.reportRepo.SalesTotals(ctx, todayStart, todayEnd, "")
		todayCh <- totalsResult{t, c, err}
	}()
	go func() {
		t, c, err := uc.reportRepo.SalesTotals(ctx, monthStart, todayEnd, "")
		monthCh <- totalsResult{t, c, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountPendingJobs(ctx)
		jobsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.reportRepo.TopProducts(ctx, monthStart, todayEnd, "", dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()

	today, month, jobs, low, top := <-todayCh, <-monthCh, <-jobsCh, <-lowCh, <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("resumen: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("resumen: ventas del mes: %w", month.err)
	}
	if jobs.err != nil {
		return nil, fmt.Errorf("resumen: trabajos pendientes: %w", jobs.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("resumen: stock bajo: %w", low.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("resumen: top productos: %w", top.err)
	}

	hundred := decimal.NewFromInt(100)
	products := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		margin := decimal.Zero
		if r.Revenue.IsPositive() {
			margin = r.Margin.Div(r.Revenue).Mul(hundred).Round(2)
		}
		products = append(products, dto.TopProductDTO{
			ProductID:        r.ProductID,
			SKU:              r.SKU,
			ProductName:      r.Name,
			QuantitySold:     r.Units,
			TotalRevenue:     r.Revenue.Round(2),
			MarginPercentage: margin,
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:    dto.SummaryAmount{Total: today.total.Round(2), Count: today.count},
		MonthlySales:  dto.SummaryAmount{Total: month.total.Round(2), Count: month.count},
		PendingJobs:   jobs.n,
		LowStockItems: low.n,
		TopProducts:   products,
		DateLabel:     monthLabel(now),
	}, nil
}

// SalesPDF reporte de ventas por día y tienda. Sin fechas toma el mes en curso.
func (uc *ReportUseCase) SalesPDF(ctx context.Context, r repository.DateRange, storeID string) ([]byte, string, error) {
	from, to := uc.period(r)
	rows, err := uc.reportRepo.SalesByDay(ctx, from, to, storeID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte ventas: %w", err)
	}
	rep := &SalesReport{Header: uc.header("Reporte de ventas", periodLabel(from, to)), Rows: rows}
	rep.Total, rep.Units = decimal.Zero, decimal.Zero
	if storeID != "" {
		name, err := uc.storeName(ctx, storeID)
		if err != nil {
			return nil, "", err
		}
		rep.Subtitle += " · " + name
	}
	for _, row := range rows {
		rep.Total = rep.Total.Add(row.Total)
		rep.Units = rep.Units.Add(row.Units)
		rep.Count += row.Count
	}
	pdf, err := uc.generator.SalesPDF(ctx, rep)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("ventas_%s_%s.pdf", from.Format("20060102"), to.Format("20060102")), nil
}

// InventoryPDF stock valorizado de una tienda.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, storeID string) ([]byte, string, error) {
	if storeID == "" {
		return nil, "", domain.ErrInvalidInput
	}
	name, err := uc.storeName(ctx, storeID)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.stockRepo.ListByStore(ctx, storeID, false)
	if err != nil {
		return nil, "", fmt.Errorf("reporte inventario: %w", err)
	}
	rep := &InventoryReport{
		Header:     uc.header("Inventario valorizado", name),
		Lines:      lines,
		TotalUnits: decimal.Zero,
		TotalValue: decimal.Zero,
	}
	for _, l := range lines {
		rep.TotalUnits = rep.TotalUnits.Add(l.Quantity)
		rep.TotalValue = rep.TotalValue.Add(l.Quantity.Mul(l.UnitCost))
	}
	pdf, err := uc.generator.InventoryPDF(ctx, rep)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("inventario_%s.pdf", uc.now().Format("20060102")), nil
}

// JobsPDF trabajos completados por costurero en el período.
func (uc *ReportUseCase) JobsPDF(ctx context.Context, r repository.DateRange, seamstressID string) ([]byte, string, error) {
	from, to := uc.period(r)
	subtitle := periodLabel(from, to)
	if seamstressID != "" {
		s, err := uc.seamstressRepo.GetByID(ctx, seamstressID)
		if err != nil {
			return nil, "", err
		}
		if s == nil {
			return nil, "", fmt.Errorf("costurero %s: %w", seamstressID, domain.ErrNotFound)
		}
		subtitle += " · " + s.Name
	}
	rows, err := uc.reportRepo.CompletedJobsBySeamstress(ctx, from, to, seamstressID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte trabajos: %w", err)
	}
	rep := &JobsReport{Header: uc.header("Liquidación de trabajos", subtitle), Rows: rows, TotalLabor: decimal.Zero}
	for _, row := range rows {
		rep.TotalPieces += row.Pieces
		rep.TotalLabor = rep.TotalLabor.Add(row.LaborTotal)
	}
	pdf, err := uc.generator.JobsPDF(ctx, rep)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("trabajos_%s_%s.pdf", from.Format("20060102"), to.Format("20060102")), nil
}

func (uc *ReportUseCase) header(title, subtitle string) Header {
	return Header{
		Company:     uc.cfg.CompanyName,
		Currency:    uc.cfg.Currency,
		Title:       title,
		Subtitle:    subtitle,
		GeneratedAt: uc.now(),
	}
}

func (uc *ReportUseCase) storeName(ctx context.Context, id string) (string, error) {
	st, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if st == nil {
		return "", fmt.Errorf("tienda %s: %w", id, domain.ErrNotFound)
	}
	return st.Name, nil
}

// period completa el rango: por defecto desde el día 1 del mes hasta hoy.
func (uc *ReportUseCase) period(r repository.DateRange) (time.Time, time.Time) {
	now := uc.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	return from, to
}

func periodLabel(from, to time.Time) string {
	return from.Format("02/01/2006") + " - " + to.Format("02/01/2006")
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
