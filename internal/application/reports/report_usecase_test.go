package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type reportRepoStub struct {
	totals    decimal.Decimal
	count     int
	days      []repository.SalesDayResult
	top       []repository.TopProductResult
	jobs      []repository.SeamstressJobResult
	pending   int
	low       int
	failLow   bool
	gotFrom   time.Time
	gotTo     time.Time
	gotFilter string
}

func (r *reportRepoStub) SalesTotals(context.Context, time.Time, time.Time, string) (decimal.Decimal, int, error) {
	return r.totals, r.count, nil
}

func (r *reportRepoStub) SalesByDay(_ context.Context, from, to time.Time, storeID string) ([]repository.SalesDayResult, error) {
	r.gotFrom, r.gotTo, r.gotFilter = from, to, storeID
	return r.days, nil
}

func (r *reportRepoStub) TopProducts(context.Context, time.Time, time.Time, string, int) ([]repository.TopProductResult, error) {
	return r.top, nil
}

func (r *reportRepoStub) CountPendingJobs(context.Context) (int, error) { return r.pending, nil }

func (r *reportRepoStub) CountLowStock(context.Context) (int, error) {
	if r.failLow {
		return 0, errors.New("conexión perdida")
	}
	return r.low, nil
}

func (r *reportRepoStub) CompletedJobsBySeamstress(_ context.Context, from, to time.Time, seamstressID string) ([]repository.SeamstressJobResult, error) {
	r.gotFrom, r.gotTo, r.gotFilter = from, to, seamstressID
	return r.jobs, nil
}

type generatorStub struct {
	sales *SalesReport
	inv   *InventoryReport
	jobs  *JobsReport
}

func (g *generatorStub) SalesPDF(_ context.Context, r *SalesReport) ([]byte, error) {
	g.sales = r
	return []byte("%PDF ventas"), nil
}

func (g *generatorStub) InventoryPDF(_ context.Context, r *InventoryReport) ([]byte, error) {
	g.inv = r
	return []byte("%PDF inventario"), nil
}

func (g *generatorStub) JobsPDF(_ context.Context, r *JobsReport) ([]byte, error) {
	g.jobs = r
	return []byte("%PDF trabajos"), nil
}

var fixedNow = time.Date(2026, time.March, 14, 16, 30, 0, 0, time.UTC)

func newReports(t *testing.T, repo *reportRepoStub) (*ReportUseCase, *generatorStub, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "centro", Name: "Centro", Active: true}))
	require.NoError(t, db.Seamstresses().Create(ctx, &entity.Seamstress{ID: "s1", Name: "Marta", Active: true}))
	gen := &generatorStub{}
	uc := NewReportUseCase(repo, db.Stock(), db.Stores(), db.Seamstresses(), gen, Config{CompanyName: "Textiles Andinos", Currency: "COP"})
	uc.now = func() time.Time { return fixedNow }
	return uc, gen, db
}

func TestSummary_CalculaMargenYEtiqueta(t *testing.T) {
	repo := &reportRepoStub{
		totals:  dec("150000.456"),
		count:   3,
		pending: 2,
		low:     4,
		top:     []repository.TopProductResult{{ProductID: "p1", SKU: "CAM-M", Name: "Camiseta", Units: dec("5"), Revenue: dec("200000"), Margin: dec("50000")}},
	}
	uc, _, _ := newReports(t, repo)

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, dec("150000.46").Equal(s.TodaySales.Total))
	assert.Equal(t, 3, s.MonthlySales.Count)
	assert.Equal(t, 2, s.PendingJobs)
	assert.Equal(t, 4, s.LowStockItems)
	require.Len(t, s.TopProducts, 1)
	assert.True(t, dec("25").Equal(s.TopProducts[0].MarginPercentage))
	assert.Equal(t, "Marzo 2026", s.DateLabel)
}

func TestSummary_PropagaErrores(t *testing.T) {
	uc, _, _ := newReports(t, &reportRepoStub{failLow: true})
	_, err := uc.Summary(context.Background())
	assert.ErrorContains(t, err, "stock bajo")
}

func TestSalesPDF_PeriodoPorDefectoYTotales(t *testing.T) {
	repo := &reportRepoStub{days: []repository.SalesDayResult{
		{StoreID: "centro", Count: 2, Units: dec("3"), Total: dec("90000")},
		{StoreID: "centro", Count: 1, Units: dec("1"), Total: dec("30000")},
	}}
	uc, gen, _ := newReports(t, repo)

	pdf, name, err := uc.SalesPDF(context.Background(), repository.DateRange{}, "centro")
	require.NoError(t, err)
	assert.Equal(t, "%PDF ventas", string(pdf))
	assert.Equal(t, "ventas_20260301_20260314.pdf", name)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, fixedNow, repo.gotTo)

	require.NotNil(t, gen.sales)
	assert.Equal(t, "Textiles Andinos", gen.sales.Company)
	assert.Contains(t, gen.sales.Subtitle, "Centro")
	assert.Equal(t, 3, gen.sales.Count)
	assert.True(t, dec("120000").Equal(gen.sales.Total))
	assert.True(t, dec("4").Equal(gen.sales.Units))

	_, _, err = uc.SalesPDF(context.Background(), repository.DateRange{}, "sur")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryPDF_Valoriza(t *testing.T) {
	uc, gen, db := newReports(t, &reportRepoStub{})
	ctx := context.Background()
	require.NoError(t, db.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "CAM-M", Name: "Camiseta", Cost: dec("12000")}))
	require.NoError(t, db.Stock().Upsert(ctx, &entity.Stock{ProductID: "p1", StoreID: "centro", Quantity: dec("5")}))

	_, name, err := uc.InventoryPDF(ctx, "centro")
	require.NoError(t, err)
	assert.Equal(t, "inventario_20260314.pdf", name)
	assert.True(t, dec("60000").Equal(gen.inv.TotalValue))
	assert.True(t, dec("5").Equal(gen.inv.TotalUnits))

	_, _, err = uc.InventoryPDF(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobsPDF_FiltraPorCosturero(t *testing.T) {
	repo := &reportRepoStub{jobs: []repository.SeamstressJobResult{
		{SeamstressID: "s1", SeamstressName: "Marta", Jobs: 2, Pieces: 40, LaborTotal: dec("80000")},
	}}
	uc, gen, _ := newReports(t, repo)
	from := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := uc.JobsPDF(context.Background(), repository.DateRange{From: &from}, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", repo.gotFilter)
	assert.Equal(t, from, repo.gotFrom)
	assert.Equal(t, 40, gen.jobs.TotalPieces)
	assert.True(t, dec("80000").Equal(gen.jobs.TotalLabor))
	assert.Contains(t, gen.jobs.Subtitle, "Marta")

	_, _, err = uc.JobsPDF(context.Background(), repository.DateRange{}, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
