package production_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/internal/domain/textile"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

var params = entity.FabricParams{
	ID:           "fp1",
	FabricID:     "f1",
	WidthCm:      dec("90"),
	Tubular:      true,
	WeightGSM:    dec("180"),
	ShrinkagePct: dec("5"),
}

func setup(t *testing.T) (*memory.Store, *production.JobUseCase) {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	p := params
	require.NoError(t, db.Fabrics().Create(ctx, &entity.Fabric{ID: "f1", Name: "Jersey", PricePerKg: dec("10000"), StockKg: dec("20"), Active: true}))
	require.NoError(t, db.FabricParams().Create(ctx, &p))
	require.NoError(t, db.Seamstresses().Create(ctx, &entity.Seamstress{ID: "s1", Name: "Marta", RatePerPiece: dec("2000"), Active: true}))
	require.NoError(t, db.Seamstresses().Create(ctx, &entity.Seamstress{ID: "s2", Name: "Inactiva", RatePerPiece: dec("2000")}))
	require.NoError(t, db.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "CAM-M", Name: "Camiseta", Price: dec("30000"), MetersPerPiece: dec("1.2"), Active: true}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "centro", Name: "Centro", Active: true}))

	uc := production.NewJobUseCase(db, db.Jobs(), db.Seamstresses(), db.FabricParams(), db.Products(), db.Stores(), nil)
	return db, uc
}

func repositoryFilter() repository.JobFilter {
	return repository.JobFilter{Limit: 20}
}

func createJob(t *testing.T, uc *production.JobUseCase, kg string) *dto.JobResponse {
	t.Helper()
	job, err := uc.Create(context.Background(), "u1", dto.CreateJobRequest{
		SeamstressID: "s1", ParamsID: "fp1", ProductID: "p1", StoreID: "centro", FabricKg: dec(kg),
	})
	require.NoError(t, err)
	return job
}

func fabric(t *testing.T, db *memory.Store) *entity.Fabric {
	t.Helper()
	f, err := db.Fabrics().GetByID(context.Background(), "f1")
	require.NoError(t, err)
	return f
}

func TestCreate_DescuentaTelaYCalculaPrendasEsperadas(t *testing.T) {
	db, uc := setup(t)

	job := createJob(t, uc, "5")

	assert.Equal(t, entity.JobStatusPending, job.Status)
	assert.Equal(t, textile.ExpectedPieces(params.Physical(), dec("5"), dec("1.2")), job.ExpectedPieces)
	assert.Positive(t, job.ExpectedPieces)
	assertDec(t, "50000", job.FabricCost)
	assertDec(t, "2000", job.RatePerPiece)
	assertDec(t, "15", fabric(t, db).StockKg)
}

func TestCreate_TelaInsuficienteNoCreaTrabajo(t *testing.T) {
	db, uc := setup(t)

	_, err := uc.Create(context.Background(), "u1", dto.CreateJobRequest{
		SeamstressID: "s1", ParamsID: "fp1", ProductID: "p1", StoreID: "centro", FabricKg: dec("25"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDec(t, "20", fabric(t, db).StockKg)

	list, err := uc.List(context.Background(), repositoryFilter())
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreate_Validaciones(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateJobRequest{SeamstressID: "s2", ParamsID: "fp1", ProductID: "p1", StoreID: "centro", FabricKg: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreateJobRequest{SeamstressID: "s1", ParamsID: "fp1", ProductID: "p1", StoreID: "centro", FabricKg: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreateJobRequest{SeamstressID: "s1", ParamsID: "nope", ProductID: "p1", StoreID: "centro", FabricKg: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplete_SumaPrendasAlCostoDeProduccion(t *testing.T) {
	db, uc := setup(t)
	ctx := context.Background()
	job := createJob(t, uc, "5")

	done, err := uc.Complete(ctx, "u1", job.ID, dto.CompleteJobRequest{ReceivedPieces: 20})
	require.NoError(t, err)

	assert.Equal(t, entity.JobStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
	assertDec(t, "40000", done.LaborTotal)

	// (50000 tela + 40000 mano de obra) / 20 prendas
	p, err := db.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assertDec(t, "4500", p.Cost)

	st, err := db.Stock().Get(ctx, "p1", "centro")
	require.NoError(t, err)
	assertDec(t, "20", st.Quantity)

	movs := db.MovementsByTransaction(job.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePRODUCTION, movs[0].Type)

	_, err = uc.Complete(ctx, "u1", job.ID, dto.CompleteJobRequest{ReceivedPieces: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Update(ctx, job.ID, dto.UpdateJobRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestComplete_PiezasInvalidasOTrabajoInexistente(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	job := createJob(t, uc, "1")

	_, err := uc.Complete(ctx, "u1", job.ID, dto.CompleteJobRequest{ReceivedPieces: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Complete(ctx, "u1", "nope", dto.CompleteJobRequest{ReceivedPieces: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_DevuelveTela(t *testing.T) {
	db, uc := setup(t)
	ctx := context.Background()
	job := createJob(t, uc, "5")

	canceled, err := uc.Cancel(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCanceled, canceled.Status)

	f := fabric(t, db)
	assertDec(t, "20", f.StockKg)
	assertDec(t, "10000", f.PricePerKg)

	_, err = uc.Cancel(ctx, job.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdate_NotasDeTrabajoPendiente(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	job := createJob(t, uc, "2")
	notes := "entregar con etiquetas"

	updated, err := uc.Update(ctx, job.ID, dto.UpdateJobRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	missing, err := uc.Update(ctx, "nope", dto.UpdateJobRequest{Notes: &notes})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdate_ConcurrenteConCompletarNoReabreTrabajo(t *testing.T) {
	db, uc := setup(t)
	ctx := context.Background()
	job := createJob(t, uc, "5")
	notes := "revisar costuras"

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Update(ctx, job.ID, dto.UpdateJobRequest{Notes: &notes})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInvalidState)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := uc.Complete(ctx, "u1", job.ID, dto.CompleteJobRequest{ReceivedPieces: 10})
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := uc.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, got.Status)
	assert.Equal(t, 10, got.ReceivedPieces)

	_, err = uc.Complete(ctx, "u1", job.ID, dto.CompleteJobRequest{ReceivedPieces: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	st, err := db.Stock().Get(ctx, "p1", "centro")
	require.NoError(t, err)
	assertDec(t, "10", st.Quantity)
}

func TestListBySeamstress(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	createJob(t, uc, "1")
	createJob(t, uc, "2")

	list, err := uc.ListBySeamstress(ctx, "s1", repositoryFilter())
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)

	_, err = uc.ListBySeamstress(ctx, "nope", repositoryFilter())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
