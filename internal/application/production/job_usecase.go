package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/dto"
	appinv "github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/inventory"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/internal/domain/textile"
	"github.com/jhoicas/textil-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// JobUseCase ciclo de vida de los trabajos de confección:
// pendiente -> completado | cancelado.
type JobUseCase struct {
	txRunner     TxRunner
	jobRepo      repository.JobRepository
	seamstresses repository.SeamstressRepository
	paramsRepo   repository.FabricParamsRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	log          *logger.Logger
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(
	txRunner TxRunner,
	jobRepo repository.JobRepository,
	seamstresses repository.SeamstressRepository,
	paramsRepo repository.FabricParamsRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	log *logger.Logger,
) *JobUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &JobUseCase{
		txRunner:     txRunner,
		jobRepo:      jobRepo,
		seamstresses: seamstresses,
		paramsRepo:   paramsRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		log:          log.Named("produccion"),
	}
}

// Create valida referencias, calcula las prendas esperadas y descuenta la tela entregada.
func (uc *JobUseCase) Create(ctx context.Context, userID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.SeamstressID == "" || in.ParamsID == "" || in.ProductID == "" || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.FabricKg.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	// Lecturas fuera de la tx
	seamstress, err := uc.seamstresses.GetByID(ctx, in.SeamstressID)
	if err != nil {
		return nil, err
	}
	if seamstress == nil {
		return nil, fmt.Errorf("costurero %s: %w", in.SeamstressID, domain.ErrNotFound)
	}
	if !seamstress.Active {
		return nil, fmt.Errorf("costurero inactivo: %w", domain.ErrInvalidInput)
	}
	params, err := uc.paramsRepo.GetByID(ctx, in.ParamsID)
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, fmt.Errorf("parámetros %s: %w", in.ParamsID, domain.ErrNotFound)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}
	if !product.MetersPerPiece.IsPositive() {
		return nil, fmt.Errorf("producto sin consumo de tela por prenda: %w", domain.ErrInvalidInput)
	}
	store, err := uc.storeRepo.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("tienda %s: %w", in.StoreID, domain.ErrNotFound)
	}

	now := time.Now()
	job := &entity.Job{
		ID:             uuid.New().String(),
		SeamstressID:   in.SeamstressID,
		ParamsID:       in.ParamsID,
		ProductID:      in.ProductID,
		StoreID:        in.StoreID,
		FabricKg:       in.FabricKg,
		ExpectedPieces: textile.ExpectedPieces(params.Physical(), in.FabricKg, product.MetersPerPiece),
		RatePerPiece:   seamstress.RatePerPiece,
		LaborTotal:     decimal.Zero,
		Status:         entity.JobStatusPending,
		DueDate:        in.DueDate,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunProduction(ctx, func(
		jobRepo repository.JobRepository,
		fabricRepo repository.FabricRepository,
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		fabric, err := fabricRepo.GetForUpdate(ctx, params.FabricID)
		if err != nil {
			return err
		}
		if fabric == nil {
			return fmt.Errorf("tela %s: %w", params.FabricID, domain.ErrNotFound)
		}
		if fabric.StockKg.LessThan(in.FabricKg) {
			return fmt.Errorf("tela %s: disponible %s kg, solicitado %s kg: %w",
				fabric.Name, fabric.StockKg.String(), in.FabricKg.String(), domain.ErrInsufficientStock)
		}
		if err := fabricRepo.UpdateStock(ctx, fabric.ID, fabric.StockKg.Sub(in.FabricKg), fabric.PricePerKg); err != nil {
			return err
		}
		job.FabricCost = in.FabricKg.Mul(fabric.PricePerKg).Round(2)
		return jobRepo.Create(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("job_id", job.ID).Str("seamstress_id", job.SeamstressID).
		Int("expected_pieces", job.ExpectedPieces).Msg("trabajo creado")
	return toJobResponse(job), nil
}

// GetByID obtiene un trabajo; nil si no existe.
func (uc *JobUseCase) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil || job == nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// List lista trabajos por estado, costurero y fechas.
func (uc *JobUseCase) List(ctx context.Context, f repository.JobFilter) (*dto.JobListResponse, error) {
	list, total, err := uc.jobRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *toJobResponse(j))
	}
	return &dto.JobListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// ListBySeamstress trabajos de un costurero existente.
func (uc *JobUseCase) ListBySeamstress(ctx context.Context, seamstressID string, f repository.JobFilter) (*dto.JobListResponse, error) {
	s, err := uc.seamstresses.GetByID(ctx, seamstressID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	f.SeamstressID = seamstressID
	return uc.List(ctx, f)
}

// Update cambia notas o fecha de entrega de un trabajo pendiente. La fila se bloquea
// para que no se cruce con Complete o Cancel.
func (uc *JobUseCase) Update(ctx context.Context, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	var job *entity.Job
	err := uc.txRunner.RunProduction(ctx, func(
		jobRepo repository.JobRepository,
		_ repository.FabricRepository,
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		current, err := jobRepo.GetForUpdate(ctx, id)
		if err != nil || current == nil {
			return err
		}
		if !current.IsPending() {
			return fmt.Errorf("trabajo %s: %w", current.Status, domain.ErrInvalidState)
		}
		if in.Notes != nil {
			current.Notes = *in.Notes
		}
		if in.DueDate != nil {
			current.DueDate = in.DueDate
		}
		current.UpdatedAt = time.Now()
		if err := jobRepo.Update(ctx, current); err != nil {
			return err
		}
		job = current
		return nil
	})
	if err != nil || job == nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// Complete recibe las prendas: liquida la mano de obra, recalcula el costo promedio
// del producto y suma las prendas al stock de la tienda destino (movimiento PRODUCCION).
func (uc *JobUseCase) Complete(ctx context.Context, userID, id string, in dto.CompleteJobRequest) (*dto.JobResponse, error) {
	if in.ReceivedPieces <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var job *entity.Job
	var unitCost decimal.Decimal
	err := uc.txRunner.RunProduction(ctx, func(
		jobRepo repository.JobRepository,
		_ repository.FabricRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		job, err = jobRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}
		if !job.IsPending() {
			return fmt.Errorf("trabajo %s: %w", job.Status, domain.ErrInvalidState)
		}
		product, err := productRepo.GetForUpdate(ctx, job.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", job.ProductID, domain.ErrNotFound)
		}

		now := time.Now()
		received := decimal.NewFromInt(int64(in.ReceivedPieces))
		job.ReceivedPieces = in.ReceivedPieces
		job.LaborTotal = received.Mul(job.RatePerPiece).Round(2)
		unitCost = job.FabricCost.Add(job.LaborTotal).Div(received).Round(4)

		if err := appinv.EntryInTx(ctx, movRepo, stockRepo, productRepo, product, appinv.Line{
			TransactionID: job.ID,
			ProductID:     job.ProductID,
			StoreID:       job.StoreID,
			Type:          entity.MovementTypePRODUCTION,
			Quantity:      received,
			UnitCost:      unitCost,
			Reference:     "trabajo " + job.ID,
			UserID:        userID,
			Now:           now,
		}); err != nil {
			return err
		}

		job.Status = entity.JobStatusCompleted
		job.CompletedAt = &now
		job.UpdatedAt = now
		return jobRepo.Update(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("job_id", job.ID).
		Int("received_pieces", job.ReceivedPieces).
		Int("expected_pieces", job.ExpectedPieces).
		Str("unit_cost", unitCost.String()).
		Msg("trabajo completado")
	return toJobResponse(job), nil
}

// Cancel anula un trabajo pendiente y devuelve la tela al stock al costo con que salió.
func (uc *JobUseCase) Cancel(ctx context.Context, id string) (*dto.JobResponse, error) {
	current, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	params, err := uc.paramsRepo.GetByID(ctx, current.ParamsID)
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, fmt.Errorf("parámetros %s: %w", current.ParamsID, domain.ErrNotFound)
	}

	var job *entity.Job
	err = uc.txRunner.RunProduction(ctx, func(
		jobRepo repository.JobRepository,
		fabricRepo repository.FabricRepository,
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		job, err = jobRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}
		if !job.IsPending() {
			return fmt.Errorf("trabajo %s: %w", job.Status, domain.ErrInvalidState)
		}
		fabric, err := fabricRepo.GetForUpdate(ctx, params.FabricID)
		if err != nil {
			return err
		}
		if fabric == nil {
			return fmt.Errorf("tela %s: %w", params.FabricID, domain.ErrNotFound)
		}
		returnedPrice := job.FabricCost.Div(job.FabricKg)
		price := inventory.CostCalculator(fabric.StockKg, fabric.PricePerKg, job.FabricKg, returnedPrice)
		if err := fabricRepo.UpdateStock(ctx, fabric.ID, fabric.StockKg.Add(job.FabricKg), price); err != nil {
			return err
		}
		job.Status = entity.JobStatusCanceled
		job.UpdatedAt = time.Now()
		return jobRepo.Update(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("job_id", job.ID).Str("fabric_kg", job.FabricKg.String()).Msg("trabajo cancelado")
	return toJobResponse(job), nil
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:             j.ID,
		SeamstressID:   j.SeamstressID,
		ParamsID:       j.ParamsID,
		ProductID:      j.ProductID,
		StoreID:        j.StoreID,
		FabricKg:       j.FabricKg,
		ExpectedPieces: j.ExpectedPieces,
		ReceivedPieces: j.ReceivedPieces,
		RatePerPiece:   j.RatePerPiece,
		LaborTotal:     j.LaborTotal,
		FabricCost:     j.FabricCost,
		Status:         j.Status,
		DueDate:        j.DueDate,
		CompletedAt:    j.CompletedAt,
		Notes:          j.Notes,
		CreatedBy:      j.CreatedBy,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}
