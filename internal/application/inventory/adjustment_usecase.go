package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/jhoicas/stock-movements-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AdjustmentUseCase registra ajustes de conteo. Un ajuste no tiene borrador: se aplica al crearse.
type AdjustmentUseCase struct {
	txRunner      TxRunner
	engine        *MovementEngine
	adjRepo       repository.AdjustmentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	publisher     LedgerPublisher
	logger        zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso. publisher puede ser nil.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	engine *MovementEngine,
	adjRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	publisher LedgerPublisher,
	logger zerolog.Logger,
) *AdjustmentUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &AdjustmentUseCase{
		txRunner:      txRunner,
		engine:        engine,
		adjRepo:       adjRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
		logger:        logger,
		tracer:        otel.Tracer(tracerName),
		now:           time.Now,
	}
}

// Create guarda el ajuste y fija el stock del par en la cantidad contada, en la misma transacción.
func (uc *AdjustmentUseCase) Create(ctx context.Context, userID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "AdjustmentUseCase.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.String("warehouse.id", in.WarehouseID),
	)

	if in.CountedQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad contada no puede ser negativa", domain.ErrInvalidInput)
	}
	if !entity.FitsQuantityScale(in.CountedQuantity) {
		return nil, fmt.Errorf("%w: la cantidad admite máximo %d decimales", domain.ErrInvalidInput, entity.QuantityScale)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
	}

	adj := &entity.StockAdjustment{
		ID:              uuid.New().String(),
		WarehouseID:     in.WarehouseID,
		ProductID:       in.ProductID,
		CountedQuantity: in.CountedQuantity,
		Reason:          in.Reason,
		CreatedBy:       userID,
		CreatedAt:       uc.now().UTC(),
	}
	var entry *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		e, err := uc.engine.ApplyAdjustment(ctx, repos, adj.ProductID, adj.WarehouseID, adj.CountedQuantity, adj.ID)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "adjusted")

	uc.logger.Info().
		Str("adjustment_id", adj.ID).
		Str("product_id", adj.ProductID).
		Str("warehouse_id", adj.WarehouseID).
		Str("change", entry.Change.String()).
		Msg("ajuste de inventario aplicado")
	if err := uc.publisher.Publish(ctx, []*entity.LedgerEntry{entry}); err != nil {
		uc.logger.Error().Err(err).Str("adjustment_id", adj.ID).Msg("no se pudo publicar el asiento")
	}

	out := toAdjustmentResponse(adj)
	le := toLedgerEntryResponse(entry)
	out.Entry = &le
	return out, nil
}

// List lista ajustes, más recientes primero.
func (uc *AdjustmentUseCase) List(ctx context.Context, limit, offset int) (*dto.AdjustmentListResponse, error) {
	list, err := uc.adjRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:              a.ID,
		WarehouseID:     a.WarehouseID,
		ProductID:       a.ProductID,
		CountedQuantity: a.CountedQuantity,
		Reason:          a.Reason,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
	}
}
