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
	"github.com/shopspring/decimal"
)

// DocumentUseCase CRUD de documentos en borrador y sus líneas.
// Las ediciones se hacen dentro de una transacción con la cabecera bloqueada, para no cruzarse con una validación.
type DocumentUseCase struct {
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:      txRunner,
		docRepo:       docRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		now:           time.Now,
	}
}

// CreateReceipt crea una recepción en borrador.
func (uc *DocumentUseCase) CreateReceipt(ctx context.Context, userID string, in dto.CreateReceiptRequest) (*dto.DocumentResponse, error) {
	return uc.create(ctx, &entity.Document{
		Kind:        entity.DocumentKindReceipt,
		Partner:     in.Supplier,
		WarehouseID: in.WarehouseID,
		CreatedBy:   userID,
	}, in.Lines)
}

// CreateDelivery crea una orden de entrega en borrador.
func (uc *DocumentUseCase) CreateDelivery(ctx context.Context, userID string, in dto.CreateDeliveryRequest) (*dto.DocumentResponse, error) {
	return uc.create(ctx, &entity.Document{
		Kind:        entity.DocumentKindDelivery,
		Partner:     in.Customer,
		WarehouseID: in.WarehouseID,
		CreatedBy:   userID,
	}, in.Lines)
}

// CreateTransfer crea un traslado interno en borrador. Origen y destino deben ser distintos.
func (uc *DocumentUseCase) CreateTransfer(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.DocumentResponse, error) {
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, fmt.Errorf("%w: bodega origen y destino deben ser distintas", domain.ErrInvalidInput)
	}
	if err := uc.requireWarehouse(ctx, in.ToWarehouseID); err != nil {
		return nil, err
	}
	return uc.create(ctx, &entity.Document{
		Kind:          entity.DocumentKindTransfer,
		WarehouseID:   in.FromWarehouseID,
		ToWarehouseID: in.ToWarehouseID,
		CreatedBy:     userID,
	}, in.Lines)
}

func (uc *DocumentUseCase) create(ctx context.Context, doc *entity.Document, lines []dto.DocumentLineRequest) (*dto.DocumentResponse, error) {
	if err := uc.requireWarehouse(ctx, doc.WarehouseID); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	doc.ID = uuid.New().String()
	doc.Status = entity.StatusDraft
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Lines = make([]entity.DocumentLine, 0, len(lines))
	for i, l := range lines {
		if err := uc.checkLine(ctx, l.ProductID, l.Quantity); err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			Position:   i + 1,
			CreatedAt:  now,
		})
	}
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		return repos.Documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// Get devuelve el documento con sus líneas. Un documento de otro tipo se trata como inexistente.
func (uc *DocumentUseCase) Get(ctx context.Context, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
	}
	return ToDocumentResponse(doc), nil
}

// List lista cabeceras de un tipo, opcionalmente filtradas por estado.
func (uc *DocumentUseCase) List(ctx context.Context, kind entity.DocumentKind, status string, limit, offset int) (*dto.DocumentListResponse, error) {
	st := entity.DocumentStatus(status)
	if st != "" && !kind.Allows(st) {
		return nil, fmt.Errorf("%w: estado %q no existe para %s", domain.ErrInvalidInput, status, kind)
	}
	list, err := uc.docRepo.List(ctx, repository.DocumentFilter{Kind: kind, Status: st, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *ToDocumentResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un documento en borrador junto con sus líneas.
func (uc *DocumentUseCase) Delete(ctx context.Context, kind entity.DocumentKind, id string) error {
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if _, err := loadDraft(ctx, repos, kind, id); err != nil {
			return err
		}
		return repos.Documents.Delete(ctx, id)
	})
}

// AddLine agrega una línea al final de un documento en borrador.
func (uc *DocumentUseCase) AddLine(ctx context.Context, kind entity.DocumentKind, id string, in dto.DocumentLineRequest) (*dto.DocumentResponse, error) {
	if err := uc.checkLine(ctx, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	var out *entity.Document
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		doc, err := loadDraft(ctx, repos, kind, id)
		if err != nil {
			return err
		}
		position := 1
		for _, l := range doc.Lines {
			if l.Position >= position {
				position = l.Position + 1
			}
		}
		line := entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			Position:   position,
			CreatedAt:  uc.now().UTC(),
		}
		if err := repos.Documents.AddLine(ctx, &line); err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, line)
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(out), nil
}

// UpdateLine cambia la cantidad de una línea de un documento en borrador.
func (uc *DocumentUseCase) UpdateLine(ctx context.Context, kind entity.DocumentKind, id, lineID string, in dto.UpdateDocumentLineRequest) (*dto.DocumentResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.FitsQuantityScale(in.Quantity) {
		return nil, fmt.Errorf("%w: la cantidad admite máximo %d decimales", domain.ErrInvalidInput, entity.QuantityScale)
	}
	var out *entity.Document
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		doc, err := loadDraft(ctx, repos, kind, id)
		if err != nil {
			return err
		}
		line, ok := doc.Line(lineID)
		if !ok {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, lineID)
		}
		line.Quantity = in.Quantity
		if err := repos.Documents.UpdateLine(ctx, line); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(out), nil
}

// DeleteLine quita una línea de un documento en borrador.
func (uc *DocumentUseCase) DeleteLine(ctx context.Context, kind entity.DocumentKind, id, lineID string) error {
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		doc, err := loadDraft(ctx, repos, kind, id)
		if err != nil {
			return err
		}
		if _, ok := doc.Line(lineID); !ok {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, lineID)
		}
		return repos.Documents.DeleteLine(ctx, id, lineID)
	})
}

// loadDraft bloquea la cabecera y exige estado draft: las líneas solo se editan en borrador.
func loadDraft(ctx context.Context, repos TxRepos, kind entity.DocumentKind, id string) (*entity.Document, error) {
	doc, err := repos.Documents.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
	}
	if !doc.IsDraft() {
		return nil, fmt.Errorf("%w: el documento está en %s, solo se edita en draft", domain.ErrInvalidTransition, doc.Status)
	}
	return doc, nil
}

func (uc *DocumentUseCase) checkLine(ctx context.Context, productID string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.FitsQuantityScale(qty) {
		return fmt.Errorf("%w: la cantidad admite máximo %d decimales", domain.ErrInvalidInput, entity.QuantityScale)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return nil
}

func (uc *DocumentUseCase) requireWarehouse(ctx context.Context, id string) error {
	wh, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return nil
}
