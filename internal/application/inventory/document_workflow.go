package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jhoicas/stock-movements-api/inventory"

// ValidationResult documento validado y asientos generados, en orden de aplicación.
type ValidationResult struct {
	Document *entity.Document
	Entries  []*entity.LedgerEntry
}

// DocumentWorkflow máquina de estados de recepciones, entregas y traslados.
// Validate es la única transición que mueve stock: draft -> done en una sola transacción.
type DocumentWorkflow struct {
	txRunner  TxRunner
	engine    *MovementEngine
	locker    DocumentLocker
	publisher LedgerPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewDocumentWorkflow construye el flujo. locker y publisher pueden ser nil (candado local, sin publicación).
func NewDocumentWorkflow(
	txRunner TxRunner,
	engine *MovementEngine,
	locker DocumentLocker,
	publisher LedgerPublisher,
	logger zerolog.Logger,
) *DocumentWorkflow {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &DocumentWorkflow{
		txRunner:  txRunner,
		engine:    engine,
		locker:    locker,
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// Validate pasa el documento de draft a done aplicando un movimiento por línea (dos en traslados).
// Entregas y traslados verifican primero la disponibilidad de todas las líneas: si alguna falta,
// devuelve domain.ErrInsufficientStock y ni el estado ni el stock cambian.
func (w *DocumentWorkflow) Validate(ctx context.Context, kind entity.DocumentKind, documentID string) (*ValidationResult, error) {
	ctx, span := w.tracer.Start(ctx, "DocumentWorkflow.Validate")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.id", documentID),
		attribute.String("document.kind", string(kind)),
	)

	release, err := w.locker.Acquire(ctx, "document:"+documentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "document locked")
		return nil, err
	}
	defer release()

	var result *ValidationResult
	err = w.txRunner.Run(ctx, func(repos TxRepos) error {
		doc, err := repos.Documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil || doc.Kind != kind {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
		}
		if doc.Status != entity.StatusDraft {
			return fmt.Errorf("%w: el documento está en %s, se requiere draft", domain.ErrInvalidTransition, doc.Status)
		}
		if len(doc.Lines) == 0 {
			return domain.ErrEmptyDocument
		}

		var entries []*entity.LedgerEntry
		switch doc.Kind {
		case entity.DocumentKindReceipt:
			entries, err = w.applyReceipt(ctx, repos, doc)
		case entity.DocumentKindDelivery:
			entries, err = w.applyDelivery(ctx, repos, doc)
		case entity.DocumentKindTransfer:
			entries, err = w.applyTransfer(ctx, repos, doc)
		default:
			err = fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, doc.Kind)
		}
		if err != nil {
			return err
		}

		now := w.now().UTC()
		doc.Status = entity.StatusDone
		doc.UpdatedAt = now
		doc.ValidatedAt = &now
		if err := repos.Documents.UpdateStatus(ctx, doc); err != nil {
			return err
		}
		result = &ValidationResult{Document: doc, Entries: entries}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		w.logger.Warn().Err(err).
			Str("document_id", documentID).
			Str("kind", string(kind)).
			Msg("validación de documento rechazada")
		return nil, err
	}

	span.SetAttributes(attribute.Int("ledger.entries", len(result.Entries)))
	span.SetStatus(codes.Ok, "validated")
	w.logger.Info().
		Str("document_id", documentID).
		Str("kind", string(kind)).
		Int("entries", len(result.Entries)).
		Msg("documento validado")

	if err := w.publisher.Publish(ctx, result.Entries); err != nil {
		w.logger.Error().Err(err).Str("document_id", documentID).Msg("no se pudieron publicar los asientos")
	}
	return result, nil
}

// Cancel pasa el documento de draft a cancelled. Los traslados no tienen estado cancelado.
func (w *DocumentWorkflow) Cancel(ctx context.Context, kind entity.DocumentKind, documentID string) (*entity.Document, error) {
	var out *entity.Document
	err := w.txRunner.Run(ctx, func(repos TxRepos) error {
		doc, err := repos.Documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil || doc.Kind != kind {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
		}
		if !doc.Kind.Allows(entity.StatusCancelled) {
			return fmt.Errorf("%w: un %s no se puede cancelar", domain.ErrInvalidTransition, doc.Kind)
		}
		if doc.Status != entity.StatusDraft {
			return fmt.Errorf("%w: el documento está en %s, se requiere draft", domain.ErrInvalidTransition, doc.Status)
		}
		doc.Status = entity.StatusCancelled
		doc.UpdatedAt = w.now().UTC()
		if err := repos.Documents.UpdateStatus(ctx, doc); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.logger.Info().Str("document_id", documentID).Str("kind", string(kind)).Msg("documento cancelado")
	return out, nil
}

func (w *DocumentWorkflow) applyReceipt(ctx context.Context, repos TxRepos, doc *entity.Document) ([]*entity.LedgerEntry, error) {
	keys := make([]entity.StockKey, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		keys = append(keys, entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.WarehouseID})
	}
	if _, err := lockPairs(ctx, repos, keys); err != nil {
		return nil, err
	}
	entries := make([]*entity.LedgerEntry, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		entry, err := w.engine.Apply(ctx, repos, MovementInput{
			ProductID:   l.ProductID,
			WarehouseID: doc.WarehouseID,
			Change:      l.Quantity,
			SourceType:  entity.SourceReceipt,
			SourceID:    doc.ID,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (w *DocumentWorkflow) applyDelivery(ctx context.Context, repos TxRepos, doc *entity.Document) ([]*entity.LedgerEntry, error) {
	keys := make([]entity.StockKey, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		keys = append(keys, entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.WarehouseID})
	}
	locked, err := lockPairs(ctx, repos, keys)
	if err != nil {
		return nil, err
	}
	if err := checkAvailability(locked, doc.WarehouseID, doc.Lines); err != nil {
		return nil, err
	}
	entries := make([]*entity.LedgerEntry, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		entry, err := w.engine.Apply(ctx, repos, MovementInput{
			ProductID:   l.ProductID,
			WarehouseID: doc.WarehouseID,
			Change:      l.Quantity.Neg(),
			SourceType:  entity.SourceDelivery,
			SourceID:    doc.ID,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (w *DocumentWorkflow) applyTransfer(ctx context.Context, repos TxRepos, doc *entity.Document) ([]*entity.LedgerEntry, error) {
	if doc.WarehouseID == doc.ToWarehouseID {
		return nil, fmt.Errorf("%w: bodega origen y destino deben ser distintas", domain.ErrInvalidInput)
	}
	keys := make([]entity.StockKey, 0, 2*len(doc.Lines))
	for _, l := range doc.Lines {
		keys = append(keys,
			entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.WarehouseID},
			entity.StockKey{ProductID: l.ProductID, WarehouseID: doc.ToWarehouseID},
		)
	}
	locked, err := lockPairs(ctx, repos, keys)
	if err != nil {
		return nil, err
	}
	if err := checkAvailability(locked, doc.WarehouseID, doc.Lines); err != nil {
		return nil, err
	}
	entries := make([]*entity.LedgerEntry, 0, 2*len(doc.Lines))
	for _, l := range doc.Lines {
		out, err := w.engine.Apply(ctx, repos, MovementInput{
			ProductID:   l.ProductID,
			WarehouseID: doc.WarehouseID,
			Change:      l.Quantity.Neg(),
			SourceType:  entity.SourceTransferOut,
			SourceID:    doc.ID,
		})
		if err != nil {
			return nil, err
		}
		in, err := w.engine.Apply(ctx, repos, MovementInput{
			ProductID:   l.ProductID,
			WarehouseID: doc.ToWarehouseID,
			Change:      l.Quantity,
			SourceType:  entity.SourceTransferIn,
			SourceID:    doc.ID,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, out, in)
	}
	return entries, nil
}

// lockPairs bloquea cada par una sola vez y siempre en el mismo orden (producto, bodega),
// de modo que dos validaciones concurrentes no se bloqueen mutuamente.
func lockPairs(ctx context.Context, repos TxRepos, keys []entity.StockKey) (map[entity.StockKey]*entity.Stock, error) {
	unique := make([]entity.StockKey, 0, len(keys))
	seen := make(map[entity.StockKey]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Less(unique[j]) })

	locked := make(map[entity.StockKey]*entity.Stock, len(unique))
	for _, k := range unique {
		stock, err := repos.Stock.Lock(ctx, k.ProductID, k.WarehouseID)
		if err != nil {
			return nil, err
		}
		locked[k] = stock
	}
	return locked, nil
}

// checkAvailability suma la demanda por producto (varias líneas pueden repetir producto)
// y la compara con el stock bloqueado de la bodega.
func checkAvailability(locked map[entity.StockKey]*entity.Stock, warehouseID string, lines []entity.DocumentLine) error {
	demand := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := demand[l.ProductID]; !ok {
			order = append(order, l.ProductID)
		}
		demand[l.ProductID] = demand[l.ProductID].Add(l.Quantity)
	}
	for _, productID := range order {
		available := decimal.Zero
		if s := locked[entity.StockKey{ProductID: productID, WarehouseID: warehouseID}]; s != nil {
			available = s.Quantity
		}
		if available.LessThan(demand[productID]) {
			return fmt.Errorf("%w: producto %s en bodega %s: disponible %s, requerido %s",
				domain.ErrInsufficientStock, productID, warehouseID, available, demand[productID])
		}
	}
	return nil
}
