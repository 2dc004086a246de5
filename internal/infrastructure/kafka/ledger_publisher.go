// Package kafka publica los asientos confirmados del libro de movimientos en un tópico Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MessageWriter subconjunto de *kafka.Writer usado por el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LedgerEvent mensaje publicado por cada asiento.
type LedgerEvent struct {
	ID          string          `json:"id"`
	Seq         int64           `json:"seq"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Change      decimal.Decimal `json:"change"`
	Balance     decimal.Decimal `json:"balance"`
	SourceType  string          `json:"source_type"`
	SourceID    string          `json:"source_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LedgerPublisher implementa inventory.LedgerPublisher sobre kafka-go.
// La clave del mensaje es product_id:warehouse_id, así los asientos de un par quedan en orden dentro de la partición.
type LedgerPublisher struct {
	writer MessageWriter
	logger zerolog.Logger
}

// NewWriter crea el *kafka.Writer del tópico de asientos.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewLedgerPublisher construye el publicador.
func NewLedgerPublisher(writer MessageWriter, logger zerolog.Logger) *LedgerPublisher {
	return &LedgerPublisher{writer: writer, logger: logger}
}

// Publish envía un mensaje por asiento en una sola escritura.
func (p *LedgerPublisher) Publish(ctx context.Context, entries []*entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ctx, span := otel.Tracer("kafka.ledger").Start(ctx, "ledger.publish")
	defer span.End()
	span.SetAttributes(attribute.Int("messaging.batch.message_count", len(entries)))

	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		payload, err := json.Marshal(LedgerEvent{
			ID:          e.ID,
			Seq:         e.Seq,
			ProductID:   e.ProductID,
			WarehouseID: e.WarehouseID,
			Change:      e.Change,
			Balance:     e.Balance,
			SourceType:  e.SourceType,
			SourceID:    e.SourceID,
			CreatedAt:   e.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("kafka: serializar asiento %s: %w", e.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.ProductID + ":" + e.WarehouseID),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "source_type", Value: []byte(e.SourceType)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return fmt.Errorf("kafka: publicar %d asientos: %w", len(msgs), err)
	}
	p.logger.Debug().Int("entries", len(msgs)).Msg("asientos publicados")
	return nil
}

// Close cierra el writer subyacente.
func (p *LedgerPublisher) Close() error {
	return p.writer.Close()
}
