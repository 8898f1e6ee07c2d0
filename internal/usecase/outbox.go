package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/google/uuid"
)

// OutboxStatus — статус записи в таблице outbox_events
type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
)

// OutboxChannel — канал NOTIFY, в который репозиторий сигналит о новых
// PENDING-событиях, а воркер на него подписан.
const OutboxChannel = "outbox_pending"

// EventVersion — версия схемы конверта, уходит в payload и kafka-заголовок
const EventVersion = 1

// OutboxEvent — доменное событие, ожидающее отправки в брокер.
// Payload хранит уже сериализованный конверт: воркеру остаётся
// только переложить байты в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	AggregateID int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// EventEnvelope — конверт события для внешних потребителей.
type EventEnvelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	AggregateID  int64           `json:"aggregate_id"`
	Payload      json.RawMessage `json:"payload"`
}

// NewOutboxEvent упаковывает доменное событие в конверт и outbox-запись.
func NewOutboxEvent(event domain.Event, producer string) (*OutboxEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, e.Wrap("marshal event payload", err)
	}

	envelope := EventEnvelope{
		EventID:      uuid.NewString(),
		EventType:    event.EventType(),
		EventVersion: EventVersion,
		OccurredAt:   event.OccurredAt(),
		Producer:     producer,
		AggregateID:  event.AggregateID(),
		Payload:      payload,
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, e.Wrap("marshal event envelope", err)
	}

	return &OutboxEvent{
		EventID:     envelope.EventID,
		EventType:   envelope.EventType,
		AggregateID: envelope.AggregateID,
		Payload:     raw,
		Status:      Pending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// appendOutboxEvents раскладывает накопленные события сущности в outbox.
// Вызывается внутри открытой транзакции команды.
func appendOutboxEvents(ctx context.Context, repo OutboxEventRepository, producer string, events []domain.Event) error {
	for _, event := range events {
		outboxEvent, err := NewOutboxEvent(event, producer)
		if err != nil {
			return err
		}
		if _, err := repo.Create(ctx, outboxEvent); err != nil {
			return err
		}
	}

	return nil
}
