package converter

import (
	"time"

	"github.com/catalogcraft/catalog-api/internal/usecase"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	PriceCents  int64      `db:"price_cents"`
	Currency    string     `db:"currency"`
	Status      string     `db:"status"`
	CategoryID  int64      `db:"category_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	IsArchived  bool       `db:"is_archived"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                `db:"id"`
	EventID     string               `db:"event_id"`
	EventType   string               `db:"event_type"`
	AggregateID int64                `db:"aggregate_id"`
	Payload     []byte               `db:"payload"`
	Status      usecase.OutboxStatus `db:"status"`
	CreatedAt   time.Time            `db:"created_at"`
	ProcessedAt *time.Time           `db:"processed_at"`
}
