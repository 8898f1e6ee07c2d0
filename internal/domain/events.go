package domain

import "time"

// Типы доменных событий каталога. Значение попадает в поле event_type
// конверта и в kafka-заголовок x-event-type.
const (
	EventTypeProductCreated        = "ProductCreated"
	EventTypeProductPublished      = "ProductPublished"
	EventTypeProductArchived       = "ProductArchived"
	EventTypeProductPriceChanged   = "ProductPriceChanged"
	EventTypeProductRenamed        = "ProductRenamed"
	EventTypeProductImagesAttached = "ProductImagesAttached"
	EventTypeCategoryCreated       = "CategoryCreated"
)

// Event — доменное событие. Сущности накапливают события у себя,
// наружу они уходят через outbox и очищаются после фиксации транзакции.
type Event interface {
	EventType() string
	AggregateID() int64
	OccurredAt() time.Time
}

type ProductCreatedEvent struct {
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	CategoryID int64     `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewProductCreatedEvent(p *Product) ProductCreatedEvent {
	return ProductCreatedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.Price.AmountCents,
		Currency:   p.Price.Currency,
		CategoryID: p.CategoryID,
		Timestamp:  time.Now().UTC(),
	}
}

func (ev ProductCreatedEvent) EventType() string     { return EventTypeProductCreated }
func (ev ProductCreatedEvent) AggregateID() int64    { return ev.ProductID }
func (ev ProductCreatedEvent) OccurredAt() time.Time { return ev.Timestamp }

type ProductPublishedEvent struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func NewProductPublishedEvent(p *Product) ProductPublishedEvent {
	return ProductPublishedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Timestamp: time.Now().UTC(),
	}
}

func (ev ProductPublishedEvent) EventType() string     { return EventTypeProductPublished }
func (ev ProductPublishedEvent) AggregateID() int64    { return ev.ProductID }
func (ev ProductPublishedEvent) OccurredAt() time.Time { return ev.Timestamp }

type ProductArchivedEvent struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func NewProductArchivedEvent(p *Product) ProductArchivedEvent {
	return ProductArchivedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Timestamp: time.Now().UTC(),
	}
}

func (ev ProductArchivedEvent) EventType() string     { return EventTypeProductArchived }
func (ev ProductArchivedEvent) AggregateID() int64    { return ev.ProductID }
func (ev ProductArchivedEvent) OccurredAt() time.Time { return ev.Timestamp }

type ProductPriceChangedEvent struct {
	ProductID     int64     `json:"product_id"`
	OldPriceCents int64     `json:"old_price_cents"`
	OldCurrency   string    `json:"old_currency"`
	PriceCents    int64     `json:"price_cents"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewProductPriceChangedEvent(p *Product, oldPrice Money) ProductPriceChangedEvent {
	return ProductPriceChangedEvent{
		ProductID:     p.ID,
		OldPriceCents: oldPrice.AmountCents,
		OldCurrency:   oldPrice.Currency,
		PriceCents:    p.Price.AmountCents,
		Currency:      p.Price.Currency,
		Timestamp:     time.Now().UTC(),
	}
}

func (ev ProductPriceChangedEvent) EventType() string     { return EventTypeProductPriceChanged }
func (ev ProductPriceChangedEvent) AggregateID() int64    { return ev.ProductID }
func (ev ProductPriceChangedEvent) OccurredAt() time.Time { return ev.Timestamp }

type ProductRenamedEvent struct {
	ProductID int64     `json:"product_id"`
	OldName   string    `json:"old_name"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func NewProductRenamedEvent(p *Product, oldName string) ProductRenamedEvent {
	return ProductRenamedEvent{
		ProductID: p.ID,
		OldName:   oldName,
		Name:      p.Name,
		Timestamp: time.Now().UTC(),
	}
}

func (ev ProductRenamedEvent) EventType() string     { return EventTypeProductRenamed }
func (ev ProductRenamedEvent) AggregateID() int64    { return ev.ProductID }
func (ev ProductRenamedEvent) OccurredAt() time.Time { return ev.Timestamp }

type ProductImagesAttachedEvent struct {
	ProductID  int64     `json:"product_id"`
	ObjectKeys []string  `json:"object_keys"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewProductImagesAttachedEvent(productID int64, objectKeys []string) ProductImagesAttachedEvent {
	return ProductImagesAttachedEvent{
		ProductID:  productID,
		ObjectKeys: objectKeys,
		Timestamp:  time.Now().UTC(),
	}
}

func (ev ProductImagesAttachedEvent) EventType() string     { return EventTypeProductImagesAttached }
func (ev ProductImagesAttachedEvent) AggregateID() int64    { return ev.ProductID }
func (ev ProductImagesAttachedEvent) OccurredAt() time.Time { return ev.Timestamp }

type CategoryCreatedEvent struct {
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCategoryCreatedEvent(c *Category) CategoryCreatedEvent {
	return CategoryCreatedEvent{
		CategoryID: c.ID,
		Name:       c.Name,
		Timestamp:  time.Now().UTC(),
	}
}

func (ev CategoryCreatedEvent) EventType() string     { return EventTypeCategoryCreated }
func (ev CategoryCreatedEvent) AggregateID() int64    { return ev.CategoryID }
func (ev CategoryCreatedEvent) OccurredAt() time.Time { return ev.Timestamp }
