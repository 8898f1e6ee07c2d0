package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/catalogcraft/catalog-api/pkg/e"
)

// Ограничения на поля продукта
const (
	MaxProductNameLen = 200
	MaxDescriptionLen = 2000
)

// ProductStatus — статус жизненного цикла продукта
type ProductStatus string

const (
	StatusDraft     ProductStatus = "DRAFT"
	StatusPublished ProductStatus = "PUBLISHED"
	StatusArchived  ProductStatus = "ARCHIVED"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ParseProductStatus разбирает статус из внешнего представления (БД, query-параметры)
func ParseProductStatus(s string) (ProductStatus, error) {
	status := ProductStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", e.ErrInvalidStatus
	}
	return status, nil
}

// Product описывает продукт каталога.
// Новый продукт всегда появляется черновиком, публикуется и архивируется
// именованными методами; каждое значимое изменение оставляет доменное событие.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       Money
	Status      ProductStatus
	CategoryID  int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	events []Event
}

// NewProduct валидирует поля и собирает продукт в статусе DRAFT.
// ID назначает база, поэтому событие о создании записывается после вставки.
func NewProduct(name string, description string, price Money, categoryID int64) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, e.ErrProductNameRequired
	}
	if utf8.RuneCountInString(name) > MaxProductNameLen {
		return nil, e.ErrProductNameTooLong
	}

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return nil, e.ErrDescriptionTooLong
	}

	if err := validateMoney(price); err != nil {
		return nil, err
	}

	if categoryID <= 0 {
		return nil, e.ErrCategoryRequired
	}

	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Status:      StatusDraft,
		CategoryID:  categoryID,
	}, nil
}

// Publish переводит продукт из черновика в опубликованные
func (p *Product) Publish() error {
	if p.Status == StatusArchived {
		return e.ErrProductArchived
	}
	if p.Status != StatusDraft {
		return e.ErrInvalidStatusTransition
	}

	p.Status = StatusPublished
	p.touch()
	p.Record(NewProductPublishedEvent(p))
	return nil
}

// Archive архивирует продукт. Повторная архивация — ошибка перехода,
// чтобы история событий не засорялась пустыми переходами.
func (p *Product) Archive() error {
	if p.Status == StatusArchived {
		return e.ErrInvalidStatusTransition
	}

	p.Status = StatusArchived
	p.touch()
	p.Record(NewProductArchivedEvent(p))
	return nil
}

// UpdatePrice меняет цену. Совпадающая цена не считается изменением.
func (p *Product) UpdatePrice(price Money) error {
	if p.Status == StatusArchived {
		return e.ErrProductArchived
	}
	if err := validateMoney(price); err != nil {
		return err
	}
	if p.Price.Equal(price) {
		return nil
	}

	oldPrice := p.Price
	p.Price = price
	p.touch()
	p.Record(NewProductPriceChangedEvent(p, oldPrice))
	return nil
}

// Rename меняет название продукта
func (p *Product) Rename(name string) error {
	if p.Status == StatusArchived {
		return e.ErrProductArchived
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return e.ErrProductNameRequired
	}
	if utf8.RuneCountInString(name) > MaxProductNameLen {
		return e.ErrProductNameTooLong
	}
	if name == p.Name {
		return nil
	}

	oldName := p.Name
	p.Name = name
	p.touch()
	p.Record(NewProductRenamedEvent(p, oldName))
	return nil
}

// Record дописывает событие в конец списка. Список только растёт,
// очищает его вызывающая сторона после успешной отправки.
func (p *Product) Record(event Event) {
	p.events = append(p.events, event)
}

// Events возвращает копию накопленных событий
func (p *Product) Events() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *Product) ClearEvents() {
	p.events = nil
}

func (p *Product) touch() {
	now := time.Now().UTC()
	p.UpdatedAt = &now
}

func validateMoney(m Money) error {
	if m.AmountCents < 0 {
		return e.ErrPriceNegative
	}
	if !validCurrency(m.Currency) {
		return e.ErrCurrencyInvalid
	}
	return nil
}
