package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/catalogcraft/catalog-api/pkg/e"
)

const MaxCategoryNameLen = 100

// Category описывает категорию продукта.
// Имя категории уникально, создание по занятому имени идемпотентно.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsArchived  bool

	events []Event
}

// NewCategory валидирует поля и собирает категорию
func NewCategory(name string, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, e.ErrCategoryNameRequired
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLen {
		return nil, e.ErrCategoryNameTooLong
	}

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return nil, e.ErrDescriptionTooLong
	}

	return &Category{
		Name:        name,
		Description: description,
	}, nil
}

func (c *Category) Record(event Event) {
	c.events = append(c.events, event)
}

func (c *Category) Events() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Category) ClearEvents() {
	c.events = nil
}
