package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/catalogcraft/catalog-api/pkg/e"
)

func validPrice(t *testing.T) Money {
	t.Helper()
	m, err := NewMoney(59999, "RUB")
	if err != nil {
		t.Fatalf("NewMoney: %v", err)
	}
	return m
}

func draftProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("Смартфон", "флагман прошлого года", validPrice(t), 1)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	p.ID = 42
	return p
}

func TestNewProduct(t *testing.T) {
	price := validPrice(t)

	tests := []struct {
		name        string
		productName string
		description string
		price       Money
		categoryID  int64
		wantErr     error
	}{
		{"valid", "Смартфон", "описание", price, 1, nil},
		{"name trimmed but required", "   ", "", price, 1, e.ErrProductNameRequired},
		{"name too long", strings.Repeat("x", MaxProductNameLen+1), "", price, 1, e.ErrProductNameTooLong},
		{"description too long", "ok", strings.Repeat("x", MaxDescriptionLen+1), price, 1, e.ErrDescriptionTooLong},
		{"unset money", "ok", "", Money{}, 1, e.ErrCurrencyInvalid},
		{"negative price", "ok", "", Money{AmountCents: -5, Currency: "RUB"}, 1, e.ErrPriceNegative},
		{"zero price allowed", "ok", "", Money{AmountCents: 0, Currency: "RUB"}, 1, nil},
		{"missing category", "ok", "", price, 0, e.ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.productName, tt.description, tt.price, tt.categoryID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewProduct error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if p.Status != StatusDraft {
				t.Errorf("new product status = %s, want DRAFT", p.Status)
			}
			if len(p.Events()) != 0 {
				t.Errorf("new product already carries %d events, creation event is recorded after insert", len(p.Events()))
			}
		})
	}
}

func TestProductPublish(t *testing.T) {
	p := draftProduct(t)

	if err := p.Publish(); err != nil {
		t.Fatalf("Publish from draft: %v", err)
	}
	if p.Status != StatusPublished {
		t.Fatalf("status = %s, want PUBLISHED", p.Status)
	}
	if p.UpdatedAt == nil {
		t.Error("UpdatedAt not set after publish")
	}

	// повторная публикация
	if err := p.Publish(); !errors.Is(err, e.ErrInvalidStatusTransition) {
		t.Fatalf("second Publish error = %v, want ErrInvalidStatusTransition", err)
	}

	events := p.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].EventType() != EventTypeProductPublished {
		t.Errorf("event type = %s, want %s", events[0].EventType(), EventTypeProductPublished)
	}
	if events[0].AggregateID() != p.ID {
		t.Errorf("aggregate id = %d, want %d", events[0].AggregateID(), p.ID)
	}
}

func TestProductArchive(t *testing.T) {
	t.Run("from draft", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Archive(); err != nil {
			t.Fatalf("Archive: %v", err)
		}
		if p.Status != StatusArchived {
			t.Fatalf("status = %s, want ARCHIVED", p.Status)
		}
	})

	t.Run("from published", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Publish(); err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if err := p.Archive(); err != nil {
			t.Fatalf("Archive: %v", err)
		}
	})

	t.Run("twice", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Archive(); err != nil {
			t.Fatalf("Archive: %v", err)
		}
		if err := p.Archive(); !errors.Is(err, e.ErrInvalidStatusTransition) {
			t.Fatalf("second Archive error = %v, want ErrInvalidStatusTransition", err)
		}
	})

	t.Run("publish after archive", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Archive(); err != nil {
			t.Fatalf("Archive: %v", err)
		}
		if err := p.Publish(); !errors.Is(err, e.ErrProductArchived) {
			t.Fatalf("Publish on archived error = %v, want ErrProductArchived", err)
		}
	})
}

func TestProductUpdatePrice(t *testing.T) {
	p := draftProduct(t)
	oldPrice := p.Price

	newPrice, _ := NewMoney(49999, "RUB")
	if err := p.UpdatePrice(newPrice); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if !p.Price.Equal(newPrice) {
		t.Fatalf("price = %+v, want %+v", p.Price, newPrice)
	}

	events := p.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev, ok := events[0].(ProductPriceChangedEvent)
	if !ok {
		t.Fatalf("event type is %T, want ProductPriceChangedEvent", events[0])
	}
	if ev.OldPriceCents != oldPrice.AmountCents || ev.PriceCents != newPrice.AmountCents {
		t.Errorf("event prices = %d→%d, want %d→%d", ev.OldPriceCents, ev.PriceCents, oldPrice.AmountCents, newPrice.AmountCents)
	}

	t.Run("same price records nothing", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.UpdatePrice(p.Price); err != nil {
			t.Fatalf("UpdatePrice: %v", err)
		}
		if len(p.Events()) != 0 {
			t.Error("no-op price update must not record an event")
		}
	})

	t.Run("invalid money", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.UpdatePrice(Money{AmountCents: -1, Currency: "RUB"}); !errors.Is(err, e.ErrPriceNegative) {
			t.Fatalf("error = %v, want ErrPriceNegative", err)
		}
	})

	t.Run("on archived", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Archive(); err != nil {
			t.Fatalf("Archive: %v", err)
		}
		if err := p.UpdatePrice(validPrice(t)); !errors.Is(err, e.ErrProductArchived) {
			t.Fatalf("error = %v, want ErrProductArchived", err)
		}
	})
}

func TestProductRename(t *testing.T) {
	p := draftProduct(t)
	oldName := p.Name

	if err := p.Rename("Смартфон Pro"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if p.Name != "Смартфон Pro" {
		t.Fatalf("name = %q", p.Name)
	}

	events := p.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0].(ProductRenamedEvent)
	if ev.OldName != oldName || ev.Name != "Смартфон Pro" {
		t.Errorf("event names = %q→%q", ev.OldName, ev.Name)
	}

	t.Run("same name records nothing", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Rename(p.Name); err != nil {
			t.Fatalf("Rename: %v", err)
		}
		if len(p.Events()) != 0 {
			t.Error("no-op rename must not record an event")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		p := draftProduct(t)
		if err := p.Rename("  "); !errors.Is(err, e.ErrProductNameRequired) {
			t.Fatalf("error = %v, want ErrProductNameRequired", err)
		}
	})
}

func TestProductEventsAccumulateAndClear(t *testing.T) {
	p := draftProduct(t)
	p.Record(NewProductCreatedEvent(p))

	if err := p.Publish(); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	newPrice, _ := NewMoney(100, "RUB")
	if err := p.UpdatePrice(newPrice); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}

	events := p.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	wantOrder := []string{EventTypeProductCreated, EventTypeProductPublished, EventTypeProductPriceChanged}
	for i, want := range wantOrder {
		if events[i].EventType() != want {
			t.Errorf("events[%d] = %s, want %s", i, events[i].EventType(), want)
		}
	}

	// Events отдаёт копию: правка снаружи не трогает сущность
	events[0] = nil
	if p.Events()[0] == nil {
		t.Fatal("Events must return a copy")
	}

	p.ClearEvents()
	if len(p.Events()) != 0 {
		t.Fatal("events not cleared")
	}
}

func TestParseProductStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ProductStatus
		wantErr bool
	}{
		{"DRAFT", StatusDraft, false},
		{"published", StatusPublished, false},
		{" archived ", StatusArchived, false},
		{"deleted", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseProductStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProductStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProductStatus(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
