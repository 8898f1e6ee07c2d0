package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/pkg/e"
)

type categoryFixture struct {
	categories *fakeCategoryRepo
	outbox     *fakeOutboxRepo
	pool       *fakePool
	uc         *CategoryUseCase
}

func newCategoryFixture() *categoryFixture {
	f := &categoryFixture{
		categories: newFakeCategoryRepo(),
		outbox:     &fakeOutboxRepo{},
		pool:       &fakePool{},
	}
	f.uc = NewCategoryUC(f.categories, f.outbox, f.pool, noopLogger{}, "catalog-api")
	return f
}

func TestCreateCategory(t *testing.T) {
	f := newCategoryFixture()

	res, err := f.uc.CreateCategory(t.Context(), NewCreateCategoryReq("Электроника", "гаджеты"))
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}

	if !res.Created {
		t.Error("Created = false, want true")
	}
	if res.Category.ID == 0 {
		t.Error("expected DB-assigned category ID")
	}
	if res.Category.Name != "Электроника" {
		t.Errorf("Name = %q, want %q", res.Category.Name, "Электроника")
	}

	events := f.outbox.events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeCategoryCreated {
		t.Fatalf("outbox = %+v, want одно событие %q", events, domain.EventTypeCategoryCreated)
	}
	if events[0].AggregateID != res.Category.ID {
		t.Errorf("AggregateID = %d, want %d", events[0].AggregateID, res.Category.ID)
	}

	committed, _ := f.pool.lastTx.state()
	if !committed {
		t.Error("transaction was not committed")
	}
}

func TestCreateCategory_IdempotentByName(t *testing.T) {
	f := newCategoryFixture()
	existing := f.categories.seed("Электроника")

	res, err := f.uc.CreateCategory(t.Context(), NewCreateCategoryReq("Электроника", ""))
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}

	if res.Created {
		t.Error("Created = true, want false для существующего имени")
	}
	if res.Category.ID != existing.ID {
		t.Errorf("ID = %d, want %d", res.Category.ID, existing.ID)
	}
	if len(f.outbox.events()) != 0 {
		t.Error("idempotent hit must not enqueue events")
	}

	committed, _ := f.pool.lastTx.state()
	if !committed {
		t.Error("transaction must still be committed")
	}
}

func TestCreateCategory_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateCategoryReq
		wantErr error
	}{
		{"empty name", NewCreateCategoryReq("", ""), e.ErrCategoryNameRequired},
		{"blank name", NewCreateCategoryReq("   ", ""), e.ErrCategoryNameRequired},
		{"too long name", NewCreateCategoryReq(strings.Repeat("я", domain.MaxCategoryNameLen+1), ""), e.ErrCategoryNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCategoryFixture()

			_, err := f.uc.CreateCategory(t.Context(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateCategory() error = %v, want %v", err, tt.wantErr)
			}
			if f.pool.begun != 0 {
				t.Error("validation failure must not open a transaction")
			}
		})
	}
}

func TestCreateCategory_RollbackOnRepoError(t *testing.T) {
	f := newCategoryFixture()
	f.categories.ensureErr = errors.New("insert failed")

	_, err := f.uc.CreateCategory(t.Context(), NewCreateCategoryReq("Электроника", ""))
	if err == nil {
		t.Fatal("expected error")
	}

	committed, rolledBack := f.pool.lastTx.state()
	if committed || !rolledBack {
		t.Errorf("tx state committed=%v rolledBack=%v, want rollback", committed, rolledBack)
	}
}

func TestListCategories(t *testing.T) {
	f := newCategoryFixture()
	f.categories.seed("Электроника")
	f.categories.seed("Кухня")

	categories, err := f.uc.ListCategories(t.Context())
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(categories))
	}
	if categories[0].Name != "Электроника" || categories[1].Name != "Кухня" {
		t.Errorf("names = [%q %q], want порядок по ID", categories[0].Name, categories[1].Name)
	}
}
