package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/catalogcraft/catalog-api/pkg/e"
)

func newQueryFixture() (*fakeProductRepo, *fakeCacheRepo, *ProductQueryUseCase) {
	products := newFakeProductRepo()
	cache := newFakeCacheRepo()
	uc := NewProductQueryUC(products, cache, noopLogger{})
	return products, cache, uc
}

func productInfoFixture(id int64) ProductInfo {
	return NewProductInfo(id, "Гриль", "садовый", 450000, "RUB", "DRAFT", 1, "Кухня", time.Now().UTC())
}

// waitForCacheFill дожидается фонового прогрева кэша.
func waitForCacheFill(t *testing.T, cache *fakeCacheRepo) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for cache.setCalls() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("background cache fill did not happen")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestGetProductsInfo_CacheMiss(t *testing.T) {
	products, cache, uc := newQueryFixture()
	products.infos[1] = productInfoFixture(1)
	products.infos[2] = productInfoFixture(2)

	res, err := uc.GetProductsInfo(t.Context(), NewGetProductsReq([]int64{1, 2}))
	if err != nil {
		t.Fatalf("GetProductsInfo() error = %v", err)
	}

	if len(res.Products) != 2 {
		t.Fatalf("Products = %d, want 2", len(res.Products))
	}
	if res.Products[0].ID != 1 || res.Products[1].ID != 2 {
		t.Errorf("order = [%d %d], want запрошенный порядок [1 2]", res.Products[0].ID, res.Products[1].ID)
	}
	if len(res.NotFoundProducts) != 0 {
		t.Errorf("NotFoundProducts = %v, want пусто", res.NotFoundProducts)
	}
	if len(products.infosCalls) != 1 {
		t.Fatalf("db calls = %d, want 1", len(products.infosCalls))
	}

	waitForCacheFill(t, cache)
}

func TestGetProductsInfo_CacheHitSkipsDB(t *testing.T) {
	products, cache, uc := newQueryFixture()
	cache.data[7] = productInfoFixture(7)

	res, err := uc.GetProductsInfo(t.Context(), NewGetProductsReq([]int64{7}))
	if err != nil {
		t.Fatalf("GetProductsInfo() error = %v", err)
	}

	if len(res.Products) != 1 || res.Products[0].ID != 7 {
		t.Fatalf("Products = %+v, want продукт 7 из кэша", res.Products)
	}
	if len(products.infosCalls) != 0 {
		t.Error("cache hit must not reach the database")
	}
}

func TestGetProductsInfo_PartialHit(t *testing.T) {
	products, cache, uc := newQueryFixture()
	cache.data[1] = productInfoFixture(1)
	products.infos[2] = productInfoFixture(2)

	res, err := uc.GetProductsInfo(t.Context(), NewGetProductsReq([]int64{1, 2}))
	if err != nil {
		t.Fatalf("GetProductsInfo() error = %v", err)
	}

	if len(res.Products) != 2 {
		t.Fatalf("Products = %d, want 2", len(res.Products))
	}
	if res.Products[0].ID != 1 || res.Products[1].ID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", res.Products[0].ID, res.Products[1].ID)
	}
	if len(products.infosCalls) != 1 || len(products.infosCalls[0]) != 1 || products.infosCalls[0][0] != 2 {
		t.Errorf("db calls = %v, want только промах [2]", products.infosCalls)
	}
}

func TestGetProductsInfo_CacheErrorFallsBackToDB(t *testing.T) {
	products, cache, uc := newQueryFixture()
	cache.getErr = errors.New("redis down")
	products.infos[3] = productInfoFixture(3)

	res, err := uc.GetProductsInfo(t.Context(), NewGetProductsReq([]int64{3}))
	if err != nil {
		t.Fatalf("GetProductsInfo() error = %v", err)
	}
	if len(res.Products) != 1 || res.Products[0].ID != 3 {
		t.Fatalf("Products = %+v, want продукт 3 из БД", res.Products)
	}
}

func TestGetProductsInfo_NotFoundCollected(t *testing.T) {
	products, _, uc := newQueryFixture()
	products.infos[1] = productInfoFixture(1)

	res, err := uc.GetProductsInfo(t.Context(), NewGetProductsReq([]int64{1, 5, 9}))
	if err != nil {
		t.Fatalf("GetProductsInfo() error = %v", err)
	}
	if len(res.Products) != 1 {
		t.Fatalf("Products = %d, want 1", len(res.Products))
	}
	if len(res.NotFoundProducts) != 2 || res.NotFoundProducts[0] != 5 || res.NotFoundProducts[1] != 9 {
		t.Errorf("NotFoundProducts = %v, want [5 9]", res.NotFoundProducts)
	}
}

func TestGetProductsInfo_EmptyIDs(t *testing.T) {
	_, _, uc := newQueryFixture()

	_, err := uc.GetProductsInfo(t.Context(), NewGetProductsReq(nil))
	if !errors.Is(err, e.ErrNoProducts) {
		t.Errorf("GetProductsInfo() error = %v, want %v", err, e.ErrNoProducts)
	}
}

func TestGetProduct(t *testing.T) {
	products, _, uc := newQueryFixture()
	products.infos[4] = productInfoFixture(4)

	info, err := uc.GetProduct(t.Context(), NewGetProductReq(4))
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if info.ID != 4 {
		t.Errorf("ID = %d, want 4", info.ID)
	}
}

func TestGetProduct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{"not found", 42, e.ErrProductNotFound},
		{"zero id", 0, e.ErrInvalidID},
		{"negative id", -1, e.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, uc := newQueryFixture()

			_, err := uc.GetProduct(t.Context(), NewGetProductReq(tt.id))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetProduct() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListProducts_NormalizesFilters(t *testing.T) {
	products, _, uc := newQueryFixture()

	status := "published"
	_, err := uc.ListProducts(t.Context(), &ListProductsReq{Status: &status, Limit: 500, Offset: -3})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}

	if len(products.listCalls) != 1 {
		t.Fatalf("list calls = %d, want 1", len(products.listCalls))
	}
	got := products.listCalls[0]
	if got.Status == nil || *got.Status != "PUBLISHED" {
		t.Errorf("Status = %v, want PUBLISHED", got.Status)
	}
	if got.Limit != MaxListLimit {
		t.Errorf("Limit = %d, want %d", got.Limit, MaxListLimit)
	}
	if got.Offset != 0 {
		t.Errorf("Offset = %d, want 0", got.Offset)
	}
}

func TestListProducts_DefaultLimit(t *testing.T) {
	products, _, uc := newQueryFixture()

	if _, err := uc.ListProducts(t.Context(), &ListProductsReq{}); err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if got := products.listCalls[0].Limit; got != DefaultListLimit {
		t.Errorf("Limit = %d, want %d", got, DefaultListLimit)
	}
}

func TestListProducts_Validation(t *testing.T) {
	badStatus := "UNKNOWN"
	badCategory := int64(0)

	tests := []struct {
		name    string
		req     *ListProductsReq
		wantErr error
	}{
		{"unknown status", &ListProductsReq{Status: &badStatus}, e.ErrInvalidStatus},
		{"bad category id", &ListProductsReq{CategoryID: &badCategory}, e.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, uc := newQueryFixture()

			_, err := uc.ListProducts(t.Context(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ListProducts() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
