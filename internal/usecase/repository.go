package usecase

import (
	"context"
	"time"

	"github.com/catalogcraft/catalog-api/internal/domain"
)

type ProductRepository interface {
	// Create вставляет продукт и возвращает его с ID и CreatedAt, назначенными базой
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetByIDForUpdate читает продукт внутри транзакции с блокировкой строки
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	// Update переписывает изменяемые колонки продукта (имя, описание, цена, статус)
	Update(ctx context.Context, product *domain.Product) error
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
	List(ctx context.Context, filter *ListProductsReq) ([]ProductInfo, error)
	InsertImages(ctx context.Context, images []domain.Image) error
}

type CategoryRepository interface {
	// EnsureByName идемпотентно создаёт категорию по имени.
	// Второе значение — true, если строка была реально вставлена.
	EnsureByName(ctx context.Context, category *domain.Category) (*domain.Category, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

type OutboxEventRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	// GetAndMarkAsProcessing забирает пачку PENDING-событий под FOR UPDATE SKIP LOCKED
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	// RequeueStale возвращает в PENDING события, зависшие в PROCESSING дольше порога
	RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
