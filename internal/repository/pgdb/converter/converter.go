//go:generate goverter gen github.com/catalogcraft/catalog-api/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertProductStatus
// goverter:extend ParseStoredProductStatus
// goverter:ignoreUnexported yes
type ProductConverter interface {
	// goverter:map Price.AmountCents PriceCents
	// goverter:map Price.Currency Currency
	ToModel(entity *domain.Product) *ProductModel
	// goverter:map . Price | PriceFromModel
	ToEntity(model *ProductModel) *domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:ignoreUnexported yes
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertProductStatus(s domain.ProductStatus) string {
	return string(s)
}

// ParseStoredProductStatus доверяет значению из БД: колонка status
// ограничена CHECK-ограничением и содержит только валидные статусы.
func ParseStoredProductStatus(s string) domain.ProductStatus {
	return domain.ProductStatus(s)
}

// PriceFromModel собирает денежное значение из колонок price_cents и currency.
func PriceFromModel(model *ProductModel) domain.Money {
	return domain.Money{
		AmountCents: model.PriceCents,
		Currency:    model.Currency,
	}
}
