package usecase

import "context"

// ProductCommands — команды над продуктом. Каждая команда — одна единица
// работы: мутация, запись outbox-событий и фиксация в одной транзакции.
type ProductCommands interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*CreateProductRes, error)
	PublishProduct(ctx context.Context, req *ProductStatusReq) (*ProductStatusRes, error)
	ArchiveProduct(ctx context.Context, req *ProductStatusReq) (*ProductStatusRes, error)
	ChangeProductPrice(ctx context.Context, req *ChangeProductPriceReq) (*ChangeProductPriceRes, error)
	AttachProductImages(ctx context.Context, req *AttachImagesReq) (*AttachImagesRes, error)
}

// ProductQueries — читающая сторона: кэш поверх БД, никаких мутаций.
type ProductQueries interface {
	GetProduct(ctx context.Context, req *GetProductReq) (*ProductInfo, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
}

type CategoryUC interface {
	CreateCategory(ctx context.Context, req *CreateCategoryReq) (*CreateCategoryRes, error)
	ListCategories(ctx context.Context) ([]CategoryInfo, error)
}

type HealthUC interface {
	Check(ctx context.Context) *HealthReport
}
