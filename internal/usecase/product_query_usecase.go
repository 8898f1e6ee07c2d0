package usecase

import (
	"context"
	"time"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
)

// Границы постраничной выборки
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ProductQueryUseCase — читающая сторона каталога: Redis поверх Postgres.
type ProductQueryUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewProductQueryUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductQueryUseCase {
	return &ProductQueryUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// GetProduct возвращает один продукт. Отсутствие — e.ErrProductNotFound.
func (p *ProductQueryUseCase) GetProduct(ctx context.Context, req *GetProductReq) (*ProductInfo, error) {
	const op = "ProductQueryUseCase.GetProduct"

	if req.ID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	res, err := p.GetProductsInfo(ctx, NewGetProductsReq([]int64{req.ID}))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(res.Products) == 0 {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	info := res.Products[0]
	return &info, nil
}

// GetProductsInfo возвращает информацию о продуктах по их идентификаторам.
// Сначала кэш, промахи добираются из БД и докладываются в кэш фоном.
func (p *ProductQueryUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductQueryUseCase.GetProductsInfo"

	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}

	// Поиск продуктов в кэше
	cacheProductsMap, err := p.cacheRepo.GetProducts(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		p.logger.Warnf("Failed to read products from cache: %v", e.Wrap(op, err))
		cacheProductsMap = nil
		nonCacheable = append(nonCacheable, req.IDs...)
	} else {
		for _, productID := range req.IDs {
			if _, ok := cacheProductsMap[productID]; !ok {
				nonCacheable = append(nonCacheable, productID)
			}
		}
	}

	// Получение продуктов из БД
	var productsInfoFromDB []ProductInfo
	if len(nonCacheable) > 0 {
		productsInfoFromDB, err = p.productRepo.GetProductsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление продуктов в кэш
		if len(productsInfoFromDB) > 0 {
			go func() {
				bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
				defer cancel()

				if err := p.cacheRepo.SetProducts(bgCtx, productsInfoFromDB); err != nil {
					p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
				}
			}()
		}
	}

	dbProductsMap := make(map[int64]ProductInfo, len(productsInfoFromDB))
	for _, productInfo := range productsInfoFromDB {
		dbProductsMap[productInfo.ID] = productInfo
	}

	// Формирование результата в порядке запрошенных ID
	result := make([]ProductInfo, 0, len(req.IDs))
	notFoundProducts := make([]int64, 0)
	for _, id := range req.IDs {
		if pr, ok := cacheProductsMap[id]; ok {
			result = append(result, pr)
		} else if pr, ok := dbProductsMap[id]; ok {
			result = append(result, pr)
		} else {
			notFoundProducts = append(notFoundProducts, id)
		}
	}

	return NewGetProductsRes(result, notFoundProducts), nil
}

// ListProducts — постраничная выборка с фильтрами по статусу и категории.
// Списки в кэш не кладутся: комбинаций фильтров слишком много.
func (p *ProductQueryUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "ProductQueryUseCase.ListProducts"

	if req.Status != nil {
		parsed, err := domain.ParseProductStatus(*req.Status)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		normalized := string(parsed)
		req.Status = &normalized
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}
	if req.Limit <= 0 {
		req.Limit = DefaultListLimit
	}
	if req.Limit > MaxListLimit {
		req.Limit = MaxListLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	products, err := p.productRepo.List(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ListProductsRes{Products: products}, nil
}
