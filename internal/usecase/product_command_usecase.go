package usecase

import (
	"context"
	"strings"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/catalogcraft/catalog-api/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductCommandUseCase реализует команды над продуктами: создание,
// публикацию, архивацию, смену цены и загрузку изображений.
type ProductCommandUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxEventRepository
	cacheRepo    CacheRepository
	imagesInfra  ImagesInfra
	dbPool       transaction.Transactional
	logger       logger.Logger
	producer     string
}

func NewProductCommandUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxEventRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
	producer string,
) *ProductCommandUseCase {
	return &ProductCommandUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		imagesInfra:  imagesInfra,
		dbPool:       dbPool,
		logger:       logger,
		producer:     producer,
	}
}

// CreateProduct создает продукт в статусе DRAFT: идемпотентно обеспечивает
// категорию, вставляет продукт и кладёт событие о создании в outbox одной
// транзакцией. События очищаются только после фиксации.
func (p *ProductCommandUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*CreateProductRes, error) {
	const op = "ProductCommandUseCase.CreateProduct"

	var err error
	if err = p.validateCreateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	price, err := domain.NewMoney(req.PriceCents, req.Currency)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	category, err := domain.NewCategory(req.CategoryName, "")
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	// идемпотентное создание категории
	storedCategory, _, err := p.categoryRepo.EnsureByName(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := domain.NewProduct(req.Name, req.Description, price, storedCategory.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// ID назначен базой — теперь можно записать событие о создании
	created.Record(domain.NewProductCreatedEvent(created))

	if err = appendOutboxEvents(ctx, p.outboxRepo, p.producer, created.Events()); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	created.ClearEvents()
	p.invalidateCache(ctx, op, created.ID)

	info := NewProductInfo(
		created.ID,
		created.Name,
		created.Description,
		created.Price.AmountCents,
		created.Price.Currency,
		string(created.Status),
		storedCategory.ID,
		storedCategory.Name,
		created.CreatedAt,
	)

	return &CreateProductRes{Product: info}, nil
}

// PublishProduct переводит продукт DRAFT → PUBLISHED.
func (p *ProductCommandUseCase) PublishProduct(ctx context.Context, req *ProductStatusReq) (*ProductStatusRes, error) {
	const op = "ProductCommandUseCase.PublishProduct"

	product, err := p.mutateProduct(ctx, req.ID, func(product *domain.Product) error {
		return product.Publish()
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductStatusRes(product.ID, string(product.Status)), nil
}

// ArchiveProduct архивирует продукт из любого неархивного статуса.
func (p *ProductCommandUseCase) ArchiveProduct(ctx context.Context, req *ProductStatusReq) (*ProductStatusRes, error) {
	const op = "ProductCommandUseCase.ArchiveProduct"

	product, err := p.mutateProduct(ctx, req.ID, func(product *domain.Product) error {
		return product.Archive()
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductStatusRes(product.ID, string(product.Status)), nil
}

// ChangeProductPrice меняет цену продукта.
func (p *ProductCommandUseCase) ChangeProductPrice(ctx context.Context, req *ChangeProductPriceReq) (*ChangeProductPriceRes, error) {
	const op = "ProductCommandUseCase.ChangeProductPrice"

	price, err := domain.NewMoney(req.PriceCents, req.Currency)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.mutateProduct(ctx, req.ID, func(product *domain.Product) error {
		return product.UpdatePrice(price)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ChangeProductPriceRes{
		ID:         product.ID,
		PriceCents: product.Price.AmountCents,
		Currency:   product.Price.Currency,
	}, nil
}

// AttachProductImages загружает изображения в MinIO и фиксирует привязку
// к продукту. Загрузка идёт до транзакции; при ошибке фиксации запускается
// компенсационная очистка осиротевших объектов.
func (p *ProductCommandUseCase) AttachProductImages(ctx context.Context, req *AttachImagesReq) (*AttachImagesRes, error) {
	const op = "ProductCommandUseCase.AttachProductImages"

	var err error
	if req.ProductID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}
	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	product, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product.Status == domain.StatusArchived {
		return nil, e.Wrap(op, e.ErrProductArchived)
	}

	// Сохранение изображений в MinIO
	imagesRes, err := p.imagesInfra.UploadImages(ctx, NewUploadImagesReq(product.ID, req.Images))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		p.cleanupUploaded(op, req.ProductID, imagesRes, err)
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженных изображений
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			p.cleanupUploaded(op, req.ProductID, imagesRes, err)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	images := make([]domain.Image, 0, len(imagesRes.ImagesKeys))
	for i, key := range imagesRes.ImagesKeys {
		size := req.Images[i].Size
		contentType := req.Images[i].MimeType
		images = append(images, *domain.NewImage(uuid.NewString(), product.ID, "", key, nil, &size, &contentType))
	}

	if err = p.productRepo.InsertImages(ctx, images); err != nil {
		return nil, e.Wrap(op, err)
	}

	product.Record(domain.NewProductImagesAttachedEvent(product.ID, imagesRes.ImagesKeys))

	if err = appendOutboxEvents(ctx, p.outboxRepo, p.producer, product.Events()); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	product.ClearEvents()

	return NewAttachImagesRes(imagesRes.ImagesKeys), nil
}

// mutateProduct — общий каркас команд над существующим продуктом:
// загрузка под блокировкой, мутация, запись, outbox, коммит, сброс кэша.
func (p *ProductCommandUseCase) mutateProduct(ctx context.Context, id int64, mutate func(*domain.Product) error) (*domain.Product, error) {
	if id <= 0 {
		return nil, e.ErrInvalidID
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	product, err := p.productRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = mutate(product); err != nil {
		return nil, err
	}

	if err = p.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err = appendOutboxEvents(ctx, p.outboxRepo, p.producer, product.Events()); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	product.ClearEvents()
	p.invalidateCache(ctx, "ProductCommandUseCase.mutateProduct", product.ID)

	return product, nil
}

// invalidateCache убирает устаревшую запись из кэша. Ошибка кэша не
// валит команду: данные в БД уже зафиксированы.
func (p *ProductCommandUseCase) invalidateCache(ctx context.Context, op string, productID int64) {
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{productID}); err != nil {
		p.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}
}

func (p *ProductCommandUseCase) cleanupUploaded(op string, productID int64, imagesRes *UploadImagesRes, cause error) {
	p.logger.Warnf(
		"Cleaning up orphaned images after transaction failure. product_id: %d, error: %v",
		productID,
		e.Wrap(op, cause),
	)

	p.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
}

// validateCreateProduct проверяет корректность входных данных запроса на создание продукта.
func (p *ProductCommandUseCase) validateCreateProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if strings.TrimSpace(req.CategoryName) == "" {
		return e.ErrCategoryNameRequired
	}

	return nil
}
