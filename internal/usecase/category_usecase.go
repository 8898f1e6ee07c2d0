package usecase

import (
	"context"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/catalogcraft/catalog-api/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// CategoryUseCase — команды и чтение категорий.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	outboxRepo   OutboxEventRepository
	dbPool       transaction.Transactional
	logger       logger.Logger
	producer     string
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	outboxRepo OutboxEventRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
	producer string,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		dbPool:       dbPool,
		logger:       logger,
		producer:     producer,
	}
}

// CreateCategory создает категорию. Повторный запрос с тем же именем
// идемпотентно возвращает существующую строку без события.
func (c *CategoryUseCase) CreateCategory(ctx context.Context, req *CreateCategoryReq) (*CreateCategoryRes, error) {
	const op = "CategoryUseCase.CreateCategory"

	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	stored, created, err := c.categoryRepo.EnsureByName(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if created {
		stored.Record(domain.NewCategoryCreatedEvent(stored))
		if err = appendOutboxEvents(ctx, c.outboxRepo, c.producer, stored.Events()); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	stored.ClearEvents()

	return &CreateCategoryRes{
		Category: toCategoryInfo(stored),
		Created:  created,
	}, nil
}

// ListCategories возвращает все категории каталога.
func (c *CategoryUseCase) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "CategoryUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	out := make([]CategoryInfo, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryInfo(category))
	}

	return out, nil
}

func toCategoryInfo(category *domain.Category) CategoryInfo {
	return CategoryInfo{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}
