package pgdb

import (
	"context"
	"errors"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/internal/repository/pgdb/converter"
	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `id, name, description, price_cents, currency, status, category_id, created_at, updated_at`

// Create вставляет продукт и возвращает его с ID и CreatedAt, назначенными базой.
// Имена продуктов не уникальны, конфликтов здесь не бывает.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (name, description, price_cents, currency, status, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.Name,
		model.Description,
		model.PriceCents,
		model.Currency,
		model.Status,
		model.CategoryID,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	return p.scanProduct(p.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate читает продукт внутри транзакции команды с блокировкой строки.
func (p *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	return p.scanProduct(tx.QueryRow(ctx, query, id))
}

// Update переписывает изменяемые колонки продукта.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		UPDATE products
		SET name = $1,
			description = $2,
			price_cents = $3,
			currency = $4,
			status = $5,
			updated_at = NOW()
		WHERE id = $6
	`

	result, err := tx.Exec(ctx, query,
		model.Name,
		model.Description,
		model.PriceCents,
		model.Currency,
		model.Status,
		model.ID,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// GetProductsInfo возвращает информацию о продуктах по их идентификаторам, включая название категории.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.description, pr.price_cents, pr.currency, pr.status,
			pr.category_id, cat.name, pr.created_at
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfos(rows)
}

// List возвращает страницу каталога. Nil-фильтры превращаются в NULL
// и отключают соответствующее условие.
func (p *ProductRepo) List(ctx context.Context, filter *usecase.ListProductsReq) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.description, pr.price_cents, pr.currency, pr.status,
			pr.category_id, cat.name, pr.created_at
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE ($1::text IS NULL OR pr.status = $1)
		  AND ($2::bigint IS NULL OR pr.category_id = $2)
		ORDER BY pr.id
		LIMIT $3 OFFSET $4
	`

	rows, err := p.pool.Query(ctx, query, filter.Status, filter.CategoryID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfos(rows)
}

// InsertImages фиксирует метаданные загруженных изображений одной пачкой.
func (p *ProductRepo) InsertImages(ctx context.Context, images []domain.Image) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO product_images (id, product_id, object_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, image := range images {
		batch.Queue(query, image.ID, image.ProductID, image.ObjectKey, image.ContentType, image.Size)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range images {
		if _, err := results.Exec(); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

func (p *ProductRepo) scanProduct(row pgx.Row) (*domain.Product, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.PriceCents, &model.Currency,
		&model.Status, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func scanProductInfos(rows pgx.Rows) ([]usecase.ProductInfo, error) {
	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price, &product.Currency,
			&product.Status, &product.CategoryID, &product.CategoryName, &product.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
