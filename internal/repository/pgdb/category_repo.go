package pgdb

import (
	"context"
	"errors"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/internal/repository/pgdb/converter"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

const categoryColumns = `id, name, description, created_at, updated_at, is_archived`

// EnsureByName идемпотентно создаёт категорию по уникальному имени.
// Колонка inserted отличает реальную вставку от попадания в существующую строку.
func (c *CategoryRepo) EnsureByName(ctx context.Context, category *domain.Category) (*domain.Category, bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH ins AS (
			INSERT INTO categories (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
			RETURNING ` + categoryColumns + `
		)
		SELECT ` + categoryColumns + `, true AS inserted FROM ins

		UNION ALL

		SELECT ` + categoryColumns + `, false AS inserted
		FROM categories
		WHERE name = $1 AND NOT EXISTS (SELECT 1 FROM ins);
	`

	var model converter.CategoryModel
	var inserted bool
	if err := tx.QueryRow(ctx, query, category.Name, category.Description).
		Scan(
			&model.ID, &model.Name, &model.Description,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived, &inserted,
		); err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), inserted, nil
}

func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var model converter.CategoryModel
	err := c.pool.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Name, &model.Description,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY id`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, c.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
