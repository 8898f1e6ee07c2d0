// Package pgdb содержит репозитории каталога поверх PostgreSQL.
// Пишущие методы достают транзакцию команды из контекста (pkg/tr),
// читающие ходят напрямую через пул.
package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation — SQLSTATE 23505
const uniqueViolation = "23505"

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
