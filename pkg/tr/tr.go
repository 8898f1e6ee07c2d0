package tr

import (
	"context"

	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/jackc/pgx/v5"
)

// CtxWithTx кладёт объект транзакции (pgx.Tx) в контекст,
// чтобы репозитории выполняли запросы внутри этой транзакции
func CtxWithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, "tx", tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value("tx")
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
