package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB é o subconjunto de operações comum a pgxpool.Pool e pgx.Tx usado pelos
// repositórios. Permite que a mesma consulta rode dentro ou fora de transação.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txKey é a chave da transação corrente no contexto
type txKey struct{}

// TxManager abre transações pgx e as propaga pelo contexto: os repositórios
// roteiam suas consultas pela transação quando ela está presente
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager cria um novo TxManager
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx executa fn dentro de uma transação. Chamadas aninhadas reutilizam
// a transação corrente em vez de abrir uma nova.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}
	return nil
}

// txFromContext recupera a transação corrente do contexto, se existir
func txFromContext(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// querier retorna a transação corrente ou o executor padrão do repositório
func querier(ctx context.Context, db DB) DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
