package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execCall registra um comando executado e se havia transação ativa no momento
type execCall struct {
	sql  string
	inTx bool
}

type recordingTxRunner struct {
	begun  int
	active bool
}

func (r *recordingTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.begun++
	r.active = true
	defer func() { r.active = false }()
	return fn(ctx)
}

type recordingDB struct {
	runner *recordingTxRunner
	tags   []pgconn.CommandTag
	calls  []execCall
}

func (d *recordingDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.calls = append(d.calls, execCall{sql: sql, inTx: d.runner.active})
	tag := pgconn.NewCommandTag("DELETE 1")
	if len(d.tags) > 0 {
		tag = d.tags[0]
		d.tags = d.tags[1:]
	}
	return tag, nil
}

func (d *recordingDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *recordingDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func TestSaleRepositoryDeleteCascade_RunsInsideSingleTransaction(t *testing.T) {
	runner := &recordingTxRunner{}
	db := &recordingDB{runner: runner}
	repo := &SaleRepository{db: db, tx: runner}

	err := repo.DeleteCascade(context.Background(), "branch-1", "sale-1")
	require.NoError(t, err)

	assert.Equal(t, 1, runner.begun)
	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].sql, "DELETE FROM sale_items")
	assert.Contains(t, db.calls[1].sql, "DELETE FROM sales")
	for _, call := range db.calls {
		assert.True(t, call.inTx, "comando executado fora da transação: %s", call.sql)
	}
}

func TestSaleRepositoryDeleteCascade_NotFound(t *testing.T) {
	runner := &recordingTxRunner{}
	db := &recordingDB{
		runner: runner,
		tags: []pgconn.CommandTag{
			pgconn.NewCommandTag("DELETE 1"),
			pgconn.NewCommandTag("DELETE 0"),
		},
	}
	repo := &SaleRepository{db: db, tx: runner}

	err := repo.DeleteCascade(context.Background(), "branch-1", "inexistente")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}
