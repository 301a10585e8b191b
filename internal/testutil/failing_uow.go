package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/loadboard/internal/db"
)

// FailOnNthExecUoW runs real transactions but makes the FailOn-th write
// (1-based) inside each one return Err. Reads are never counted, so tests can
// break, say, the second task insert of an import and check nothing landed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &writeTrap{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type writeTrap struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (w *writeTrap) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if w.writes.Add(1) == w.failOn {
		return nil, w.err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}
