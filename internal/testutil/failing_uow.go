package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/tratlus/internal/db"
)

// NewFailingUoW returns a unit of work whose nth write inside a transaction
// fails with err. Writes are counted from 1 per transaction; reads pass
// through. Rollback tests use it to break multi-row saves part way.
func NewFailingUoW(database *sql.DB, nth int32, err error) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database).WithTxWrapper(func(tx db.DBTX) db.DBTX {
		return &failingWrites{DBTX: tx, nth: nth, err: err}
	})
}

type failingWrites struct {
	db.DBTX
	writes atomic.Int32
	nth    int32
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.nth {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
