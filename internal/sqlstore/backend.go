// Package sqlstore persists the marketplace in PostgreSQL or MySQL.
package sqlstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/config"
	"github.com/safar/localkirana/internal/database"
)

type Backend struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Backend {
	return &Backend{db: db}
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) tx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return database.WithTransaction(ctx, b.db, database.DefaultTxOptions(), fn)
}

// insert runs an INSERT written with ? placeholders and returns the id of
// the new row.
func insert(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	query = q.Rebind(query)

	if q.DriverName() == config.DriverPostgres {
		var id int64
		if err := q.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func exec(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (sql.Result, error) {
	return q.ExecContext(ctx, q.Rebind(query), args...)
}

func get(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...)
}

func selectAll(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...)
}

func exists(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (bool, error) {
	var n int
	if err := get(ctx, q, &n, query, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

// checkUnique reports a phone clash in table before an email clash, ignoring
// the row with id self.
func checkUnique(ctx context.Context, q sqlx.ExtContext, table string, self int64, phone, email string) error {
	taken, err := exists(ctx, q, `SELECT COUNT(*) FROM `+table+` WHERE phone = ? AND id <> ?`, phone, self)
	if err != nil {
		return errors.Wrapf(err, "check %s phone", table)
	}
	if taken {
		return database.ErrDuplicatePhone
	}

	taken, err = exists(ctx, q, `SELECT COUNT(*) FROM `+table+` WHERE email = ? AND id <> ?`, email, self)
	if err != nil {
		return errors.Wrapf(err, "check %s email", table)
	}
	if taken {
		return database.ErrDuplicateEmail
	}
	return nil
}

// wrap annotates err unless it is a phone or email unique violation, which
// is returned as the matching sentinel.
func wrap(err error, msg string) error {
	if translated := database.TranslateUniqueViolation(err); translated != err {
		return translated
	}
	return errors.Wrap(err, msg)
}

type column struct {
	name  string
	value *string
}

// setClause builds "a = ?, b = ?" for the non-nil columns.
func setClause(columns []column) (string, []interface{}) {
	var clause string
	var args []interface{}
	for _, c := range columns {
		if c.value == nil {
			continue
		}
		if clause != "" {
			clause += ", "
		}
		clause += c.name + " = ?"
		args = append(args, *c.value)
	}
	return clause, args
}
