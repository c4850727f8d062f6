// Package dbtx binds gorm sessions to a database/sql transaction.
//
// Services open the atomic unit with (*sql.DB).BeginTx and hand the *sql.Tx to
// every repository through WithTx. Repositories call Bind so that each gorm
// statement they issue runs on that transaction; without it the repository
// would silently use the pool and the unit would not be atomic.
package dbtx

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bind returns a gorm handle whose statements execute on tx. A nil tx returns
// db unchanged.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if db == nil || tx == nil {
		return db
	}
	bound := db.Session(&gorm.Session{
		Context:                context.Background(),
		SkipDefaultTransaction: true,
	})
	bound.Statement.ConnPool = tx
	return bound
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (SQLite) drop the clause; SQLite serializes
// writers at the database level instead.
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique violation on the named
// constraint or index. SQLite reports the indexed columns instead of the index
// name, so callers pass them as "table.column" to match its message as well.
func IsUniqueViolation(err error, constraint string, columns ...string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		return strings.Contains(msg, constraint)
	}
	if !strings.Contains(msg, "unique constraint failed") {
		return false
	}
	if strings.Contains(msg, constraint) {
		return true
	}
	return len(columns) > 0 && sqliteColumnsMatch(msg, columns)
}

// sqliteColumnsMatch compares the column list after "UNIQUE constraint
// failed:" with columns, ignoring order.
func sqliteColumnsMatch(msg string, columns []string) bool {
	_, list, ok := strings.Cut(msg, "unique constraint failed:")
	if !ok {
		return false
	}
	got := strings.Split(list, ",")
	if len(got) != len(columns) {
		return false
	}
	seen := make(map[string]struct{}, len(got))
	for _, c := range got {
		seen[strings.TrimSpace(c)] = struct{}{}
	}
	for _, c := range columns {
		if _, ok := seen[strings.ToLower(c)]; !ok {
			return false
		}
	}
	return true
}
