// Package sqlstore provides the SQL-backed repositories, on SQLite or MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/sqlstore/migrations"
)

// Dialect captures the statements that differ between database engines
type Dialect struct {
	Name          string
	DriverName    string
	InsertIgnore  string
	MigrationFS   fs.FS
	MigrationRoot string
}

var (
	// SQLite is the default embedded engine
	SQLite = Dialect{
		Name:          "sqlite",
		DriverName:    "sqlite",
		InsertIgnore:  "INSERT OR IGNORE",
		MigrationFS:   migrations.SQLite,
		MigrationRoot: "sqlite",
	}
	// MySQL targets a shared MySQL or MariaDB server
	MySQL = Dialect{
		Name:          "mysql",
		DriverName:    "mysql",
		InsertIgnore:  "INSERT IGNORE",
		MigrationFS:   migrations.MySQL,
		MigrationRoot: "mysql",
	}
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists point-of-sale state in a SQL database.
type Store struct {
	sqlDB   *sql.DB
	q       querier
	tx      *sql.Tx
	dialect Dialect
	now     func() time.Time
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens a SQLite database file and applies embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	return open(ctx, SQLite, dsn)
}

// OpenMySQL connects to a MySQL server and applies embedded migrations.
func OpenMySQL(ctx context.Context, cfg *mysql.Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql config is required")
	}
	return open(ctx, MySQL, mysqlDSN(cfg))
}

// mysqlDSN formats cfg with clientFoundRows forced on. Update and close
// report matched rows that way, which is what a zero-row check means here.
func mysqlDSN(cfg *mysql.Config) string {
	c := cfg.Clone()
	c.ClientFoundRows = true
	return c.FormatDSN()
}

func open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	sqlDB, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect.Name, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect.Name, err)
	}
	if err := ApplyMigrations(ctx, sqlDB, dialect.MigrationFS, dialect.MigrationRoot); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, q: sqlDB, dialect: dialect, now: time.Now}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil || s.tx != nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Dialect reports the engine in use
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// WithinTx runs fn inside one database transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txStore := &Store{sqlDB: s.sqlDB, q: tx, tx: tx, dialect: s.dialect, now: s.now}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Products() repositories.ProductRepository           { return &productStore{s} }
func (s *Store) Stock() repositories.StockRepository                 { return &stockStore{s} }
func (s *Store) CashSessions() repositories.CashSessionRepository   { return &sessionStore{s} }
func (s *Store) CashMovements() repositories.CashMovementRepository { return &movementStore{s} }
func (s *Store) Sales() repositories.SaleRepository                  { return &saleStore{s} }
func (s *Store) SaleItems() repositories.SaleItemRepository          { return &saleItemStore{s} }
func (s *Store) Users() repositories.UserConfigRepository            { return &userStore{s} }

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

// isUniqueViolation recognises duplicate-key errors of both drivers
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
