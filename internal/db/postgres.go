package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/Zenodus/BookstoreInventory/internal/store"
)

type PostgresDB struct {
	Conn *sql.DB
}

func NewPostgresDB(host string, port int, user, password, dbname string) (*PostgresDB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Connected to PostgreSQL")
	return &PostgresDB{Conn: conn}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS books (
	book_id        BIGSERIAL PRIMARY KEY,
	title          TEXT NOT NULL,
	author         TEXT NOT NULL DEFAULT '',
	genre          TEXT NOT NULL DEFAULT '',
	price          DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
	invoice_id  BIGSERIAL PRIMARY KEY,
	sale_date   TIMESTAMPTZ NOT NULL DEFAULT now(),
	book_id     BIGINT NOT NULL,
	book_title  TEXT NOT NULL,
	quantity    INTEGER NOT NULL CHECK (quantity > 0),
	total_price DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS reorder_requests (
	request_id BIGSERIAL PRIMARY KEY,
	book_id    BIGINT NOT NULL,
	book_title TEXT NOT NULL,
	quantity   INTEGER NOT NULL CHECK (quantity > 0),
	supplier   TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'Pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the schema if it does not exist yet
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := db.Conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}
	log.Println("✅ Database schema ready")
	return nil
}

func (db *PostgresDB) Close() error {
	return db.Conn.Close()
}

// querier is satisfied by both *sql.DB and *sql.Tx so repositories can
// run inside or outside a transaction transparently.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type pgTxKey struct{}

func txFrom(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(pgTxKey{}).(*sql.Tx)
	return tx
}

func (db *PostgresDB) runner(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return db.Conn
}

// WithTransaction runs fn inside one database transaction. The *sql.Tx
// travels in the context; repository calls under the same ctx join it.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", store.ErrPersistence, err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, pgTxKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", store.ErrPersistence, err)
	}
	return nil
}

var _ store.TxManager = (*PostgresDB)(nil)
