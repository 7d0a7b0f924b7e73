package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository reads and writes the café tables: menu, menuinfo, inventory,
// ordertest and orderitem.
//
// ordertest.orderdate is a wall-clock timestamp without time zone, written in
// the store's local time. Rows read back are pinned to loc.
type Repository struct {
	db     DB
	loc    *time.Location
	logger *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLocation sets the zone order timestamps are stored in. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// New wraps an existing connection.
func New(db DB, logger *zap.Logger, opts ...Option) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{db: db, loc: time.UTC, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// wallClock reinterprets the fields of t as a time in loc. pgx returns
// timestamp columns labelled UTC.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// Connect opens a pool against url and verifies it answers.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}
