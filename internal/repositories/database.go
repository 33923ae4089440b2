package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repositories struct {
	DB           *sql.DB
	Author       AuthorRepository
	Category     CategoryRepository
	Book         BookRepository
	Review       ReviewRepository
	Cart         CartRepository
	Wishlist     WishlistRepository
	Order        OrderRepository
	User         UserRepository
	Notification NotificationRepository
	Checkout     Transactor
}

// Open opens a traced postgres pool and checks that it is reachable.
func Open(cfg *config.Database) (*sql.DB, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	return NewRepositories(db), nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:           db,
		Author:       NewAuthorRepo(db),
		Category:     NewCategoryRepo(db),
		Book:         NewBookRepo(db),
		Review:       NewReviewRepo(db),
		Cart:         NewCartRepo(db),
		Wishlist:     NewWishlistRepo(db),
		Order:        NewOrderRepo(db),
		User:         NewUserRepo(db),
		Notification: NewNotificationRepo(db),
		Checkout:     NewTransactor(db),
	}
}

func (p *Repositories) Close() error {
	return p.DB.Close()
}
