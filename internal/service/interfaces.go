package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"readinglog/internal/domain"
)

// BookReader fetches book records from the external store. FetchFiltered is
// a push-down optimization: it accepts exact-match predicates only, and its
// results must be identical to fetching everything and filtering in memory.
type BookReader interface {
	FetchAll(ctx context.Context) ([]domain.Book, error)
	FetchByID(ctx context.Context, id int) (*domain.Book, error)
	FetchFiltered(ctx context.Context, exact []domain.Predicate) ([]domain.Book, error)
}

// BookWriter persists new book records.
type BookWriter interface {
	Insert(ctx context.Context, book *domain.Book) error
}

// Notifier announces created books. Delivery is best-effort; callers never
// fail an ingestion on a publish error.
type Notifier interface {
	Publish(ctx context.Context, book *domain.Book) error
	Close() error
}

// Clock supplies the current instant for date-derived fields.
type Clock interface {
	Now() time.Time
}
