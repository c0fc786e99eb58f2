package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"readinglog/internal/domain"
)

const bookColumns = `id, title, author, publication_year, language, format, finish_date, read_year, reading_time_in_days`

// BookStore persists book records in Postgres. It implements the catalog's
// reader and writer interfaces.
type BookStore struct {
	db *sqlx.DB
}

func NewBookStore(db *sqlx.DB) *BookStore {
	return &BookStore{db: db}
}

func (s *BookStore) FetchAll(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`

	books := []domain.Book{}
	if err := s.db.SelectContext(ctx, &books, query); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookStore) FetchByID(ctx context.Context, id int) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var book domain.Book
	err := s.db.GetContext(ctx, &book, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FetchFiltered evaluates exact-match predicates store-side. Substring
// predicates are rejected; they belong to the in-memory filter pass.
func (s *BookStore) FetchFiltered(ctx context.Context, exact []domain.Predicate) ([]domain.Book, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + bookColumns + ` FROM books`)

	args := make([]interface{}, 0, len(exact))
	for i, p := range exact {
		if p.Kind != domain.MatchExact {
			return nil, fmt.Errorf("predicate on %s is not exact-match", p.Field)
		}

		column, value, err := exactColumn(p)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(column)
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(i + 1))
		args = append(args, value)
	}

	books := []domain.Book{}
	if err := s.db.SelectContext(ctx, &books, sb.String(), args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookStore) Insert(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, publication_year, language, format,
			finish_date, read_year, reading_time_in_days
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	_, err := s.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Language,
		book.Format,
		book.FinishDate,
		book.ReadYear,
		book.ReadingTimeInDays,
	)
	return err
}

func exactColumn(p domain.Predicate) (string, interface{}, error) {
	switch p.Field {
	case domain.FieldPublicationYear:
		year, err := strconv.Atoi(p.Value)
		if err != nil {
			return "", nil, fmt.Errorf("publication year predicate %q: %w", p.Value, err)
		}
		return "publication_year", year, nil
	case domain.FieldReadYear:
		year, err := strconv.Atoi(p.Value)
		if err != nil {
			return "", nil, fmt.Errorf("read year predicate %q: %w", p.Value, err)
		}
		return "read_year", year, nil
	case domain.FieldFormat:
		return "format", p.Value, nil
	default:
		return "", nil, fmt.Errorf("field %s cannot be filtered store-side", p.Field)
	}
}
