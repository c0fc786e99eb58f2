package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"readinglog/internal/domain"
)

// CatalogService owns the reading-log logic: deriving the fields of a new
// book and answering catalog queries. It holds no state of its own; every
// call works on a fresh snapshot fetched from the store.
type CatalogService struct {
	reader   BookReader
	writer   BookWriter
	notifier Notifier
	clock    Clock
	logger   *slog.Logger
}

func NewCatalogService(
	reader BookReader,
	writer BookWriter,
	notifier Notifier,
	clock Clock,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		reader:   reader,
		writer:   writer,
		notifier: notifier,
		clock:    clock,
		logger:   logger.With("component", "catalog"),
	}
}

// CreateBook derives the id, finish date, read year and reading time for a
// new book, persists it and announces it. The id is max(existing)+1 over the
// snapshot; two racing ingestions can compute the same id, and the store's
// insert semantics decide the outcome.
func (s *CatalogService) CreateBook(ctx context.Context, candidate domain.BookCandidate) (*domain.Book, error) {
	existing, err := s.reader.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	book := deriveBook(candidate, existing, s.clock.Now(), s.logger)

	s.logger.Info("creating book",
		"id", book.ID,
		"title", book.Title,
		"author", book.Author,
		"reading_time_days", book.ReadingTimeInDays,
	)

	if err := s.writer.Insert(ctx, &book); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, &book); err != nil {
			s.logger.Warn("book notification failed", "id", book.ID, "error", err)
		}
	}

	return &book, nil
}

// GetBookByID returns the record with the given id, or domain.ErrNotFound.
func (s *CatalogService) GetBookByID(ctx context.Context, id int) (*domain.Book, error) {
	return s.reader.FetchByID(ctx, id)
}

// ListBooks returns the whole catalog sorted ascending by id.
func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.reader.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	sortByID(books)
	return books, nil
}

// SearchByAuthor returns books whose author contains the given term,
// case-insensitively, sorted by title (also case-insensitively). The term
// is required.
func (s *CatalogService) SearchByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, domain.NewValidationError("author", "parameter is required")
	}

	books, err := s.reader.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	predicate := domain.Contains(domain.FieldAuthor, author)
	matched := filterBooks(books, []domain.Predicate{predicate})

	sort.SliceStable(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Title) < strings.ToLower(matched[j].Title)
	})

	return matched, nil
}

// SearchByReadYear returns books finished in the given year, sorted
// ascending by id. The term must be a valid integer.
func (s *CatalogService) SearchByReadYear(ctx context.Context, yearTerm string) ([]domain.Book, error) {
	year, err := parseYear("year", yearTerm)
	if err != nil {
		return nil, err
	}

	books, err := s.reader.FetchFiltered(ctx, []domain.Predicate{
		domain.Exact(domain.FieldReadYear, year),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	sortByID(books)
	return books, nil
}

// Search answers the combined multi-field query. Exact terms are handed to
// the store's own filtering; substring terms are applied to the fetched
// records. All supplied terms must match; blank terms are ignored. Results
// are sorted ascending by id so identical data yields identical output.
func (s *CatalogService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Book, error) {
	exact, contains, err := buildPredicates(criteria)
	if err != nil {
		return nil, err
	}

	var books []domain.Book
	if len(exact) > 0 {
		books, err = s.reader.FetchFiltered(ctx, exact)
	} else {
		books, err = s.reader.FetchAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	matched := filterBooks(books, contains)
	sortByID(matched)
	return matched, nil
}

// CountBooks returns the size of the catalog.
func (s *CatalogService) CountBooks(ctx context.Context) (int, error) {
	books, err := s.reader.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch catalog: %w", err)
	}
	return len(books), nil
}

// CountByReadYear returns how many books were finished in the given year,
// with the same term validation as SearchByReadYear.
func (s *CatalogService) CountByReadYear(ctx context.Context, yearTerm string) (int, error) {
	books, err := s.SearchByReadYear(ctx, yearTerm)
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

func sortByID(books []domain.Book) {
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
}

func filterBooks(books []domain.Book, predicates []domain.Predicate) []domain.Book {
	matched := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if domain.MatchesAll(b, predicates) {
			matched = append(matched, b)
		}
	}
	return matched
}
