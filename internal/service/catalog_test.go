package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"readinglog/internal/domain"
	"readinglog/internal/service/mocks"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	reader   *mocks.MockBookReader
	writer   *mocks.MockBookWriter
	notifier *mocks.MockNotifier
	clock    *mocks.MockClock

	service *CatalogService
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.reader = mocks.NewMockBookReader(s.ctrl)
	s.writer = mocks.NewMockBookWriter(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.clock = mocks.NewMockClock(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewCatalogService(s.reader, s.writer, s.notifier, s.clock, logger)
}

func (s *CatalogServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) date(value string) time.Time {
	parsed, err := time.Parse(domain.DateLayout, value)
	s.Require().NoError(err)
	return parsed
}

func (s *CatalogServiceTestSuite) TestCreateBook_FirstBookEver() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return([]domain.Book{}, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-05-01"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{
		Title:           "Dune",
		Author:          "Herbert",
		PublicationYear: 1965,
		Language:        "English",
		Format:          "paperback",
	})

	s.NoError(err)
	s.Equal(1, book.ID)
	s.Equal(0, book.ReadingTimeInDays)
	s.Equal("2023-05-01", book.FinishDate)
	s.Equal(2023, book.ReadYear)
	s.Equal("Dune", book.Title)
}

func (s *CatalogServiceTestSuite) TestCreateBook_DerivesNextIDAndReadingTime() {
	ctx := context.Background()

	existing := []domain.Book{
		{ID: 1, Author: "Orwell", FinishDate: "2023-01-10", ReadYear: 2023},
	}

	s.reader.EXPECT().FetchAll(ctx).Return(existing, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-01-20"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Dune", Author: "Herbert"})

	s.NoError(err)
	s.Equal(2, book.ID)
	s.Equal(10, book.ReadingTimeInDays)
	s.Equal(2023, book.ReadYear)
}

func (s *CatalogServiceTestSuite) TestCreateBook_PreviousIsHighestID() {
	ctx := context.Background()

	// Records are not ordered and ids have gaps; only the highest id counts
	// as the previous book, even when another record finished later.
	existing := []domain.Book{
		{ID: 3, FinishDate: "2023-03-01"},
		{ID: 7, FinishDate: "2023-02-01"},
		{ID: 5, FinishDate: "2023-04-01"},
	}

	s.reader.EXPECT().FetchAll(ctx).Return(existing, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-02-11"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Emma"})

	s.NoError(err)
	s.Equal(8, book.ID)
	s.Equal(10, book.ReadingTimeInDays)
}

func (s *CatalogServiceTestSuite) TestCreateBook_UnparseablePreviousDate() {
	ctx := context.Background()

	existing := []domain.Book{
		{ID: 4, FinishDate: "not-a-date"},
	}

	s.reader.EXPECT().FetchAll(ctx).Return(existing, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-06-15"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Emma"})

	s.NoError(err)
	s.Equal(5, book.ID)
	s.Equal(0, book.ReadingTimeInDays)
}

func (s *CatalogServiceTestSuite) TestCreateBook_NegativeReadingTimeIsKept() {
	ctx := context.Background()

	existing := []domain.Book{
		{ID: 1, FinishDate: "2023-07-10"},
	}

	s.reader.EXPECT().FetchAll(ctx).Return(existing, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-07-05"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Emma"})

	s.NoError(err)
	s.Equal(-5, book.ReadingTimeInDays)
}

func (s *CatalogServiceTestSuite) TestCreateBook_NotifierFailureDoesNotFailCreate() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return([]domain.Book{}, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-05-01"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("broker down"))

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Dune"})

	s.NoError(err)
	s.Equal(1, book.ID)
}

func (s *CatalogServiceTestSuite) TestCreateBook_FetchFailure() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return(nil, errors.New("connection refused"))

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Dune"})

	s.Error(err)
	s.Nil(book)
}

func (s *CatalogServiceTestSuite) TestCreateBook_InsertFailureSkipsNotification() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return([]domain.Book{}, nil)
	s.clock.EXPECT().Now().Return(s.date("2023-05-01"))
	s.writer.EXPECT().Insert(ctx, gomock.Any()).Return(errors.New("duplicate key"))

	book, err := s.service.CreateBook(ctx, domain.BookCandidate{Title: "Dune"})

	s.Error(err)
	s.Nil(book)
}

func (s *CatalogServiceTestSuite) TestGetBookByID() {
	ctx := context.Background()

	s.reader.EXPECT().FetchByID(ctx, 7).Return(&domain.Book{ID: 7, Title: "Emma"}, nil)

	book, err := s.service.GetBookByID(ctx, 7)

	s.NoError(err)
	s.Equal("Emma", book.Title)
}

func (s *CatalogServiceTestSuite) TestGetBookByID_NotFound() {
	ctx := context.Background()

	s.reader.EXPECT().FetchByID(ctx, 99).Return(nil, domain.ErrNotFound)

	book, err := s.service.GetBookByID(ctx, 99)

	s.ErrorIs(err, domain.ErrNotFound)
	s.Nil(book)
}

func (s *CatalogServiceTestSuite) TestListBooks_SortedByID() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return([]domain.Book{
		{ID: 3}, {ID: 1}, {ID: 2},
	}, nil)

	books, err := s.service.ListBooks(ctx)

	s.NoError(err)
	s.Require().Len(books, 3)
	s.Equal(1, books[0].ID)
	s.Equal(2, books[1].ID)
	s.Equal(3, books[2].ID)
}

func (s *CatalogServiceTestSuite) TestSearchByAuthor_CaseInsensitiveSubstring() {
	ctx := context.Background()

	catalog := []domain.Book{
		{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien"},
		{ID: 2, Title: "1984", Author: "George Orwell"},
		{ID: 3, Title: "the fellowship of the ring", Author: "J.R.R. Tolkien"},
	}

	for _, term := range []string{"tolkien", "TOLKIEN", "J.R.R."} {
		s.reader.EXPECT().FetchAll(ctx).Return(catalog, nil)

		books, err := s.service.SearchByAuthor(ctx, term)

		s.NoError(err)
		s.Require().Len(books, 2, "term %q", term)
		// Sorted by title, case-insensitively.
		s.Equal(3, books[0].ID)
		s.Equal(1, books[1].ID)
	}
}

func (s *CatalogServiceTestSuite) TestSearchByAuthor_MissingTerm() {
	books, err := s.service.SearchByAuthor(context.Background(), "   ")

	s.Error(err)
	s.True(domain.IsValidation(err))
	s.Nil(books)
}

func (s *CatalogServiceTestSuite) TestSearchByReadYear() {
	ctx := context.Background()

	s.reader.EXPECT().
		FetchFiltered(ctx, []domain.Predicate{domain.Exact(domain.FieldReadYear, "2023")}).
		Return([]domain.Book{{ID: 5, ReadYear: 2023}, {ID: 2, ReadYear: 2023}}, nil)

	books, err := s.service.SearchByReadYear(ctx, "2023")

	s.NoError(err)
	s.Require().Len(books, 2)
	s.Equal(2, books[0].ID)
	s.Equal(5, books[1].ID)
}

func (s *CatalogServiceTestSuite) TestSearchByReadYear_InvalidTerm() {
	books, err := s.service.SearchByReadYear(context.Background(), "abc")

	s.Error(err)
	s.True(domain.IsValidation(err))
	s.Nil(books)
}

func (s *CatalogServiceTestSuite) TestSearch_CombinedANDSemantics() {
	ctx := context.Background()

	fromStore := []domain.Book{
		{ID: 1, Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", PublicationYear: 1954},
		{ID: 2, Title: "Lord of the Flies", Author: "William Golding", PublicationYear: 1954},
	}

	s.reader.EXPECT().
		FetchFiltered(ctx, []domain.Predicate{domain.Exact(domain.FieldPublicationYear, "1954")}).
		Return(fromStore, nil)

	books, err := s.service.Search(ctx, domain.SearchCriteria{
		PublicationYear: "1954",
		Author:          "tolkien",
	})

	s.NoError(err)
	s.Require().Len(books, 1)
	s.Equal(1, books[0].ID)
}

func (s *CatalogServiceTestSuite) TestSearch_NoCriteriaReturnsEverything() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return([]domain.Book{{ID: 2}, {ID: 1}}, nil)

	books, err := s.service.Search(ctx, domain.SearchCriteria{})

	s.NoError(err)
	s.Require().Len(books, 2)
	s.Equal(1, books[0].ID)
	s.Equal(2, books[1].ID)
}

func (s *CatalogServiceTestSuite) TestSearch_BlankCriteriaIgnored() {
	ctx := context.Background()

	s.reader.EXPECT().FetchAll(ctx).Return([]domain.Book{{ID: 1, Language: "English"}}, nil)

	books, err := s.service.Search(ctx, domain.SearchCriteria{
		Title:    "  ",
		Language: "eng",
	})

	s.NoError(err)
	s.Len(books, 1)
}

func (s *CatalogServiceTestSuite) TestSearch_InvalidPublicationYear() {
	books, err := s.service.Search(context.Background(), domain.SearchCriteria{
		PublicationYear: "nineteen54",
	})

	s.Error(err)
	s.True(domain.IsValidation(err))
	s.Nil(books)
}

func (s *CatalogServiceTestSuite) TestCountBooks_MatchesListLength() {
	ctx := context.Background()

	catalog := []domain.Book{{ID: 1}, {ID: 2}, {ID: 3}}

	s.reader.EXPECT().FetchAll(ctx).Return(catalog, nil).Times(2)

	count, err := s.service.CountBooks(ctx)
	s.NoError(err)

	books, err := s.service.ListBooks(ctx)
	s.NoError(err)

	s.Equal(len(books), count)
}

func (s *CatalogServiceTestSuite) TestCountByReadYear() {
	ctx := context.Background()

	s.reader.EXPECT().
		FetchFiltered(ctx, []domain.Predicate{domain.Exact(domain.FieldReadYear, "2024")}).
		Return([]domain.Book{{ID: 1, ReadYear: 2024}}, nil)

	count, err := s.service.CountByReadYear(ctx, "2024")

	s.NoError(err)
	s.Equal(1, count)
}

func (s *CatalogServiceTestSuite) TestCountByReadYear_InvalidTerm() {
	count, err := s.service.CountByReadYear(context.Background(), "20x4")

	s.Error(err)
	s.True(domain.IsValidation(err))
	s.Equal(0, count)
}
