package domain

import "time"

// DateLayout is the ISO calendar-date form used for finish dates, both in
// the store and on the wire.
const DateLayout = "2006-01-02"

// Book is the persisted catalog record. ID, FinishDate, ReadYear and
// ReadingTimeInDays are derived at ingestion and never supplied by callers.
type Book struct {
	ID                int    `db:"id" json:"id"`
	Title             string `db:"title" json:"title"`
	Author            string `db:"author" json:"author"`
	PublicationYear   int    `db:"publication_year" json:"publicationYear"`
	Language          string `db:"language" json:"language"`
	Format            string `db:"format" json:"format"`
	FinishDate        string `db:"finish_date" json:"finishDate"`
	ReadYear          int    `db:"read_year" json:"readYear"`
	ReadingTimeInDays int    `db:"reading_time_in_days" json:"readingTimeInDays"`
}

// FinishedOn parses the record's finish date. Stored dates may predate the
// current format rules, so parse failures are an expected outcome.
func (b Book) FinishedOn() (time.Time, error) {
	return time.Parse(DateLayout, b.FinishDate)
}

// BookCandidate carries the caller-supplied fields of a new book.
type BookCandidate struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publicationYear"`
	Language        string `json:"language"`
	Format          string `json:"format"`
}

// SearchCriteria holds the raw, still-unvalidated terms of a combined
// search. Blank terms do not constrain the result.
type SearchCriteria struct {
	Title           string
	Author          string
	PublicationYear string
	ReadYear        string
	Language        string
	Format          string
}
