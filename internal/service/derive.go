package service

import (
	"log/slog"
	"time"

	"readinglog/internal/domain"
)

// deriveBook assembles a full record from the caller-supplied fields, the
// current store snapshot and the current instant. It is a pure function of
// its inputs and never fails: bad data in the previous record degrades the
// reading time to 0.
func deriveBook(candidate domain.BookCandidate, existing []domain.Book, now time.Time, logger *slog.Logger) domain.Book {
	nextID := 1
	var previous *domain.Book
	for i := range existing {
		if existing[i].ID+1 > nextID {
			nextID = existing[i].ID + 1
		}
		if previous == nil || existing[i].ID > previous.ID {
			previous = &existing[i]
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return domain.Book{
		ID:                nextID,
		Title:             candidate.Title,
		Author:            candidate.Author,
		PublicationYear:   candidate.PublicationYear,
		Language:          candidate.Language,
		Format:            candidate.Format,
		FinishDate:        today.Format(domain.DateLayout),
		ReadYear:          today.Year(),
		ReadingTimeInDays: readingTime(previous, today, logger),
	}
}

// readingTime is the number of days between the previous record's finish
// date and today. The previous record is the one with the highest id,
// regardless of its dates; ingestion order stands in for reading order. The
// result can be negative when the stored date is ahead of the clock.
func readingTime(previous *domain.Book, today time.Time, logger *slog.Logger) int {
	if previous == nil || previous.FinishDate == "" {
		return 0
	}

	lastFinished, err := previous.FinishedOn()
	if err != nil {
		logger.Warn("previous finish date unparseable, reading time defaults to 0",
			"previous_id", previous.ID,
			"finish_date", previous.FinishDate,
		)
		return 0
	}

	return int(today.Sub(lastFinished) / (24 * time.Hour))
}
