package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"readinglog/internal/domain"
)

// CatalogReader is the read-only view of the store the exporter needs.
type CatalogReader interface {
	FetchAll(ctx context.Context) ([]domain.Book, error)
}

// ObjectStore receives finished backup objects.
type ObjectStore interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Clock supplies the timestamp baked into backup object names.
type Clock interface {
	Now() time.Time
}

// Exporter writes the whole catalog, ordered by id, as a
// semicolon-separated file into the object store.
type Exporter struct {
	catalog CatalogReader
	store   ObjectStore
	clock   Clock
	logger  *slog.Logger
}

func NewExporter(catalog CatalogReader, store ObjectStore, clock Clock, logger *slog.Logger) *Exporter {
	return &Exporter{
		catalog: catalog,
		store:   store,
		clock:   clock,
		logger:  logger.With("component", "backup"),
	}
}

var header = []string{
	"id", "title", "author", "publicationYear", "language", "format",
	"finishDate", "readYear", "readingTimeInDays",
}

func (e *Exporter) Export(ctx context.Context) (*domain.BackupStats, error) {
	started := time.Now()

	books, err := e.catalog.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })

	e.logger.Info("starting backup", "books", len(books))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, b := range books {
		record := []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			strconv.Itoa(b.PublicationYear),
			b.Language,
			b.Format,
			b.FinishDate,
			strconv.Itoa(b.ReadYear),
			strconv.Itoa(b.ReadingTimeInDays),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush backup: %w", err)
	}

	name := "backup_scheduled_" + e.clock.Now().Format("2006-01-02_15-04-05") + ".txt"

	if err := e.store.Put(ctx, name, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("store backup: %w", err)
	}

	stats := &domain.BackupStats{
		Books:    len(books),
		Object:   name,
		Bytes:    buf.Len(),
		Duration: time.Since(started),
	}

	e.logger.Info("backup completed",
		"object", stats.Object,
		"books", stats.Books,
		"bytes", stats.Bytes,
		"duration", stats.Duration,
	)

	return stats, nil
}
