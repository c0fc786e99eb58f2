package service

import (
	"strconv"
	"strings"

	"readinglog/internal/domain"
)

// buildPredicates splits search criteria into the exact-match set, which the
// store may evaluate itself, and the substring set, which is always applied
// after the fetch. Blank terms produce no predicate. Numeric terms that do
// not parse are a validation failure, surfaced before any store call.
func buildPredicates(criteria domain.SearchCriteria) (exact, contains []domain.Predicate, err error) {
	if term := strings.TrimSpace(criteria.PublicationYear); term != "" {
		year, err := parseYear("year", term)
		if err != nil {
			return nil, nil, err
		}
		exact = append(exact, domain.Exact(domain.FieldPublicationYear, year))
	}
	if term := strings.TrimSpace(criteria.ReadYear); term != "" {
		year, err := parseYear("readYear", term)
		if err != nil {
			return nil, nil, err
		}
		exact = append(exact, domain.Exact(domain.FieldReadYear, year))
	}
	if term := strings.TrimSpace(criteria.Format); term != "" {
		exact = append(exact, domain.Exact(domain.FieldFormat, term))
	}

	if term := strings.TrimSpace(criteria.Title); term != "" {
		contains = append(contains, domain.Contains(domain.FieldTitle, term))
	}
	if term := strings.TrimSpace(criteria.Author); term != "" {
		contains = append(contains, domain.Contains(domain.FieldAuthor, term))
	}
	if term := strings.TrimSpace(criteria.Language); term != "" {
		contains = append(contains, domain.Contains(domain.FieldLanguage, term))
	}

	return exact, contains, nil
}

// parseYear normalizes an integer query term, so "0042" and "42" produce the
// same predicate value.
func parseYear(field, term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", domain.NewValidationError(field, "parameter is required")
	}
	year, err := strconv.Atoi(term)
	if err != nil {
		return "", domain.NewValidationError(field, "must be a valid integer")
	}
	return strconv.Itoa(year), nil
}
