package domain

import (
	"strconv"
	"strings"
)

// Field names a searchable book attribute.
type Field string

const (
	FieldTitle           Field = "title"
	FieldAuthor          Field = "author"
	FieldPublicationYear Field = "publicationYear"
	FieldReadYear        Field = "readYear"
	FieldLanguage        Field = "language"
	FieldFormat          Field = "format"
)

// MatchKind distinguishes exact-equality predicates, which the store may
// evaluate during its scan, from substring predicates, which are always
// applied in memory after the fetch.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchContains
)

// Predicate is a single filter term. Exact and contains predicates must
// yield identical results whether evaluated by the store or in memory.
type Predicate struct {
	Field Field
	Kind  MatchKind
	Value string
}

func Exact(field Field, value string) Predicate {
	return Predicate{Field: field, Kind: MatchExact, Value: value}
}

func Contains(field Field, value string) Predicate {
	return Predicate{Field: field, Kind: MatchContains, Value: value}
}

// Matches evaluates the predicate against a record in memory.
func (p Predicate) Matches(b Book) bool {
	value := fieldValue(b, p.Field)
	switch p.Kind {
	case MatchContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(p.Value))
	default:
		return value == p.Value
	}
}

// MatchesAll reports whether every predicate matches the record.
func MatchesAll(b Book, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p.Matches(b) {
			return false
		}
	}
	return true
}

func fieldValue(b Book, field Field) string {
	switch field {
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldPublicationYear:
		return strconv.Itoa(b.PublicationYear)
	case FieldReadYear:
		return strconv.Itoa(b.ReadYear)
	case FieldLanguage:
		return b.Language
	case FieldFormat:
		return b.Format
	}
	return ""
}
