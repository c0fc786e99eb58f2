package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicateMatches(t *testing.T) {
	book := Book{
		ID:              1,
		Title:           "The Hobbit",
		Author:          "J.R.R. Tolkien",
		PublicationYear: 1937,
		Language:        "English",
		Format:          "hardcover",
		ReadYear:        2023,
	}

	tests := []struct {
		name      string
		predicate Predicate
		want      bool
	}{
		{"contains author lowercase", Contains(FieldAuthor, "tolkien"), true},
		{"contains author uppercase", Contains(FieldAuthor, "TOLKIEN"), true},
		{"contains author initials", Contains(FieldAuthor, "J.R.R."), true},
		{"contains author miss", Contains(FieldAuthor, "orwell"), false},
		{"contains title middle", Contains(FieldTitle, "hobb"), true},
		{"contains language", Contains(FieldLanguage, "eng"), true},
		{"exact publication year", Exact(FieldPublicationYear, "1937"), true},
		{"exact publication year miss", Exact(FieldPublicationYear, "1938"), false},
		{"exact read year", Exact(FieldReadYear, "2023"), true},
		{"exact format", Exact(FieldFormat, "hardcover"), true},
		{"exact format is case sensitive", Exact(FieldFormat, "Hardcover"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate.Matches(book))
		})
	}
}

func TestMatchesAll(t *testing.T) {
	book := Book{Author: "J.R.R. Tolkien", PublicationYear: 1954}

	assert.True(t, MatchesAll(book, nil))
	assert.True(t, MatchesAll(book, []Predicate{
		Exact(FieldPublicationYear, "1954"),
		Contains(FieldAuthor, "tolkien"),
	}))
	assert.False(t, MatchesAll(book, []Predicate{
		Exact(FieldPublicationYear, "1954"),
		Contains(FieldAuthor, "orwell"),
	}))
}
