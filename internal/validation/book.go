// Package validation holds the book input rules shared by the create and
// update handlers. Errors accumulate in check order instead of
// short-circuiting, so one response lists everything wrong with the payload.
package validation

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen = 255
	maxISBNLen  = 13

	minYear = 0
	maxYear = 2100
)

// BookInput is the raw create/update payload. YearPublished and AuthorID stay
// untyped so a string like "abc" reaches the numeric checks and gets the
// proper message rather than a bind failure.
type BookInput struct {
	Title         string  `json:"title"`
	ISBN          string  `json:"isbn"`
	Genre         *string `json:"genre"`
	YearPublished any     `json:"yearpublished"`
	AuthorID      any     `json:"authorid"`
}

// ValidateBook returns the ordered list of validation messages; empty means
// the input is acceptable. With requireAll set (full-replacement update)
// every field must be present and non-empty on top of the per-field rules.
func ValidateBook(in BookInput, requireAll bool) []string {
	var errs []string

	title := strings.TrimSpace(in.Title)
	isbn := strings.TrimSpace(in.ISBN)
	genre := ""
	if in.Genre != nil {
		genre = strings.TrimSpace(*in.Genre)
	}

	if requireAll {
		if title == "" || isbn == "" || genre == "" || in.YearPublished == nil || in.AuthorID == nil {
			errs = append(errs, "All fields must be provided; title, isbn, genre, yearpublished, authorId.")
		}
	}

	if title == "" {
		errs = append(errs, "Title is required.")
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs = append(errs, "Title too long (max 255 chars).")
	}

	if isbn == "" {
		errs = append(errs, "ISBN is required.")
	} else if utf8.RuneCountInString(isbn) > maxISBNLen {
		errs = append(errs, "ISBN too long (max 13 chars).")
	}

	if in.YearPublished != nil {
		year, ok := ParseInt(in.YearPublished)
		if !ok {
			errs = append(errs, "YearPublished must be an integer.")
		} else if year < minYear || year > maxYear {
			errs = append(errs, "YearPublished must be a valid year.")
		}
	}

	if in.AuthorID != nil {
		if _, ok := ParseInt(in.AuthorID); !ok {
			errs = append(errs, "AuthorID must be an integer.")
		}
	}

	return errs
}

// ParseInt coerces the value shapes encoding/json can hand us into an int.
func ParseInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
