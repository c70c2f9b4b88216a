package repository

import (
	"regexp"
	"sync"
	"time"

	"blog-dashboard/internal/domain"
)

// Blog document fields a FieldMatch may target.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// FieldMatch requires Field to match Pattern, case-insensitively.
type FieldMatch struct {
	Field   string
	Pattern string
}

// MatchGroup is a conjunction of field matches.
type MatchGroup []FieldMatch

// TimeRange bounds a timestamp inclusively. Nil bounds are open.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set.
func (r TimeRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t lies within the range.
func (r TimeRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// BlogFilter is the declarative query passed to BlogRepository. Empty string fields do not
// constrain. When AnyOf is non-empty at least one group must match.
type BlogFilter struct {
	ID         string
	UserID     string
	CategoryID string
	AnyOf      []MatchGroup
	CreatedAt  TimeRange
}

// Matches evaluates the filter in memory against b.
func (f BlogFilter) Matches(b domain.Blog) bool {
	if f.ID != "" && f.ID != b.ID {
		return false
	}
	if f.UserID != "" && f.UserID != b.UserID {
		return false
	}
	if f.CategoryID != "" && f.CategoryID != b.CategoryID {
		return false
	}
	if !f.CreatedAt.Contains(b.CreatedAt) {
		return false
	}
	if len(f.AnyOf) == 0 {
		return true
	}
	for _, group := range f.AnyOf {
		if group.matches(b.Title, b.Description) {
			return true
		}
	}
	return false
}

func (g MatchGroup) matches(title, description string) bool {
	for _, m := range g {
		var value string
		switch m.Field {
		case FieldTitle:
			value = title
		case FieldDescription:
			value = description
		default:
			return false
		}
		re, err := CompilePattern(m.Pattern)
		if err != nil || !re.MatchString(value) {
			return false
		}
	}
	return true
}

var patternCache sync.Map

// CompilePattern compiles pattern as a case-insensitive regular expression, caching the result.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}
