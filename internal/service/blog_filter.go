package service

import (
	"regexp"
	"strings"
	"time"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

// BlogQuery carries the raw search parameters of a blog listing.
type BlogQuery struct {
	UserID         string
	CategoryID     string
	SearchKeywords string
	StartDate      string
	EndDate        string
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// BuildBlogFilter assembles the store filter for a blog listing. Identifiers are expected to be
// validated already.
//
// A keyword search matches the title, or the title together with the description. The second
// branch never widens the first, so in practice the title has to match. Keywords are matched
// literally, whitespace included.
func BuildBlogFilter(q BlogQuery) (repository.BlogFilter, error) {
	filter := repository.BlogFilter{
		UserID:     q.UserID,
		CategoryID: q.CategoryID,
	}

	if q.SearchKeywords != "" {
		pattern := regexp.QuoteMeta(q.SearchKeywords)
		filter.AnyOf = []repository.MatchGroup{
			{{Field: repository.FieldTitle, Pattern: pattern}},
			{
				{Field: repository.FieldTitle, Pattern: pattern},
				{Field: repository.FieldDescription, Pattern: pattern},
			},
		}
	}

	if q.StartDate != "" {
		start, err := parseDate(q.StartDate)
		if err != nil {
			return repository.BlogFilter{}, domain.InvalidArgument("Invalid startDate")
		}
		filter.CreatedAt.From = &start
	}
	if q.EndDate != "" {
		end, err := parseDate(q.EndDate)
		if err != nil {
			return repository.BlogFilter{}, domain.InvalidArgument("Invalid endDate")
		}
		filter.CreatedAt.To = &end
	}
	return filter, nil
}

// parseDate accepts ISO dates and date-times. Values without a zone are UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
