package sqlite

import (
	"fmt"
	"strings"

	"blog-dashboard/internal/repository"
)

var blogMatchColumns = map[string]string{
	repository.FieldTitle:       "title",
	repository.FieldDescription: "description",
}

// blogWhere renders f as a WHERE clause body with positional arguments.
func blogWhere(f repository.BlogFilter) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	if f.ID != "" {
		clauses = append(clauses, "id = ?")
		args = append(args, f.ID)
	}
	if f.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.CategoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, f.CategoryID)
	}

	if len(f.AnyOf) > 0 {
		groups := make([]string, 0, len(f.AnyOf))
		for _, group := range f.AnyOf {
			matches := make([]string, 0, len(group))
			for _, m := range group {
				column, ok := blogMatchColumns[m.Field]
				if !ok {
					return "", nil, fmt.Errorf("unsupported match field %q", m.Field)
				}
				matches = append(matches, fmt.Sprintf("regexp(?, %s)", column))
				args = append(args, m.Pattern)
			}
			groups = append(groups, "("+strings.Join(matches, " AND ")+")")
		}
		clauses = append(clauses, "("+strings.Join(groups, " OR ")+")")
	}

	if f.CreatedAt.From != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, toMillis(*f.CreatedAt.From))
	}
	if f.CreatedAt.To != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, toMillis(*f.CreatedAt.To))
	}

	if len(clauses) == 0 {
		return "1 = 1", nil, nil
	}
	return strings.Join(clauses, " AND "), args, nil
}
