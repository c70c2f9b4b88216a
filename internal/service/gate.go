package service

import (
	"context"
	"errors"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

// IDParam names an identifier so validation failures can say which one was bad.
type IDParam struct {
	Name  string
	Value string
}

// validateIDs checks each identifier in order and fails on the first malformed one.
// It returns the values in canonical form.
func validateIDs(params ...IDParam) ([]string, error) {
	ids := make([]string, len(params))
	for i, p := range params {
		if !domain.IsValidID(p.Value) {
			return nil, domain.InvalidArgument("Invalid or missing %s", p.Name)
		}
		ids[i] = domain.NormalizeID(p.Value)
	}
	return ids, nil
}

// gateRequest describes the references an operation depends on.
type gateRequest struct {
	UserID     string
	CategoryID string
	// NeedCategory makes CategoryID required and looked up.
	NeedCategory bool
	// Extra identifiers are validated after user and category, before any lookup.
	Extra []IDParam
}

// existenceGate confirms that referenced users and categories exist before a dependent
// operation proceeds. The check is point-in-time; nothing is locked.
type existenceGate struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
}

// check validates and looks up req, returning it with canonical identifiers.
func (g existenceGate) check(ctx context.Context, req gateRequest) (gateRequest, error) {
	req, err := g.validate(req)
	if err != nil {
		return req, err
	}
	return req, g.lookup(ctx, req)
}

// validate runs the format checks of req without touching the store and returns req with
// every identifier in canonical form.
func (g existenceGate) validate(req gateRequest) (gateRequest, error) {
	params := []IDParam{{Name: "userId", Value: req.UserID}}
	if req.NeedCategory {
		params = append(params, IDParam{Name: "categoryId", Value: req.CategoryID})
	}
	params = append(params, req.Extra...)

	ids, err := validateIDs(params...)
	if err != nil {
		return req, err
	}
	out := gateRequest{UserID: ids[0], NeedCategory: req.NeedCategory}
	ids = ids[1:]
	if req.NeedCategory {
		out.CategoryID = ids[0]
		ids = ids[1:]
	}
	for i, p := range req.Extra {
		out.Extra = append(out.Extra, IDParam{Name: p.Name, Value: ids[i]})
	}
	return out, nil
}

// extra returns the canonical value of the extra identifier called name.
func (r gateRequest) extra(name string) string {
	for _, p := range r.Extra {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// lookup confirms the referenced records exist. req must already be validated.
func (g existenceGate) lookup(ctx context.Context, req gateRequest) error {
	if _, err := g.users.GetByID(ctx, req.UserID); err != nil {
		return storeError(err, "user")
	}
	if req.NeedCategory {
		if _, err := g.categories.GetByID(ctx, req.CategoryID); err != nil {
			return storeError(err, "category")
		}
	}
	return nil
}

// storeError converts a repository error into a workflow error for entity.
func storeError(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound(entity)
	}
	return domain.Unexpected(err)
}
