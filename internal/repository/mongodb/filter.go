package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"blog-dashboard/internal/repository"
)

// blogFilterDoc renders f as a MongoDB query document.
func blogFilterDoc(f repository.BlogFilter) (bson.M, error) {
	doc := bson.M{}
	if f.ID != "" {
		oid, err := objectID(f.ID)
		if err != nil {
			return nil, err
		}
		doc["_id"] = oid
	}
	if f.UserID != "" {
		oid, err := objectID(f.UserID)
		if err != nil {
			return nil, err
		}
		doc["user"] = oid
	}
	if f.CategoryID != "" {
		oid, err := objectID(f.CategoryID)
		if err != nil {
			return nil, err
		}
		doc["category"] = oid
	}

	if len(f.AnyOf) > 0 {
		or := make(bson.A, 0, len(f.AnyOf))
		for _, group := range f.AnyOf {
			clause := bson.M{}
			for _, m := range group {
				if m.Field != repository.FieldTitle && m.Field != repository.FieldDescription {
					return nil, fmt.Errorf("unsupported match field %q", m.Field)
				}
				clause[m.Field] = bson.M{"$regex": m.Pattern, "$options": "i"}
			}
			or = append(or, clause)
		}
		doc["$or"] = or
	}

	if !f.CreatedAt.IsZero() {
		rng := bson.M{}
		if f.CreatedAt.From != nil {
			rng["$gte"] = *f.CreatedAt.From
		}
		if f.CreatedAt.To != nil {
			rng["$lte"] = *f.CreatedAt.To
		}
		doc["createdAt"] = rng
	}
	return doc, nil
}
