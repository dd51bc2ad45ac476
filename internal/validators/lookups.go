package validators

import (
	"context"
	"fmt"

	"etalase/internal/apperror"
	"etalase/internal/models"

	"github.com/google/uuid"
)

// Exister reports whether a record with id is stored.
type Exister interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// SubCategoryFinder loads subcategories for reference checks.
type SubCategoryFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.SubCategory, error)
}

// ProductFinder loads the stored product an update is compared against.
type ProductFinder interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// EmailChecker reports whether an account already uses an email.
type EmailChecker interface {
	EmailInUse(ctx context.Context, email string) (bool, error)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// reference checks that the id returned by get points to a stored record.
// Empty or malformed ids are left to the struct tags.
func reference[T any](store Exister, field, format string, get func(*T) string) Resolver[T] {
	return func(ctx context.Context, in *T) (Rule[T], error) {
		id := get(in)
		if id == "" || !validID(id) {
			return nil, nil
		}
		ok, err := store.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(*T) []apperror.FieldError {
			if ok {
				return nil
			}
			return []apperror.FieldError{FieldErr(field, id, fmt.Sprintf(format, id))}
		}, nil
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
