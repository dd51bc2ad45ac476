package services

import (
	"errors"
	"fmt"

	"etalase/internal/apperror"
	"etalase/internal/repositories"
)

// translate turns repository sentinels into client facing errors. Anything
// else is returned unchanged and ends up as a 500.
func translate(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return apperror.NotFound(fmt.Sprintf("No %s for this id %s", entity, id))
	case errors.Is(err, repositories.ErrDuplicate):
		return apperror.Conflict("Duplicate field value: name")
	default:
		return err
	}
}
