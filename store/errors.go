package store

import (
	"errors"

	"recipebox/apperr"
)

// AppError maps adapter errors onto API errors. A missing document is
// reported with the notFound message; other failures use failure.
func AppError(err error, notFound, failure string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, ErrInvalidID):
		return apperr.Validation(failure, err.Error())
	default:
		return apperr.StoreFailure(failure, err)
	}
}
