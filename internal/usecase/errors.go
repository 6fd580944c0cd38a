package usecase

import (
	"errors"
	"fmt"

	"github.com/benchboost/benchboost/external/fplapi"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// mapProviderError rewrites upstream client sentinels into the service
// vocabulary so the HTTP layer can surface the originating status code.
func mapProviderError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fplapi.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, fplapi.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, fplapi.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	default:
		return err
	}
}
