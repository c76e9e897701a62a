package service

import (
	"errors"

	"github.com/noah-isme/edumanage-api/internal/repository"
	appErrors "github.com/noah-isme/edumanage-api/pkg/errors"
)

// storeError maps a store failure onto the API error taxonomy. Typed errors
// raised inside mutation callbacks pass through unchanged.
func storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, repository.ErrVersionConflict) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "concurrent update, please retry")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
