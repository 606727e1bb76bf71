package api

import (
	"errors"
	"fmt"

	"github.com/drillmeet/scoresheet/internal/adapters/repository"
	"github.com/drillmeet/scoresheet/internal/app"
	"github.com/drillmeet/scoresheet/internal/domain/field"
)

// Sentinel kinds for HTTP-layer errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")
)

// NewKind creates an error of the given kind for an operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind wraps an underlying error with an operation and kind.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrTemplateNotFound) ||
		errors.Is(err, repository.ErrEventNotFound)
}

func isValidation(err error) bool {
	return errors.Is(err, field.ErrInvalidField) ||
		errors.Is(err, field.ErrBadCriteria) ||
		errors.Is(err, ErrBadRequest)
}

func isConflict(err error) bool {
	return errors.Is(err, repository.ErrDuplicateEvent)
}

func isUnavailable(err error) bool {
	return errors.Is(err, app.ErrGeneratorDisabled)
}
