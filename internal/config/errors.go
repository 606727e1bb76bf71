package config

import (
	"errors"
	"fmt"
)

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr  = errors.New("addr must not be empty")
	ErrBadDriver  = errors.New("db_driver must be memory, sqlite, or postgres")
	ErrMissingDSN = errors.New("db_dsn is required for sqlite and postgres drivers")
	ErrLoad       = errors.New("config load failed")
)

func wrapLoad(err error) error {
	return fmt.Errorf("%w: %w", ErrLoad, err)
}
