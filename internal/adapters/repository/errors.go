package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrDuplicateEvent   = errors.New("event id already exists")
	ErrUnknownDriver    = errors.New("unknown database driver")
)
