package domain

import "errors"

// Domain errors.
var (
	ErrKeyNotFound    = errors.New("key not found in document")
	ErrNotAnObject    = errors.New("document is not a JSON object")
	ErrInvalidTable   = errors.New("invalid translation table")
	ErrUnknownTable   = errors.New("unknown built-in translation table")
	ErrUnknownPatch   = errors.New("unknown built-in SQL patch")
	ErrEmptyPatch     = errors.New("SQL patch is empty")
	ErrNoEndpoint     = errors.New("no SQL endpoint accepted the statement")
	ErrUnexpectedCode = errors.New("unexpected HTTP status")
)
