package repository

import "errors"

// Coarse repository errors; details are logged at the call site.
var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToUpdate = errors.New("failed to update record")
	ErrFailedToList   = errors.New("failed to list records")
)
