package apperrors

import (
	"errors"
)

var (
	// Returned by order processing when orders could not be fetched at all
	ErrOrdersUnavailable = errors.New("orders unavailable")

	ErrPersistence   = errors.New("persistence error")
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderInvalid  = errors.New("order violates storage constraints")

	ErrClassifier = errors.New("classifier error")

	ErrExportOpen  = errors.New("export open failed")
	ErrExportWrite = errors.New("export write failed")
)
