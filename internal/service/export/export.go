// Package export writes order exports to files
package export

import (
	"fmt"

	"github.com/nkiryanov/orderprocessor/internal/apperrors"
)

// RowWriter writes rows of one export
// Writer must be closed even if some write failed
type RowWriter interface {
	WriteRow(fields []string) error
	Close() error
}

// OpenError returned when export can't be created
type OpenError struct {
	Name string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open export %q: %v", e.Name, e.Err)
}

func (e *OpenError) Unwrap() []error {
	return []error{apperrors.ErrExportOpen, e.Err}
}

func writeError(name string, err error) error {
	return fmt.Errorf("%w: export %q: %w", apperrors.ErrExportWrite, name, err)
}
