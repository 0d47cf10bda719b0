package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/nkiryanov/orderprocessor/internal/logger"
)

const xlsxSheet = "Sheet1"

// XLSXSink creates exports as <dir>/<name>.xlsx
// Rows are kept in the workbook and the file is saved on Close
type XLSXSink struct {
	dir    string
	logger logger.Logger
}

func NewXLSXSink(dir string, l logger.Logger) *XLSXSink {
	return &XLSXSink{dir: dir, logger: l}
}

func (s *XLSXSink) Open(_ context.Context, name string) (RowWriter, error) {
	path := filepath.Join(s.dir, name+".xlsx")

	// Check the place is usable now and not on Close
	if _, err := os.Stat(s.dir); err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}
	if _, err := os.Stat(path); err == nil {
		return nil, &OpenError{Name: name, Err: os.ErrExist}
	}

	s.logger.Debug("Export opened", "path", path)
	return &xlsxWriter{name: name, path: path, f: excelize.NewFile()}, nil
}

type xlsxWriter struct {
	name string
	path string
	f    *excelize.File
	row  int
}

func (w *xlsxWriter) WriteRow(fields []string) error {
	w.row++

	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return writeError(w.name, err)
	}

	values := make([]any, len(fields))
	for i, field := range fields {
		values[i] = field
	}

	if err := w.f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return writeError(w.name, err)
	}
	return nil
}

func (w *xlsxWriter) Close() error {
	err := errors.Join(w.f.SaveAs(w.path), w.f.Close())
	if err != nil {
		return writeError(w.name, err)
	}
	return nil
}
