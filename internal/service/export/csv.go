package export

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"

	"github.com/nkiryanov/orderprocessor/internal/logger"
)

// CSVSink creates exports as <dir>/<name>.csv
type CSVSink struct {
	dir    string
	logger logger.Logger
}

func NewCSVSink(dir string, l logger.Logger) *CSVSink {
	return &CSVSink{dir: dir, logger: l}
}

func (s *CSVSink) Open(_ context.Context, name string) (RowWriter, error) {
	path := filepath.Join(s.dir, name+".csv")

	// Exclusive create: an export is never overwritten
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}

	s.logger.Debug("Export opened", "path", path)
	return &csvWriter{name: name, file: f, w: csv.NewWriter(f)}, nil
}

type csvWriter struct {
	name string
	file *os.File
	w    *csv.Writer
}

func (w *csvWriter) WriteRow(fields []string) error {
	if err := w.w.Write(fields); err != nil {
		return writeError(w.name, err)
	}
	return nil
}

func (w *csvWriter) Close() error {
	w.w.Flush()
	err := errors.Join(w.w.Error(), w.file.Close())
	if err != nil {
		return writeError(w.name, err)
	}
	return nil
}
