package orderprocessor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nkiryanov/orderprocessor/internal/models"
	"github.com/nkiryanov/orderprocessor/internal/service/export"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderStore) UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) error {
	args := m.Called(ctx, orderID, status, priority)
	return args.Error(0)
}

type MockClassifier struct{ mock.Mock }

func (m *MockClassifier) Classify(ctx context.Context, orderID int64) (models.Classification, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(models.Classification), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) ObserveOrder(handler string, status string) {
	m.Called(handler, status)
}

func (m *MockRecorder) ObservePass(duration time.Duration, err error) {
	m.Called(duration, err)
}

// In memory export sink, keeps rows of every export by name
type memorySink struct {
	mu sync.Mutex

	openErr  error
	writeErr error
	closeErr error

	exports map[string][][]string
	closed  map[string]bool
}

func newMemorySink() *memorySink {
	return &memorySink{
		exports: make(map[string][][]string),
		closed:  make(map[string]bool),
	}
}

func (s *memorySink) Open(_ context.Context, name string) (export.RowWriter, error) {
	if s.openErr != nil {
		return nil, &export.OpenError{Name: name, Err: s.openErr}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exports[name]; ok {
		return nil, &export.OpenError{Name: name, Err: errors.New("already exists")}
	}
	s.exports[name] = [][]string{}

	return &memoryWriter{sink: s, name: name}, nil
}

func (s *memorySink) rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all [][]string
	for _, rows := range s.exports {
		all = append(all, rows...)
	}
	return all
}

type memoryWriter struct {
	sink *memorySink
	name string
}

func (w *memoryWriter) WriteRow(fields []string) error {
	if w.sink.writeErr != nil {
		return w.sink.writeErr
	}

	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	w.sink.exports[w.name] = append(w.sink.exports[w.name], fields)
	return nil
}

func (w *memoryWriter) Close() error {
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	w.sink.closed[w.name] = true
	return w.sink.closeErr
}
