package orderprocessor

import (
	"context"
	"time"

	"github.com/nkiryanov/orderprocessor/internal/models"
	"github.com/nkiryanov/orderprocessor/internal/service/export"
)

// OrderStore is the long term storage of orders
type OrderStore interface {
	// Orders of the user in a stable order
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)

	// Persist processing outcome of the order
	// Any error is treated as a persistence failure of this order only
	UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) error
}

// Classifier is the remote service that scores type B orders
type Classifier interface {
	Classify(ctx context.Context, orderID int64) (models.Classification, error)
}

// ExportSink opens writers for type A order exports
// Open must return an error (and no writer) if the export can't be created
type ExportSink interface {
	Open(ctx context.Context, name string) (export.RowWriter, error)
}

// Recorder observes processing outcomes, e.g. to expose metrics
type Recorder interface {
	ObserveOrder(handler string, status string)
	ObservePass(duration time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveOrder(string, string)      {}
func (noopRecorder) ObservePass(time.Duration, error) {}
