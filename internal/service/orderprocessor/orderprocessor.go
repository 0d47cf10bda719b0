package orderprocessor

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/apperrors"
	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

var highPriorityLimit = decimal.NewFromInt(200)

type Service struct {
	store    OrderStore
	factory  *Factory
	recorder Recorder
	logger   logger.Logger
}

// New creates order processing service. Recorder may be nil
func New(store OrderStore, factory *Factory, recorder Recorder, l logger.Logger) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Service{
		store:    store,
		factory:  factory,
		recorder: recorder,
		logger:   l,
	}
}

// ProcessOrders runs one processing pass over all orders of the user
//
// Orders are returned in the order the store gave them, each with status and priority set.
// Failures of a single order end up in its status and never stop the pass.
// If the orders can't be fetched it returns apperrors.ErrOrdersUnavailable and no orders.
func (s *Service) ProcessOrders(ctx context.Context, userID int64) (orders []models.Order, err error) {
	start := time.Now()
	defer func() {
		s.recorder.ObservePass(time.Since(start), err)
	}()

	l := s.logger.With("user_id", userID)

	orders, err = s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		l.Error("Failed to fetch orders", "error", err)
		return nil, apperrors.ErrOrdersUnavailable
	}

	if orders == nil {
		orders = []models.Order{}
	}

	for i := range orders {
		orders[i] = s.processOrder(ctx, userID, orders[i], l)
	}

	l.Info("Orders processed", "count", len(orders), "duration", time.Since(start))
	return orders, nil
}

func (s *Service) processOrder(ctx context.Context, userID int64, order models.Order, l logger.Logger) models.Order {
	handler := s.factory.Create(order)

	order.Status = handler.Process(ctx, userID, order)
	order.Priority = Priority(order.Amount)

	err := s.store.UpdateOrderStatus(ctx, order.ID, order.Status, order.Priority)
	if err != nil {
		l.Warn("Failed to save order status", "order_id", order.ID, "status", order.Status, "error", err)
		order.Status = models.OrderStatusDBError
	}

	l.Debug("Order processed", "order_id", order.ID, "handler", handler.Name(), "status", order.Status, "priority", order.Priority)
	s.recorder.ObserveOrder(handler.Name(), order.Status)

	return order
}

// Priority is high for amounts strictly above 200
func Priority(amount decimal.Decimal) string {
	if amount.GreaterThan(highPriorityLimit) {
		return models.OrderPriorityHigh
	}
	return models.OrderPriorityLow
}
