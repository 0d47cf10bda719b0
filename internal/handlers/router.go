package handlers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/handlers/middleware"
	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// NewRouter creates API handler
// metrics is served on /metrics as is, may be nil
func NewRouter(
	orderRepo orderRepo,
	processor processor,
	metrics http.Handler,
	logger logger.Logger,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("POST /orders", handleCreateOrder(orderRepo, logger))
	api.Handle("POST /orders/process", handleProcessOrders(processor, logger))
	api.Handle("GET /users/{userID}/orders", handleListOrders(orderRepo, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if metrics != nil {
		root.Handle("GET /metrics", metrics)
	}

	handler := chain(root,
		middleware.RequestID(),
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type orderRepo interface {
	CreateOrder(ctx context.Context, userID int64, orderType string, amount decimal.Decimal, flag bool) (models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
}

type processor interface {
	// Has to return apperrors.ErrOrdersUnavailable if orders could not be fetched
	ProcessOrders(ctx context.Context, userID int64) ([]models.Order, error)
}
