package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessor/internal/apperrors"
	"github.com/nkiryanov/orderprocessor/internal/handlers/render"
	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

type OrderResponse struct {
	ID       int64   `json:"id"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Flag     bool    `json:"flag"`
	Status   string  `json:"status"`
	Priority string  `json:"priority"`
}

func newOrderResponse(o models.Order) OrderResponse {
	amount, _ := o.Amount.Float64()
	return OrderResponse{
		ID:       o.ID,
		Type:     o.Type,
		Amount:   amount,
		Flag:     o.Flag,
		Status:   o.Status,
		Priority: o.Priority,
	}
}

func newOrdersResponse(orders []models.Order) []OrderResponse {
	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, newOrderResponse(o))
	}
	return res
}

func handleCreateOrder(orderRepo orderRepo, l logger.Logger) http.Handler {
	type request struct {
		UserID int64           `json:"user_id" validate:"required,gt=0"`
		Type   string          `json:"type" validate:"required"`
		Amount decimal.Decimal `json:"amount" validate:"gte=0"`
		Flag   bool            `json:"flag"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		order, err := orderRepo.CreateOrder(r.Context(), req.UserID, req.Type, req.Amount, req.Flag)

		switch {
		case err == nil:
			render.JSONWithStatus(w, newOrderResponse(order), http.StatusCreated)
		case errors.Is(err, apperrors.ErrOrderInvalid):
			render.ServiceError(w, "Order is not valid", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to create order", "user_id", req.UserID, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleProcessOrders(processor processor, l logger.Logger) http.Handler {
	type request struct {
		UserID int64 `json:"user_id" validate:"required,gt=0"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		orders, err := processor.ProcessOrders(r.Context(), req.UserID)

		switch {
		case err == nil:
			render.JSON(w, newOrdersResponse(orders))
		case errors.Is(err, apperrors.ErrOrdersUnavailable):
			render.ServiceError(w, "Orders are unavailable, try later", http.StatusServiceUnavailable)
		default:
			l.Error("Failed to process orders", "user_id", req.UserID, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListOrders(orderRepo orderRepo, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
		if err != nil || userID <= 0 {
			render.ServiceError(w, "User id must be a positive number", http.StatusBadRequest)
			return
		}

		orders, err := orderRepo.ListOrdersByUser(r.Context(), userID)

		switch {
		case err != nil:
			l.Error("Failed to list orders", "user_id", userID, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		case len(orders) == 0:
			render.NoContent(w)
		default:
			render.JSON(w, newOrdersResponse(orders))
		}
	})
}
