// Package classifier is the client of the remote order classification service
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/nkiryanov/orderprocessor/internal/apperrors"
	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

const (
	CodeUnexpectedStatus = "unexpected-status"
	CodeTransport        = "transport"
	CodeDecode           = "decode"
	CodeCircuitOpen      = "circuit-open"
)

const requestTimeout = 5 * time.Second

type Error struct {
	Code       string
	StatusCode int // set only for unexpected-status
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("classifier: code: %s, status_code: %d, error: %v", e.Code, e.StatusCode, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{apperrors.ErrClassifier, e.Err}
}

func newError(code string, err error) *Error {
	return &Error{Code: code, Err: err}
}

type BreakerSettings struct {
	// Consecutive failures to open the circuit
	MaxFailures uint32

	// How long the circuit stays open before a probe request
	OpenTimeout time.Duration
}

var DefaultBreakerSettings = BreakerSettings{
	MaxFailures: 5,
	OpenTimeout: 30 * time.Second,
}

type Client struct {
	Addr string

	client  *http.Client
	breaker *gobreaker.CircuitBreaker[models.Classification]
	logger  logger.Logger
}

func NewClient(addr string, l logger.Logger) *Client {
	return &Client{
		Addr:   addr,
		client: &http.Client{},
		logger: l,
	}
}

// WithBreaker guards requests with a circuit breaker
// While the circuit is open Classify fails fast with CodeCircuitOpen
func (c *Client) WithBreaker(s BreakerSettings) *Client {
	c.breaker = gobreaker.NewCircuitBreaker[models.Classification](gobreaker.Settings{
		Name:    "classifier",
		Timeout: s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

func (c *Client) Classify(ctx context.Context, orderID int64) (models.Classification, error) {
	if c.breaker == nil {
		return c.classify(ctx, orderID)
	}

	cl, err := c.breaker.Execute(func() (models.Classification, error) {
		return c.classify(ctx, orderID)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return cl, newError(CodeCircuitOpen, err)
	}
	return cl, err
}

func (c *Client) classify(ctx context.Context, orderID int64) (models.Classification, error) {
	var cl models.Classification

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := c.Addr + "/api/orders/" + strconv.FormatInt(orderID, 10) + "/classification"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return cl, newError(CodeTransport, fmt.Errorf("failed to create request: %w", err))
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return cl, newError(CodeTransport, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Failed to classify order", "status_code", resp.StatusCode, "order_id", orderID)
		e := newError(CodeUnexpectedStatus, fmt.Errorf("unexpected status code %d for order %d", resp.StatusCode, orderID))
		e.StatusCode = resp.StatusCode
		return cl, e
	}

	if err := json.NewDecoder(resp.Body).Decode(&cl); err != nil {
		c.logger.Warn("Failed to decode response", "order_id", orderID, "error", err)
		return models.Classification{}, newError(CodeDecode, fmt.Errorf("failed to decode response: %w", err))
	}

	c.logger.Debug("Classifier response", "order_id", orderID, "status", cl.Status, "data", cl.Data)
	return cl, nil
}
