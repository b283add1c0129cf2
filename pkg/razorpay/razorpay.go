package razorpay

import (
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
)

// Config contains the API credentials for Razorpay.
type Config struct {
	KeyID     string
	KeySecret string
}

// Order is the subset of the gateway order we expose to callers.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Client wraps the Razorpay SDK for contest fee order creation.
type Client struct {
	api    *razorpay.Client
	logger zerolog.Logger
}

// New constructs a Razorpay client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials must be provided")
	}

	return &Client{
		api:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		logger: logger.With().Str("component", "razorpay").Logger(),
	}, nil
}

// CreateOrder registers a payment order with the gateway. The amount is given
// in currency units and converted to the smallest subunit the gateway expects.
func (c *Client) CreateOrder(amount float64, currency, receipt string) (Order, error) {
	subunits := int64(math.Round(amount * 100))

	body := map[string]interface{}{
		"amount":   subunits,
		"currency": currency,
		"receipt":  receipt,
	}

	raw, err := c.api.Order.Create(body, nil)
	if err != nil {
		return Order{}, fmt.Errorf("failed to create payment order: %w", err)
	}

	order := Order{
		ID:       stringField(raw, "id"),
		Amount:   intField(raw, "amount"),
		Currency: stringField(raw, "currency"),
		Receipt:  stringField(raw, "receipt"),
		Status:   stringField(raw, "status"),
	}

	c.logger.Info().Str("order_id", order.ID).Int64("amount", order.Amount).Msg("payment order created")

	return order, nil
}

func stringField(raw map[string]interface{}, key string) string {
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}

func intField(raw map[string]interface{}, key string) int64 {
	switch value := raw[key].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case int:
		return int64(value)
	default:
		return 0
	}
}
