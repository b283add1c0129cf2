package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/pkg/razorpay"
)

type fakeGateway struct {
	lastAmount   float64
	lastCurrency string
	lastReceipt  string
	err          error
}

func (f *fakeGateway) CreateOrder(amount float64, currency, receipt string) (razorpay.Order, error) {
	f.lastAmount = amount
	f.lastCurrency = currency
	f.lastReceipt = receipt
	if f.err != nil {
		return razorpay.Order{}, f.err
	}
	return razorpay.Order{
		ID:       "order_test_1",
		Amount:   int64(amount * 100),
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func newPaymentFixture() (PaymentService, *fakeGateway) {
	gateway := &fakeGateway{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewPaymentService(gateway, validate, testLogger()), gateway
}

func TestPaymentServiceCreateFeeOrder(t *testing.T) {
	svc, gateway := newPaymentFixture()

	order, err := svc.CreateFeeOrder(context.Background(), testEmployerID, dto.FeeOrderRequest{
		Amount:   2499.50,
		Currency: "USD",
		Receipt:  "contest-fee-42",
	})
	require.NoError(t, err)
	require.Equal(t, "order_test_1", order.OrderID)
	require.Equal(t, 2499.50, order.Amount)
	require.Equal(t, "USD", order.Currency)
	require.Equal(t, "contest-fee-42", gateway.lastReceipt)
}

func TestPaymentServiceCreateFeeOrderDefaultsCurrency(t *testing.T) {
	svc, gateway := newPaymentFixture()

	order, err := svc.CreateFeeOrder(context.Background(), testEmployerID, dto.FeeOrderRequest{
		Amount:  999,
		Receipt: "contest-fee-43",
	})
	require.NoError(t, err)
	require.Equal(t, "INR", gateway.lastCurrency)
	require.Equal(t, "INR", order.Currency)
}

func TestPaymentServiceCreateFeeOrderRejectsInvalidAmount(t *testing.T) {
	svc, gateway := newPaymentFixture()

	_, err := svc.CreateFeeOrder(context.Background(), testEmployerID, dto.FeeOrderRequest{
		Amount:  0,
		Receipt: "contest-fee-44",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Empty(t, gateway.lastReceipt, "gateway must not be called for invalid payloads")
}

func TestPaymentServiceCreateFeeOrderPropagatesGatewayFailure(t *testing.T) {
	svc, gateway := newPaymentFixture()
	gateway.err = errors.New("gateway unavailable")

	_, err := svc.CreateFeeOrder(context.Background(), testEmployerID, dto.FeeOrderRequest{
		Amount:  500,
		Receipt: "contest-fee-45",
	})
	require.Error(t, err)
}
