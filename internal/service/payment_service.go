package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/pkg/razorpay"
)

// defaultFeeCurrency is used when the caller leaves the currency blank.
const defaultFeeCurrency = "INR"

// PaymentGateway creates payment orders with the external gateway.
type PaymentGateway interface {
	CreateOrder(amount float64, currency, receipt string) (razorpay.Order, error)
}

// PaymentService issues gateway orders for contest posting fees. Payment
// capture and reconciliation happen on the gateway side; this service only
// opens the order.
type PaymentService interface {
	CreateFeeOrder(ctx context.Context, employerID string, payload dto.FeeOrderRequest) (dto.FeeOrderResponse, error)
}

type paymentService struct {
	gateway   PaymentGateway
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewPaymentService constructs a PaymentService backed by the given gateway.
func NewPaymentService(gateway PaymentGateway, validate *validator.Validate, logger zerolog.Logger) PaymentService {
	return &paymentService{
		gateway:   gateway,
		validator: validate,
		logger:    logger.With().Str("component", "payment_service").Logger(),
		tracer:    otel.Tracer("github.com/hirearena/contest-api/internal/service/payment"),
	}
}

func (s *paymentService) CreateFeeOrder(ctx context.Context, employerID string, payload dto.FeeOrderRequest) (dto.FeeOrderResponse, error) {
	if payload.Currency == "" {
		payload.Currency = defaultFeeCurrency
	}

	if err := translateValidation(s.validator.Struct(payload)); err != nil {
		return dto.FeeOrderResponse{}, err
	}

	_, span := s.tracer.Start(ctx, "payments.create_fee_order", trace.WithAttributes(
		attribute.String("payment.employer_id", employerID),
		attribute.Float64("payment.amount", payload.Amount),
	))
	defer span.End()

	order, err := s.gateway.CreateOrder(payload.Amount, payload.Currency, payload.Receipt)
	if err != nil {
		span.RecordError(err)
		return dto.FeeOrderResponse{}, err
	}

	s.logger.Info().
		Str("employer_id", employerID).
		Str("order_id", order.ID).
		Msg("fee order created")

	return dto.FeeOrderResponse{
		OrderID:  order.ID,
		Amount:   float64(order.Amount) / 100,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
	}, nil
}
