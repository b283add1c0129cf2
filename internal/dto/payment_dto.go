package dto

// FeeOrderRequest asks the payment collaborator for a new fee order.
type FeeOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
	Receipt  string  `json:"receipt" validate:"required,max=40"`
}

// FeeOrderResponse carries the gateway order reference back to the caller.
// Payment completion is not reconciled here; the gateway notifies its own
// callbacks.
type FeeOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
	Status   string  `json:"status"`
}
