package domain

import "fmt"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodVABCA PaymentMethod = "VA_BCA"
	PaymentMethodVABNI PaymentMethod = "VA_BNI"
	PaymentMethodVABRI PaymentMethod = "VA_BRI"
	PaymentMethodQRIS  PaymentMethod = "QRIS"
)

// ParsePaymentMethod maps a wire string onto the supported method set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodVABCA, PaymentMethodVABNI, PaymentMethodVABRI, PaymentMethodQRIS:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, s)
}

type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "success"
	PaymentOutcomeFailed  PaymentOutcome = "failed"
)

// PaymentIntent is the 1:1 payment record created in the same transaction as
// its order. Amount always equals the order's total cost.
type PaymentIntent struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"order_id"`
	Code      string        `json:"code"`
	Method    PaymentMethod `json:"method"`
	Amount    int64         `json:"amount"`
	Status    PaymentStatus `json:"status"`
	UpdatedOn string        `json:"updated_on"`
}
