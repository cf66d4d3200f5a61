package payment

import "context"

// Provider is the payment-processor boundary. Core logic only ever asks for a
// payment intent; confirmation happens on the client and is reported back as
// a completed transaction.
type Provider interface {
	// CreatePaymentIntent returns the client secret for a payment of the
	// given amount in minor currency units.
	CreatePaymentIntent(ctx context.Context, amount int64) (string, error)
}
