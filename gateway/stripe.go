package gateway

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentGateway creates a payment intent for an amount and returns the
// client secret the frontend needs to complete the charge. The gateway is
// an opaque capability — no local state changes here.
type PaymentGateway interface {
	CreateIntent(amount int64) (clientSecret string, err error)
}

// StripeGateway talks to Stripe's payment-intents API
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(amount int64) (string, error) {
	pi, err := paymentintent.New(&stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	})
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
