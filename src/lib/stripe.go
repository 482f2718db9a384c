package lib

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// toMinorUnits converts rupees to paise. Rounded, not truncated: amounts
// arrive as 2dp floats and 2750.01*100 is 275000.999... in binary.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateAdvanceCheckout opens a hosted checkout session for the 50% advance
// on a part order. Amounts are in paise (minor units).
func CreateAdvanceCheckout(orderNumber string, description string, amount float64, metadata map[string]string) (*string, *string, error) {
	sc := GetStripeClient()
	successUrl := fmt.Sprintf("%s/orders/%s/payment/success", os.Getenv("APP_HOST"), orderNumber)
	params := stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successUrl),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String("inr"),
					UnitAmount: stripe.Int64(toMinorUnits(amount)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: metadata,
	}
	checkoutSession, err := sc.V1CheckoutSessions.Create(context.Background(), &params)
	if err != nil {
		return nil, nil, err
	}
	return &checkoutSession.URL, &checkoutSession.ID, nil
}
