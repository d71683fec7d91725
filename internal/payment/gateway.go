package payment

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/shopspring/decimal"

	"printo/internal/config"
)

// Gateway abstracts the payment provider so services and tests do not touch
// the Razorpay client directly.
type Gateway interface {
	// CreateOrder registers an order with the gateway and returns the
	// gateway-side order id the client checkout needs.
	CreateOrder(amount decimal.Decimal, receipt string) (string, error)
	// VerifySignature checks the HMAC the client posts back after checkout.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

type razorpayGateway struct {
	client *razorpay.Client
	secret string
}

// NewRazorpay creates a Gateway backed by the Razorpay API.
func NewRazorpay(cfg config.RazorpayConfig) (Gateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials are required")
	}
	return &razorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		secret: cfg.KeySecret,
	}, nil
}

func (g *razorpayGateway) CreateOrder(amount decimal.Decimal, receipt string) (string, error) {
	// Razorpay amounts are in the smallest currency unit.
	data := map[string]interface{}{
		"amount":   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("gateway order response missing id")
	}
	return id, nil
}

func (g *razorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": gatewayPaymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}
