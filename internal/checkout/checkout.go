package checkout

import (
	"context"
	"errors"

	"atelier/internal/models"

	"github.com/rs/zerolog"
)

// ErrEmptyCart aborts a checkout before any request is sent.
var ErrEmptyCart = errors.New("cart is empty")

// SessionCreator is the payment collaborator that turns a checkout
// request into a redirect URL.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req *models.CheckoutRequest) (string, error)
}

// BuildRequest projects cart lines into the payment API's shape. The
// only transformation is the field rename price -> unit_amount; amounts
// stay in minor units.
func BuildRequest(lines []models.CartLine) *models.CheckoutRequest {
	items := make([]models.CheckoutItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.CheckoutItem{
			Name:       line.Name,
			UnitAmount: line.Price,
			Quantity:   line.Quantity,
		})
	}
	return &models.CheckoutRequest{Items: items}
}

// Initiator hands a cart off to the external payment flow.
type Initiator struct {
	api    SessionCreator
	logger zerolog.Logger
}

func NewInitiator(api SessionCreator, logger zerolog.Logger) *Initiator {
	return &Initiator{api: api, logger: logger}
}

// Start builds the checkout request and asks for a session. An empty
// cart aborts with ErrEmptyCart before anything leaves the process. An
// empty returned URL means the handoff silently does not proceed; the
// URL is not validated, polled or retried here.
func (i *Initiator) Start(ctx context.Context, lines []models.CartLine) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	url, err := i.api.CreateCheckoutSession(ctx, BuildRequest(lines))
	if err != nil {
		i.logger.Error().Err(err).Msg("Checkout session creation failed")
		return "", err
	}
	if url == "" {
		i.logger.Warn().Msg("Checkout session answer had no URL, not proceeding")
	}
	return url, nil
}
