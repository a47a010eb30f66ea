package handlers

import (
	"errors"
	"net/http"

	"atelier/internal/cart"
	"atelier/internal/checkout"
	"atelier/internal/middleware"
	"atelier/internal/storage"

	"github.com/rs/zerolog"
)

type CheckoutHandler struct {
	initiator *checkout.Initiator
	store     storage.Store
	locale    string
	logger    zerolog.Logger
}

func NewCheckoutHandler(initiator *checkout.Initiator, store storage.Store, locale string, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		initiator: initiator,
		store:     store,
		locale:    locale,
		logger:    logger,
	}
}

// Start hands the cart off to the payment flow. On success the browsing
// context is sent to the returned URL; with an empty cart or a blank
// URL nothing happens and the visitor stays where they are.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFrom(r)
	c := cart.Open(r.Context(), h.store, sid, h.logger)

	url, err := h.initiator.Start(r.Context(), c.Lines())
	if errors.Is(err, checkout.ErrEmptyCart) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		respondUpstreamError(w, err, h.locale)
		return
	}
	if url == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}
