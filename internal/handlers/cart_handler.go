package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"atelier/internal/cart"
	"atelier/internal/currency"
	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type CartHandler struct {
	store  storage.Store
	locale string
	logger zerolog.Logger
}

func NewCartHandler(store storage.Store, locale string, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:  store,
		locale: locale,
		logger: logger,
	}
}

// open restores the visitor's cart and attaches a change listener so
// every applied mutation leaves a trace in the log.
func (h *CartHandler) open(r *http.Request) *cart.Store {
	sid := middleware.SessionIDFrom(r)
	c := cart.Open(r.Context(), h.store, sid, h.logger)
	c.OnChange(func(lines []models.CartLine) {
		h.logger.Debug().Str("session_id", sid).Int("lines", len(lines)).Msg("Cart updated")
	})
	return c
}

func (h *CartHandler) respondCart(w http.ResponseWriter, c *cart.Store) {
	total := c.TotalPrice()
	respondWithJSON(w, http.StatusOK, models.CartResponse{
		Items:             c.Lines(),
		TotalItems:        c.TotalItems(),
		TotalPrice:        total,
		TotalPriceDisplay: currency.FormatBRL(total, h.locale),
		IsOpen:            c.IsOpen(),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, h.open(r))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	c := h.open(r)
	err := c.AddLine(r.Context(), models.CartLine{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Image:    req.Image,
		Category: req.Category,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "cart_error", "Could not update cart")
		return
	}
	h.respondCart(w, c)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid product id")
		return
	}

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	c := h.open(r)
	if err := c.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		respondWithError(w, http.StatusInternalServerError, "cart_error", "Could not update cart")
		return
	}
	h.respondCart(w, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid product id")
		return
	}

	c := h.open(r)
	if err := c.RemoveLine(r.Context(), id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "cart_error", "Could not update cart")
		return
	}
	h.respondCart(w, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.open(r)
	if err := c.Clear(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "cart_error", "Could not clear cart")
		return
	}
	h.respondCart(w, c)
}

func (h *CartHandler) SetSidebar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsOpen bool `json:"is_open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	// The flag lives for this request only. Restored carts always come
	// up closed, so the effect is the echoed state, not a stored one.
	c := h.open(r)
	c.SetOpen(req.IsOpen)
	h.respondCart(w, c)
}
