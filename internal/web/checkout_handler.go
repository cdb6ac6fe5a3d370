package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/Goga-Rid/pitza/internal/checkout"
)

// Checkout runs the gate flow. Each gate maps to a redirect: identity to
// registration with the cart hint, address to the drawer's address form.
func (h *handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	order, err := h.Deps.Checkout.PlaceOrder(ctx)
	h.finishCheckout(w, r, order, err)
}

func (h *handlers) CheckoutAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	order, err := h.Deps.Checkout.SaveAddress(ctx, r.FormValue("address"))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrAddressEmpty):
			http.Redirect(w, r, "/cart?address=1&error=empty_address", http.StatusSeeOther)
		case errors.Is(err, checkout.ErrIllegalTransition):
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrSubmissionInFlight):
			h.finishCheckout(w, r, nil, err)
		default:
			// Distinguish a failed save (prompt stays open) from a failed
			// resubmission (drawer shows the retryable order error).
			if h.Deps.Checkout.Status() == checkout.StatusAddressPrompt {
				log.Printf("save address error: %v", err)
				http.Redirect(w, r, "/cart?address=1&error=address", http.StatusSeeOther)
				return
			}
			h.finishCheckout(w, r, nil, err)
		}
		return
	}
	h.finishCheckout(w, r, order, nil)
}

func (h *handlers) CheckoutRetry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	order, err := h.Deps.Checkout.Retry(ctx)
	if errors.Is(err, checkout.ErrIllegalTransition) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	h.finishCheckout(w, r, order, err)
}

func (h *handlers) finishCheckout(w http.ResponseWriter, r *http.Request, order *backend.Order, err error) {
	switch {
	case err == nil:
		// Success closes the drawer: back to the menu with the acknowledgment.
		http.Redirect(w, r, fmt.Sprintf("/?ordered=%d", order.ID), http.StatusSeeOther)
	case errors.Is(err, checkout.ErrNotAuthenticated):
		// No network call was made; registration explains why it was reached.
		http.Redirect(w, r, "/register?from=cart", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrAddressRequired):
		http.Redirect(w, r, "/cart?address=1", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrEmptyCart):
		http.Redirect(w, r, "/cart?error=empty", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		http.Redirect(w, r, "/cart?error=pending", http.StatusSeeOther)
	default:
		log.Printf("checkout error: %v", err)
		http.Redirect(w, r, "/cart?error=submit", http.StatusSeeOther)
	}
}
