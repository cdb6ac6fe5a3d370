package web

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/Goga-Rid/pitza/internal/cart"
	"github.com/Goga-Rid/pitza/internal/checkout"
	"github.com/go-chi/chi/v5"
)

type cartData struct {
	Aggregate       cart.Aggregate
	ShowAddressForm bool
	CheckoutStatus  checkout.Status
}

var cartErrors = map[string]string{
	"empty":         "Корзина пуста.",
	"pending":       "Заказ уже оформляется.",
	"submit":        "Не удалось оформить заказ. Попробуйте еще раз.",
	"address":       "Не удалось сохранить адрес. Попробуйте еще раз.",
	"empty_address": "Пожалуйста, введите адрес.",
	"not_found":     "Товар не найден.",
}

func (h *handlers) CartDrawer(w http.ResponseWriter, r *http.Request) {
	p := h.newPage("Корзина")

	status := h.Deps.Checkout.Status()
	p.Data = cartData{
		Aggregate:       h.Cart.Aggregate(),
		ShowAddressForm: status == checkout.StatusAddressPrompt || r.URL.Query().Get("address") != "",
		CheckoutStatus:  status,
	}
	if code := r.URL.Query().Get("error"); code != "" {
		p.Error = cartErrors[code]
	}
	h.render(w, http.StatusOK, "cart.html", p)
}

// AddCartItem resolves the product from the catalog so the cart stores the
// full line, then appends or increments.
func (h *handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	qty := 1
	if raw := r.FormValue("quantity"); raw != "" {
		qty, err = strconv.Atoi(raw)
		if err != nil || qty < 1 || qty > 99 {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
			return
		}
	}

	products, err := h.Catalog.All(ctx)
	if err != nil {
		log.Printf("load products error: %v", err)
		http.Redirect(w, r, "/cart?error=not_found", http.StatusSeeOther)
		return
	}
	for _, product := range products {
		if product.ID == productID {
			h.Cart.AddItem(product, qty)
			http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, "/cart?error=not_found", http.StatusSeeOther)
}

func (h *handlers) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be numeric")
		return
	}
	qty, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be numeric")
		return
	}

	// Below-1 requests clamp rather than remove; deletion is its own control.
	h.Cart.UpdateQuantity(productID, qty)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be numeric")
		return
	}

	h.Cart.RemoveItem(productID)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.Clear()
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// redirectTarget sends form posts back where they came from, defaulting to
// the cart drawer.
func redirectTarget(r *http.Request) string {
	switch from := r.FormValue("redirect"); from {
	case "/", "/cart", "/favorites":
		return from
	default:
		return "/cart"
	}
}
