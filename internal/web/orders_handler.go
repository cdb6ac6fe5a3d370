package web

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/go-chi/chi/v5"
)

type ordersData struct {
	Orders []backend.OrderSummary
}

func (h *handlers) OrdersPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	p := h.newPage("Мои заказы")

	list, err := h.Orders.List(ctx)
	if err != nil {
		log.Printf("load orders error: %v", err)
		p.Error = "Не удалось загрузить заказы."
		h.render(w, http.StatusOK, "orders.html", p)
		return
	}

	p.Data = ordersData{Orders: list}
	h.render(w, http.StatusOK, "orders.html", p)
}

func (h *handlers) OrderDetailsPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	p := h.newPage("Заказ")

	// The product join is cosmetic; a failed catalog fetch still renders
	// the order with bare quantities.
	products, err := h.Catalog.All(ctx)
	if err != nil {
		log.Printf("load products error: %v", err)
	}

	details, err := h.Orders.Get(ctx, orderID, products)
	if err != nil {
		log.Printf("load order %d error: %v", orderID, err)
		p.Error = "Не удалось загрузить заказ."
		h.render(w, http.StatusOK, "order_details.html", p)
		return
	}

	p.Data = details
	h.render(w, http.StatusOK, "order_details.html", p)
}
