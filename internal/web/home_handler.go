package web

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/Goga-Rid/pitza/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type productView struct {
	backend.Product
	IsFavorite bool
}

type homeData struct {
	Products      []productView
	Categories    []string
	CategoryNames map[string]string
	Selected      string
	Search        string
	Ordered       bool
}

func (h *handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	p := h.newPage("Меню")

	products, err := h.Catalog.All(ctx)
	if err != nil {
		log.Printf("load products error: %v", err)
		p.Error = "Не удалось загрузить меню. Попробуйте обновить страницу."
		h.render(w, http.StatusOK, "home.html", p)
		return
	}

	// Favorites are a best-effort overlay; the menu renders without them.
	if h.Session.IsAuthenticated() {
		if _, err := h.Favorites.Refresh(ctx); err != nil {
			log.Printf("load favorites error: %v", err)
		}
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}
	search := r.URL.Query().Get("q")

	filtered := catalog.Filter(products, category, search)
	views := make([]productView, len(filtered))
	for i, product := range filtered {
		views[i] = productView{
			Product:    product,
			IsFavorite: h.Favorites.IsFavorite(product.ID),
		}
	}

	p.Data = homeData{
		Products:      views,
		Categories:    catalog.Categories,
		CategoryNames: catalog.CategoryNames,
		Selected:      category,
		Search:        search,
		Ordered:       r.URL.Query().Get("ordered") != "",
	}
	h.render(w, http.StatusOK, "home.html", p)
}

type productData struct {
	Product  productView
	Reviews  []backend.Review
	Reviewed bool
}

// Product is the product modal as its own page: details, reviews, and the
// review form for authenticated users.
func (h *handlers) Product(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	products, err := h.Catalog.All(ctx)
	if err != nil {
		log.Printf("load products error: %v", err)
		p := h.newPage("Товар")
		p.Error = "Не удалось загрузить товар."
		h.render(w, http.StatusOK, "product.html", p)
		return
	}

	var found *backend.Product
	for i := range products {
		if products[i].ID == productID {
			found = &products[i]
			break
		}
	}
	if found == nil {
		http.NotFound(w, r)
		return
	}

	data := productData{
		Product:  productView{Product: *found, IsFavorite: h.Favorites.IsFavorite(found.ID)},
		Reviewed: r.URL.Query().Get("reviewed") != "",
	}
	if h.Session.IsAuthenticated() {
		if reviews, err := h.Reviews.List(ctx, productID); err == nil {
			data.Reviews = reviews
		} else {
			log.Printf("load reviews error: %v", err)
		}
	}

	p := h.newPage(found.Name)
	switch r.URL.Query().Get("error") {
	case "rating":
		p.Error = "Поставьте оценку от 1 до 5."
	case "review":
		p.Error = "Не удалось отправить отзыв. Попробуйте еще раз."
	}
	p.Data = data
	h.render(w, http.StatusOK, "product.html", p)
}
