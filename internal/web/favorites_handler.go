package web

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type favoritesData struct {
	Products []productView
}

func (h *handlers) FavoritesPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	p := h.newPage("Избранное")

	favorites, err := h.Favorites.Refresh(ctx)
	if err != nil {
		log.Printf("load favorites error: %v", err)
		p.Error = "Не удалось загрузить избранное."
		h.render(w, http.StatusOK, "favorites.html", p)
		return
	}

	products, err := h.Catalog.All(ctx)
	if err != nil {
		log.Printf("load products error: %v", err)
		p.Error = "Не удалось загрузить меню."
		h.render(w, http.StatusOK, "favorites.html", p)
		return
	}

	byID := make(map[int64]bool, len(favorites))
	for _, fav := range favorites {
		byID[fav.ProductID] = true
	}

	var views []productView
	for _, product := range products {
		if byID[product.ID] {
			views = append(views, productView{Product: product, IsFavorite: true})
		}
	}

	p.Data = favoritesData{Products: views}
	h.render(w, http.StatusOK, "favorites.html", p)
}

// ToggleFavorite flips membership and bounces back to where the card was
// clicked. A failed toggle has already been rolled back; the page re-renders
// the true state with an error.
func (h *handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be numeric")
		return
	}

	back := r.FormValue("redirect")
	if back != "/" && back != "/favorites" {
		back = "/"
	}

	if _, err := h.Favorites.Toggle(ctx, productID); err != nil {
		log.Printf("toggle favorite error: %v", err)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
