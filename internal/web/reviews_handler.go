package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Goga-Rid/pitza/internal/reviews"
)

func (h *handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID < 1 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rating, _ := strconv.Atoi(r.FormValue("rating"))
	_, err = h.Reviews.Create(ctx, productID, rating, r.FormValue("comment"))
	switch {
	case errors.Is(err, reviews.ErrInvalidRating):
		http.Redirect(w, r, fmt.Sprintf("/products/%d?error=rating", productID), http.StatusSeeOther)
	case err != nil:
		log.Printf("create review error: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/products/%d?error=review", productID), http.StatusSeeOther)
	default:
		http.Redirect(w, r, fmt.Sprintf("/products/%d?reviewed=1", productID), http.StatusSeeOther)
	}
}
