package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Goga-Rid/pitza/internal/account"
)

var profileMessages = map[string]string{
	"saved":             "Профиль сохранен.",
	"password_changed":  "Пароль изменен.",
	"save_failed":       "Не удалось сохранить профиль. Попробуйте еще раз.",
	"password_failed":   "Не удалось изменить пароль. Проверьте старый пароль.",
	"password_required": "Укажите старый и новый пароль.",
}

func (h *handlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	p := h.newPage("Профиль")
	if code := r.URL.Query().Get("msg"); code != "" {
		p.Flash = profileMessages[code]
	}
	if code := r.URL.Query().Get("error"); code != "" {
		p.Error = profileMessages[code]
	}
	h.render(w, http.StatusOK, "profile.html", p)
}

func (h *handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	_, err := h.Account.UpdateProfile(ctx, r.FormValue("name"), r.FormValue("address"))
	if err != nil {
		log.Printf("update profile error: %v", err)
		http.Redirect(w, r, "/profile?error=save_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?msg=saved", http.StatusSeeOther)
}

func (h *handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	err := h.Account.ChangePassword(ctx, r.FormValue("old_password"), r.FormValue("new_password"))
	switch {
	case errors.Is(err, account.ErrPasswordRequired):
		http.Redirect(w, r, "/profile?error=password_required", http.StatusSeeOther)
	case err != nil:
		log.Printf("change password error: %v", err)
		http.Redirect(w, r, "/profile?error=password_failed", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/profile?msg=password_changed", http.StatusSeeOther)
	}
}
