package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Goga-Rid/pitza/internal/backend"
)

type authFormData struct {
	Email string
	Name  string
	Hint  string
	From  string
}

func (h *handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	p := h.newPage("Вход")
	p.Data = authFormData{From: r.URL.Query().Get("from")}
	h.render(w, http.StatusOK, "login.html", p)
}

func (h *handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	resp, err := h.API.Login(ctx, backend.LoginRequest{Email: email, Password: password})
	if err != nil {
		h.renderAuthError(w, "login.html", "Вход", authFormData{Email: email}, err)
		return
	}

	h.establishSession(ctx, w, r, resp, r.FormValue("from"))
}

func (h *handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	data := authFormData{From: from}
	if from == "cart" {
		data.Hint = "Зарегистрируйтесь для оформления заказа"
	}

	p := h.newPage("Регистрация")
	p.Data = data
	h.render(w, http.StatusOK, "register.html", p)
}

func (h *handlers) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	resp, err := h.API.Register(ctx, backend.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		h.renderAuthError(w, "register.html", "Регистрация", authFormData{Email: email, Name: name}, err)
		return
	}

	h.establishSession(ctx, w, r, resp, r.FormValue("from"))
}

func (h *handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Session.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishSession persists the token, fetches the user it identifies, and
// populates the session. A failed fetch drops the token again rather than
// leaving a half-open session.
func (h *handlers) establishSession(ctx context.Context, w http.ResponseWriter, r *http.Request, resp *backend.AuthResponse, from string) {
	if err := h.Session.SaveToken(resp.Token); err != nil {
		log.Printf("save token error: %v", err)
		p := h.newPage("Вход")
		p.Error = "Не удалось сохранить сессию. Попробуйте еще раз."
		h.render(w, http.StatusOK, "login.html", p)
		return
	}

	user, err := h.API.CurrentUser(ctx)
	if err != nil {
		log.Printf("fetch current user after auth error: %v", err)
		h.Session.Logout()
		p := h.newPage("Вход")
		p.Error = "Не удалось войти. Попробуйте еще раз."
		h.render(w, http.StatusOK, "login.html", p)
		return
	}
	h.Session.SetUser(user)

	target := "/"
	if from == "cart" {
		target = "/cart"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *handlers) renderAuthError(w http.ResponseWriter, tmpl, title string, data authFormData, err error) {
	p := h.newPage(title)
	p.Data = data

	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest,
		errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict,
		errors.Is(err, backend.ErrUnauthorized):
		p.Error = "Неверный email или пароль."
	default:
		log.Printf("auth error: %v", err)
		p.Error = "Сервис временно недоступен. Попробуйте еще раз."
	}
	h.render(w, http.StatusOK, tmpl, p)
}
