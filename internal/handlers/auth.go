package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sohelr/goblog/internal/store"
)

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.Views.HTML(w, http.StatusOK, "register.html", h.page(w, r, "Register", nil))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.Sessions.Flash(w, r, "Username and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if len(password) < 6 {
		h.Sessions.Flash(w, r, "Password must be at least 6 characters.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := h.Users.Register(r.Context(), username, password)
	if errors.Is(err, store.ErrDuplicateUsername) {
		h.Sessions.Flash(w, r, "Username already exists.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Sessions.Flash(w, r, "Registration successful, now login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sessions.UserID(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.Views.HTML(w, http.StatusOK, "login.html", h.page(w, r, "Login", nil))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.Sessions.Flash(w, r, "Username and password are required.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	uid, err := h.Users.Authenticate(r.Context(), username, password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		h.Sessions.Flash(w, r, "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.Sessions.Login(w, r, uid); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Sessions.Flash(w, r, "Logged in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Sessions.Flash(w, r, "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
