package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/sohelr/goblog/internal/render"
	"github.com/sohelr/goblog/internal/session"
	"github.com/sohelr/goblog/internal/store"
)

type Handler struct {
	Users    *store.UserStore
	Posts    *store.PostStore
	Sessions *session.Manager
	Views    *render.Renderer
}

func New(db *sqlx.DB, sessions *session.Manager) *Handler {
	return &Handler{
		Users:    store.NewUserStore(db),
		Posts:    store.NewPostStore(db),
		Sessions: sessions,
		Views:    render.New(),
	}
}

// Routes wires every route onto a fresh router. cmd/server and the
// handler tests share this table.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Public
	r.Get("/", h.Index)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/post/{id}", h.ViewPost)

	// Authenticated. The handlers resolve the session themselves so a
	// missing login redirects with a notice instead of a bare 401.
	r.Get("/post/new", h.NewPostPage)
	r.Post("/post/new", h.NewPost)
	r.Get("/post/{id}/edit", h.EditPostPage)
	r.Post("/post/{id}/edit", h.EditPost)
	r.Post("/post/{id}/delete", h.DeletePost)

	return r
}

// page assembles the template envelope for the current request, draining
// any pending flash notices.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string, data any) render.Page {
	uid, ok := h.Sessions.UserID(r)
	return render.Page{
		Title:    title,
		UserID:   uid,
		LoggedIn: ok,
		Flashes:  h.Sessions.Flashes(w, r),
		Data:     data,
	}
}

// requireUser resolves the session identity or redirects to the login
// page with the given notice. The bool reports whether the request may
// proceed.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request, notice string) (int64, bool) {
	uid, ok := h.Sessions.UserID(r)
	if !ok {
		h.Sessions.Flash(w, r, notice)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return 0, false
	}
	return uid, true
}

// postID parses the {id} route parameter.
func postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.Views.HTML(w, http.StatusNotFound, "notfound.html", h.page(w, r, "Not found", nil))
}

// serverError is the catch-all for storage failures: log the detail,
// show none of it.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "Something went wrong.", http.StatusInternalServerError)
}
