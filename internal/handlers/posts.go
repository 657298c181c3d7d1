package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sohelr/goblog/internal/store"
)

const maxTitleLen = 100

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListRecent(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Views.HTML(w, http.StatusOK, "index.html", h.page(w, r, "All posts", posts))
}

func (h *Handler) ViewPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Views.HTML(w, http.StatusOK, "view_post.html", h.page(w, r, post.Title, post))
}

func (h *Handler) NewPostPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r, "Login to create a post."); !ok {
		return
	}
	h.Views.HTML(w, http.StatusOK, "new_post.html", h.page(w, r, "New post", nil))
}

func (h *Handler) NewPost(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w, r, "Login to create a post.")
	if !ok {
		return
	}

	title, content, ok := h.postForm(w, r, "/post/new")
	if !ok {
		return
	}

	if _, err := h.Posts.Create(r.Context(), uid, title, content); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Sessions.Flash(w, r, "Post created.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) EditPostPage(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w, r, "Login to edit a post.")
	if !ok {
		return
	}

	id, err := postID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if post.UserID != uid {
		h.Sessions.Flash(w, r, "You can only edit your own posts.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.Views.HTML(w, http.StatusOK, "edit_post.html", h.page(w, r, "Edit post", post))
}

func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w, r, "Login to edit a post.")
	if !ok {
		return
	}

	id, err := postID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	title, content, ok := h.postForm(w, r, fmt.Sprintf("/post/%d/edit", id))
	if !ok {
		return
	}

	err = h.Posts.Update(r.Context(), id, uid, title, content)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.notFound(w, r)
	case errors.Is(err, store.ErrNotOwner):
		h.Sessions.Flash(w, r, "You can only edit your own posts.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.Sessions.Flash(w, r, "Post updated.")
		http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
	}
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requireUser(w, r, "Login to delete a post.")
	if !ok {
		return
	}

	id, err := postID(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	err = h.Posts.Delete(r.Context(), id, uid)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.notFound(w, r)
	case errors.Is(err, store.ErrNotOwner):
		h.Sessions.Flash(w, r, "You can only delete your own posts.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.Sessions.Flash(w, r, "Post deleted.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// postForm validates the title/content form shared by create and edit.
// On a validation failure it redirects back to the form and returns
// ok=false.
func (h *Handler) postForm(w http.ResponseWriter, r *http.Request, backTo string) (title, content string, ok bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return "", "", false
	}

	title = strings.TrimSpace(r.FormValue("title"))
	content = r.FormValue("content")

	if title == "" || strings.TrimSpace(content) == "" {
		h.Sessions.Flash(w, r, "Title and content are required.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return "", "", false
	}
	if len(title) > maxTitleLen {
		h.Sessions.Flash(w, r, "Title is too long.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return "", "", false
	}

	return title, content, true
}
