// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogfront/internal/api"
	"blogfront/internal/auth"
	"blogfront/internal/cache"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
	"blogfront/internal/render"
)

// Backend is the slice of the REST client the post views need.
type Backend interface {
	ListPosts(ctx context.Context, token string) ([]models.Post, error)
	GetPost(ctx context.Context, token string, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, token string, input api.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, token string, id int64, input api.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, token string, id int64) error
	ListCategories(ctx context.Context, token string) ([]models.Category, error)
}

// Posts groups the post view handlers.
type Posts struct {
	renderer   *render.Renderer
	backend    Backend
	categories *cache.CategoryCache // may be nil in tests
}

// NewPosts creates a new Posts handler group.
func NewPosts(renderer *render.Renderer, backend Backend, categories *cache.CategoryCache) *Posts {
	return &Posts{
		renderer:   renderer,
		backend:    backend,
		categories: categories,
	}
}

// List renders the posts table, or the welcome page for anonymous
// visitors. A failed delete redirect lands here with ?error=delete so the
// notice renders inline above the (unchanged) collection.
func (p *Posts) List(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())
	if ac.State() != auth.StateAuthenticated {
		p.renderer.Page(w, r, "welcome", &render.PageData{
			Title:   "Welcome",
			Section: "posts",
		})
		return
	}

	data := &render.PageData{
		Title:   "Blog Posts",
		Section: "posts",
		Data:    map[string]any{},
	}
	if r.URL.Query().Get("error") == "delete" {
		data.Error = "Failed to delete post."
	}

	posts, err := p.backend.ListPosts(r.Context(), ac.Token())
	if err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		slog.Error("fetch posts failed", "error", err)
		data.Error = "Failed to fetch posts."
		p.renderer.Page(w, r, "posts", data)
		return
	}

	data.Data["Posts"] = posts
	p.renderer.Page(w, r, "posts", data)
}

// Detail renders a single post. Missing or forbidden posts render an
// inline notice with a way back to the list instead of a bare error page.
func (p *Posts) Detail(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())

	id, ok := postID(r)
	if !ok {
		p.renderDetailError(w, r, "Post not found.")
		return
	}

	post, err := p.backend.GetPost(r.Context(), ac.Token(), id)
	if err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		if api.IsNotFound(err) {
			p.renderDetailError(w, r, "Post not found.")
			return
		}
		slog.Error("fetch post failed", "id", id, "error", err)
		p.renderDetailError(w, r, "Failed to fetch post.")
		return
	}

	p.renderer.Page(w, r, "post_detail", &render.PageData{
		Title:   post.Title,
		Section: "posts",
		Data:    map[string]any{"Post": *post},
	})
}

// NewForm renders the empty create form.
func (p *Posts) NewForm(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())

	categories, err := p.loadCategories(r.Context(), ac.Token())
	if err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		slog.Error("fetch categories failed", "error", err)
	}

	p.renderForm(w, r, formPage{
		heading:    "Create New Post",
		submit:     "Create Post",
		action:     "/posts",
		form:       api.PostInput{IsActive: models.ActiveYes},
		categories: categories,
	})
}

// Create handles the create form submission.
func (p *Posts) Create(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())
	input := parsePostForm(r)

	page := formPage{
		heading: "Create New Post",
		submit:  "Create Post",
		action:  "/posts",
		form:    input,
	}

	if msg := validateInput(input); msg != "" {
		p.rerenderForm(w, r, ac, page, msg, nil)
		return
	}

	if _, err := p.backend.CreatePost(r.Context(), ac.Token(), input); err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		p.rerenderForm(w, r, ac, page, userMessage(err), fieldMessages(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditForm renders the edit form prefilled from the backend's copy.
func (p *Posts) EditForm(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())

	id, ok := postID(r)
	if !ok {
		p.renderDetailError(w, r, "Post not found.")
		return
	}

	post, err := p.backend.GetPost(r.Context(), ac.Token(), id)
	if err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		if api.IsNotFound(err) {
			p.renderDetailError(w, r, "Post not found.")
			return
		}
		slog.Error("fetch post failed", "id", id, "error", err)
		p.renderDetailError(w, r, "Failed to fetch post.")
		return
	}

	categories, err := p.loadCategories(r.Context(), ac.Token())
	if err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		slog.Error("fetch categories failed", "error", err)
	}

	var content string
	if post.Content != nil {
		content = *post.Content
	}

	p.renderForm(w, r, formPage{
		heading: "Edit Post",
		submit:  "Update Post",
		action:  fmt.Sprintf("/posts/%d", id),
		form: api.PostInput{
			Title:      post.Title,
			Content:    content,
			CategoryID: post.CategoryID,
			IsActive:   post.IsActive,
		},
		categories: categories,
	})
}

// Update handles the edit form submission.
func (p *Posts) Update(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())

	id, ok := postID(r)
	if !ok {
		p.renderDetailError(w, r, "Post not found.")
		return
	}

	input := parsePostForm(r)
	page := formPage{
		heading: "Edit Post",
		submit:  "Update Post",
		action:  fmt.Sprintf("/posts/%d", id),
		form:    input,
	}

	if msg := validateInput(input); msg != "" {
		p.rerenderForm(w, r, ac, page, msg, nil)
		return
	}

	if _, err := p.backend.UpdatePost(r.Context(), ac.Token(), id, input); err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		p.rerenderForm(w, r, ac, page, userMessage(err), fieldMessages(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes a post. The local view state changes only after the
// backend confirms: success re-renders the list without the post, failure
// redirects back with a notice and an unchanged collection.
func (p *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())

	id, ok := postID(r)
	if !ok {
		http.Redirect(w, r, "/?error=delete", http.StatusSeeOther)
		return
	}

	if err := p.backend.DeletePost(r.Context(), ac.Token(), id); err != nil {
		if p.invalidateOn401(w, r, ac, err) {
			return
		}
		slog.Error("delete post failed", "id", id, "error", err)
		http.Redirect(w, r, "/?error=delete", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ---------- helpers ----------

// formPage bundles everything the shared create/edit template needs.
type formPage struct {
	heading    string
	submit     string
	action     string
	form       api.PostInput
	categories []models.Category
}

func (p *Posts) renderForm(w http.ResponseWriter, r *http.Request, page formPage) {
	p.renderFormError(w, r, page, "", nil)
}

// rerenderForm reloads the category list (needed after a failed submit)
// and renders the form with the error notice.
func (p *Posts) rerenderForm(w http.ResponseWriter, r *http.Request, ac *auth.Context, page formPage, msg string, fields []string) {
	categories, err := p.loadCategories(r.Context(), ac.Token())
	if err != nil {
		slog.Error("fetch categories failed", "error", err)
	}
	page.categories = categories
	p.renderFormError(w, r, page, msg, fields)
}

func (p *Posts) renderFormError(w http.ResponseWriter, r *http.Request, page formPage, msg string, fields []string) {
	p.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   page.heading,
		Section: "create",
		Error:   msg,
		Data: map[string]any{
			"Heading":     page.heading,
			"Submit":      page.submit,
			"Action":      page.action,
			"Form":        page.form,
			"Categories":  page.categories,
			"FieldErrors": fields,
		},
	})
}

func (p *Posts) renderDetailError(w http.ResponseWriter, r *http.Request, msg string) {
	p.renderer.Page(w, r, "post_detail", &render.PageData{
		Title:   "Post",
		Section: "posts",
		Error:   msg,
	})
}

// loadCategories consults the short-TTL cache first; posts are never
// cached, but the read-only category list is.
func (p *Posts) loadCategories(ctx context.Context, token string) ([]models.Category, error) {
	if p.categories != nil {
		if cached, ok := p.categories.Get(ctx); ok {
			return cached, nil
		}
	}

	categories, err := p.backend.ListCategories(ctx, token)
	if err != nil {
		return nil, err
	}

	if p.categories != nil {
		p.categories.Set(ctx, categories)
	}
	return categories, nil
}

// invalidateOn401 implements the forced-logout hardening: a 401 from any
// data call means the backend revoked the token, so the stale session is
// cleared and the user lands on the login page.
func (p *Posts) invalidateOn401(w http.ResponseWriter, r *http.Request, ac *auth.Context, err error) bool {
	if !api.IsAuthError(err) {
		return false
	}
	ac.Invalidate(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

func parsePostForm(r *http.Request) api.PostInput {
	categoryID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("category_id")), 10, 64)
	return api.PostInput{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Content:    r.FormValue("content"),
		CategoryID: categoryID,
		IsActive:   models.ActiveStatus(r.FormValue("is_active")),
	}
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
