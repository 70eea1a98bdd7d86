// handler_test.go provides shared test infrastructure for the view
// handler tests: an in-memory session store, a canned backend, and a
// router that runs the real auth middleware around each handler.
package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"blogfront/internal/api"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
	"blogfront/internal/render"
	"blogfront/internal/session"
)

// memStore is an in-memory auth.SessionStore seeded with optional data.
type memStore struct {
	data         *session.Data
	destroyCalls int
}

func (m *memStore) Create(_ context.Context, _ http.ResponseWriter, data *session.Data) (string, error) {
	m.data = data
	return "id", nil
}

func (m *memStore) Get(_ context.Context, _ *http.Request) (*session.Data, error) {
	return m.data, nil
}

func (m *memStore) Destroy(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
	m.destroyCalls++
	m.data = nil
	return nil
}

// fakeBackend satisfies both handlers.Backend and auth.Backend with
// canned responses and call recording.
type fakeBackend struct {
	loginResult    *api.AuthResult
	loginErr       error
	registerResult *api.AuthResult
	registerErr    error
	logoutErr      error

	posts         []models.Post
	post          *models.Post
	categories    []models.Category
	listErr       error
	getErr        error
	createErr     error
	updateErr     error
	deleteErr     error
	categoriesErr error

	loginCalls  int
	listCalls   int
	createInput api.PostInput
	updateInput api.PostInput
	updateID    int64
	deletedID   int64
	lastToken   string
}

func (f *fakeBackend) Login(_ context.Context, _ api.Credentials) (*api.AuthResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, _ api.Registration) (*api.AuthResult, error) {
	return f.registerResult, f.registerErr
}

func (f *fakeBackend) Logout(_ context.Context, token string) error {
	f.lastToken = token
	return f.logoutErr
}

func (f *fakeBackend) ListPosts(_ context.Context, token string) ([]models.Post, error) {
	f.listCalls++
	f.lastToken = token
	return f.posts, f.listErr
}

func (f *fakeBackend) GetPost(_ context.Context, token string, _ int64) (*models.Post, error) {
	f.lastToken = token
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.post, nil
}

func (f *fakeBackend) CreatePost(_ context.Context, token string, input api.PostInput) (*models.Post, error) {
	f.lastToken = token
	f.createInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.post, nil
}

func (f *fakeBackend) UpdatePost(_ context.Context, token string, id int64, input api.PostInput) (*models.Post, error) {
	f.lastToken = token
	f.updateID = id
	f.updateInput = input
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.post, nil
}

func (f *fakeBackend) DeletePost(_ context.Context, token string, id int64) error {
	f.lastToken = token
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func (f *fakeBackend) ListCategories(_ context.Context, token string) ([]models.Category, error) {
	f.lastToken = token
	return f.categories, f.categoriesErr
}

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return renderer
}

func authedSession() *session.Data {
	return &session.Data{
		Token: "T1",
		User:  models.User{ID: 1, Name: "Ada", Email: "a@b.com"},
	}
}

func adminSession() *session.Data {
	return &session.Data{
		Token: "T1",
		User:  models.User{ID: 99, Name: "Root", Email: "root@b.com", IsAdmin: true},
	}
}

// testRouter wires the handlers behind the real auth middleware so guard
// and context behaviour match production. CSRF is left out — it has its
// own tests.
func testRouter(backend *fakeBackend, store *memStore, renderer *render.Renderer) chi.Router {
	authHandlers := NewAuth(renderer)
	postHandlers := NewPosts(renderer, backend, nil)

	r := chi.NewRouter()
	r.Use(middleware.WithAuth(backend, store))

	r.Get("/login", authHandlers.LoginPage)
	r.Post("/login", authHandlers.LoginSubmit)
	r.Get("/register", authHandlers.RegisterPage)
	r.Post("/register", authHandlers.RegisterSubmit)
	r.Post("/logout", authHandlers.Logout)

	r.Get("/", postHandlers.List)
	r.Get("/posts/{id}", postHandlers.Detail)
	r.Get("/posts/new", postHandlers.NewForm)
	r.Post("/posts", postHandlers.Create)
	r.Get("/posts/{id}/edit", postHandlers.EditForm)
	r.Post("/posts/{id}", postHandlers.Update)
	r.Post("/posts/{id}/delete", postHandlers.Delete)

	return r
}

func strptr(s string) *string { return &s }
