package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogfront/internal/api"
	"blogfront/internal/models"
	"blogfront/internal/session"
)

// ---------- Fakes ----------

// fakeBackend implements Backend with canned responses and call counters.
type fakeBackend struct {
	loginResult    *api.AuthResult
	loginErr       error
	registerResult *api.AuthResult
	registerErr    error
	logoutErr      error

	loginCalls    int
	registerCalls int
	logoutCalls   int
	logoutToken   string
}

func (f *fakeBackend) Login(_ context.Context, _ api.Credentials) (*api.AuthResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, _ api.Registration) (*api.AuthResult, error) {
	f.registerCalls++
	return f.registerResult, f.registerErr
}

func (f *fakeBackend) Logout(_ context.Context, token string) error {
	f.logoutCalls++
	f.logoutToken = token
	return f.logoutErr
}

// fakeStore implements SessionStore in memory, ignoring cookies.
type fakeStore struct {
	data         *session.Data
	createErr    error
	getErr       error
	destroyCalls int
}

func (f *fakeStore) Create(_ context.Context, _ http.ResponseWriter, data *session.Data) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.data = data
	return "fake-session-id", nil
}

func (f *fakeStore) Get(_ context.Context, _ *http.Request) (*session.Data, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data, nil
}

func (f *fakeStore) Destroy(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
	f.destroyCalls++
	f.data = nil
	return nil
}

func authResult(token string, userID int64) *api.AuthResult {
	return &api.AuthResult{
		Message: "ok",
		User:    models.User{ID: userID, Name: "Ada", Email: "a@b.com"},
		Token:   token,
	}
}

func newTestContext(backend *fakeBackend, store *fakeStore) *Context {
	return NewContext(backend, store)
}

// ---------- Initial state ----------

func TestNewContextStartsInitializing(t *testing.T) {
	c := newTestContext(&fakeBackend{}, &fakeStore{})

	if c.State() != StateInitializing {
		t.Errorf("state: got %v, want %v", c.State(), StateInitializing)
	}
	if c.Session() != nil {
		t.Error("Session should be nil before restore")
	}
	if c.User() != nil {
		t.Error("User should be nil before restore")
	}
	if c.Token() != "" {
		t.Errorf("Token: got %q, want empty", c.Token())
	}
}

// ---------- Restore ----------

func TestRestore(t *testing.T) {
	t.Run("adopts persisted pair without backend call", func(t *testing.T) {
		backend := &fakeBackend{}
		store := &fakeStore{data: &session.Data{
			Token: "T1",
			User:  models.User{ID: 1, Email: "a@b.com"},
		}}
		c := newTestContext(backend, store)

		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		if c.State() != StateAuthenticated {
			t.Fatalf("state: got %v, want authenticated", c.State())
		}
		if c.Token() != "T1" {
			t.Errorf("Token: got %q, want T1", c.Token())
		}
		if c.User().Email != "a@b.com" {
			t.Errorf("User: got %+v", c.User())
		}
		if backend.loginCalls+backend.registerCalls+backend.logoutCalls != 0 {
			t.Error("restore must not touch the backend")
		}
	})

	t.Run("absent session resolves to anonymous", func(t *testing.T) {
		c := newTestContext(&fakeBackend{}, &fakeStore{})
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
	})

	t.Run("store error degrades to anonymous", func(t *testing.T) {
		store := &fakeStore{getErr: errors.New("valkey down")}
		c := newTestContext(&fakeBackend{}, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
	})

	t.Run("pair with empty token treated as absent", func(t *testing.T) {
		store := &fakeStore{data: &session.Data{User: models.User{ID: 1}}}
		c := newTestContext(&fakeBackend{}, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
	})
}

// ---------- Login ----------

func TestLogin(t *testing.T) {
	t.Run("success persists pair and authenticates", func(t *testing.T) {
		backend := &fakeBackend{loginResult: authResult("T1", 1)}
		store := &fakeStore{}
		c := newTestContext(backend, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		w := httptest.NewRecorder()
		err := c.Login(context.Background(), w, api.Credentials{Email: "a@b.com", Password: "secret"})
		if err != nil {
			t.Fatalf("Login: unexpected error: %v", err)
		}

		if c.State() != StateAuthenticated {
			t.Errorf("state: got %v, want authenticated", c.State())
		}
		if c.User().ID != 1 {
			t.Errorf("User.ID: got %d, want 1", c.User().ID)
		}

		// Session Store persisted ("T1", user) as one unit.
		if store.data == nil {
			t.Fatal("session store should hold the pair")
		}
		if store.data.Token != "T1" || store.data.User.ID != 1 {
			t.Errorf("persisted pair: got %+v", store.data)
		}
	})

	t.Run("failure leaves state unchanged", func(t *testing.T) {
		backend := &fakeBackend{loginErr: &api.Error{Status: 401, Message: "Invalid credentials"}}
		store := &fakeStore{}
		c := newTestContext(backend, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		w := httptest.NewRecorder()
		err := c.Login(context.Background(), w, api.Credentials{Email: "a@b.com", Password: "wrong"})
		if err == nil {
			t.Fatal("expected error")
		}

		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
		if store.data != nil {
			t.Errorf("nothing should be persisted on failure, got %+v", store.data)
		}
	})

	t.Run("persistence failure fails the operation", func(t *testing.T) {
		backend := &fakeBackend{loginResult: authResult("T1", 1)}
		store := &fakeStore{createErr: errors.New("valkey down")}
		c := newTestContext(backend, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		w := httptest.NewRecorder()
		err := c.Login(context.Background(), w, api.Credentials{Email: "a@b.com", Password: "secret"})
		if err == nil {
			t.Fatal("expected error when session cannot be persisted")
		}
		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
	})
}

// ---------- Register ----------

func TestRegister(t *testing.T) {
	t.Run("success mirrors login contract", func(t *testing.T) {
		backend := &fakeBackend{registerResult: authResult("T2", 5)}
		store := &fakeStore{}
		c := newTestContext(backend, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		w := httptest.NewRecorder()
		err := c.Register(context.Background(), w, api.Registration{
			Name: "Ada", Email: "a@b.com",
			Password: "secret123", PasswordConfirmation: "secret123",
		})
		if err != nil {
			t.Fatalf("Register: unexpected error: %v", err)
		}
		if c.State() != StateAuthenticated || c.Token() != "T2" {
			t.Errorf("state %v token %q after register", c.State(), c.Token())
		}
	})

	t.Run("backend validation error surfaces to the caller", func(t *testing.T) {
		wantErr := &api.Error{
			Status:  422,
			Message: "The given data was invalid.",
			Fields:  map[string][]string{"password": {"The password confirmation does not match."}},
		}
		backend := &fakeBackend{registerErr: wantErr}
		c := newTestContext(backend, &fakeStore{})
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		w := httptest.NewRecorder()
		err := c.Register(context.Background(), w, api.Registration{})
		if !errors.Is(err, wantErr) {
			t.Errorf("error: got %v, want the backend error verbatim", err)
		}
		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
	})
}

// ---------- Logout ----------

func TestLogout(t *testing.T) {
	authedContext := func(backend *fakeBackend) (*Context, *fakeStore) {
		store := &fakeStore{data: &session.Data{Token: "T1", User: models.User{ID: 1}}}
		c := newTestContext(backend, store)
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))
		return c, store
	}

	t.Run("revokes token and clears session", func(t *testing.T) {
		backend := &fakeBackend{}
		c, store := authedContext(backend)

		w := httptest.NewRecorder()
		c.Logout(context.Background(), w, httptest.NewRequest("POST", "/logout", nil))

		if backend.logoutCalls != 1 || backend.logoutToken != "T1" {
			t.Errorf("backend logout: calls=%d token=%q", backend.logoutCalls, backend.logoutToken)
		}
		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
		if store.data != nil {
			t.Error("session store should report absent after logout")
		}
	})

	t.Run("backend failure still clears locally", func(t *testing.T) {
		backend := &fakeBackend{logoutErr: errors.New("network down")}
		c, store := authedContext(backend)

		w := httptest.NewRecorder()
		c.Logout(context.Background(), w, httptest.NewRequest("POST", "/logout", nil))

		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
		if store.data != nil {
			t.Error("local session must be cleared regardless of the network call")
		}
	})

	t.Run("anonymous logout skips the backend", func(t *testing.T) {
		backend := &fakeBackend{}
		c := newTestContext(backend, &fakeStore{})
		c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

		w := httptest.NewRecorder()
		c.Logout(context.Background(), w, httptest.NewRequest("POST", "/logout", nil))

		if backend.logoutCalls != 0 {
			t.Error("no token means no backend logout call")
		}
		if c.State() != StateAnonymous {
			t.Errorf("state: got %v, want anonymous", c.State())
		}
	})
}

// ---------- Invalidate ----------

func TestInvalidate(t *testing.T) {
	backend := &fakeBackend{}
	store := &fakeStore{data: &session.Data{Token: "T1", User: models.User{ID: 1}}}
	c := newTestContext(backend, store)
	c.Restore(context.Background(), httptest.NewRequest("GET", "/", nil))

	w := httptest.NewRecorder()
	c.Invalidate(context.Background(), w, httptest.NewRequest("GET", "/posts/1", nil))

	if backend.logoutCalls != 0 {
		t.Error("invalidate must not call the backend — the token is already dead")
	}
	if c.State() != StateAnonymous {
		t.Errorf("state: got %v, want anonymous", c.State())
	}
	if store.destroyCalls != 1 {
		t.Errorf("destroy calls: got %d, want 1", store.destroyCalls)
	}
}
