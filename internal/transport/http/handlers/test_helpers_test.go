package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/culturalite/backend/internal/application/auth"
	"github.com/culturalite/backend/internal/application/event"
	"github.com/culturalite/backend/internal/domain"
	"github.com/culturalite/backend/internal/infrastructure/memory"
	"github.com/culturalite/backend/internal/infrastructure/security"
	"github.com/culturalite/backend/internal/logger"
	"github.com/culturalite/backend/internal/transport/http/router"
)

func init() {
	logger.InitWithWriter(io.Discard)
}

/*
Test wiring: real services and real crypto over in-memory stores.
*/

type userRecord struct {
	user    domain.User
	profile domain.Profile
}

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]userRecord
	byEmail map[string]userRecord
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]userRecord{}, byEmail: map[string]userRecord{}}
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (domain.User, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return domain.User{}, domain.Profile{}, domain.ErrUserNotFound()
	}
	return rec.user, rec.profile, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (domain.User, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.Profile{}, domain.ErrUserNotFound()
	}
	return rec.user, rec.profile, nil
}

func (f *fakeUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return ok, nil
}

func (f *fakeUsers) CreateWithProfile(ctx context.Context, u domain.User, p domain.Profile) (domain.User, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.Profile{}, domain.ErrEmailAlreadyExists()
	}
	u.CreatedAt = time.Now()
	p.UserID = u.ID
	p.CreatedAt = u.CreatedAt
	p.UpdatedAt = u.CreatedAt
	rec := userRecord{user: u, profile: p}
	f.byID[u.ID] = rec
	f.byEmail[u.Email] = rec
	return u, p, nil
}

type fakeEvents struct {
	events []domain.Event
}

func (f *fakeEvents) CountPublic(ctx context.Context, _ event.ListFilter) (int, error) {
	return len(f.events), nil
}

func (f *fakeEvents) ListPublic(ctx context.Context, _ event.ListFilter, limit, offset int) ([]domain.Event, error) {
	if offset >= len(f.events) {
		return []domain.Event{}, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

type testEnv struct {
	handler http.Handler
	users   *fakeUsers
}

func newTestEnv(t *testing.T, events []domain.Event) *testEnv {
	t.Helper()

	users := newFakeUsers()
	authSvc := auth.NewService(
		users,
		security.NewBcryptHasher(4),
		security.NewJWTSigner("test-secret", "culturalite"),
		memory.NewTokenBlacklist(),
		auth.Config{RotateRefreshTokens: true},
	)
	eventSvc := event.New(&fakeEvents{events: events}, nil, 0)

	h, err := router.New(router.Deps{
		Health: NewHealthHandler("test"),
		Auth:   NewAuthHandler(authSvc, 7*24*time.Hour, false),
		Events: NewEventHandler(eventSvc),
		Limits: router.DefaultRateLimits(),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &testEnv{handler: h, users: users}
}

func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func mustReadJSON(t *testing.T, r io.Reader, out any) {
	t.Helper()
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode json: %v; body=%s", err, raw)
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func readCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func validRegisterBody() map[string]string {
	return map[string]string{
		"email":             "new@example.com",
		"password":          "CorrectHorse9",
		"password_confirm":  "CorrectHorse9",
		"first_name":        "Ravi",
		"last_name":         "Menon",
		"organization_name": "Kochi Culture Hub",
	}
}

// register + login, returns the access token and refresh cookie.
func (e *testEnv) loginUser(t *testing.T) (string, *http.Cookie) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/register", mustJSONBody(t, validRegisterBody()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/auth/login", mustJSONBody(t, map[string]string{
		"username": "new@example.com",
		"password": "CorrectHorse9",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Access string `json:"access"`
	}
	mustReadJSON(t, rec.Body, &resp)

	cookie := readCookie(t, rec, security.RefreshCookieName)
	if cookie == nil {
		t.Fatalf("login did not set the refresh cookie")
	}
	return resp.Access, cookie
}
