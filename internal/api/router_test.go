package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
	"github.com/eventify/eventify/internal/security/password"
	"github.com/eventify/eventify/internal/security/revocation"
	"github.com/eventify/eventify/internal/security/token"
)

type routerFixture struct {
	e           *echo.Echo
	users       *memUserRepo
	events      *memEventRepo
	regs        *memRegistrationRepo
	revocations *revocation.Store
	audit       *captureAudit
}

type fixtureOption func(*Dependencies)

func withLimiter(l ports.LoginLimiter) fixtureOption {
	return func(d *Dependencies) { d.Limiter = l }
}

func newRouterFixture(t *testing.T, opts ...fixtureOption) *routerFixture {
	t.Helper()

	codec, err := token.New([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}

	f := &routerFixture{
		users:       newMemUserRepo(),
		events:      newMemEventRepo(),
		regs:        newMemRegistrationRepo(),
		revocations: revocation.New(100, zerolog.Nop()),
		audit:       &captureAudit{},
	}

	deps := Dependencies{
		Users:         f.users,
		Events:        f.events,
		Registrations: f.regs,
		Codec:         codec,
		Revocations:   f.revocations,
		Audit:         f.audit,
		Metrics:       prometheus.NewRegistry(),
		Log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	f.e = NewRouter(deps)
	return f
}

func (f *routerFixture) seedAccount(t *testing.T, email, plaintext, role string) *domain.User {
	t.Helper()
	hash, err := password.NewBcryptVerifier().Hash(plaintext)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return f.users.seed(domain.User{
		Name:         "Seeded",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

func (f *routerFixture) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) login(t *testing.T, email, plaintext string) (string, string) {
	t.Helper()
	rec := f.do(http.MethodPost, "/api/public/login", "", map[string]string{
		"email":    email,
		"password": plaintext,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("login response carries no token")
	}
	return resp.Token, resp.Role
}

func TestRouter_RegisterThenLogin(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/public/users", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "secret1") {
		t.Fatalf("response must not leak the password: %s", rec.Body.String())
	}

	_, role := f.login(t, "alice@x.com", "secret1")
	if role != domain.RoleUser {
		t.Fatalf("self-registered account must get %s, got %s", domain.RoleUser, role)
	}
}

func TestRouter_LoginRejections(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "a@x.com", "secret1", domain.RoleUser)

	wrongPass := f.do(http.MethodPost, "/api/public/login", "", map[string]string{
		"email": "a@x.com", "password": "nope123",
	})
	unknown := f.do(http.MethodPost, "/api/public/login", "", map[string]string{
		"email": "ghost@x.com", "password": "secret1",
	})

	for name, rec := range map[string]*httptest.ResponseRecorder{"wrong password": wrongPass, "unknown email": unknown} {
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("rejection bodies must not reveal which check failed: %q vs %q",
			wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestRouter_LoginThrottled(t *testing.T) {
	f := newRouterFixture(t, withLimiter(denyingLimiter{}))
	f.seedAccount(t, "a@x.com", "secret1", domain.RoleUser)

	rec := f.do(http.MethodPost, "/api/public/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_RoleIsolation(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "user@x.com", "secret1", domain.RoleUser)
	tok, _ := f.login(t, "user@x.com", "secret1")

	if rec := f.do(http.MethodGet, "/api/user/profile", tok, nil); rec.Code != http.StatusOK {
		t.Fatalf("own group: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := f.do(http.MethodGet, "/api/admin/users", tok, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("admin group: expected 403, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/api/organizer/events", tok, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("organizer group: expected 403, got %d", rec.Code)
	}
}

func TestRouter_UpdateProfile(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "u@x.com", "secret1", domain.RoleUser)
	tok, _ := f.login(t, "u@x.com", "secret1")

	rec := f.do(http.MethodPut, "/api/user/profile", tok, map[string]string{"name": "New Name"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "New Name") {
		t.Fatalf("response should carry the updated name: %s", rec.Body.String())
	}

	if rec := f.do(http.MethodPut, "/api/user/profile", tok, map[string]string{"name": ""}); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400, got %d", rec.Code)
	}
}

func TestRouter_MissingToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/user/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing or invalid token") {
		t.Fatalf("unexpected rejection body: %s", rec.Body.String())
	}
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "a@x.com", "secret1", domain.RoleUser)
	tok, _ := f.login(t, "a@x.com", "secret1")

	if rec := f.do(http.MethodGet, "/api/user/profile", tok, nil); rec.Code != http.StatusOK {
		t.Fatalf("before logout: expected 200, got %d", rec.Code)
	}

	if rec := f.do(http.MethodPost, "/api/auth/logout", tok, nil); rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	if rec := f.do(http.MethodGet, "/api/user/profile", tok, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %d", rec.Code)
	}

	// The token still decodes, so a repeat logout succeeds and Add is a no-op.
	if rec := f.do(http.MethodPost, "/api/auth/logout", tok, nil); rec.Code != http.StatusOK {
		t.Fatalf("repeat logout: expected 200, got %d", rec.Code)
	}

	actions := f.audit.actions()
	var sawLogin, sawLogout bool
	for _, a := range actions {
		switch a {
		case domain.AuditLoginOK:
			sawLogin = true
		case domain.AuditLogout:
			sawLogout = true
		}
	}
	if !sawLogin || !sawLogout {
		t.Fatalf("expected login and logout audit entries, got %v", actions)
	}
}

func TestRouter_LogoutRequiresValidToken(t *testing.T) {
	f := newRouterFixture(t)

	if rec := f.do(http.MethodPost, "/api/auth/logout", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401, got %d", rec.Code)
	}
	if rec := f.do(http.MethodPost, "/api/auth/logout", "garbage-token", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("undecodable token: expected 401, got %d", rec.Code)
	}
	if f.revocations.Len() != 0 {
		t.Fatalf("nothing valid was presented, store must stay empty")
	}
}

func TestRouter_PromotionAppliesToOldToken(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "admin@x.com", "secret1", domain.RoleAdmin)
	user := f.seedAccount(t, "u@x.com", "secret1", domain.RoleUser)

	userTok, _ := f.login(t, "u@x.com", "secret1")
	adminTok, _ := f.login(t, "admin@x.com", "secret1")

	if rec := f.do(http.MethodGet, "/api/organizer/events", userTok, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("before promotion: expected 403, got %d", rec.Code)
	}

	rec := f.do(http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", user.ID), adminTok, map[string]string{
		"role": "ORGANIZER",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("promotion: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Same token, new authority: the gate re-reads the role per request.
	if rec := f.do(http.MethodGet, "/api/organizer/events", userTok, nil); rec.Code != http.StatusOK {
		t.Fatalf("after promotion: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := f.do(http.MethodGet, "/api/user/profile", userTok, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("old role should no longer be held, got %d", rec.Code)
	}
}

func TestRouter_InvalidRoleRejected(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "admin@x.com", "secret1", domain.RoleAdmin)
	user := f.seedAccount(t, "u@x.com", "secret1", domain.RoleUser)
	adminTok, _ := f.login(t, "admin@x.com", "secret1")

	rec := f.do(http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", user.ID), adminTok, map[string]string{
		"role": "SUPERUSER",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
}

func TestRouter_DeletedAccountTokenDies(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "admin@x.com", "secret1", domain.RoleAdmin)
	user := f.seedAccount(t, "u@x.com", "secret1", domain.RoleUser)

	userTok, _ := f.login(t, "u@x.com", "secret1")
	adminTok, _ := f.login(t, "admin@x.com", "secret1")

	if rec := f.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", user.ID), adminTok, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete user: expected 204, got %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/api/user/profile", userTok, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted account's token must stop working, got %d", rec.Code)
	}
}

func TestRouter_PublicEvents(t *testing.T) {
	f := newRouterFixture(t)
	f.events.seed(domain.Event{
		Title:    "Open Meetup",
		DateTime: time.Now().UTC().Add(24 * time.Hour),
	})
	f.events.seed(domain.Event{
		Title:    "Already Happened",
		DateTime: time.Now().UTC().Add(-24 * time.Hour),
	})

	rec := f.do(http.MethodGet, "/api/public/events", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d", rec.Code)
	}

	var events []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected only the upcoming event, got %d", len(events))
	}
}

func TestRouter_EventLifecycle(t *testing.T) {
	f := newRouterFixture(t)
	f.seedAccount(t, "org@x.com", "secret1", domain.RoleOrganizer)
	f.seedAccount(t, "u@x.com", "secret1", domain.RoleUser)
	orgTok, _ := f.login(t, "org@x.com", "secret1")
	userTok, _ := f.login(t, "u@x.com", "secret1")

	rec := f.do(http.MethodPost, "/api/organizer/events", orgTok, map[string]any{
		"title":     "Launch Party",
		"location":  "HQ",
		"date_time": time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339),
		"capacity":  1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created event: %v", err)
	}

	path := fmt.Sprintf("/api/user/events/%d/register", created.ID)
	if rec := f.do(http.MethodPost, path, userTok, nil); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := f.do(http.MethodPost, path, userTok, nil); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	if rec := f.do(http.MethodGet, "/api/user/registrations", userTok, nil); rec.Code != http.StatusOK {
		t.Fatalf("list registrations: expected 200, got %d", rec.Code)
	}

	if rec := f.do(http.MethodDelete, path, userTok, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("cancel: expected 204, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
