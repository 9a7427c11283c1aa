package expired

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/liveness"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	websess "github.com/warrantydesk/warrantydesk/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests. It writes the
// "Reason" field so the expiry prompt content can be asserted.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["Reason"]; exists && v != nil {
			_, _ = io.WriteString(w, ": "+v.(string))
		}
	}

	return nil
}

// testStorage is a minimal in-memory implementation of storage.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func newTestSetup(t *testing.T) (*fiber.App, *liveness.Registry) {
	t.Helper()

	websess.Init(&testStorage{data: make(map[string][]byte)})

	cfg := &config.Config{
		Title: "WarrantyDesk",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}

	// the prober never answers; the registry only has to exist for these tests
	monitors := liveness.NewRegistry(
		liveness.ProberFunc(func(ctx context.Context, _ string) (liveness.Verdict, string) {
			<-ctx.Done()
			return liveness.VerdictUnknown, ""
		}),
		time.Hour,
		func(string, string) {},
	)

	app := fiber.New(fiber.Config{Views: noOpViews{}})
	app.Use(authmiddleware.New(cfg, monitors))

	var s Service
	s.Init(app, cfg, monitors)

	app.Get("/dealer/dashboard", func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})

	return app, monitors
}

func seedExpiredSession(t *testing.T, reason string) string {
	t.Helper()

	sessionID, err := websess.GenerateSessionID()
	if err != nil {
		t.Fatalf("failed to generate session ID: %v", err)
	}

	data := &websess.Data{
		Role:   authz.RoleDealer,
		Token:  "tok-1",
		UserID: "d-1",
		Email:  "dealer@example.com",
	}
	if err := data.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	if err := websess.MarkExpired(sessionID, reason, time.Minute); err != nil {
		t.Fatalf("failed to flag session: %v", err)
	}

	return sessionID
}

func performRequest(t *testing.T, app *fiber.App, method, target, sessionID string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func TestExpiredSessionIsRoutedToPrompt(t *testing.T) {
	app, _ := newTestSetup(t)
	sessionID := seedExpiredSession(t, "token revoked")

	// any page serves only the prompt once the session is flagged
	resp := performRequest(t, app, http.MethodGet, "/dealer/dashboard", sessionID)
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, Path) {
		t.Fatalf("expected redirect to %s, got %s", Path, loc)
	}

	// the requested page travels along, so login can return to it later
	if !strings.Contains(loc, "callbackUrl=%2Fdealer%2Fdashboard") {
		t.Fatalf("expected the requested page in the redirect, got %s", loc)
	}
}

func TestAcknowledgeCarriesCallbackToLogin(t *testing.T) {
	app, _ := newTestSetup(t)
	sessionID := seedExpiredSession(t, "gone")

	form := strings.NewReader("callbackUrl=%2Fdealer%2Fsales")
	req := httptest.NewRequest(http.MethodPost, AcknowledgePath, form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, authmiddleware.LoginPath) || !strings.Contains(loc, "callbackUrl=") {
		t.Fatalf("expected login redirect carrying the callback, got %s", loc)
	}
}

func TestPromptCarriesReason(t *testing.T) {
	app, _ := newTestSetup(t)
	sessionID := seedExpiredSession(t, "token revoked")

	resp := performRequest(t, app, http.MethodGet, Path, sessionID)
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(bodyBytes), "token revoked") {
		t.Fatalf("expected the expiry reason in the prompt, got %q", string(bodyBytes))
	}
}

func TestAcknowledgeDeletesSessionAndRedirects(t *testing.T) {
	app, _ := newTestSetup(t)
	sessionID := seedExpiredSession(t, "gone")

	resp := performRequest(t, app, http.MethodPost, AcknowledgePath, sessionID)

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != authmiddleware.LoginPath {
		t.Fatalf("expected redirect to login, got %s", loc)
	}

	if setCookie := resp.Header.Get("Set-Cookie"); !strings.Contains(setCookie, "session=") {
		t.Fatalf("expected the session cookie to be cleared, got %q", setCookie)
	}

	_ = resp.Body.Close()

	// the session record is gone: the next request goes to login, not the prompt
	resp = performRequest(t, app, http.MethodGet, "/dealer/dashboard", sessionID)
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, authmiddleware.LoginPath) {
		t.Fatalf("expected redirect to login after acknowledgment, got %s", loc)
	}
}

func TestNonExpiredSessionIsSentBack(t *testing.T) {
	app, _ := newTestSetup(t)

	sessionID, err := websess.GenerateSessionID()
	if err != nil {
		t.Fatalf("failed to generate session ID: %v", err)
	}

	data := &websess.Data{Role: authz.RoleDealer, Token: "tok-1"}
	if err := data.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	resp := performRequest(t, app, http.MethodGet, Path, sessionID)
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("a live session has no business on the prompt, got %s", loc)
	}
}
