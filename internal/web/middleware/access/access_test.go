package access_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/db/controller/dealerstatus"
	"github.com/warrantydesk/warrantydesk/internal/db/models"
	"github.com/warrantydesk/warrantydesk/internal/web/middleware/access"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	websess "github.com/warrantydesk/warrantydesk/internal/web/session"
)

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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.DealerStatus{}); err != nil {
		t.Fatalf("failed to migrate dealer status model: %v", err)
	}

	return db
}

// newTestApp builds an app with the session middleware in front, the way
// the real service wires it, so locals are populated for the access checks.
func newTestApp() *fiber.App {
	websess.Init(&testStorage{data: make(map[string][]byte)})

	cfg := &config.Config{
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}

	app := fiber.New()
	app.Use(authmiddleware.New(cfg, nil))

	return app
}

func seedSession(t *testing.T, role authz.Role, userID string) string {
	t.Helper()

	sessionID, err := websess.GenerateSessionID()
	if err != nil {
		t.Fatalf("failed to generate session ID: %v", err)
	}

	data := &websess.Data{
		Role:   role,
		Token:  "tok-" + string(role),
		UserID: userID,
		Email:  string(role) + "@example.com",
	}
	if err := data.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	return sessionID
}

func performGet(t *testing.T, app *fiber.App, target, sessionID string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func newGuard(t *testing.T) *authz.Guard {
	t.Helper()

	reg, err := authz.NewRegistry()
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	return authz.NewGuard(reg)
}

func TestRequirePermission(t *testing.T) {
	guard := newGuard(t)

	testCases := []struct {
		name           string
		role           authz.Role
		permission     string
		expectedStatus int
	}{
		{
			name:           "admin may view dealers",
			role:           authz.RoleAdmin,
			permission:     authz.PermAdminDealersView,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "customer may not view dealers",
			role:           authz.RoleCustomer,
			permission:     authz.PermAdminDealersView,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "super_admin passes every check",
			role:           authz.RoleSuperAdmin,
			permission:     authz.PermDealerSalesCreate,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/guarded",
				access.RequirePermission(guard, tc.permission),
				func(c *fiber.Ctx) error { return c.SendString("ok") },
			)

			sessionID := seedSession(t, tc.role, "u-1")

			resp := performGet(t, app, "/guarded", sessionID)
			defer func() {
				_ = resp.Body.Close()
			}()

			if resp.StatusCode != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestRequirePermission_NoSessionIsRedirectedToLogin(t *testing.T) {
	guard := newGuard(t)

	app := newTestApp()
	app.Get("/guarded",
		access.RequirePermission(guard, authz.PermAdminDealersView),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	// the session middleware redirects before the permission check runs
	resp := performGet(t, app, "/guarded", "")
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", resp.StatusCode)
	}
}

func TestDealerGate(t *testing.T) {
	db := newTestDB(t)
	guard := newGuard(t)

	app := newTestApp()
	app.Get("/dealer/sales",
		access.RequirePermission(guard, authz.PermDealerSalesView),
		access.DealerGate(db),
		func(c *fiber.Ctx) error { return c.SendString("sales") },
	)

	sessionID := seedSession(t, authz.RoleDealer, "d-1")

	// active dealer passes
	resp := performGet(t, app, "/dealer/sales", sessionID)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("active dealer must pass the gate, got %d", resp.StatusCode)
	}

	_ = resp.Body.Close()

	// suspend mid-session: the very next request is blocked
	if _, err := dealerstatus.Set(db, "d-1", authz.AccountStatusInactive, "unpaid fees"); err != nil {
		t.Fatalf("failed to record suspension: %v", err)
	}

	resp = performGet(t, app, "/dealer/sales", sessionID)

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("suspended dealer must be redirected, got %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != access.SuspendedPath {
		t.Fatalf("expected redirect to %s, got %s", access.SuspendedPath, loc)
	}

	_ = resp.Body.Close()

	// reinstating restores the exact same access
	if _, err := dealerstatus.Set(db, "d-1", authz.AccountStatusActive, ""); err != nil {
		t.Fatalf("failed to reinstate: %v", err)
	}

	resp = performGet(t, app, "/dealer/sales", sessionID)
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reinstated dealer must pass the gate again, got %d", resp.StatusCode)
	}
}

func TestDealerGate_IgnoresNonDealers(t *testing.T) {
	db := newTestDB(t)
	guard := newGuard(t)

	app := newTestApp()
	app.Get("/guarded",
		access.RequirePermission(guard, authz.PermAdminDealersView),
		access.DealerGate(db),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	// a status record under the admin's ID must not lock the admin out
	if _, err := dealerstatus.Set(db, "a-1", authz.AccountStatusInactive, "bogus"); err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}

	sessionID := seedSession(t, authz.RoleAdmin, "a-1")

	resp := performGet(t, app, "/guarded", sessionID)
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("the gate only applies to dealers, got %d", resp.StatusCode)
	}
}
