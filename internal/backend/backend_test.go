package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/warrantydesk/warrantydesk/internal/liveness"
)

func newCheckSessionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/check-session" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestCheckSession(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		verdict liveness.Verdict
		reason  string
	}{
		{
			name:    "valid session",
			status:  http.StatusOK,
			body:    `{"valid": true}`,
			verdict: liveness.VerdictValid,
		},
		{
			name:    "explicit invalid flag is expired",
			status:  http.StatusOK,
			body:    `{"valid": false, "reason": "token revoked"}`,
			verdict: liveness.VerdictExpired,
			reason:  "token revoked",
		},
		{
			name:    "unauthorized is expired",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			verdict: liveness.VerdictExpired,
			reason:  "session no longer accepted",
		},
		{
			name:    "server error with unparseable body is unknown",
			status:  http.StatusInternalServerError,
			body:    `<html>boom</html>`,
			verdict: liveness.VerdictUnknown,
		},
		{
			name:    "ok status with non-JSON body is unknown",
			status:  http.StatusOK,
			body:    `not json at all`,
			verdict: liveness.VerdictUnknown,
		},
		{
			name:    "ok status with unexpected shape is unknown",
			status:  http.StatusOK,
			body:    `{"something": "else"}`,
			verdict: liveness.VerdictUnknown,
		},
		{
			name:    "teapot is unknown",
			status:  http.StatusTeapot,
			body:    `{"valid": true}`,
			verdict: liveness.VerdictUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newCheckSessionServer(t, tc.status, tc.body)
			defer srv.Close()

			client := New(srv.URL, time.Second)

			verdict, reason := client.CheckSession(context.Background(), "tok-1")
			if verdict != tc.verdict {
				t.Fatalf("expected verdict %v, got %v", tc.verdict, verdict)
			}

			if reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, reason)
			}
		})
	}
}

func TestCheckSession_NetworkFailureIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := New(srv.URL, time.Second)

	verdict, _ := client.CheckSession(context.Background(), "tok-1")
	if verdict != liveness.VerdictUnknown {
		t.Fatalf("a connection failure must be Unknown, got %v", verdict)
	}
}

func TestCheckSession_TimeoutIsUnknown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"valid": true}`))
	}))

	defer srv.Close()
	defer close(release)

	client := New(srv.URL, 50*time.Millisecond)

	start := time.Now()

	verdict, _ := client.CheckSession(context.Background(), "tok-1")
	if verdict != liveness.VerdictUnknown {
		t.Fatalf("a hung probe must resolve to Unknown, got %v", verdict)
	}

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("probe was not bounded by the client timeout, took %v", elapsed)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if err := r.ParseForm(); err != nil {
			t.Errorf("form parse failed: %v", err)
		}

		if r.PostFormValue("email") != "dealer@example.com" {
			t.Errorf("unexpected email %q", r.PostFormValue("email"))
		}

		if r.PostFormValue("password") == "good-password" {
			_, _ = w.Write([]byte(`{"status": true, "role": "dealer", "token": "tok-9"}`))
			return
		}

		_, _ = w.Write([]byte(`{"status": false, "message": "invalid email or password"}`))
	}))

	defer srv.Close()

	client := New(srv.URL, time.Second)

	result, err := client.Login(context.Background(), "dealer@example.com", "good-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !result.Status || result.Role != "dealer" || result.Token != "tok-9" {
		t.Fatalf("unexpected login result %+v", result)
	}

	result, err = client.Login(context.Background(), "dealer@example.com", "bad-password")
	if err != nil {
		t.Fatalf("rejected login is not a transport error: %v", err)
	}

	if result.Status {
		t.Fatal("expected status false for bad credentials")
	}

	if result.Message != "invalid email or password" {
		t.Fatalf("expected backend message to be carried, got %q", result.Message)
	}
}

func TestUpdateDealerStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}

		if r.URL.Path != "/api/dealers/d-7/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
	}))

	defer srv.Close()

	client := New(srv.URL, time.Second)

	err := client.UpdateDealerStatus(context.Background(), "tok-1", "d-7", "inactive", "unpaid fees")
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
}

func TestGetJSON_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	defer srv.Close()

	client := New(srv.URL, time.Second)

	_, err := client.ListCustomers(context.Background(), "tok-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestListDealers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dealers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		_, _ = w.Write([]byte(`[{"id": "d-1", "name": "Acme Motors", "status": "active"}]`))
	}))

	defer srv.Close()

	client := New(srv.URL, time.Second)

	dealers, err := client.ListDealers(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("list dealers failed: %v", err)
	}

	if len(dealers) != 1 || dealers[0].Name != "Acme Motors" {
		t.Fatalf("unexpected dealers %+v", dealers)
	}
}
