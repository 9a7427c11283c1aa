// Package backend implements the HTTP client for the warranty backend API.
//
// The backend is the system of record: it verifies credentials, issues the
// opaque session token, and owns all warranty data. The portal only forwards
// requests and renders the results. Responses are mapped onto closed types
// at this boundary so no handler ever inspects raw response shapes.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/liveness"
)

const defaultTimeout = 30 * time.Second

// Client talks to the warranty backend API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a backend client. The timeout bounds every request including
// the liveness probe; a hung probe resolves to Unknown when it elapses.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LoginResult is the backend's answer to a credential check.
type LoginResult struct {
	Status  bool   `json:"status"`
	Role    string `json:"role"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// Login submits form-encoded credentials to the backend.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{
		"email":    {email},
		"password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &result, nil
}

// checkSessionResponse is the wire shape of the backend liveness answer.
// Valid is a pointer so a well-formed body missing the flag is
// distinguishable from an explicit valid:false.
type checkSessionResponse struct {
	Valid  *bool  `json:"valid"`
	Reason string `json:"reason"`
}

// CheckSession asks the backend whether the session token is still accepted.
//
// A 200 body with valid:false and a 401 status are treated identically as
// Expired. Any other status, a network failure, or a body that fails to
// parse as JSON is Unknown — an ambiguous signal must never terminate a
// user's session. CheckSession implements liveness.Prober.
func (c *Client) CheckSession(ctx context.Context, token string) (liveness.Verdict, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/auth/check-session", nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to build check-session request")
		return liveness.VerdictUnknown, ""
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("check-session request failed")
		return liveness.VerdictUnknown, ""
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		return liveness.VerdictExpired, "session no longer accepted"
	}

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Msg("check-session returned unexpected status")
		return liveness.VerdictUnknown, ""
	}

	var body checkSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Debug().Err(err).Msg("check-session body failed to parse")
		return liveness.VerdictUnknown, ""
	}

	if body.Valid == nil {
		// well-formed JSON but not the shape we expect
		log.Debug().Msg("check-session body is missing the valid flag")
		return liveness.VerdictUnknown, ""
	}

	if !*body.Valid {
		return liveness.VerdictExpired, body.Reason
	}

	return liveness.VerdictValid, ""
}

// UpdateDealerStatus forwards an account-status mutation to the backend.
func (c *Client) UpdateDealerStatus(ctx context.Context, token, dealerID string, status, reason string) error {
	payload, err := json.Marshal(map[string]string{
		"status": status,
		"reason": reason,
	})
	if err != nil {
		return fmt.Errorf("failed to encode status payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/dealers/"+url.PathEscape(dealerID)+"/status", strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("status request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

// Dealer is a dealer account as listed by the backend.
type Dealer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Customer is a dealer's customer record.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Package is a warranty package definition.
type Package struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DurationMonths int     `json:"duration_months"`
	Price          float64 `json:"price"`
}

// Warranty is an issued warranty as seen by a customer.
type Warranty struct {
	ID          string `json:"id"`
	PackageName string `json:"package_name"`
	Serial      string `json:"serial"`
	ExpiresAt   string `json:"expires_at"`
}

// Sale is a dealer's warranty sale record.
type Sale struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customer_name"`
	PackageName  string  `json:"package_name"`
	Amount       float64 `json:"amount"`
	SoldAt       string  `json:"sold_at"`
}

// Invoice is a billing record. The backend scopes the listing to the
// authenticated principal, so the same endpoint serves all roles.
type Invoice struct {
	ID       string  `json:"id"`
	Number   string  `json:"number"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	IssuedAt string  `json:"issued_at"`
}

// ListDealers fetches all dealer accounts (admin view).
func (c *Client) ListDealers(ctx context.Context, token string) ([]Dealer, error) {
	var out []Dealer
	return out, c.getJSON(ctx, token, "/api/dealers", &out)
}

// ListCustomers fetches the authenticated dealer's customers.
func (c *Client) ListCustomers(ctx context.Context, token string) ([]Customer, error) {
	var out []Customer
	return out, c.getJSON(ctx, token, "/api/customers", &out)
}

// ListPackages fetches the warranty package catalogue.
func (c *Client) ListPackages(ctx context.Context, token string) ([]Package, error) {
	var out []Package
	return out, c.getJSON(ctx, token, "/api/packages", &out)
}

// ListWarranties fetches the authenticated customer's warranties.
func (c *Client) ListWarranties(ctx context.Context, token string) ([]Warranty, error) {
	var out []Warranty
	return out, c.getJSON(ctx, token, "/api/warranties", &out)
}

// ListSales fetches the authenticated dealer's warranty sales.
func (c *Client) ListSales(ctx context.Context, token string) ([]Sale, error) {
	var out []Sale
	return out, c.getJSON(ctx, token, "/api/sales", &out)
}

// ListInvoices fetches the invoices visible to the authenticated principal.
func (c *Client) ListInvoices(ctx context.Context, token string) ([]Invoice, error) {
	var out []Invoice
	return out, c.getJSON(ctx, token, "/api/invoices", &out)
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, token, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request for %s failed: %w", path, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)

		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}

	return nil
}
