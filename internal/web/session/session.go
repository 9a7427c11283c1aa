// Package session manages the portal-side session records.
//
// A session identifies the authenticated principal: its role, the opaque
// backend-issued credential, and the account status carried for roles that
// support suspension. Mutation is funneled through three entry points only:
// Write (login flow), MarkExpired (liveness monitor), and Delete (logout).
// Everything else reads.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"

	"github.com/warrantydesk/warrantydesk/internal/authz"
)

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure.
type Data struct {
	// Role is the principal's role, immutable once the session exists.
	Role authz.Role
	// Token is the opaque backend-issued credential.
	Token string
	// UserID is the backend's identifier for the principal. For dealers it
	// keys the write-through status record.
	UserID string
	// Email is the login identity, kept for display.
	Email string
	// AccountStatus is carried for roles that support suspension
	// (currently only dealers) and mirrors the write-through status record.
	AccountStatus authz.AccountStatus
	// Expired is set by the liveness monitor when the backend reports the
	// credential invalid. The session record is kept so the expiry prompt
	// can be rendered; it is deleted once the user acknowledges.
	Expired bool
	// ExpiredReason is the backend-supplied reason, if any.
	ExpiredReason string
}

// Authenticated reports whether the session identifies a logged-in and
// not-yet-expired principal.
func (s *Data) Authenticated() bool {
	return s.Role.Valid() && s.Token != "" && !s.Expired
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// MarkExpired flags a session as invalidated by the backend. This is the
// liveness monitor's only write path; the record survives with a fresh
// expiry so the prompt can still be rendered.
func MarkExpired(sessionID, reason string, exp time.Duration) error {
	data := new(Data)
	if err := data.Read(sessionID); err != nil {
		return err
	}

	data.Expired = true
	data.ExpiredReason = reason

	return data.Write(sessionID, exp)
}

// Delete removes a session record. Used by logout and by expiry
// acknowledgment.
func Delete(sessionID string) error {
	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
func Init(storage storage.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
