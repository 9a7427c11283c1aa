package liveness

import "context"

// Verdict is the outcome of a single liveness probe. It is a closed type:
// the raw backend response is mapped onto a Verdict at the client boundary
// and all monitor logic operates on the variant, never on response shapes.
type Verdict int

const (
	// VerdictUnknown marks a transient network, server, or parse failure.
	// It must never be treated as VerdictExpired.
	VerdictUnknown Verdict = iota
	// VerdictValid confirms the credential is still accepted.
	VerdictValid
	// VerdictExpired reports the backend no longer accepts the credential.
	VerdictExpired
)

// String returns the verdict name for logging.
func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Prober asks the backend whether a credential is still accepted.
// The returned reason is only meaningful for VerdictExpired.
type Prober interface {
	CheckSession(ctx context.Context, token string) (Verdict, string)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, token string) (Verdict, string)

// CheckSession calls f.
func (f ProberFunc) CheckSession(ctx context.Context, token string) (Verdict, string) {
	return f(ctx, token)
}
