// Package liveness implements the background session liveness monitor.
//
// A Monitor watches one authenticated session. While the session is on a
// protected route the monitor is Watching: it probes the backend on a fixed
// interval (plus once immediately) and asks whether the credential is still
// accepted. The probe outcome is a closed verdict:
//
//   - Valid: the backend confirmed the credential
//   - Expired: the backend reported the credential invalid (HTTP 401, or a
//     well-formed response carrying valid:false)
//   - Unknown: a transient network, server, or parse failure
//
// Unknown is never treated as Expired. An ambiguous signal must not
// terminate a user's session; it is logged and the next tick tries again.
//
// On Expired the monitor moves to ExpiredNotified, marks the session
// through the single session-writer callback, and suppresses further probes
// until the user acknowledges and re-authenticates. ExpiredNotified is
// monotonic: a stale probe resolving late cannot move the machine back to
// Watching.
//
// Stop tears the monitor down: the interval timer is cancelled and any
// in-flight probe is abandoned, not awaited. A probe that resolves against
// a torn-down monitor is a no-op.
package liveness
