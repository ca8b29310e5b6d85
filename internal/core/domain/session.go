package domain

import "time"

// MinPasswordLength is enforced at the input boundary (CLI flags, TUI
// form), not re-validated by the session service.
const MinPasswordLength = 6

// Session is an authenticated identity issued by the auth service.
type Session struct {
	// UserID is the unique identity reference, required for telemetry.
	UserID string

	// Email is the account email.
	Email string

	// AccessToken authorises data API requests.
	AccessToken string

	// RefreshToken obtains a replacement access token after expiry.
	RefreshToken string

	// ExpiresAt is when the access token stops being accepted.
	ExpiresAt time.Time
}

// Expired reports whether the access token has passed its expiry.
// A small skew margin avoids using a token that dies mid-request.
func (s *Session) Expired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt.Add(-30 * time.Second))
}
