package domain

import "time"

// TokenResult holds the outcome of an authorization-code exchange. It lives
// for a single callback cycle and is discarded after the profile fetch.
type TokenResult struct {
	AccessToken string
	TokenType   string
	Scope       string
	Expiry      time.Time
	IDToken     string // optional, Google only
}

// ExternalProfile is the normalized shape of a provider's user record, used
// only to construct or look up a User.
type ExternalProfile struct {
	Provider       AuthProvider
	ProviderUserID string
	Email          string
	Name           string
}
