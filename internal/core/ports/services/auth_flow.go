package services

import (
	"context"

	"github.com/authgrid/auth_backend/internal/core/domain"
)

// CallbackState is the terminal state of one OAuth callback attempt. The flow
// between the initial redirect and the callback is stateless; everything that
// can happen after the callback arrives is enumerated here so each outcome is
// handled explicitly rather than falling through generic error paths.
type CallbackState int

const (
	// CallbackSessionIssued: exchange, profile fetch and resolution all
	// succeeded and a session token was minted.
	CallbackSessionIssued CallbackState = iota
	// CallbackProviderDenied: the provider reported an explicit error
	// parameter (user cancelled or denied consent).
	CallbackProviderDenied
	// CallbackMissingCode: the callback carried neither a code nor an error.
	CallbackMissingCode
	// CallbackFailed: a stage after the callback failed; Stage and Err say
	// which and why.
	CallbackFailed
)

// Flow stages, recorded on failure for server-side logging.
const (
	StageExchanging      = "exchanging"
	StageFetchingProfile = "fetching_profile"
	StageResolving       = "resolving"
	StageIssuingSession  = "issuing_session"
)

// CallbackResult is the tagged outcome of CompleteLogin.
type CallbackResult struct {
	State        CallbackState
	Stage        string // set when State == CallbackFailed
	User         *domain.User
	SessionToken string
	Err          error
}

// AuthFlowSvcFacade drives the per-provider OAuth login state machine.
type AuthFlowSvcFacade interface {
	// BeginLogin returns the authorize URL to redirect the client to, or
	// apperrors.ErrNotFound for an unknown provider.
	BeginLogin(provider domain.AuthProvider) (string, error)

	// CompleteLogin runs the callback through exchange, profile fetch,
	// resolution and session issuance, returning a tagged result.
	CompleteLogin(ctx context.Context, provider domain.AuthProvider, code, errParam string) CallbackResult
}
