package handlers

import (
	"github.com/dietdesk/dietdesk/internal/application/account/dto"
	subdto "github.com/dietdesk/dietdesk/internal/application/subscription/dto"
	"github.com/dietdesk/dietdesk/internal/infrastructure/auth"
)

// TokenResponse is what login, refresh and impersonation return.
type TokenResponse struct {
	Account      *dto.AccountDTO `json:"account,omitempty"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	ExpiresIn    int64           `json:"expires_in"`
	// ImpersonatorID is set on impersonation tokens.
	ImpersonatorID string `json:"impersonator_id,omitempty"`
}

func toTokenResponse(a *dto.AccountDTO, tokens *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		Account:      a,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}
}

type RegisterResponse struct {
	Account      *dto.AccountDTO         `json:"account"`
	Subscription *subdto.SubscriptionDTO `json:"subscription"`
	CheckoutURL  string                  `json:"checkout_url,omitempty"`
}
