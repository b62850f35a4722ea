package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dietdesk/dietdesk/internal/domain/account"
	"github.com/dietdesk/dietdesk/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

const issuer = "dietdesk"

type Claims struct {
	AccountID string       `json:"account_id"`
	Role      account.Role `json:"role"`
	SessionID string       `json:"session_id"`
	TokenType TokenType    `json:"token_type"`
	// ImpersonatorID is set when a higher-ranked account acts as this one.
	ImpersonatorID string `json:"impersonator_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity is who a token speaks for.
type Identity struct {
	AccountID      string
	Role           account.Role
	ImpersonatorID string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

func (s *JWTService) sign(id Identity, sessionID string, tokenType TokenType, now, exp time.Time) (string, error) {
	claims := &Claims{
		AccountID:      id.AccountID,
		Role:           id.Role,
		SessionID:      sessionID,
		TokenType:      tokenType,
		ImpersonatorID: id.ImpersonatorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   id.AccountID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return token, nil
}

// Generate issues an access/refresh pair under a new session id.
func (s *JWTService) Generate(id Identity) (*TokenPair, error) {
	return s.generate(id, uuid.NewString(), true)
}

// GenerateAccessOnly issues a lone access token. Impersonation sessions cannot be refreshed.
func (s *JWTService) GenerateAccessOnly(id Identity) (*TokenPair, error) {
	return s.generate(id, uuid.NewString(), false)
}

func (s *JWTService) generate(id Identity, sessionID string, withRefresh bool) (*TokenPair, error) {
	now := biztime.NowUTC()

	access, err := s.sign(id, sessionID, TokenTypeAccess, now, now.Add(time.Duration(s.accessExpMinutes)*time.Minute))
	if err != nil {
		return nil, err
	}
	pair := &TokenPair{
		AccessToken: access,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
	}
	if !withRefresh {
		return pair, nil
	}

	refresh, err := s.sign(id, sessionID, TokenTypeRefresh, now, now.Add(time.Duration(s.refreshExpDays)*24*time.Hour))
	if err != nil {
		return nil, err
	}
	pair.RefreshToken = refresh
	return pair, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(biztime.NowUTC))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Refresh rotates the pair, keeping the session id.
func (s *JWTService) Refresh(refreshTokenString string) (*Claims, *TokenPair, error) {
	claims, err := s.Verify(refreshTokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, nil, fmt.Errorf("token is not a refresh token")
	}

	pair, err := s.generate(Identity{
		AccountID:      claims.AccountID,
		Role:           claims.Role,
		ImpersonatorID: claims.ImpersonatorID,
	}, claims.SessionID, true)
	if err != nil {
		return nil, nil, err
	}
	return claims, pair, nil
}

// AccessExpMinutes returns the access token expiration time in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
