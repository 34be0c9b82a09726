package utils

import (
	"context"

	"smartride-portal/internal/data/entity"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenKey   contextKey = "token"
)

// GetSessionFromContext returns the portal session resolved by AuthSession.
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}

func SetSessionContext(ctx context.Context, session *entity.Session) context.Context {
	ctx = context.WithValue(ctx, SessionKey, session)
	return SetTokenContext(ctx, session.BackendToken)
}

// GetTokenFromContext returns the backend bearer token for outgoing calls.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
