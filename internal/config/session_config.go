package config

import "time"

type SessionConfig interface {
	GetSessionCookieName() string
	GetSessionTTL() time.Duration
	GetAnonWorkCookieName() string
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionCookieName() string {
	return "auth-token"
}

func (Session) GetSessionTTL() time.Duration {
	return 7 * 24 * time.Hour // 7 days, not refreshed per request
}

func (Session) GetAnonWorkCookieName() string {
	return "uigen-anon-id"
}
