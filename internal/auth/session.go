package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSession covers bad signatures, expired tokens and revoked or
// unknown sessions alike.
var ErrInvalidSession = errors.New("invalid session")

type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type SessionStore interface {
	Create(ctx context.Context, s Session) error
	Active(ctx context.Context, id string, now time.Time) (bool, error)
	Revoke(ctx context.Context, id string, now time.Time) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sessions issues and checks admin session tokens. A token is valid while
// its signature and expiry check out and its row in Store is active.
type Sessions struct {
	Tokens TokenService
	Store  SessionStore
	Now    func() time.Time
}

func NewSessions(tokens TokenService, store SessionStore) *Sessions {
	return &Sessions{Tokens: tokens, Store: store, Now: time.Now}
}

func (s *Sessions) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Start records a new session for username and returns its signed token.
func (s *Sessions) Start(ctx context.Context, username string) (string, Session, error) {
	now := s.now().Truncate(time.Second)
	if _, err := s.Store.PurgeExpired(ctx, now); err != nil {
		return "", Session{}, err
	}

	sess := Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.Tokens.Duration),
	}
	if err := s.Store.Create(ctx, sess); err != nil {
		return "", Session{}, err
	}
	token, err := s.Tokens.Sign(sess)
	if err != nil {
		return "", Session{}, err
	}
	return token, sess, nil
}

// Validate returns the claims of a live session token.
func (s *Sessions) Validate(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	ok, err := s.Store.Active(ctx, claims.SessionID(), s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// End revokes the session behind token. Tokens that do not parse are
// ignored: there is nothing to revoke.
func (s *Sessions) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.Store.Revoke(ctx, claims.SessionID(), s.now())
}
