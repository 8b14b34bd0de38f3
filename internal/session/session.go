package session

import (
	"context"
	"errors"

	"salonadmin/internal/models"
)

// Storage keys within the scoped region. The three entries live and die
// together: a session is either fully present or fully absent.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// ErrPartialSession is returned when a save would leave the store with only
// one half of the token pair.
var ErrPartialSession = errors.New("session: access and refresh tokens must both be present")

// Session is the logged-in operator's credential pair plus user record.
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// IsAuthenticated reports whether a non-empty access token is held.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) validate() error {
	if s.AccessToken == "" || s.RefreshToken == "" {
		return ErrPartialSession
	}
	return nil
}

// Store persists the session across console restarts. Load returns (nil, nil)
// when no session is stored. Clear is idempotent.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
