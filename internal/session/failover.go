package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore serves from the primary store and drops to the fallback when
// the primary errors, probing the primary again after a cooldown. In the
// console this pairs Redis with an in-memory fallback so a Redis outage
// degrades persistence, not the session itself.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of last failed primary attempt
}

const primaryRetryInterval = time.Minute

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FailoverStore) markDown(err error) {
	f.logger.Error().Err(err).Msg("Primary session store failed, falling back to memory")
	f.isDown.Store(true)
	f.lastCheck.Store(time.Now().UnixNano())
}

func (f *FailoverStore) primaryUsable() bool {
	if !f.isDown.Load() {
		return true
	}
	return time.Since(time.Unix(0, f.lastCheck.Load())) > primaryRetryInterval
}

func (f *FailoverStore) Load(ctx context.Context) (*Session, error) {
	if f.primaryUsable() {
		s, err := f.primary.Load(ctx)
		if err == nil {
			f.isDown.Store(false)
			return s, nil
		}
		f.markDown(err)
	}
	return f.fallback.Load(ctx)
}

func (f *FailoverStore) Save(ctx context.Context, s *Session) error {
	if err := s.validate(); err != nil {
		return err
	}

	// The fallback mirrors every write so a later failover still sees the
	// current session.
	if err := f.fallback.Save(ctx, s); err != nil {
		return err
	}

	if f.primaryUsable() {
		err := f.primary.Save(ctx, s)
		if err == nil {
			f.isDown.Store(false)
			return nil
		}
		f.markDown(err)
	}
	return nil
}

func (f *FailoverStore) Clear(ctx context.Context) error {
	if err := f.fallback.Clear(ctx); err != nil {
		return err
	}

	if f.primaryUsable() {
		err := f.primary.Clear(ctx)
		if err == nil {
			f.isDown.Store(false)
			return nil
		}
		f.markDown(err)
	}
	return nil
}
