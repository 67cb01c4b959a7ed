// Package session carries the active browser session through context.Context.
//
// A session is bound with WithActive or RunWith and looked up with Active.
// Since a context value is only visible to code holding that context,
// nested scopes shadow their parents and concurrent tests never observe each
// other's session.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ui_automation/domain/interfaces"
)

// ErrNoActiveSession is returned when no session is bound and none was supplied.
var ErrNoActiveSession = errors.New("no active browser session: bind one with session.RunWith or pass it explicitly")

// Session is a handle to one running browser driver. Elements borrow it;
// only the code that created it closes it.
type Session struct {
	id      string
	driver  interfaces.Driver
	logger  *logrus.Entry
	timeout time.Duration
}

// Option configures a Session
type Option func(*Session)

// WithDefaultTimeout sets the wait bound elements use when a call does not
// pass its own. Non-positive values leave the element default in place.
func WithDefaultTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New wraps driver in a session with a fresh ID
func New(driver interfaces.Driver, logger logrus.FieldLogger, opts ...Option) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.NewString()
	s := &Session{
		id:     id,
		driver: driver,
		logger: logger.WithField("session", id),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier used in log fields
func (s *Session) ID() string { return s.id }

// Driver returns the underlying driver capability
func (s *Session) Driver() interfaces.Driver { return s.driver }

// DefaultTimeout returns the configured wait bound, or zero when unset
func (s *Session) DefaultTimeout() time.Duration { return s.timeout }

// Logger returns the session scoped logger
func (s *Session) Logger() *logrus.Entry { return s.logger }

// Close ends the browser session
func (s *Session) Close() error {
	s.logger.Info("Closing browser session")
	return s.driver.CloseBrowser()
}

type activeKey struct{}

// WithActive returns a copy of ctx in which s is the active session.
func WithActive(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, activeKey{}, s)
}

// Active returns the session bound to ctx.
func Active(ctx context.Context) (*Session, error) {
	if ctx == nil {
		return nil, ErrNoActiveSession
	}
	s, ok := ctx.Value(activeKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoActiveSession
	}
	return s, nil
}

// Resolve prefers override and falls back to the session bound to ctx.
func Resolve(ctx context.Context, override *Session) (*Session, error) {
	if override != nil {
		return override, nil
	}
	return Active(ctx)
}

// RunWith runs body with s as the active session. The scope ends when body
// returns; ctx itself is never modified, so the caller keeps seeing whatever
// session (or none) it had before, whether body succeeds, fails or panics.
func RunWith(ctx context.Context, s *Session, body func(ctx context.Context) error) error {
	if s == nil {
		return ErrNoActiveSession
	}
	s.logger.Debug("Entering session scope")
	defer s.logger.Debug("Leaving session scope")

	return body(WithActive(ctx, s))
}
