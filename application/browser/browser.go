// Package browser exposes page, tab and alert level operations on the
// active session. Pass WithSession to target a session explicitly.
package browser

import (
	"context"
	"fmt"
	"time"

	"ui_automation/application/session"
	"ui_automation/domain/entities"
)

// DefaultAlertTimeout bounds AcceptAlert and DismissAlert
const DefaultAlertTimeout = 5 * time.Second

type options struct {
	session *session.Session
	timeout time.Duration
}

// Option configures a single call
type Option func(*options)

// WithSession overrides the session bound to ctx
func WithSession(s *session.Session) Option {
	return func(o *options) { o.session = s }
}

// WithTimeout overrides DefaultAlertTimeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func activeSession(ctx context.Context, op entities.ActionType, opts []Option) (*session.Session, options, error) {
	o := options{timeout: DefaultAlertTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	s, err := session.Resolve(ctx, o.session)
	if err != nil {
		return nil, o, fmt.Errorf("%s: %w", op, err)
	}
	return s, o, nil
}

// run - resolves the session, logs intent and annotates failures
func run(ctx context.Context, op entities.ActionType, opts []Option, call func(*session.Session, options) error) error {
	s, o, err := activeSession(ctx, op, opts)
	if err != nil {
		return err
	}
	s.Logger().Infof("Browser: %s", op)
	if err := call(s, o); err != nil {
		s.Logger().WithError(err).Errorf("Browser: %s failed", op)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OpenURL navigates the current tab to url
func OpenURL(ctx context.Context, url string, opts ...Option) error {
	return run(ctx, entities.ActionNavigate, opts, func(s *session.Session, _ options) error {
		s.Logger().Infof("Navigating to: %s", url)
		return s.Driver().OpenURL(ctx, url)
	})
}

// AcceptAlert accepts the open alert, waiting up to the timeout for one to appear
func AcceptAlert(ctx context.Context, opts ...Option) error {
	return run(ctx, entities.ActionAcceptAlert, opts, func(s *session.Session, o options) error {
		return s.Driver().AcceptAlert(ctx, o.timeout)
	})
}

// DismissAlert dismisses the open alert, waiting up to the timeout for one to appear
func DismissAlert(ctx context.Context, opts ...Option) error {
	return run(ctx, entities.ActionDismissAlert, opts, func(s *session.Session, o options) error {
		return s.Driver().DismissAlert(ctx, o.timeout)
	})
}

// SwitchToNewTab focuses the most recently opened tab
func SwitchToNewTab(ctx context.Context, opts ...Option) error {
	return run(ctx, entities.ActionSwitchNewTab, opts, func(s *session.Session, _ options) error {
		return s.Driver().SwitchToNewTab(ctx)
	})
}

// SwitchToOriginalTab focuses the tab the session started with
func SwitchToOriginalTab(ctx context.Context, opts ...Option) error {
	return run(ctx, entities.ActionSwitchOriginal, opts, func(s *session.Session, _ options) error {
		return s.Driver().SwitchToOriginalTab(ctx)
	})
}

// CloseCurrentTab closes the focused tab
func CloseCurrentTab(ctx context.Context, opts ...Option) error {
	return run(ctx, entities.ActionCloseTab, opts, func(s *session.Session, _ options) error {
		return s.Driver().CloseCurrentTab(ctx)
	})
}

// CloseBrowser ends the whole session
func CloseBrowser(ctx context.Context, opts ...Option) error {
	return run(ctx, entities.ActionCloseBrowser, opts, func(s *session.Session, _ options) error {
		return s.Close()
	})
}

// CurrentURL returns the URL of the focused tab
func CurrentURL(ctx context.Context, opts ...Option) (string, error) {
	var url string
	err := run(ctx, entities.ActionCurrentURL, opts, func(s *session.Session, _ options) error {
		var err error
		url, err = s.Driver().GetCurrentURL(ctx)
		return err
	})
	return url, err
}

// Title returns the title of the focused tab
func Title(ctx context.Context, opts ...Option) (string, error) {
	var title string
	err := run(ctx, entities.ActionTitle, opts, func(s *session.Session, _ options) error {
		var err error
		title, err = s.Driver().GetPageTitle(ctx)
		return err
	})
	return title, err
}

// Screenshot captures the focused tab as PNG
func Screenshot(ctx context.Context, opts ...Option) ([]byte, error) {
	var png []byte
	err := run(ctx, entities.ActionScreenshot, opts, func(s *session.Session, _ options) error {
		var err error
		png, err = s.Driver().TakeScreenshot(ctx)
		return err
	})
	return png, err
}
