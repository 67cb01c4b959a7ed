// Package element provides declarative wrappers around page elements.
//
// An element is described by attributes rather than a hand written query:
//
//	btn, err := element.NewButton(ctx, locator.ID("start-btn"), locator.Text("Start"))
//	if err != nil {
//		return err
//	}
//	err = btn.Click(ctx)
//
// The session is taken from ctx (see package session) when the wrapper is
// built. Wrappers borrow the session and never close it.
package element

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/application/session"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/domain/locator"
)

// Kind names the semantic role of a wrapper
type Kind string

const (
	KindElement   Kind = "UIElement"
	KindButton    Kind = "Button"
	KindText      Kind = "Text"
	KindLink      Kind = "Textlink"
	KindImage     Kind = "Image"
	KindContainer Kind = "Container"
	KindInput     Kind = "InputField"
	KindDropdown  Kind = "Dropdown"
	KindFileInput Kind = "FileInput"
)

// Locatable is anything exposing a built locator, such as a drop target.
type Locatable interface {
	Locator() string
}

// Element pairs an immutable locator with a borrowed session.
type Element struct {
	kind    Kind
	locator string
	session *session.Session
	logger  *logrus.Entry
}

// New builds a generic element from the session active in ctx.
func New(ctx context.Context, attrs ...locator.Attribute) (*Element, error) {
	return newElement(ctx, KindElement, attrs)
}

func newElement(ctx context.Context, kind Kind, attrs []locator.Attribute) (*Element, error) {
	s, err := session.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}

	logger := s.Logger().WithField("element", string(kind))
	logger.Debugf("Initializing %s with attributes: %v", kind, attrs)

	xpath := locator.Build(attrs...)
	logger.Debugf("Constructed XPath for %s: %s", kind, xpath)

	return &Element{
		kind:    kind,
		locator: xpath,
		session: s,
		logger:  logger.WithField("locator", xpath),
	}, nil
}

// Kind returns the semantic role
func (e *Element) Kind() Kind { return e.kind }

// Locator returns the XPath built at construction
func (e *Element) Locator() string { return e.locator }

// Session returns the borrowed session
func (e *Element) Session() *session.Session { return e.session }

func (e *Element) String() string {
	return fmt.Sprintf("%s(%s)", e.kind, e.locator)
}

func (e *Element) driver() interfaces.Driver {
	return e.session.Driver()
}

// act runs a delegated driver call and annotates its failure
func (e *Element) act(op entities.ActionType, o options, call func() error) error {
	if err := call(); err != nil {
		e.logger.WithError(err).Errorf("Failed to %s: %s", op, e.locator)
		return &InteractionError{Op: op, Locator: e.locator, Timeout: o.timeout, Err: err}
	}
	return nil
}

// Click waits for the element to be interactable and clicks it.
func (e *Element) Click(ctx context.Context, opts ...Option) error {
	o := e.resolve(opts)
	e.logger.Infof("Attempting to click: %s (Timeout: %s)", e.locator, o.timeout)
	return e.act(entities.ActionClick, o, func() error {
		return e.driver().ClickElement(ctx, e.locator, o.timeout)
	})
}

// DoubleClick issues two Clicks separated by the inter-click delay, so each
// click gets the same readiness wait as a single one.
func (e *Element) DoubleClick(ctx context.Context, opts ...Option) error {
	o := e.resolve(opts)
	e.logger.Infof("Performing double-click: %s", e.locator)

	for i := 0; i < 2; i++ {
		if i > 0 {
			if err := pause(ctx, o.delay); err != nil {
				e.logger.WithError(err).Errorf("Failed to double-click: %s", e.locator)
				return &InteractionError{Op: entities.ActionDoubleClick, Locator: e.locator, Timeout: o.timeout, Err: err}
			}
		}
		if err := e.Click(ctx, opts...); err != nil {
			e.logger.WithError(err).Errorf("Failed to double-click: %s", e.locator)
			return err
		}
	}
	return nil
}

// Hover moves the pointer onto the element.
func (e *Element) Hover(ctx context.Context, opts ...Option) error {
	o := e.resolve(opts)
	e.logger.Infof("Hovering over: %s", e.locator)
	return e.act(entities.ActionHover, o, func() error {
		return e.driver().HoverElement(ctx, e.locator, o.timeout)
	})
}

// Unhover moves the pointer to the origin of the document body.
func (e *Element) Unhover(ctx context.Context, opts ...Option) error {
	o := e.resolve(opts)
	e.logger.Infof("Unhovering from: %s", e.locator)
	return e.act(entities.ActionUnhover, o, func() error {
		return e.driver().UnhoverElement(ctx, o.timeout)
	})
}

// ScrollTo scrolls the viewport until the element is in view.
func (e *Element) ScrollTo(ctx context.Context, opts ...Option) error {
	o := e.resolve(opts)
	e.logger.Infof("Scrolling to: %s", e.locator)
	return e.act(entities.ActionScrollTo, o, func() error {
		return e.driver().ScrollToElement(ctx, e.locator, o.timeout)
	})
}

// DragTo drags this element and drops it onto target.
func (e *Element) DragTo(ctx context.Context, target Locatable, opts ...Option) error {
	o := e.resolve(opts)
	e.logger.Infof("Dragging '%s' to '%s'", e.locator, target.Locator())
	return e.act(entities.ActionDragTo, o, func() error {
		return e.driver().DragAndDrop(ctx, e.locator, target.Locator(), o.timeout)
	})
}

// WaitFor blocks until the locator resolves to a visible element and returns it.
func (e *Element) WaitFor(ctx context.Context, opts ...Option) (interfaces.ElementHandle, error) {
	return e.waitFor(ctx, e.resolve(opts))
}

func (e *Element) waitFor(ctx context.Context, o options) (interfaces.ElementHandle, error) {
	e.logger.Infof("Waiting for: %s", e.locator)
	h, err := e.driver().WaitForElement(ctx, e.locator, o.timeout)
	if err != nil {
		e.logger.WithError(err).Errorf("Failed to %s: %s", entities.ActionWaitFor, e.locator)
		return nil, &WaitTimeoutError{Locator: e.locator, Timeout: o.timeout, Err: err}
	}
	return h, nil
}

// Properties snapshots the first visible match. Every call re-queries the driver.
func (e *Element) Properties(ctx context.Context, opts ...Option) (entities.PropertySnapshot, error) {
	h, err := e.waitFor(ctx, e.resolve(opts))
	if err != nil {
		return entities.PropertySnapshot{}, err
	}
	snap, err := ExtractProperties(h)
	if err != nil {
		e.logger.WithError(err).Errorf("Failed to %s: %s", entities.ActionProperties, e.locator)
		return entities.PropertySnapshot{}, err
	}
	return snap, nil
}

// Attribute reads any attribute of the first visible match; ok is false when
// the element does not carry it.
func (e *Element) Attribute(ctx context.Context, name string, opts ...Option) (string, bool, error) {
	h, err := e.waitFor(ctx, e.resolve(opts))
	if err != nil {
		return "", false, err
	}
	v, ok, err := h.Attribute(name)
	if err != nil {
		e.logger.WithError(err).Errorf("Failed to %s '%s': %s", entities.ActionGetAttribute, name, e.locator)
		return "", false, err
	}
	return v, ok, nil
}

// AllProperties snapshots every match in document order.
func (e *Element) AllProperties(ctx context.Context, opts ...Option) ([]entities.PropertySnapshot, error) {
	o := e.resolve(opts)
	e.logger.Infof("Collecting all matches of: %s", e.locator)

	handles, err := e.driver().WaitForAllElements(ctx, e.locator, o.timeout)
	if err != nil {
		e.logger.WithError(err).Errorf("Failed to %s: %s", entities.ActionAllProperties, e.locator)
		return nil, &WaitTimeoutError{Locator: e.locator, Timeout: o.timeout, Err: err}
	}

	snaps := make([]entities.PropertySnapshot, 0, len(handles))
	for _, h := range handles {
		snap, err := ExtractProperties(h)
		if err != nil {
			e.logger.WithError(err).Errorf("Failed to %s: %s", entities.ActionAllProperties, e.locator)
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// pause - sleeps for d unless ctx ends first
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
