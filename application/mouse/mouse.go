// Package mouse issues raw pointer gestures against resolved element handles.
// Unlike package element it performs no waiting.
package mouse

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"ui_automation/application/session"
	"ui_automation/domain/interfaces"
)

// Mouse drives the pointer of one session
type Mouse struct {
	pointer interfaces.Pointer
	logger  logrus.FieldLogger
}

// New creates a Mouse over pointer
func New(pointer interfaces.Pointer, logger logrus.FieldLogger) *Mouse {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Mouse{
		pointer: pointer,
		logger:  logger.WithField("component", "Mouse"),
	}
}

// FromContext creates a Mouse over the session active in ctx
func FromContext(ctx context.Context) (*Mouse, error) {
	s, err := session.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("mouse: %w", err)
	}
	return New(s.Driver(), s.Logger()), nil
}

// Click clicks h
func (m *Mouse) Click(ctx context.Context, h interfaces.ElementHandle) error {
	m.logger.Debug("Executing native mouse click")
	return m.pointer.ClickHandle(ctx, h)
}

// DoubleClick double-clicks h with the driver's native gesture
func (m *Mouse) DoubleClick(ctx context.Context, h interfaces.ElementHandle) error {
	m.logger.Debug("Executing native mouse double click")
	return m.pointer.DoubleClickHandle(ctx, h)
}

// Hover moves the pointer onto h
func (m *Mouse) Hover(ctx context.Context, h interfaces.ElementHandle) error {
	m.logger.Debug("Executing hover")
	return m.pointer.MoveToHandle(ctx, h)
}

// Unhover moves the pointer to the top-left corner of <body>
func (m *Mouse) Unhover(ctx context.Context) error {
	m.logger.Debug("Removing mouse hover")
	return m.pointer.MoveToOrigin(ctx)
}

// DragAndDrop presses on source, moves to target and releases
func (m *Mouse) DragAndDrop(ctx context.Context, source, target interfaces.ElementHandle) error {
	m.logger.Debug("Executing drag and drop")
	return m.pointer.DragHandle(ctx, source, target)
}
