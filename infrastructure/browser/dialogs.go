package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/infrastructure/config"
)

// dialog is the part of playwright.Dialog the queue needs
type dialog interface {
	Type() string
	Message() string
	Accept(promptText ...string) error
	Dismiss() error
}

type dialogRecord struct {
	kind     string
	message  string
	accepted bool
	err      error
}

func (r dialogRecord) outcome() string {
	if r.accepted {
		return "accepted"
	}
	return "dismissed"
}

// dialogQueue resolves each dialog by policy as soon as it opens and keeps a
// record for AcceptAlert/DismissAlert to confirm
type dialogQueue struct {
	accept  bool
	records chan dialogRecord
	logger  logrus.FieldLogger
}

func newDialogQueue(policy string, logger logrus.FieldLogger) *dialogQueue {
	return &dialogQueue{
		accept:  policy != config.DialogDismiss,
		records: make(chan dialogRecord, dialogBuffer),
		logger:  logger,
	}
}

// handle - playwright dialog event handler
func (q *dialogQueue) handle(d dialog) {
	rec := dialogRecord{kind: d.Type(), message: d.Message(), accepted: q.accept}
	if q.accept {
		rec.err = d.Accept()
	} else {
		rec.err = d.Dismiss()
	}

	if rec.err != nil {
		q.logger.WithError(rec.err).Warnf("Failed to resolve %s dialog: %s", rec.kind, rec.message)
	} else {
		q.logger.Infof("Dialog %s (%s): %s", rec.outcome(), rec.kind, rec.message)
	}

	select {
	case q.records <- rec:
	default:
		q.logger.Warnf("Dialog queue full, dropping record of: %s", rec.message)
	}
}

// confirm - waits for the next resolved dialog and checks it was resolved as requested
func (q *dialogQueue) confirm(ctx context.Context, accept bool, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var rec dialogRecord
	select {
	case rec = <-q.records:
	case <-timer.C:
		return fmt.Errorf("no alert appeared within %s", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	if rec.err != nil {
		return fmt.Errorf("failed to resolve %s dialog %q: %w", rec.kind, rec.message, rec.err)
	}
	if rec.accepted != accept {
		return fmt.Errorf("%s dialog %q was already %s by the dialog policy", rec.kind, rec.message, rec.outcome())
	}
	return nil
}
