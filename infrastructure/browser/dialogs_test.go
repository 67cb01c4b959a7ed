package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/infrastructure/config"
)

type fakeDialog struct {
	kind      string
	message   string
	err       error
	accepted  bool
	dismissed bool
}

func (d *fakeDialog) Type() string    { return d.kind }
func (d *fakeDialog) Message() string { return d.message }

func (d *fakeDialog) Accept(...string) error {
	d.accepted = true
	return d.err
}

func (d *fakeDialog) Dismiss() error {
	d.dismissed = true
	return d.err
}

func TestDialogQueue_AcceptPolicy(t *testing.T) {
	logger, _ := test.NewNullLogger()
	q := newDialogQueue(config.DialogAccept, logger)

	d := &fakeDialog{kind: "confirm", message: "Tem certeza?"}
	q.handle(d)
	assert.True(t, d.accepted, "dialog must be resolved inside the handler")
	assert.False(t, d.dismissed)

	require.NoError(t, q.confirm(context.Background(), true, time.Second))
}

func TestDialogQueue_DismissPolicy(t *testing.T) {
	logger, _ := test.NewNullLogger()
	q := newDialogQueue(config.DialogDismiss, logger)

	d := &fakeDialog{kind: "confirm", message: "Tem certeza?"}
	q.handle(d)
	assert.True(t, d.dismissed)
	assert.False(t, d.accepted)

	require.NoError(t, q.confirm(context.Background(), false, time.Second))
}

func TestDialogQueue_PolicyMismatch(t *testing.T) {
	logger, _ := test.NewNullLogger()
	q := newDialogQueue(config.DialogDismiss, logger)

	q.handle(&fakeDialog{kind: "confirm", message: "Tem certeza?"})
	err := q.confirm(context.Background(), true, time.Second)
	assert.ErrorContains(t, err, "already dismissed")
}

func TestDialogQueue_ResolveError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	q := newDialogQueue(config.DialogAccept, logger)

	boom := errors.New("target closed")
	q.handle(&fakeDialog{kind: "alert", message: "Olá", err: boom})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.ErrorIs(t, q.confirm(context.Background(), true, time.Second), boom)
}

func TestDialogQueue_NoDialog(t *testing.T) {
	logger, _ := test.NewNullLogger()
	q := newDialogQueue(config.DialogAccept, logger)

	err := q.confirm(context.Background(), true, 10*time.Millisecond)
	assert.EqualError(t, err, "no alert appeared within 10ms")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, q.confirm(ctx, true, time.Second), context.Canceled)
}

func TestDialogQueue_FullQueueStillResolves(t *testing.T) {
	logger, hook := test.NewNullLogger()
	q := newDialogQueue(config.DialogAccept, logger)

	for i := 0; i < dialogBuffer; i++ {
		q.handle(&fakeDialog{kind: "alert"})
	}
	extra := &fakeDialog{kind: "alert", message: "overflow"}
	q.handle(extra)

	assert.True(t, extra.accepted)
	assert.Equal(t, "Dialog queue full, dropping record of: overflow", hook.LastEntry().Message)
}
