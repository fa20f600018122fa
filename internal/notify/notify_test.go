package notify

import (
	"context"
	"errors"
	"io"
	"testing"

	"medisecure/internal/apperr"
	"medisecure/internal/mailer"
	"medisecure/internal/worker"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type emitCall struct {
	room, event string
	data        any
}

type fakeEmitter struct {
	calls []emitCall
	err   error
}

func (f *fakeEmitter) Emit(_ context.Context, room, event string, data any) error {
	f.calls = append(f.calls, emitCall{room, event, data})
	return f.err
}

type fakeSender struct {
	SendFn func(ctx context.Context, msg mailer.Message) error
	sent   []mailer.Message
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	if f.SendFn != nil {
		return f.SendFn(ctx, msg)
	}
	return nil
}

func quietLogger() (*logrus.Logger, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetOutput(io.Discard)
	return l, hook
}

var notice = Notice{DonorID: 7, DonorName: "Ann", DonorEmail: "ann@example.com", RequesterName: "Rita"}

func TestNewRequestPushesAndEmails(t *testing.T) {
	em := &fakeEmitter{}
	s := &fakeSender{}
	l, hook := quietLogger()
	NewDispatcher(em, s, nil, l).NewRequest(context.Background(), notice)

	require.Len(t, em.calls, 1)
	require.Equal(t, "7", em.calls[0].room)
	require.Equal(t, EventNewRequest, em.calls[0].event)
	require.Equal(t, map[string]string{"message": "You have a new blood request from Rita!"}, em.calls[0].data)

	require.Len(t, s.sent, 1)
	require.Equal(t, "ann@example.com", s.sent[0].To)
	require.Equal(t, "New Blood Request on MediSecure Portal", s.sent[0].Subject)
	require.Contains(t, s.sent[0].Body, "Hello Ann,")
	require.Contains(t, s.sent[0].Body, "new blood request from Rita")
	require.Empty(t, hook.AllEntries())
}

func TestEmailFailureIsLoggedNotReturned(t *testing.T) {
	em := &fakeEmitter{}
	s := &fakeSender{SendFn: func(context.Context, mailer.Message) error { return errors.New("535 auth") }}
	l, hook := quietLogger()
	d := NewDispatcher(em, s, nil, l)

	d.NewRequest(context.Background(), notice)
	require.Len(t, em.calls, 1)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "error sending email", entry.Message)

	err := d.sendEmail(context.Background(), mailer.Message{}, l)
	require.ErrorIs(t, err, apperr.ErrNotificationDelivery)
}

func TestPushFailureStillEmails(t *testing.T) {
	em := &fakeEmitter{err: errors.New("redis down")}
	s := &fakeSender{}
	l, hook := quietLogger()
	NewDispatcher(em, s, nil, l).NewRequest(context.Background(), notice)
	require.Len(t, s.sent, 1)
	require.Equal(t, "realtime push failed", hook.Entries[0].Message)
}

func TestAsyncEmailSurvivesCanceledRequest(t *testing.T) {
	em := &fakeEmitter{}
	var ctxErr error
	s := &fakeSender{SendFn: func(ctx context.Context, _ mailer.Message) error {
		ctxErr = ctx.Err()
		return nil
	}}
	l, _ := quietLogger()
	pool := worker.NewPool(1, 4, l)

	ctx, cancel := context.WithCancel(context.Background())
	NewDispatcher(em, s, pool, l).NewRequest(ctx, notice)
	cancel()
	pool.Stop()

	require.Len(t, s.sent, 1)
	require.NoError(t, ctxErr)
}
