package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailer struct {
	mu       sync.Mutex
	sent     []Message
	attempts int
	failAll  bool
	gate     chan struct{} // when set, Send blocks until the gate closes
}

func (m *fakeMailer) Send(ctx context.Context, msg Message) error {
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.failAll {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) attemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNotifierDelivers(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, 4, 0, zap.NewNop())
	n.Start()
	defer n.Stop()

	n.Enqueue(Message{ToEmail: "pat@example.com", Date: "2026-03-02", Time: "10:00:00"})

	waitFor(t, func() bool { return mailer.sentCount() == 1 })
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, "pat@example.com", mailer.sent[0].ToEmail)
}

func TestNotifierSendFailureIsIsolated(t *testing.T) {
	mailer := &fakeMailer{failAll: true}
	n := NewNotifier(mailer, 4, 0, zap.NewNop())
	n.Start()

	// Enqueue never reports errors, and the worker must survive a failed send.
	n.Enqueue(Message{ToEmail: "a@example.com"})
	waitFor(t, func() bool { return mailer.attemptCount() == 1 })

	mailer.mu.Lock()
	mailer.failAll = false
	mailer.mu.Unlock()
	n.Enqueue(Message{ToEmail: "b@example.com"})

	waitFor(t, func() bool { return mailer.sentCount() == 1 })
	n.Stop()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "b@example.com", mailer.sent[0].ToEmail)
}

func TestNotifierDropsWhenQueueFull(t *testing.T) {
	gate := make(chan struct{})
	mailer := &fakeMailer{gate: gate}
	n := NewNotifier(mailer, 1, 0, zap.NewNop())
	n.Start()
	defer n.Stop()

	// First message occupies the worker, second fills the buffer, the rest
	// must drop without blocking this goroutine.
	n.Enqueue(Message{ToEmail: "first@example.com"})
	waitFor(t, func() bool { return len(n.queue) == 0 })
	n.Enqueue(Message{ToEmail: "second@example.com"})
	n.Enqueue(Message{ToEmail: "dropped@example.com"})
	n.Enqueue(Message{ToEmail: "dropped-too@example.com"})

	close(gate)
	waitFor(t, func() bool { return mailer.sentCount() == 2 })

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, "first@example.com", mailer.sent[0].ToEmail)
	assert.Equal(t, "second@example.com", mailer.sent[1].ToEmail)
}

func TestNotifierStopIsIdempotent(t *testing.T) {
	n := NewNotifier(&fakeMailer{}, 4, 0, zap.NewNop())
	n.Start()
	n.Stop()
	n.Stop()
}
