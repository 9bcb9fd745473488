package notify

import (
	"context"
	"sync"
	"time"

	"clinic-app-server/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Message is a booking confirmation to deliver to a patient.
type Message struct {
	ToEmail    string
	ToName     string
	DoctorName string
	Date       string
	Time       string
	Reason     string
}

// Mailer delivers a single confirmation message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier decouples notification delivery from the request path: bookings
// emit onto a buffered channel and a single worker drains it. Delivery
// failures are logged and counted, never surfaced to the emitter, and a full
// queue drops the message rather than block a booking.
type Notifier struct {
	mailer  Mailer
	log     *zap.Logger
	limiter *rate.Limiter
	queue   chan Message

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewNotifier creates a Notifier with the given queue capacity. perMinute
// caps outbound sends; <= 0 disables throttling.
func NewNotifier(mailer Mailer, buffer, perMinute int, log *zap.Logger) *Notifier {
	if buffer <= 0 {
		buffer = 64
	}
	var limiter *rate.Limiter
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
	return &Notifier{
		mailer:  mailer,
		log:     log,
		limiter: limiter,
		queue:   make(chan Message, buffer),
		done:    make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go n.run()
}

// Stop drains nothing further: the worker finishes the message in flight and
// exits. Queued messages are discarded; confirmations are best-effort.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() { close(n.done) })
	n.wg.Wait()
}

// Enqueue submits a message without blocking. If the queue is full the
// message is dropped and logged.
func (n *Notifier) Enqueue(msg Message) {
	select {
	case n.queue <- msg:
	default:
		metrics.NotificationsDropped.Inc()
		n.log.Warn("notification queue full, dropping confirmation",
			zap.String("to", msg.ToEmail),
			zap.String("date", msg.Date),
			zap.String("time", msg.Time))
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for {
		select {
		case <-n.done:
			return
		case msg := <-n.queue:
			n.deliver(msg)
		}
	}
}

func (n *Notifier) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			metrics.NotificationsFailed.Inc()
			n.log.Warn("rate limit wait aborted", zap.Error(err))
			return
		}
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		metrics.NotificationsFailed.Inc()
		n.log.Error("failed to send confirmation email",
			zap.String("to", msg.ToEmail),
			zap.Error(err))
		return
	}
	metrics.NotificationsSent.Inc()
	n.log.Info("confirmation email sent", zap.String("to", msg.ToEmail))
}
