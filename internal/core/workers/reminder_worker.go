package workers

import (
	"context"
	"errors"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

const (
	DefaultReminderInterval = 30 * time.Second
	ReminderTitle           = "Kanso reminder"
)

type TaskReminders interface {
	DueReminders(now time.Time) []domain.Task
	MarkNotified(ctx context.Context, ids ...string) error
}

type ReminderJob struct {
	Reason string
}

// ReminderWorker polls for due task reminders on a ticker and on demand.
type ReminderWorker struct {
	tasks    TaskReminders
	notifier domain.Notifier
	every    time.Duration
	icon     string
	now      func() time.Time
	logger   *log.Logger
	jobs     chan ReminderJob
}

type ReminderOption func(*ReminderWorker)

func WithInterval(d time.Duration) ReminderOption {
	return func(w *ReminderWorker) {
		if d > 0 {
			w.every = d
		}
	}
}

func WithIcon(icon string) ReminderOption {
	return func(w *ReminderWorker) { w.icon = icon }
}

func WithNow(now func() time.Time) ReminderOption {
	return func(w *ReminderWorker) { w.now = now }
}

func WithLogger(logger *log.Logger) ReminderOption {
	return func(w *ReminderWorker) {
		if logger != nil {
			w.logger = logger.WithComponent(log.ComponentWorker)
		}
	}
}

func NewReminderWorker(tasks TaskReminders, notifier domain.Notifier, opts ...ReminderOption) *ReminderWorker {
	w := &ReminderWorker{
		tasks:    tasks,
		notifier: notifier,
		every:    DefaultReminderInterval,
		now:      time.Now,
		logger:   log.Discard(),
		jobs:     make(chan ReminderJob, 100),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		_ = w.Run(ctx)
	}()
}

// Run blocks until ctx is done.
func (w *ReminderWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "reminder worker started", "every", w.every.String())

	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.process(ctx, ReminderJob{Reason: "tick"})
		case job := <-w.jobs:
			w.process(ctx, job)
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "reminder worker shutting down")
			return nil
		}
	}
}

// Enqueue asks for an immediate check, e.g. after a task was edited.
func (w *ReminderWorker) Enqueue(reason string) {
	select {
	case w.jobs <- ReminderJob{Reason: reason}:
	default:
		w.logger.Warn("reminder queue full, dropping job", "reason", reason)
	}
}

func (w *ReminderWorker) process(ctx context.Context, job ReminderJob) {
	sent, err := w.Check(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			w.logger.DebugContext(ctx, "notifications not permitted", "reason", job.Reason)
			return
		}
		w.logger.ErrorContext(ctx, "reminder check failed",
			log.NewFields().WithOperation(log.OpNotify).WithError(err).With("reason", job.Reason).ToSlice()...)
		return
	}
	if sent > 0 {
		w.logger.InfoContext(ctx, "reminders sent", "count", sent, "reason", job.Reason)
	}
}

// Check sends every due reminder once and returns how many were sent.
// Tasks whose notification fails stay pending for the next pass.
func (w *ReminderWorker) Check(ctx context.Context) (int, error) {
	due := w.tasks.DueReminders(w.now())
	if len(due) == 0 {
		return 0, nil
	}

	ok, err := w.notifier.RequestPermission(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrPermissionDenied
	}

	var notified []string
	for _, t := range due {
		n := domain.Notification{
			Title: ReminderTitle,
			Body:  t.Title,
			Icon:  w.icon,
		}
		if err := w.notifier.Notify(ctx, n); err != nil {
			w.logger.WarnContext(ctx, "notify failed", log.FieldTaskID, t.ID, log.FieldError, err)
			continue
		}
		notified = append(notified, t.ID)
	}

	if err := w.tasks.MarkNotified(ctx, notified...); err != nil {
		return len(notified), err
	}
	return len(notified), nil
}
