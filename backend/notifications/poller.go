// Package notifications runs the reminder poller: a fixed-interval sweep
// over the reminders collection that raises the in-app active notification
// and, best-effort, pushes due reminders onto the alert queue.
package notifications

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/backend/queue"
	"github.com/mhasan/lifeos/backend/state"
	"github.com/mhasan/lifeos/lib/utils"
)

// DefaultInterval is how often the poller scans for due reminders. A
// reminder is therefore raised at most one interval after its time, plus
// however long the poller was not running.
const DefaultInterval = 30 * time.Second

// Poller periodically scans the aggregate's reminders and surfaces at most
// one active notification at a time. A reminder that comes due while
// another is active simply waits for a later sweep slot; within one sweep
// the most recently found due reminder wins.
type Poller struct {
	store    *state.Store
	interval time.Duration

	// alertQueue, when set, receives a copy of every raised reminder for
	// out-of-app delivery. Never required for in-app behavior.
	alertQueue *queue.Queue
	recipient  string

	mu     sync.Mutex
	active *models.Reminder
}

// NewPoller creates a poller over the given store. alertQueue and recipient
// configure the out-of-app side channel and may be nil/empty.
func NewPoller(store *state.Store, interval time.Duration, alertQueue *queue.Queue, recipient string) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		store:      store,
		interval:   interval,
		alertQueue: alertQueue,
		recipient:  recipient,
	}
}

// Start runs the sweep loop until ctx is cancelled. No sweep fires after
// cancellation; on a later Start, overdue-but-unnotified reminders are
// caught on the first tick.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Sweep(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Sweep performs one scan: every reminder that is unnotified, undismissed
// and due at or before now is marked notified, and the last one found
// becomes the active notification. A sweep that finds nothing leaves the
// active notification untouched.
func (p *Poller) Sweep(now time.Time) {
	data := p.store.Data()

	var due []models.Reminder
	for _, reminder := range data.Reminders {
		if reminder.Notified || reminder.Dismissed {
			continue
		}
		at, err := utils.ParseTime(reminder.Time)
		if err != nil {
			continue
		}
		if !at.After(now) {
			due = append(due, reminder)
		}
	}
	if len(due) == 0 {
		return
	}

	ids := make([]string, len(due))
	for i, reminder := range due {
		ids[i] = reminder.ID
	}
	p.store.MarkRemindersNotified(ids)

	raised := due[len(due)-1]
	p.mu.Lock()
	p.active = &raised
	p.mu.Unlock()

	p.publish(due)
}

// publish pushes raised reminders onto the alert queue. Failures are logged
// and otherwise ignored; the side channel is strictly best-effort.
func (p *Poller) publish(due []models.Reminder) {
	if p.alertQueue == nil || p.recipient == "" {
		return
	}
	for _, reminder := range due {
		alert := &queue.AlertMessage{
			ID:       reminder.ID,
			Text:     reminder.Text,
			Time:     reminder.Time,
			Priority: string(reminder.Priority),
			To:       p.recipient,
		}
		if err := queue.ProcessAlert(alert, p.alertQueue); err != nil {
			log.Printf("failed to queue alert for reminder %s: %v", reminder.ID, err)
		}
	}
}

// Active returns the reminder currently being shown, or nil.
func (p *Poller) Active() *models.Reminder {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return nil
	}
	copy := *p.active
	return &copy
}

// Acknowledge dismisses the active reminder and clears the signal. The
// reminder stays in the collection as history.
func (p *Poller) Acknowledge() {
	p.mu.Lock()
	active := p.active
	p.active = nil
	p.mu.Unlock()

	if active != nil {
		p.store.DismissReminder(active.ID)
	}
}

// Snooze clears the active signal without dismissing the reminder. The
// reminder keeps notified=true, so it will not re-fire on its own; it
// simply returns to the unresolved list.
func (p *Poller) Snooze() {
	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()
}
