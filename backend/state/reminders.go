package state

import (
	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/lib/utils"
)

// deadlineSpec describes the reminder a deadline-bearing entity should have.
// An empty Time means the entity currently has no deadline.
type deadlineSpec struct {
	RelatedID string
	Text      string
	Time      string
	Priority  models.Priority
	Link      string
	Completed bool
}

// newDeadlineReminder synthesizes the single derived reminder for an entity.
func newDeadlineReminder(spec deadlineSpec) models.Reminder {
	return models.Reminder{
		ID:        utils.GenerateID(),
		Text:      spec.Text,
		Time:      spec.Time,
		Type:      models.ReminderDeadline,
		Priority:  spec.Priority,
		Notified:  false,
		Dismissed: false,
		Link:      spec.Link,
		RelatedID: spec.RelatedID,
	}
}

// reconcileDeadlineReminder brings the reminders collection in line with a
// deadline-bearing entity after a full-record update. The rules keep the
// invariant of at most one reminder per RelatedID and are idempotent:
//
//   - entity has a deadline and a reminder exists: refresh its text and
//     time, and mirror the entity's completion into Dismissed;
//   - entity has a deadline, no reminder, and is not completed: create one;
//   - entity has no deadline: retire any existing reminder.
func reconcileDeadlineReminder(reminders []models.Reminder, spec deadlineSpec) []models.Reminder {
	existing := -1
	for i, reminder := range reminders {
		if reminder.RelatedID == spec.RelatedID {
			existing = i
			break
		}
	}

	if spec.Time == "" {
		if existing < 0 {
			return reminders
		}
		return removeRelatedReminders(reminders, spec.RelatedID)
	}

	if existing >= 0 {
		reminders[existing].Text = spec.Text
		reminders[existing].Time = spec.Time
		reminders[existing].Dismissed = spec.Completed
		return reminders
	}
	if spec.Completed {
		return reminders
	}
	return append(reminders, newDeadlineReminder(spec))
}

// removeRelatedReminders drops every reminder derived from the given entity.
// Called when the source entity itself is deleted.
func removeRelatedReminders(reminders []models.Reminder, relatedID string) []models.Reminder {
	out := reminders[:0]
	for _, reminder := range reminders {
		if reminder.RelatedID != relatedID {
			out = append(out, reminder)
		}
	}
	return out
}

// dismissRelatedReminders marks the reminders derived from the given entity
// as dismissed without deleting them, so they stay visible in history but
// never alert again.
func dismissRelatedReminders(reminders []models.Reminder, relatedID string) []models.Reminder {
	for i := range reminders {
		if reminders[i].RelatedID == relatedID {
			reminders[i].Dismissed = true
		}
	}
	return reminders
}
