package state

import (
	"testing"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remindersFor collects the reminders derived from the given entity.
func remindersFor(data models.AppData, relatedID string) []models.Reminder {
	var out []models.Reminder
	for _, reminder := range data.Reminders {
		if reminder.RelatedID == relatedID {
			out = append(out, reminder)
		}
	}
	return out
}

func TestAddTaskWithDueDateCreatesReminder(t *testing.T) {
	store := NewStore()

	task, err := store.AddTask(models.Task{
		Title:    "File taxes",
		Priority: models.PriorityHigh,
		DueDate:  "2026-04-15",
	})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)

	data := store.Data()
	related := remindersFor(data, task.ID)
	require.Len(t, related, 1)
	assert.Equal(t, "Task Due: File taxes", related[0].Text)
	assert.Equal(t, "2026-04-15", related[0].Time)
	assert.Equal(t, models.ReminderDeadline, related[0].Type)
	assert.Equal(t, models.PriorityHigh, related[0].Priority)
	assert.Equal(t, "tasks", related[0].Link)
	assert.False(t, related[0].Notified)
	assert.False(t, related[0].Dismissed)
}

func TestAddTaskWithoutDueDateCreatesNoReminder(t *testing.T) {
	store := NewStore()

	task, err := store.AddTask(models.Task{Title: "Water plants"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, task.Priority)

	data := store.Data()
	assert.Empty(t, remindersFor(data, task.ID))
}

func TestAddTaskRejectsInvalidInput(t *testing.T) {
	store := NewStore()

	_, err := store.AddTask(models.Task{Title: "   "})
	assert.Error(t, err)

	_, err = store.AddTask(models.Task{Title: "ok", DueDate: "not-a-date"})
	assert.Error(t, err)

	_, err = store.AddTask(models.Task{Title: "ok", Priority: "urgent"})
	assert.Error(t, err)

	assert.Empty(t, store.Data().Tasks)
}

func TestToggleTaskDismissesButKeepsReminder(t *testing.T) {
	store := NewStore()
	task, err := store.AddTask(models.Task{Title: "Ship release", DueDate: "2026-09-01"})
	require.NoError(t, err)

	store.ToggleTask(task.ID)

	data := store.Data()
	require.Len(t, data.Tasks, 1)
	assert.True(t, data.Tasks[0].Completed)
	assert.NotEmpty(t, data.Tasks[0].CompletedAt)

	related := remindersFor(data, task.ID)
	require.Len(t, related, 1)
	assert.True(t, related[0].Dismissed, "completing a task dismisses its reminder without deleting it")

	// Un-completing clears the stamp but the reminder stays dismissed.
	store.ToggleTask(task.ID)
	data = store.Data()
	assert.False(t, data.Tasks[0].Completed)
	assert.Empty(t, data.Tasks[0].CompletedAt)
	assert.True(t, remindersFor(data, task.ID)[0].Dismissed)
}

func TestDeleteTaskCascadesToReminder(t *testing.T) {
	store := NewStore()
	task, err := store.AddTask(models.Task{Title: "Renew passport", DueDate: "2026-03-01"})
	require.NoError(t, err)

	keep, err := store.AddReminder(models.Reminder{Text: "Call mom", Time: "2026-03-02"})
	require.NoError(t, err)

	store.DeleteTask(task.ID)

	data := store.Data()
	assert.Empty(t, data.Tasks)
	assert.Empty(t, remindersFor(data, task.ID))

	// Unrelated reminders survive the cascade.
	require.Len(t, data.Reminders, 1)
	assert.Equal(t, keep.ID, data.Reminders[0].ID)
}

func TestUpdateGoalReminderLifecycle(t *testing.T) {
	store := NewStore()
	goal, err := store.AddGoal(models.Goal{Title: "Learn Arabic"})
	require.NoError(t, err)
	assert.Empty(t, remindersFor(store.Data(), goal.ID))

	// Adding a deadline creates the derived reminder.
	goal.Deadline = "2026-12-31"
	require.NoError(t, store.UpdateGoal(goal))
	related := remindersFor(store.Data(), goal.ID)
	require.Len(t, related, 1)
	assert.Equal(t, "Goal Deadline: Learn Arabic", related[0].Text)
	assert.Equal(t, models.PriorityHigh, related[0].Priority)

	// Re-applying the same update is idempotent: still exactly one.
	require.NoError(t, store.UpdateGoal(goal))
	require.NoError(t, store.UpdateGoal(goal))
	require.Len(t, remindersFor(store.Data(), goal.ID), 1)

	// Moving the deadline refreshes the reminder in place.
	goal.Deadline = "2027-06-30"
	require.NoError(t, store.UpdateGoal(goal))
	related = remindersFor(store.Data(), goal.ID)
	require.Len(t, related, 1)
	assert.Equal(t, "2027-06-30", related[0].Time)

	// Completing mirrors into Dismissed; reopening revives it.
	goal.Completed = true
	require.NoError(t, store.UpdateGoal(goal))
	assert.True(t, remindersFor(store.Data(), goal.ID)[0].Dismissed)

	goal.Completed = false
	require.NoError(t, store.UpdateGoal(goal))
	assert.False(t, remindersFor(store.Data(), goal.ID)[0].Dismissed)

	// Dropping the deadline retires the reminder.
	goal.Deadline = ""
	require.NoError(t, store.UpdateGoal(goal))
	assert.Empty(t, remindersFor(store.Data(), goal.ID))
}

func TestUpdateGoalMissingIsNoOp(t *testing.T) {
	store := NewStore()
	before := store.Data()

	err := store.UpdateGoal(models.Goal{ID: "nope", Title: "Ghost", Deadline: "2026-01-01"})
	require.NoError(t, err)

	after := store.Data()
	assert.Equal(t, before.Goals, after.Goals)
	assert.Empty(t, after.Reminders, "no reminder may be derived for an entity that does not exist")
}

func TestCompletedGoalWithNewDeadlineGetsNoReminder(t *testing.T) {
	store := NewStore()
	goal, err := store.AddGoal(models.Goal{Title: "Run a marathon"})
	require.NoError(t, err)

	goal.Completed = true
	goal.Deadline = "2026-10-01"
	require.NoError(t, store.UpdateGoal(goal))

	assert.Empty(t, remindersFor(store.Data(), goal.ID))
}

func TestProjectReminderFollowsStatus(t *testing.T) {
	store := NewStore()
	project, err := store.AddProject(models.Project{
		Name:     "Portfolio site",
		Client:   "Amina",
		Deadline: "2026-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectActive, project.Status)

	related := remindersFor(store.Data(), project.ID)
	require.Len(t, related, 1)
	assert.Equal(t, "Project Deadline: Portfolio site", related[0].Text)
	assert.Equal(t, "freelance", related[0].Link)

	project.Status = models.ProjectCompleted
	require.NoError(t, store.UpdateProject(project))
	assert.True(t, remindersFor(store.Data(), project.ID)[0].Dismissed)

	project.Status = models.ProjectActive
	require.NoError(t, store.UpdateProject(project))
	assert.False(t, remindersFor(store.Data(), project.ID)[0].Dismissed)

	store.DeleteProject(project.ID)
	data := store.Data()
	assert.Empty(t, data.Freelance.Projects)
	assert.Empty(t, remindersFor(data, project.ID))
}

func TestAddPaymentAppendsToProject(t *testing.T) {
	store := NewStore()
	project, err := store.AddProject(models.Project{Name: "Logo", Client: "Bakr"})
	require.NoError(t, err)

	store.AddPayment(project.ID, models.Payment{Amount: 250, Note: "advance"})
	store.AddPayment(project.ID, models.Payment{Amount: 750, Phase: "final"})

	projects := store.Data().Freelance.Projects
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Payments, 2)
	assert.Equal(t, 250.0, projects[0].Payments[0].Amount)
	assert.NotEmpty(t, projects[0].Payments[0].Date)
	assert.Equal(t, "final", projects[0].Payments[1].Phase)
}

func TestAddReminderDefaults(t *testing.T) {
	store := NewStore()
	reminder, err := store.AddReminder(models.Reminder{Text: "Stretch", Time: "2026-01-05T09:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, models.ReminderCustom, reminder.Type)
	assert.Equal(t, models.PriorityMedium, reminder.Priority)

	_, err = store.AddReminder(models.Reminder{Text: ""})
	assert.Error(t, err)
}

func TestDismissAndDeleteReminder(t *testing.T) {
	store := NewStore()
	reminder, err := store.AddReminder(models.Reminder{Text: "Pay rent", Time: "2026-02-01"})
	require.NoError(t, err)

	store.DismissReminder(reminder.ID)
	data := store.Data()
	require.Len(t, data.Reminders, 1)
	assert.True(t, data.Reminders[0].Dismissed)

	store.DeleteReminder(reminder.ID)
	assert.Empty(t, store.Data().Reminders)
}

func TestMarkRemindersNotified(t *testing.T) {
	store := NewStore()
	first, err := store.AddReminder(models.Reminder{Text: "a", Time: "2026-01-01"})
	require.NoError(t, err)
	second, err := store.AddReminder(models.Reminder{Text: "b", Time: "2026-01-02"})
	require.NoError(t, err)

	store.MarkRemindersNotified([]string{first.ID})

	data := store.Data()
	for _, reminder := range data.Reminders {
		switch reminder.ID {
		case first.ID:
			assert.True(t, reminder.Notified)
		case second.ID:
			assert.False(t, reminder.Notified)
		}
	}
}
