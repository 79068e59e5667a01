package state

import (
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/lib/utils"
	"github.com/mhasan/lifeos/lib/validation"
)

// Commands for the entities that carry deadlines (tasks, goals, projects)
// and for the reminders collection itself. Every command validates its
// input first, then computes the next aggregate; a command aimed at an id
// that no longer exists leaves the aggregate unchanged and returns no
// error, since the only callers are UIs where delete/update races resolve
// harmlessly.

// AddTask creates a task and, when it carries a due date, the single
// derived reminder linked to it. Returns the stored task.
func (s *Store) AddTask(input models.Task) (models.Task, error) {
	if err := validation.ValidateTask(input); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          utils.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		GoalID:      input.GoalID,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if task.Priority == "" {
		task.Priority = models.PriorityLow
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Tasks = append(data.Tasks, task)
		if task.DueDate != "" {
			data.Reminders = append(data.Reminders, newDeadlineReminder(deadlineSpec{
				RelatedID: task.ID,
				Text:      "Task Due: " + task.Title,
				Time:      task.DueDate,
				Priority:  task.Priority,
				Link:      "tasks",
			}))
		}
		return data
	})
	return task, nil
}

// ToggleTask flips a task's completion, stamping or clearing CompletedAt.
// Completing a task dismisses its derived reminder rather than deleting it.
func (s *Store) ToggleTask(id string) {
	s.apply(func(data models.AppData) models.AppData {
		for i, task := range data.Tasks {
			if task.ID != id {
				continue
			}
			completed := !task.Completed
			data.Tasks[i].Completed = completed
			if completed {
				data.Tasks[i].CompletedAt = time.Now().Format(time.RFC3339)
				data.Reminders = dismissRelatedReminders(data.Reminders, id)
			} else {
				data.Tasks[i].CompletedAt = ""
			}
			break
		}
		return data
	})
}

// DeleteTask removes a task and cascade-deletes its derived reminder in the
// same update.
func (s *Store) DeleteTask(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Tasks[:0]
		for _, task := range data.Tasks {
			if task.ID != id {
				out = append(out, task)
			}
		}
		data.Tasks = out
		data.Reminders = removeRelatedReminders(data.Reminders, id)
		return data
	})
}

// AddGoal creates a goal with an empty checklist and, when it carries a
// deadline, a high-priority derived reminder.
func (s *Store) AddGoal(input models.Goal) (models.Goal, error) {
	if err := validation.ValidateGoal(input); err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		ID:             utils.GenerateID(),
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Timeframe:      input.Timeframe,
		Deadline:       input.Deadline,
		ChecklistItems: []models.ChecklistItem{},
		CreatedAt:      time.Now().Format(time.RFC3339),
	}
	if goal.Category == "" {
		goal.Category = models.CategoryPersonal
	}
	if goal.Timeframe == "" {
		goal.Timeframe = models.TimeframeMonthly
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Goals = append(data.Goals, goal)
		if goal.Deadline != "" {
			data.Reminders = append(data.Reminders, newDeadlineReminder(deadlineSpec{
				RelatedID: goal.ID,
				Text:      "Goal Deadline: " + goal.Title,
				Time:      goal.Deadline,
				Priority:  models.PriorityHigh,
				Link:      "goals",
			}))
		}
		return data
	})
	return goal, nil
}

// UpdateGoal replaces a goal record wholesale (the checklist travels inside
// it) and re-derives the reminder relationship. Updating a goal that no
// longer exists is a no-op.
func (s *Store) UpdateGoal(goal models.Goal) error {
	if err := validation.ValidateGoal(goal); err != nil {
		return err
	}

	s.apply(func(data models.AppData) models.AppData {
		found := false
		for i := range data.Goals {
			if data.Goals[i].ID == goal.ID {
				data.Goals[i] = goal
				found = true
				break
			}
		}
		if !found {
			return data
		}
		data.Reminders = reconcileDeadlineReminder(data.Reminders, deadlineSpec{
			RelatedID: goal.ID,
			Text:      "Goal Deadline: " + goal.Title,
			Time:      goal.Deadline,
			Priority:  models.PriorityHigh,
			Link:      "goals",
			Completed: goal.Completed,
		})
		return data
	})
	return nil
}

// DeleteGoal removes a goal and cascade-deletes its derived reminder.
func (s *Store) DeleteGoal(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Goals[:0]
		for _, goal := range data.Goals {
			if goal.ID != id {
				out = append(out, goal)
			}
		}
		data.Goals = out
		data.Reminders = removeRelatedReminders(data.Reminders, id)
		return data
	})
}

// AddProject creates a freelance project and, when it carries a deadline, a
// high-priority derived reminder.
func (s *Store) AddProject(input models.Project) (models.Project, error) {
	if err := validation.ValidateProject(input); err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:       utils.GenerateID(),
		Name:     input.Name,
		Client:   input.Client,
		Status:   input.Status,
		Deadline: input.Deadline,
		Value:    input.Value,
		Advance:  input.Advance,
		Payments: []models.Payment{},
	}
	if project.Status == "" {
		project.Status = models.ProjectActive
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Freelance.Projects = append(data.Freelance.Projects, project)
		if project.Deadline != "" {
			data.Reminders = append(data.Reminders, newDeadlineReminder(deadlineSpec{
				RelatedID: project.ID,
				Text:      "Project Deadline: " + project.Name,
				Time:      project.Deadline,
				Priority:  models.PriorityHigh,
				Link:      "freelance",
			}))
		}
		return data
	})
	return project, nil
}

// UpdateProject replaces a project record wholesale and re-derives the
// reminder relationship; a project is treated as completed for reminder
// purposes when its status is "completed".
func (s *Store) UpdateProject(project models.Project) error {
	if err := validation.ValidateProject(project); err != nil {
		return err
	}

	s.apply(func(data models.AppData) models.AppData {
		found := false
		for i := range data.Freelance.Projects {
			if data.Freelance.Projects[i].ID == project.ID {
				data.Freelance.Projects[i] = project
				found = true
				break
			}
		}
		if !found {
			return data
		}
		data.Reminders = reconcileDeadlineReminder(data.Reminders, deadlineSpec{
			RelatedID: project.ID,
			Text:      "Project Deadline: " + project.Name,
			Time:      project.Deadline,
			Priority:  models.PriorityHigh,
			Link:      "freelance",
			Completed: project.Status == models.ProjectCompleted,
		})
		return data
	})
	return nil
}

// DeleteProject removes a project and cascade-deletes its derived reminder.
func (s *Store) DeleteProject(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Freelance.Projects[:0]
		for _, project := range data.Freelance.Projects {
			if project.ID != id {
				out = append(out, project)
			}
		}
		data.Freelance.Projects = out
		data.Reminders = removeRelatedReminders(data.Reminders, id)
		return data
	})
}

// AddPayment appends a payment to a project's append-only payment list.
func (s *Store) AddPayment(projectID string, payment models.Payment) {
	if payment.Date == "" {
		payment.Date = time.Now().Format(time.RFC3339)
	}
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Freelance.Projects {
			if data.Freelance.Projects[i].ID == projectID {
				data.Freelance.Projects[i].Payments = append(data.Freelance.Projects[i].Payments, payment)
				break
			}
		}
		return data
	})
}

// AddReminder creates a user-authored reminder, unrelated to any entity.
func (s *Store) AddReminder(input models.Reminder) (models.Reminder, error) {
	if err := validation.ValidateReminder(input); err != nil {
		return models.Reminder{}, err
	}

	reminder := models.Reminder{
		ID:       utils.GenerateID(),
		Text:     input.Text,
		Time:     input.Time,
		Type:     input.Type,
		Priority: input.Priority,
	}
	if reminder.Type == "" {
		reminder.Type = models.ReminderCustom
	}
	if reminder.Priority == "" {
		reminder.Priority = models.PriorityMedium
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Reminders = append(data.Reminders, reminder)
		return data
	})
	return reminder, nil
}

// DeleteReminder removes a reminder by its own id.
func (s *Store) DeleteReminder(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Reminders[:0]
		for _, reminder := range data.Reminders {
			if reminder.ID != id {
				out = append(out, reminder)
			}
		}
		data.Reminders = out
		return data
	})
}

// DismissReminder marks a reminder dismissed so the poller never alerts on
// it again; it stays in the collection for history.
func (s *Store) DismissReminder(id string) {
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Reminders {
			if data.Reminders[i].ID == id {
				data.Reminders[i].Dismissed = true
				break
			}
		}
		return data
	})
}

// MarkRemindersNotified flags the given reminders as already raised. Called
// by the notification poller after a sweep so nothing fires twice.
func (s *Store) MarkRemindersNotified(ids []string) {
	if len(ids) == 0 {
		return
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Reminders {
			if _, ok := set[data.Reminders[i].ID]; ok {
				data.Reminders[i].Notified = true
			}
		}
		return data
	})
}
