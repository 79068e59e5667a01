// Package validation holds the field rules every entity must pass before a
// command will accept it. Each validator returns a *ValidationError with a
// message suitable for showing to the user; invalid input never reaches the
// aggregate.
package validation

import (
	"strings"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/lib/utils"
)

// MaxTransactionAmount is the ceiling on a single finance entry.
const MaxTransactionAmount = 1000000

// MaxLearningMinutes caps a learning log at 24 hours.
const MaxLearningMinutes = 1440

// ValidationError is raised when user input fails a field rule. It is the
// only error class expected to surface to the user as an actionable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ValidateTask checks a task before it is added to the aggregate.
func ValidateTask(task models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return invalid("Task title is required and cannot be empty")
	}
	if len(task.Title) > 200 {
		return invalid("Task title must be less than 200 characters")
	}
	if task.DueDate != "" && !utils.IsValidTime(task.DueDate) {
		return invalid("Invalid due date")
	}
	switch task.Priority {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return invalid("Invalid priority level")
	}
	return nil
}

// ValidateGoal checks a goal before it is added or replaced.
func ValidateGoal(goal models.Goal) error {
	if strings.TrimSpace(goal.Title) == "" {
		return invalid("Goal title is required")
	}
	if len(goal.Title) > 200 {
		return invalid("Goal title must be less than 200 characters")
	}
	switch goal.Category {
	case "", models.CategoryPersonal, models.CategoryCareer, models.CategoryHealth,
		models.CategoryFitness, models.CategoryLearning, models.CategoryFinance, models.CategoryOther:
	default:
		return invalid("Invalid goal category")
	}
	switch goal.Timeframe {
	case "", models.TimeframeWeekly, models.TimeframeMonthly, models.TimeframeQuarterly, models.TimeframeYearly:
	default:
		return invalid("Invalid timeframe")
	}
	if goal.Deadline != "" && !utils.IsValidTime(goal.Deadline) {
		return invalid("Invalid goal deadline")
	}
	return nil
}

// ValidateTransaction checks a finance entry before it is recorded.
func ValidateTransaction(transaction models.Transaction) error {
	if strings.TrimSpace(transaction.Description) == "" {
		return invalid("Transaction description is required")
	}
	if transaction.Amount < 0 {
		return invalid("Transaction amount must be a positive number")
	}
	if transaction.Amount > MaxTransactionAmount {
		return invalid("Transaction amount exceeds maximum limit")
	}
	switch transaction.Type {
	case "", models.TransactionExpense, models.TransactionIncome:
	default:
		return invalid("Invalid transaction type")
	}
	if transaction.Date != "" && !utils.IsValidTime(transaction.Date) {
		return invalid("Invalid transaction date")
	}
	return nil
}

// ValidateLearning checks a learning log before it is recorded.
func ValidateLearning(log models.LearningLog) error {
	if strings.TrimSpace(log.Topic) == "" {
		return invalid("Topic is required")
	}
	if log.TimeSpent < 0 {
		return invalid("Time spent must be a positive number")
	}
	if log.TimeSpent > MaxLearningMinutes {
		return invalid("Time spent cannot exceed 24 hours")
	}
	return nil
}

// ValidateHabit checks a habit before it is added.
func ValidateHabit(habit models.Habit) error {
	if strings.TrimSpace(habit.Name) == "" {
		return invalid("Habit name is required")
	}
	if len(habit.Name) > 100 {
		return invalid("Habit name must be less than 100 characters")
	}
	return nil
}

// ValidateReminder checks a user-authored reminder before it is added.
// Derived deadline reminders are synthesized by the command layer and do not
// pass through here.
func ValidateReminder(reminder models.Reminder) error {
	if strings.TrimSpace(reminder.Text) == "" {
		return invalid("Reminder text is required")
	}
	if reminder.Time != "" && !utils.IsValidTime(reminder.Time) {
		return invalid("Invalid reminder time")
	}
	return nil
}

// ValidateProject checks a freelance project before it is added or replaced.
func ValidateProject(project models.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return invalid("Project name is required")
	}
	if strings.TrimSpace(project.Client) == "" {
		return invalid("Project client is required")
	}
	switch project.Status {
	case "", models.ProjectActive, models.ProjectCompleted, models.ProjectPending:
	default:
		return invalid("Invalid project status")
	}
	if project.Deadline != "" && !utils.IsValidTime(project.Deadline) {
		return invalid("Invalid project deadline")
	}
	return nil
}

// ValidateApplication checks a job application before it is added.
func ValidateApplication(app models.JobApplication) error {
	if strings.TrimSpace(app.Role) == "" {
		return invalid("Application role is required")
	}
	if strings.TrimSpace(app.Company) == "" {
		return invalid("Application company is required")
	}
	switch app.Status {
	case "", models.StatusApplied, models.StatusInterviewing, models.StatusOffer, models.StatusRejected:
	default:
		return invalid("Invalid application status")
	}
	return nil
}

// SanitizeInput strips angle brackets, trims whitespace and caps free-text
// input at 500 characters.
func SanitizeInput(input string) string {
	cleaned := strings.NewReplacer("<", "", ">", "").Replace(input)
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > 500 {
		cleaned = cleaned[:500]
	}
	return cleaned
}
