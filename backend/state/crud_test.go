package state

import (
	"testing"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTransactionKeepsNewestFirst(t *testing.T) {
	store := NewStore()

	first, err := store.AddTransaction(models.Transaction{Description: "groceries", Amount: 40})
	require.NoError(t, err)
	second, err := store.AddTransaction(models.Transaction{Description: "salary", Amount: 3000, Type: models.TransactionIncome})
	require.NoError(t, err)

	transactions := store.Data().Finance.Transactions
	require.Len(t, transactions, 2)
	assert.Equal(t, second.ID, transactions[0].ID)
	assert.Equal(t, first.ID, transactions[1].ID)

	// Defaults fill in for omitted fields.
	assert.Equal(t, models.TransactionExpense, transactions[1].Type)
	assert.Equal(t, "other", transactions[1].Category)
	assert.NotEmpty(t, transactions[1].Date)
}

func TestAddTransactionRejectsOutOfRangeAmounts(t *testing.T) {
	store := NewStore()

	_, err := store.AddTransaction(models.Transaction{Description: "bad", Amount: -1})
	assert.Error(t, err)

	_, err = store.AddTransaction(models.Transaction{Description: "too big", Amount: 2000000})
	assert.Error(t, err)

	assert.Empty(t, store.Data().Finance.Transactions)
}

func TestBudgets(t *testing.T) {
	store := NewStore()
	budget := store.AddBudget("food", 500)
	require.NotEmpty(t, budget.ID)

	budgets := store.Data().Finance.Budgets
	require.Len(t, budgets, 1)
	assert.Equal(t, "food", budgets[0].Category)
	assert.Equal(t, 500.0, budgets[0].Limit)

	store.DeleteBudget(budget.ID)
	assert.Empty(t, store.Data().Finance.Budgets)
}

func TestAddLearningPrependsAndValidates(t *testing.T) {
	store := NewStore()

	_, err := store.AddLearning(models.LearningLog{Topic: "", TimeSpent: 30})
	assert.Error(t, err)
	_, err = store.AddLearning(models.LearningLog{Topic: "Go", TimeSpent: 2000})
	assert.Error(t, err, "a session cannot exceed 24 hours")

	older, err := store.AddLearning(models.LearningLog{Topic: "Go", TimeSpent: 60})
	require.NoError(t, err)
	newer, err := store.AddLearning(models.LearningLog{Topic: "Mongo", TimeSpent: 45})
	require.NoError(t, err)

	learnings := store.Data().Learnings
	require.Len(t, learnings, 2)
	assert.Equal(t, newer.ID, learnings[0].ID)
	assert.Equal(t, older.ID, learnings[1].ID)
}

func TestToggleHabitFlipsTodayCompletion(t *testing.T) {
	store := NewStore()
	habit, err := store.AddHabit(models.Habit{Name: "Read"})
	require.NoError(t, err)
	assert.Equal(t, "📌", habit.Icon)

	store.ToggleHabit(habit.ID)
	habits := store.Data().Health.Habits
	require.Len(t, habits, 1)
	require.Len(t, habits[0].Completions, 1)

	// A second toggle on the same day removes today's entry.
	store.ToggleHabit(habit.ID)
	assert.Empty(t, store.Data().Health.Habits[0].Completions)
}

func TestAddWeightEntryKeepsListSortedByDate(t *testing.T) {
	store := NewStore()
	store.AddWeightEntry(models.WeightEntry{Weight: 82, Date: "2026-02-01"})
	store.AddWeightEntry(models.WeightEntry{Weight: 81, Date: "2026-01-01"})
	store.AddWeightEntry(models.WeightEntry{Weight: 80.5, Date: "2026-03-01"})

	weight := store.Data().Health.Weight
	require.Len(t, weight, 3)
	assert.Equal(t, "2026-01-01", weight[0].Date)
	assert.Equal(t, "2026-02-01", weight[1].Date)
	assert.Equal(t, "2026-03-01", weight[2].Date)
}

func TestApplicationPipeline(t *testing.T) {
	store := NewStore()

	_, err := store.AddApplication(models.JobApplication{Role: "", Company: "Acme"})
	assert.Error(t, err)

	app, err := store.AddApplication(models.JobApplication{Role: "Backend Engineer", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, app.Status)

	store.UpdateApplicationStatus(app.ID, models.StatusInterviewing)
	apps := store.Data().Career.Applications
	require.Len(t, apps, 1)
	assert.Equal(t, models.StatusInterviewing, apps[0].Status)

	store.DeleteApplication(app.ID)
	assert.Empty(t, store.Data().Career.Applications)
}

func TestAddSkillDefaultsLevel(t *testing.T) {
	store := NewStore()
	skill := store.AddSkill(models.Skill{Name: "Go"})
	assert.Equal(t, 50, skill.Level)

	rated := store.AddSkill(models.Skill{Name: "MongoDB", Level: 80})
	assert.Equal(t, 80, rated.Level)
}

func TestUpdateProfileMergesNonEmptyFields(t *testing.T) {
	store := NewStore()
	store.UpdateProfile(models.UserProfile{Name: "Maryam"})

	profile := store.Data().Profile
	assert.Equal(t, "Maryam", profile.Name)
	assert.Equal(t, "LifeOS Explorer", profile.Title, "empty fields keep their previous value")

	store.UpdateProfile(models.UserProfile{Title: "Engineer", Avatar: "m.png"})
	profile = store.Data().Profile
	assert.Equal(t, "Maryam", profile.Name)
	assert.Equal(t, "Engineer", profile.Title)
	assert.Equal(t, "m.png", profile.Avatar)
}

func TestToggleTheme(t *testing.T) {
	store := NewStore()
	require.Equal(t, "dark", store.Data().Settings.Theme)

	store.ToggleTheme("")
	assert.Equal(t, "light", store.Data().Settings.Theme)

	store.ToggleTheme("")
	assert.Equal(t, "dark", store.Data().Settings.Theme)

	store.ToggleTheme("solarized")
	assert.Equal(t, "solarized", store.Data().Settings.Theme)
}
