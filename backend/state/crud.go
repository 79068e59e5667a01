package state

import (
	"sort"
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/lib/utils"
	"github.com/mhasan/lifeos/lib/validation"
)

// Commands for the collections with no cross-entity invariants: finance,
// learning, health, career and portfolio records.

// AddTransaction records a finance entry. The transactions list is kept
// newest-first.
func (s *Store) AddTransaction(input models.Transaction) (models.Transaction, error) {
	if err := validation.ValidateTransaction(input); err != nil {
		return models.Transaction{}, err
	}

	transaction := models.Transaction{
		ID:          utils.GenerateID(),
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Date:        input.Date,
	}
	if transaction.Type == "" {
		transaction.Type = models.TransactionExpense
	}
	if transaction.Category == "" {
		transaction.Category = "other"
	}
	if transaction.Date == "" {
		transaction.Date = time.Now().Format(time.RFC3339)
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Finance.Transactions = append([]models.Transaction{transaction}, data.Finance.Transactions...)
		return data
	})
	return transaction, nil
}

// DeleteTransaction removes a finance entry.
func (s *Store) DeleteTransaction(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Finance.Transactions[:0]
		for _, transaction := range data.Finance.Transactions {
			if transaction.ID != id {
				out = append(out, transaction)
			}
		}
		data.Finance.Transactions = out
		return data
	})
}

// AddBudget sets a spending cap for a category.
func (s *Store) AddBudget(category string, limit float64) models.Budget {
	budget := models.Budget{
		ID:       utils.GenerateID(),
		Category: category,
		Limit:    limit,
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Finance.Budgets = append(data.Finance.Budgets, budget)
		return data
	})
	return budget
}

// DeleteBudget removes a budget.
func (s *Store) DeleteBudget(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Finance.Budgets[:0]
		for _, budget := range data.Finance.Budgets {
			if budget.ID != id {
				out = append(out, budget)
			}
		}
		data.Finance.Budgets = out
		return data
	})
}

// AddLearning records a study session, newest-first.
func (s *Store) AddLearning(input models.LearningLog) (models.LearningLog, error) {
	if err := validation.ValidateLearning(input); err != nil {
		return models.LearningLog{}, err
	}

	log := models.LearningLog{
		ID:        utils.GenerateID(),
		Topic:     input.Topic,
		Details:   input.Details,
		Resource:  input.Resource,
		TimeSpent: input.TimeSpent,
		Date:      time.Now().Format(time.RFC3339),
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Learnings = append([]models.LearningLog{log}, data.Learnings...)
		return data
	})
	return log, nil
}

// DeleteLearning removes a study session.
func (s *Store) DeleteLearning(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Learnings[:0]
		for _, log := range data.Learnings {
			if log.ID != id {
				out = append(out, log)
			}
		}
		data.Learnings = out
		return data
	})
}

// AddHabit creates a habit with no completions.
func (s *Store) AddHabit(input models.Habit) (models.Habit, error) {
	if err := validation.ValidateHabit(input); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:          utils.GenerateID(),
		Name:        input.Name,
		Icon:        input.Icon,
		Completions: []string{},
	}
	if habit.Icon == "" {
		habit.Icon = "📌"
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Health.Habits = append(data.Health.Habits, habit)
		return data
	})
	return habit, nil
}

// ToggleHabit marks or unmarks the habit done for the current calendar day.
func (s *Store) ToggleHabit(id string) {
	today := utils.DayKey(time.Now())
	s.apply(func(data models.AppData) models.AppData {
		for i, habit := range data.Health.Habits {
			if habit.ID != id {
				continue
			}
			done := false
			completions := habit.Completions[:0]
			for _, day := range habit.Completions {
				if day == today {
					done = true
					continue
				}
				completions = append(completions, day)
			}
			if !done {
				completions = append(completions, today)
			}
			data.Health.Habits[i].Completions = completions
			break
		}
		return data
	})
}

// DeleteHabit removes a habit and its completion history.
func (s *Store) DeleteHabit(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Health.Habits[:0]
		for _, habit := range data.Health.Habits {
			if habit.ID != id {
				out = append(out, habit)
			}
		}
		data.Health.Habits = out
		return data
	})
}

// AddWorkout logs an exercise session, newest-first.
func (s *Store) AddWorkout(input models.Workout) models.Workout {
	workout := models.Workout{
		ID:       utils.GenerateID(),
		Activity: input.Activity,
		Duration: input.Duration,
		Notes:    input.Notes,
		Date:     input.Date,
	}
	if workout.Date == "" {
		workout.Date = time.Now().Format(time.RFC3339)
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Health.Workouts = append([]models.Workout{workout}, data.Health.Workouts...)
		return data
	})
	return workout
}

// DeleteWorkout removes a logged workout.
func (s *Store) DeleteWorkout(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Health.Workouts[:0]
		for _, workout := range data.Health.Workouts {
			if workout.ID != id {
				out = append(out, workout)
			}
		}
		data.Health.Workouts = out
		return data
	})
}

// AddWeightEntry records a body-weight measurement. The list stays sorted
// ascending by date.
func (s *Store) AddWeightEntry(input models.WeightEntry) models.WeightEntry {
	entry := models.WeightEntry{
		ID:     utils.GenerateID(),
		Weight: input.Weight,
		Date:   input.Date,
	}
	if entry.Date == "" {
		entry.Date = time.Now().Format(time.RFC3339)
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Health.Weight = append(data.Health.Weight, entry)
		sort.SliceStable(data.Health.Weight, func(i, j int) bool {
			return data.Health.Weight[i].Date < data.Health.Weight[j].Date
		})
		return data
	})
	return entry
}

// DeleteWeightEntry removes a body-weight measurement.
func (s *Store) DeleteWeightEntry(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Health.Weight[:0]
		for _, entry := range data.Health.Weight {
			if entry.ID != id {
				out = append(out, entry)
			}
		}
		data.Health.Weight = out
		return data
	})
}

// AddApplication records a job application.
func (s *Store) AddApplication(input models.JobApplication) (models.JobApplication, error) {
	if err := validation.ValidateApplication(input); err != nil {
		return models.JobApplication{}, err
	}

	app := models.JobApplication{
		ID:      utils.GenerateID(),
		Role:    input.Role,
		Company: input.Company,
		Status:  input.Status,
		Date:    time.Now().Format(time.RFC3339),
		Link:    input.Link,
	}
	if app.Status == "" {
		app.Status = models.StatusApplied
	}

	s.apply(func(data models.AppData) models.AppData {
		data.Career.Applications = append(data.Career.Applications, app)
		return data
	})
	return app, nil
}

// UpdateApplicationStatus moves an application to a new pipeline stage.
func (s *Store) UpdateApplicationStatus(id string, status models.ApplicationStatus) {
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Career.Applications {
			if data.Career.Applications[i].ID == id {
				data.Career.Applications[i].Status = status
				break
			}
		}
		return data
	})
}

// DeleteApplication removes a job application.
func (s *Store) DeleteApplication(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Career.Applications[:0]
		for _, app := range data.Career.Applications {
			if app.ID != id {
				out = append(out, app)
			}
		}
		data.Career.Applications = out
		return data
	})
}

// AddPortfolioItem adds a showcased piece of work.
func (s *Store) AddPortfolioItem(input models.PortfolioItem) models.PortfolioItem {
	item := models.PortfolioItem{
		ID:          utils.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Link:        input.Link,
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Portfolio.Items = append(data.Portfolio.Items, item)
		return data
	})
	return item
}

// DeletePortfolioItem removes a showcased piece of work.
func (s *Store) DeletePortfolioItem(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Portfolio.Items[:0]
		for _, item := range data.Portfolio.Items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		data.Portfolio.Items = out
		return data
	})
}

// AddCertification records an earned credential.
func (s *Store) AddCertification(input models.Certification) models.Certification {
	cert := models.Certification{
		ID:     utils.GenerateID(),
		Name:   input.Name,
		Issuer: input.Issuer,
		Date:   input.Date,
		URL:    input.URL,
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Portfolio.Certifications = append(data.Portfolio.Certifications, cert)
		return data
	})
	return cert
}

// DeleteCertification removes a credential.
func (s *Store) DeleteCertification(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Portfolio.Certifications[:0]
		for _, cert := range data.Portfolio.Certifications {
			if cert.ID != id {
				out = append(out, cert)
			}
		}
		data.Portfolio.Certifications = out
		return data
	})
}

// AddSkill adds a named skill. A zero level defaults to 50.
func (s *Store) AddSkill(input models.Skill) models.Skill {
	skill := models.Skill{
		ID:    utils.GenerateID(),
		Name:  input.Name,
		Level: input.Level,
	}
	if skill.Level == 0 {
		skill.Level = 50
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Portfolio.Skills = append(data.Portfolio.Skills, skill)
		return data
	})
	return skill
}

// DeleteSkill removes a skill.
func (s *Store) DeleteSkill(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Portfolio.Skills[:0]
		for _, skill := range data.Portfolio.Skills {
			if skill.ID != id {
				out = append(out, skill)
			}
		}
		data.Portfolio.Skills = out
		return data
	})
}

// AddLink adds an external profile link.
func (s *Store) AddLink(input models.SocialLink) models.SocialLink {
	link := models.SocialLink{
		ID:       utils.GenerateID(),
		Platform: input.Platform,
		URL:      input.URL,
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Portfolio.Links = append(data.Portfolio.Links, link)
		return data
	})
	return link
}

// DeleteLink removes an external profile link.
func (s *Store) DeleteLink(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Portfolio.Links[:0]
		for _, link := range data.Portfolio.Links {
			if link.ID != id {
				out = append(out, link)
			}
		}
		data.Portfolio.Links = out
		return data
	})
}

// UpdateProfile merges the non-empty fields of the given profile into the
// stored one.
func (s *Store) UpdateProfile(profile models.UserProfile) {
	s.apply(func(data models.AppData) models.AppData {
		if profile.Name != "" {
			data.Profile.Name = profile.Name
		}
		if profile.Title != "" {
			data.Profile.Title = profile.Title
		}
		if profile.Avatar != "" {
			data.Profile.Avatar = profile.Avatar
		}
		return data
	})
}

// ToggleTheme switches between dark and light, or forces the given theme.
func (s *Store) ToggleTheme(theme string) {
	s.apply(func(data models.AppData) models.AppData {
		switch {
		case theme != "":
			data.Settings.Theme = theme
		case data.Settings.Theme == "dark":
			data.Settings.Theme = "light"
		default:
			data.Settings.Theme = "dark"
		}
		return data
	})
}
