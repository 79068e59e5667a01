package models

// Clone returns a deep copy of the aggregate. Commands compute each next
// aggregate from a copy, and snapshots handed to readers are copies, so no
// slice memory is ever shared across a mutation boundary.
func (d AppData) Clone() AppData {
	out := d

	out.Tasks = append([]Task(nil), d.Tasks...)
	out.Learnings = append([]LearningLog(nil), d.Learnings...)
	out.Reminders = append([]Reminder(nil), d.Reminders...)

	out.Goals = cloneGoals(d.Goals)

	out.Health.Habits = make([]Habit, len(d.Health.Habits))
	for i, habit := range d.Health.Habits {
		habit.Completions = append([]string(nil), habit.Completions...)
		out.Health.Habits[i] = habit
	}
	out.Health.Workouts = append([]Workout(nil), d.Health.Workouts...)
	out.Health.Weight = append([]WeightEntry(nil), d.Health.Weight...)
	out.Health.Energy = append([]EnergyEntry(nil), d.Health.Energy...)

	out.Finance.Transactions = append([]Transaction(nil), d.Finance.Transactions...)
	out.Finance.Budgets = append([]Budget(nil), d.Finance.Budgets...)
	out.Finance.Savings = append([]SavingsGoal(nil), d.Finance.Savings...)

	out.Career.Applications = append([]JobApplication(nil), d.Career.Applications...)
	out.Career.Interviews = append([]Interview(nil), d.Career.Interviews...)
	out.Career.Goals = cloneGoals(d.Career.Goals)

	out.Freelance.Projects = make([]Project, len(d.Freelance.Projects))
	for i, project := range d.Freelance.Projects {
		project.Payments = append([]Payment(nil), project.Payments...)
		out.Freelance.Projects[i] = project
	}
	out.Freelance.Clients = append([]FreelanceClient(nil), d.Freelance.Clients...)
	out.Freelance.TimeEntries = append([]TimeEntry(nil), d.Freelance.TimeEntries...)

	out.Portfolio.Items = append([]PortfolioItem(nil), d.Portfolio.Items...)
	out.Portfolio.Certifications = append([]Certification(nil), d.Portfolio.Certifications...)
	out.Portfolio.Skills = append([]Skill(nil), d.Portfolio.Skills...)
	out.Portfolio.Links = append([]SocialLink(nil), d.Portfolio.Links...)

	out.Islam.Hifz = append([]HifzItem(nil), d.Islam.Hifz...)
	out.Islam.DailyAzkar = append([]AzkarItem(nil), d.Islam.DailyAzkar...)
	out.Islam.Tasbihs = append([]TasbihWidget(nil), d.Islam.Tasbihs...)
	out.Islam.PrayerHistory = append([]PrayerTracker(nil), d.Islam.PrayerHistory...)

	return out
}

func cloneGoals(goals []Goal) []Goal {
	out := make([]Goal, len(goals))
	for i, goal := range goals {
		goal.ChecklistItems = append([]ChecklistItem(nil), goal.ChecklistItems...)
		out[i] = goal
	}
	return out
}
