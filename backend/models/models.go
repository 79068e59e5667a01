package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority is the urgency level shared by tasks and reminders.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// GoalCategory classifies a goal into one of the life areas tracked by the app.
type GoalCategory string

const (
	CategoryPersonal GoalCategory = "personal"
	CategoryCareer   GoalCategory = "career"
	CategoryHealth   GoalCategory = "health"
	CategoryFitness  GoalCategory = "fitness"
	CategoryLearning GoalCategory = "learning"
	CategoryFinance  GoalCategory = "finance"
	CategoryOther    GoalCategory = "other"
)

// Timeframe is the planning horizon of a goal.
type Timeframe string

const (
	TimeframeWeekly    Timeframe = "weekly"
	TimeframeMonthly   Timeframe = "monthly"
	TimeframeQuarterly Timeframe = "quarterly"
	TimeframeYearly    Timeframe = "yearly"
)

// TransactionType marks a finance entry as money in or money out.
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

// ApplicationStatus is the pipeline stage of a job application.
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
)

// ProjectStatus is the lifecycle stage of a freelance project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPending   ProjectStatus = "pending"
)

// ReminderType distinguishes how a reminder came to exist. Deadline
// reminders are derived from a source entity and carry its id in RelatedID.
type ReminderType string

const (
	ReminderSystem   ReminderType = "system"
	ReminderCustom   ReminderType = "custom"
	ReminderDeadline ReminderType = "deadline"
)

// HifzStatus grades how well a memorized surah is retained.
type HifzStatus string

const (
	HifzNew      HifzStatus = "new"
	HifzWeak     HifzStatus = "weak"
	HifzGood     HifzStatus = "good"
	HifzStrong   HifzStatus = "strong"
	HifzMastered HifzStatus = "mastered"
)

// AzkarCategory groups daily remembrances by the time of day they belong to.
type AzkarCategory string

const (
	AzkarMorning AzkarCategory = "morning"
	AzkarEvening AzkarCategory = "evening"
	AzkarSleep   AzkarCategory = "sleep"
	AzkarPrayer  AzkarCategory = "prayer"
	AzkarGeneral AzkarCategory = "general"
)

// ChecklistItem is a sub-step of a goal. It is owned exclusively by one goal
// and identified by its position in the goal's list.
type ChecklistItem struct {
	Text      string `bson:"text" json:"text"`
	Completed bool   `bson:"completed" json:"completed"`
	CreatedAt string `bson:"createdAt" json:"createdAt"`
}

// Task is a single to-do item, optionally linked to a goal and a due date.
// CompletedAt is set iff Completed is true.
type Task struct {
	ID          string   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Priority    Priority `bson:"priority" json:"priority"`
	DueDate     string   `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	GoalID      string   `bson:"goalId,omitempty" json:"goalId,omitempty"`
	Completed   bool     `bson:"completed" json:"completed"`
	CompletedAt string   `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   string   `bson:"createdAt" json:"createdAt"`
}

// Goal is a long-running objective with an optional deadline and a checklist.
type Goal struct {
	ID             string          `bson:"id" json:"id"`
	Title          string          `bson:"title" json:"title"`
	Description    string          `bson:"description" json:"description"`
	Category       GoalCategory    `bson:"category" json:"category"`
	Timeframe      Timeframe       `bson:"timeframe" json:"timeframe"`
	Deadline       string          `bson:"deadline,omitempty" json:"deadline,omitempty"`
	ChecklistItems []ChecklistItem `bson:"checklistItems" json:"checklistItems"`
	Completed      bool            `bson:"completed" json:"completed"`
	CompletedAt    string          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt      string          `bson:"createdAt" json:"createdAt"`
}

// Transaction is one finance ledger entry. The transactions list is
// append-only and kept newest-first.
type Transaction struct {
	ID          string          `bson:"id" json:"id"`
	Description string          `bson:"description" json:"description"`
	Amount      float64         `bson:"amount" json:"amount"`
	Type        TransactionType `bson:"type" json:"type"`
	Category    string          `bson:"category" json:"category"`
	Date        string          `bson:"date" json:"date"`
}

// Budget is a monthly spending cap for one expense category.
type Budget struct {
	ID       string  `bson:"id" json:"id"`
	Category string  `bson:"category" json:"category"`
	Limit    float64 `bson:"limit" json:"limit"`
}

// SavingsGoal is a target amount being saved toward.
type SavingsGoal struct {
	ID      string  `bson:"id" json:"id"`
	Name    string  `bson:"name" json:"name"`
	Target  float64 `bson:"target" json:"target"`
	Current float64 `bson:"current" json:"current"`
}

// LearningLog records one study session. TimeSpent is in minutes.
type LearningLog struct {
	ID        string `bson:"id" json:"id"`
	Topic     string `bson:"topic" json:"topic"`
	Details   string `bson:"details" json:"details"`
	Resource  string `bson:"resource" json:"resource"`
	TimeSpent int    `bson:"timeSpent" json:"timeSpent"`
	Date      string `bson:"date" json:"date"`
}

// Habit tracks a recurring practice. Completions holds one day-key string
// per calendar day the habit was marked done.
type Habit struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Icon        string   `bson:"icon" json:"icon"`
	Completions []string `bson:"completions" json:"completions"`
}

// Workout is one logged exercise session.
type Workout struct {
	ID       string `bson:"id" json:"id"`
	Activity string `bson:"activity" json:"activity"`
	Duration int    `bson:"duration" json:"duration"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
	Date     string `bson:"date" json:"date"`
}

// WeightEntry is one body-weight measurement. The weight list is kept
// sorted ascending by date.
type WeightEntry struct {
	ID     string  `bson:"id" json:"id"`
	Weight float64 `bson:"weight" json:"weight"`
	Date   string  `bson:"date" json:"date"`
}

// EnergyEntry is a self-reported energy level for one day.
type EnergyEntry struct {
	ID    string `bson:"id" json:"id"`
	Level int    `bson:"level" json:"level"`
	Date  string `bson:"date" json:"date"`
}

// Reminder is a time-triggered alert. When RelatedID is set the reminder's
// lifecycle is tied to the task, goal or project it was derived from.
type Reminder struct {
	ID        string       `bson:"id" json:"id"`
	Text      string       `bson:"text" json:"text"`
	Time      string       `bson:"time" json:"time"`
	Type      ReminderType `bson:"type" json:"type"`
	Priority  Priority     `bson:"priority" json:"priority"`
	Notified  bool         `bson:"notified" json:"notified"`
	Dismissed bool         `bson:"dismissed" json:"dismissed"`
	Link      string       `bson:"link,omitempty" json:"link,omitempty"`
	RelatedID string       `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
}

// JobApplication is one entry in the career pipeline.
type JobApplication struct {
	ID      string            `bson:"id" json:"id"`
	Role    string            `bson:"role" json:"role"`
	Company string            `bson:"company" json:"company"`
	Status  ApplicationStatus `bson:"status" json:"status"`
	Date    string            `bson:"date" json:"date"`
	Link    string            `bson:"link,omitempty" json:"link,omitempty"`
}

// Interview is a scheduled interview round for an application.
type Interview struct {
	ID            string `bson:"id" json:"id"`
	ApplicationID string `bson:"applicationId" json:"applicationId"`
	Round         string `bson:"round" json:"round"`
	Date          string `bson:"date" json:"date"`
	Notes         string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Payment is one payment received for a project. Payments are append-only
// and owned by exactly one project.
type Payment struct {
	Amount float64 `bson:"amount" json:"amount"`
	Date   string  `bson:"date" json:"date"`
	Note   string  `bson:"note,omitempty" json:"note,omitempty"`
	Phase  string  `bson:"phase,omitempty" json:"phase,omitempty"`
}

// Project is a freelance engagement with an optional deadline.
type Project struct {
	ID       string        `bson:"id" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Client   string        `bson:"client" json:"client"`
	Status   ProjectStatus `bson:"status" json:"status"`
	Deadline string        `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Value    float64       `bson:"value" json:"value"`
	Advance  float64       `bson:"advance,omitempty" json:"advance,omitempty"`
	Payments []Payment     `bson:"payments" json:"payments"`
}

// FreelanceClient is a client contact record.
type FreelanceClient struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact,omitempty" json:"contact,omitempty"`
}

// TimeEntry is billable time logged against a project.
type TimeEntry struct {
	ID        string  `bson:"id" json:"id"`
	ProjectID string  `bson:"projectId" json:"projectId"`
	Hours     float64 `bson:"hours" json:"hours"`
	Date      string  `bson:"date" json:"date"`
}

// PortfolioItem is a showcased piece of work.
type PortfolioItem struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Link        string `bson:"link,omitempty" json:"link,omitempty"`
}

// Certification is an earned credential.
type Certification struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Issuer string `bson:"issuer" json:"issuer"`
	Date   string `bson:"date" json:"date"`
	URL    string `bson:"url,omitempty" json:"url,omitempty"`
}

// Skill is a named ability with a 1-100 proficiency level.
type Skill struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Level int    `bson:"level" json:"level"`
}

// SocialLink points at an external profile.
type SocialLink struct {
	ID       string `bson:"id" json:"id"`
	Platform string `bson:"platform" json:"platform"`
	URL      string `bson:"url" json:"url"`
}

// UserProfile is the display identity shown in the app header.
type UserProfile struct {
	Name   string `bson:"name" json:"name"`
	Title  string `bson:"title" json:"title"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// HifzItem is one memorized surah and its retention status.
type HifzItem struct {
	ID          string     `bson:"id" json:"id"`
	SurahName   string     `bson:"surahName" json:"surahName"`
	JuzNumber   int        `bson:"juzNumber,omitempty" json:"juzNumber,omitempty"`
	Status      HifzStatus `bson:"status" json:"status"`
	LastRevised string     `bson:"lastRevised" json:"lastRevised"`
}

// QuranProgress tracks the current reading position.
type QuranProgress struct {
	CurrentJuz   int    `bson:"currentJuz" json:"currentJuz"`
	CurrentPage  int    `bson:"currentPage" json:"currentPage"`
	TotalKhatams int    `bson:"totalKhatams" json:"totalKhatams"`
	LastReadDate string `bson:"lastReadDate" json:"lastReadDate"`
}

// AzkarItem is a daily remembrance counter. Count is clamped at Target and
// Completed flips true once Count reaches Target.
type AzkarItem struct {
	ID        string        `bson:"id" json:"id"`
	Text      string        `bson:"text" json:"text"`
	Category  AzkarCategory `bson:"category" json:"category"`
	Count     int           `bson:"count" json:"count"`
	Target    int           `bson:"target" json:"target"`
	Completed bool          `bson:"completed" json:"completed"`
}

// TasbihWidget is a free-running counter with a target.
type TasbihWidget struct {
	ID     string `bson:"id" json:"id"`
	Label  string `bson:"label" json:"label"`
	Count  int    `bson:"count" json:"count"`
	Target int    `bson:"target" json:"target"`
}

// PrayerTracker holds the five daily prayer flags for one calendar day.
type PrayerTracker struct {
	Date    string `bson:"date" json:"date"`
	Fajr    bool   `bson:"fajr" json:"fajr"`
	Dhuhr   bool   `bson:"dhuhr" json:"dhuhr"`
	Asr     bool   `bson:"asr" json:"asr"`
	Maghrib bool   `bson:"maghrib" json:"maghrib"`
	Isha    bool   `bson:"isha" json:"isha"`
}

// IslamData groups the religious-practice collections. PrayerTracker is the
// current day; PrayerHistory holds one entry per recorded day, with the
// current day mirrored into it on every toggle.
type IslamData struct {
	Quran         QuranProgress   `bson:"quran" json:"quran"`
	Hifz          []HifzItem      `bson:"hifz" json:"hifz"`
	DailyAzkar    []AzkarItem     `bson:"dailyAzkar" json:"dailyAzkar"`
	Tasbihs       []TasbihWidget  `bson:"tasbihs" json:"tasbihs"`
	PrayerTracker PrayerTracker   `bson:"prayerTracker" json:"prayerTracker"`
	PrayerHistory []PrayerTracker `bson:"prayerHistory" json:"prayerHistory"`
}

// HealthData groups the health and habit collections.
type HealthData struct {
	Habits   []Habit       `bson:"habits" json:"habits"`
	Workouts []Workout     `bson:"workouts" json:"workouts"`
	Weight   []WeightEntry `bson:"weight" json:"weight"`
	Energy   []EnergyEntry `bson:"energy" json:"energy"`
}

// FinanceData groups the finance collections.
type FinanceData struct {
	Transactions []Transaction `bson:"transactions" json:"transactions"`
	Budgets      []Budget      `bson:"budgets" json:"budgets"`
	Savings      []SavingsGoal `bson:"savings" json:"savings"`
}

// CareerData groups the career collections.
type CareerData struct {
	Applications []JobApplication `bson:"applications" json:"applications"`
	Interviews   []Interview      `bson:"interviews" json:"interviews"`
	Goals        []Goal           `bson:"goals" json:"goals"`
}

// FreelanceData groups the freelance collections.
type FreelanceData struct {
	Projects    []Project         `bson:"projects" json:"projects"`
	Clients     []FreelanceClient `bson:"clients" json:"clients"`
	TimeEntries []TimeEntry       `bson:"timeEntries" json:"timeEntries"`
}

// PortfolioData groups the portfolio collections.
type PortfolioData struct {
	Items          []PortfolioItem `bson:"items" json:"items"`
	Certifications []Certification `bson:"certifications" json:"certifications"`
	Skills         []Skill         `bson:"skills" json:"skills"`
	Links          []SocialLink    `bson:"links" json:"links"`
}

// Settings holds user preferences.
type Settings struct {
	Theme string `bson:"theme" json:"theme"`
}

/// AppData is the aggregate: the single root document holding every
// collection a user owns. It is the unit of persistence and sync, stored
// as one MongoDB document per user and exchanged whole with the frontend.
type AppData struct {
	Profile   UserProfile   `bson:"profile" json:"profile"`
	Tasks     []Task        `bson:"tasks" json:"tasks"`
	Goals     []Goal        `bson:"goals" json:"goals"`
	Learnings []LearningLog `bson:"learnings" json:"learnings"`
	Health    HealthData    `bson:"health" json:"health"`
	Finance   FinanceData   `bson:"finance" json:"finance"`
	Career    CareerData    `bson:"career" json:"career"`
	Freelance FreelanceData `bson:"freelance" json:"freelance"`
	Portfolio PortfolioData `bson:"portfolio" json:"portfolio"`
	Islam     IslamData     `bson:"islam" json:"islam"`
	Reminders []Reminder    `bson:"reminders" json:"reminders"`
	Settings  Settings      `bson:"settings" json:"settings"`
}

// User is an authentication account. AppData documents are keyed by the
// user's id.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"password_hash"`
}

// DefaultAzkar returns the stock set of daily remembrance counters given to
// every new user.
func DefaultAzkar() []AzkarItem {
	return []AzkarItem{
		{ID: "azk_1", Text: "Ayat al-Kursi", Category: AzkarMorning, Count: 0, Target: 1},
		{ID: "azk_2", Text: "SubhanAllah", Category: AzkarMorning, Count: 0, Target: 33},
		{ID: "azk_3", Text: "Alhamdulillah", Category: AzkarMorning, Count: 0, Target: 33},
		{ID: "azk_4", Text: "Allahu Akbar", Category: AzkarMorning, Count: 0, Target: 33},
		{ID: "azk_5", Text: "Ayat al-Kursi", Category: AzkarEvening, Count: 0, Target: 1},
		{ID: "azk_6", Text: "Amanar-Rasul (Surah Baqarah last 2 verses)", Category: AzkarEvening, Count: 0, Target: 1},
		{ID: "azk_7", Text: "Surah Al-Mulk", Category: AzkarSleep, Count: 0, Target: 1},
		{ID: "azk_8", Text: "SubhanAllah wa bihamdihi", Category: AzkarGeneral, Count: 0, Target: 100},
	}
}

// DefaultTasbihs returns the stock tasbih counters given to every new user.
func DefaultTasbihs() []TasbihWidget {
	return []TasbihWidget{
		{ID: "tsb_1", Label: "General Tasbih", Count: 0, Target: 100},
		{ID: "tsb_2", Label: "Istighfar", Count: 0, Target: 1000},
	}
}

// DefaultData builds the aggregate a user starts with before any remote
// document exists. It is also the base that remote documents are merged
// onto, so fields missing from an older document fall back to these values.
func DefaultData() AppData {
	now := time.Now()
	return AppData{
		Profile:   UserProfile{Name: "User", Title: "LifeOS Explorer"},
		Tasks:     []Task{},
		Goals:     []Goal{},
		Learnings: []LearningLog{},
		Health: HealthData{
			Habits:   []Habit{},
			Workouts: []Workout{},
			Weight:   []WeightEntry{},
			Energy:   []EnergyEntry{},
		},
		Finance: FinanceData{
			Transactions: []Transaction{},
			Budgets:      []Budget{},
			Savings:      []SavingsGoal{},
		},
		Career: CareerData{
			Applications: []JobApplication{},
			Interviews:   []Interview{},
			Goals:        []Goal{},
		},
		Freelance: FreelanceData{
			Projects:    []Project{},
			Clients:     []FreelanceClient{},
			TimeEntries: []TimeEntry{},
		},
		Portfolio: PortfolioData{
			Items:          []PortfolioItem{},
			Certifications: []Certification{},
			Skills:         []Skill{},
			Links:          []SocialLink{},
		},
		Islam: IslamData{
			Quran: QuranProgress{
				CurrentJuz:   1,
				CurrentPage:  1,
				TotalKhatams: 0,
				LastReadDate: now.Format(time.RFC3339),
			},
			Hifz:       []HifzItem{},
			DailyAzkar: DefaultAzkar(),
			Tasbihs:    DefaultTasbihs(),
			PrayerTracker: PrayerTracker{
				Date: now.Format("2006-01-02"),
			},
			PrayerHistory: []PrayerTracker{},
		},
		Reminders: []Reminder{},
		Settings:  Settings{Theme: "dark"},
	}
}
