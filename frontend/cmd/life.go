package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	ishell "github.com/abiosoft/ishell"
	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/frontend/client"
	"github.com/mhasan/lifeos/lib/utils"
)

// readIndex prompts for a 1-based index into a list of n items and returns
// the 0-based index, or -1 if the user gave up.
func readIndex(c *ishell.Context, prompt string, n int) int {
	for {
		c.Print(prompt + " (or 'q' to cancel): ")
		line := strings.TrimSpace(c.ReadLine())
		if line == "q" {
			return -1
		}
		i, err := strconv.Atoi(line)
		if err == nil && i >= 1 && i <= n {
			return i - 1
		}
		c.Printf("Please enter a number between 1 and %d.\n", n)
	}
}

// checkmark renders a completion flag the way the task list shows it.
func checkmark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// lifeCommands returns the shell commands for working with the signed-in
// user's life data.
func lifeCommands() []Command {
	return []Command{
		{
			Name: "tasks",
			Desc: "List your tasks",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Tasks) == 0 {
					c.Println("No tasks yet. Add one with 'addtask'.")
					return
				}
				for i, task := range data.Tasks {
					line := fmt.Sprintf("%2d. %s %s (%s)", i+1, checkmark(task.Completed), task.Title, task.Priority)
					if task.DueDate != "" {
						line += " due " + task.DueDate
					}
					c.Println(line)
				}
			},
		},
		{
			Name: "addtask",
			Desc: "Add a new task",
			Func: func(c *ishell.Context) {
				var title string
				for {
					c.Print("Task title: ")
					title = strings.TrimSpace(c.ReadLine())
					if title != "" {
						break
					}
					c.Println("Title cannot be empty.")
				}

				c.Print("Description (optional): ")
				description := strings.TrimSpace(c.ReadLine())

				var priority string
				for {
					c.Print("Priority (low/medium/high, default medium): ")
					priority = strings.ToLower(strings.TrimSpace(c.ReadLine()))
					if priority == "" {
						priority = "medium"
					}
					if priority == "low" || priority == "medium" || priority == "high" {
						break
					}
					c.Println("Priority must be 'low', 'medium' or 'high'.")
				}

				var dueDate string
				for {
					c.Print("Due date YYYY-MM-DD (optional): ")
					dueDate = strings.TrimSpace(c.ReadLine())
					if dueDate == "" || utils.IsValidTime(dueDate) {
						break
					}
					c.Println("Date is not valid.")
				}

				task := models.Task{
					Title:       title,
					Description: description,
					Priority:    models.Priority(priority),
					DueDate:     dueDate,
				}
				var created models.Task
				if err := client.RunCommand("addTask", task, &created); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Task added.")
				if created.DueDate != "" {
					c.Println("A deadline reminder was set for " + created.DueDate + ".")
				}
			},
		},
		{
			Name: "donetask",
			Desc: "Toggle a task between done and not done",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Tasks) == 0 {
					c.Println("No tasks to toggle.")
					return
				}
				for i, task := range data.Tasks {
					c.Printf("%2d. %s %s\n", i+1, checkmark(task.Completed), task.Title)
				}
				i := readIndex(c, "Which task?", len(data.Tasks))
				if i < 0 {
					return
				}
				payload := map[string]string{"id": data.Tasks[i].ID}
				if err := client.RunCommand("toggleTask", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Task updated.")
			},
		},
		{
			Name: "rmtask",
			Desc: "Delete a task",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Tasks) == 0 {
					c.Println("No tasks to delete.")
					return
				}
				for i, task := range data.Tasks {
					c.Printf("%2d. %s %s\n", i+1, checkmark(task.Completed), task.Title)
				}
				i := readIndex(c, "Which task?", len(data.Tasks))
				if i < 0 {
					return
				}
				payload := map[string]string{"id": data.Tasks[i].ID}
				if err := client.RunCommand("deleteTask", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Task deleted, along with any reminder tied to it.")
			},
		},
		{
			Name: "goals",
			Desc: "List your goals and their progress",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Goals) == 0 {
					c.Println("No goals yet.")
					return
				}
				for i, goal := range data.Goals {
					line := fmt.Sprintf("%2d. %s %s [%s/%s] %d%%",
						i+1, checkmark(goal.Completed), goal.Title, goal.Category, goal.Timeframe,
						goal.Progress())
					if goal.Deadline != "" {
						line += " due " + goal.Deadline
					}
					c.Println(line)
				}
			},
		},
		{
			Name: "habits",
			Desc: "List your habits and streaks",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Health.Habits) == 0 {
					c.Println("No habits yet.")
					return
				}
				today := utils.DayKey(time.Now())
				for i, habit := range data.Health.Habits {
					done := false
					for _, day := range habit.Completions {
						if day == today {
							done = true
							break
						}
					}
					c.Printf("%2d. %s %s %s -- %d day streak\n",
						i+1, checkmark(done), habit.Icon, habit.Name, utils.CalculateStreak(habit.Completions))
				}
			},
		},
		{
			Name: "didit",
			Desc: "Mark a habit done (or undone) for today",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Health.Habits) == 0 {
					c.Println("No habits to mark.")
					return
				}
				for i, habit := range data.Health.Habits {
					c.Printf("%2d. %s %s\n", i+1, habit.Icon, habit.Name)
				}
				i := readIndex(c, "Which habit?", len(data.Health.Habits))
				if i < 0 {
					return
				}
				payload := map[string]string{"id": data.Health.Habits[i].ID}
				if err := client.RunCommand("toggleHabit", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Habit updated for today.")
			},
		},
		{
			Name: "prayers",
			Desc: "Show and update today's prayers",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				t := data.Islam.PrayerTracker
				c.Printf("Today (%s): fajr %s  dhuhr %s  asr %s  maghrib %s  isha %s\n",
					t.Date, checkmark(t.Fajr), checkmark(t.Dhuhr), checkmark(t.Asr),
					checkmark(t.Maghrib), checkmark(t.Isha))
				c.Printf("Perfect-day streak: %d\n", models.PrayerStreak(data.Islam.PrayerHistory, t))

				c.Print("Toggle a prayer (fajr/dhuhr/asr/maghrib/isha, empty to skip): ")
				prayer := strings.ToLower(strings.TrimSpace(c.ReadLine()))
				if prayer == "" {
					return
				}
				switch prayer {
				case "fajr", "dhuhr", "asr", "maghrib", "isha":
				default:
					c.Println("Unknown prayer.")
					return
				}
				payload := map[string]string{"prayer": prayer}
				if err := client.RunCommand("togglePrayer", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Prayer updated.")
			},
		},
		{
			Name: "azkar",
			Desc: "Count your daily azkar",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Islam.DailyAzkar) == 0 {
					c.Println("No azkar configured.")
					return
				}
				for i, item := range data.Islam.DailyAzkar {
					c.Printf("%2d. %s %s (%d/%d)\n",
						i+1, checkmark(item.Completed), item.Text, item.Count, item.Target)
				}
				i := readIndex(c, "Count which one?", len(data.Islam.DailyAzkar))
				if i < 0 {
					return
				}
				payload := map[string]interface{}{"id": data.Islam.DailyAzkar[i].ID, "amount": 1}
				if err := client.RunCommand("incrementAzkar", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Counted.")
			},
		},
		{
			Name: "tasbih",
			Desc: "Advance a tasbih counter",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Islam.Tasbihs) == 0 {
					c.Println("No tasbih counters configured.")
					return
				}
				for i, widget := range data.Islam.Tasbihs {
					c.Printf("%2d. %s (%d/%d)\n", i+1, widget.Label, widget.Count, widget.Target)
				}
				i := readIndex(c, "Which counter?", len(data.Islam.Tasbihs))
				if i < 0 {
					return
				}
				widget := data.Islam.Tasbihs[i]
				payload := map[string]interface{}{"id": widget.ID, "count": widget.Count + 1}
				if err := client.RunCommand("updateTasbih", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Printf("%s: %d\n", widget.Label, widget.Count+1)
			},
		},
		{
			Name: "money",
			Desc: "Show recent transactions",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if len(data.Finance.Transactions) == 0 {
					c.Println("No transactions yet.")
					return
				}
				limit := len(data.Finance.Transactions)
				if limit > 10 {
					limit = 10
				}
				for _, txn := range data.Finance.Transactions[:limit] {
					sign := "-"
					if txn.Type == models.TransactionIncome {
						sign = "+"
					}
					c.Printf("%s  %s%.2f  %s (%s)\n", txn.Date, sign, txn.Amount, txn.Description, txn.Category)
				}
			},
		},
		{
			Name: "spent",
			Desc: "Record an expense or income",
			Func: func(c *ishell.Context) {
				var description string
				for {
					c.Print("Description: ")
					description = strings.TrimSpace(c.ReadLine())
					if description != "" {
						break
					}
					c.Println("Description cannot be empty.")
				}

				var amount float64
				for {
					c.Print("Amount: ")
					parsed, err := strconv.ParseFloat(strings.TrimSpace(c.ReadLine()), 64)
					if err == nil && parsed > 0 {
						amount = parsed
						break
					}
					c.Println("Amount must be a positive number.")
				}

				var txnType string
				for {
					c.Print("Type (expense/income, default expense): ")
					txnType = strings.ToLower(strings.TrimSpace(c.ReadLine()))
					if txnType == "" {
						txnType = "expense"
					}
					if txnType == "expense" || txnType == "income" {
						break
					}
					c.Println("Type must be 'expense' or 'income'.")
				}

				c.Print("Category (default other): ")
				category := strings.TrimSpace(c.ReadLine())

				txn := models.Transaction{
					Description: description,
					Amount:      amount,
					Type:        models.TransactionType(txnType),
					Category:    category,
				}
				if err := client.RunCommand("addTransaction", txn, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Transaction recorded.")
			},
		},
		{
			Name: "reminders",
			Desc: "List pending reminders",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				shown := 0
				for _, reminder := range data.Reminders {
					if reminder.Dismissed {
						continue
					}
					shown++
					c.Printf("%s  %s (%s)\n", reminder.Time, reminder.Text, reminder.Priority)
				}
				if shown == 0 {
					c.Println("No pending reminders.")
				}
			},
		},
		{
			Name: "alert",
			Desc: "Show the active reminder and acknowledge or snooze it",
			Func: func(c *ishell.Context) {
				reminder, err := client.ActiveReminder()
				if err != nil {
					handleSessionError(err)
					return
				}
				if reminder == nil {
					c.Println("Nothing is ringing right now.")
					return
				}
				c.Printf("!! %s (due %s)\n", reminder.Text, reminder.Time)
				for {
					c.Print("Acknowledge or snooze? (ack/snooze): ")
					response := strings.ToLower(strings.TrimSpace(c.ReadLine()))
					if response == "ack" {
						if err := client.AcknowledgeReminder(); err != nil {
							handleSessionError(err)
						}
						return
					}
					if response == "snooze" {
						if err := client.SnoozeReminder(); err != nil {
							handleSessionError(err)
						}
						return
					}
					c.Println("Please type 'ack' or 'snooze'.")
				}
			},
		},
		{
			Name: "quran",
			Desc: "Show and update Quran reading progress",
			Func: func(c *ishell.Context) {
				data, err := client.GetData()
				if err != nil {
					handleSessionError(err)
					return
				}
				q := data.Islam.Quran
				c.Printf("Juz %d, page %d, %d khatams completed. Last read %s.\n",
					q.CurrentJuz, q.CurrentPage, q.TotalKhatams, q.LastReadDate)

				c.Print("Update position? (yes/no): ")
				if strings.ToLower(strings.TrimSpace(c.ReadLine())) != "yes" {
					return
				}
				var page, juz int
				for {
					c.Print("Current page: ")
					parsed, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
					if err == nil && parsed > 0 {
						page = parsed
						break
					}
					c.Println("Page must be a positive number.")
				}
				for {
					c.Print("Current juz: ")
					parsed, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
					if err == nil && parsed >= 1 && parsed <= 30 {
						juz = parsed
						break
					}
					c.Println("Juz must be between 1 and 30.")
				}
				payload := map[string]int{"page": page, "juz": juz}
				if err := client.RunCommand("updateQuranProgress", payload, nil); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Progress saved.")
			},
		},
		{
			Name: "export",
			Desc: "Download a JSON backup of all of your data",
			Func: func(c *ishell.Context) {
				c.Print("Write backup to file (default lifeos-backup.json): ")
				path := strings.TrimSpace(c.ReadLine())
				if path == "" {
					path = "lifeos-backup.json"
				}
				backup, err := client.ExportData()
				if err != nil {
					handleSessionError(err)
					return
				}
				if err := os.WriteFile(path, []byte(backup), 0o600); err != nil {
					utils.PrintError("failed to write backup file: " + err.Error())
					return
				}
				c.Println("Backup written to " + path + ".")
			},
		},
		{
			Name: "import",
			Desc: "Restore your data from a JSON backup",
			Func: func(c *ishell.Context) {
				c.Print("Read backup from file: ")
				path := strings.TrimSpace(c.ReadLine())
				backup, err := os.ReadFile(path)
				if err != nil {
					utils.PrintError("failed to read backup file: " + err.Error())
					return
				}
				for {
					c.Print("This replaces ALL of your current data. Continue? (yes/no): ")
					response := strings.ToLower(strings.TrimSpace(c.ReadLine()))
					if response == "no" {
						return
					}
					if response == "yes" {
						break
					}
					c.Println("Invalid response. Please type 'yes' or 'no'.")
				}
				if err := client.ImportData(string(backup)); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Backup restored.")
			},
		},
	}
}
