package models

import (
	"time"

	"github.com/mhasan/lifeos/lib/utils"
)

// Progress returns the percent of the goal's checklist that is complete,
// 0 for a goal with no checklist items.
func (g Goal) Progress() int {
	if len(g.ChecklistItems) == 0 {
		return 0
	}
	completed := 0
	for _, item := range g.ChecklistItems {
		if item.Completed {
			completed++
		}
	}
	return int(float64(completed)/float64(len(g.ChecklistItems))*100 + 0.5)
}

// Perfect reports whether all five prayers were logged for the day.
func (p PrayerTracker) Perfect() bool {
	return p.Fajr && p.Dhuhr && p.Asr && p.Maghrib && p.Isha
}

// PrayerStreak returns the number of consecutive fully-prayed days ending
// today, or yesterday if today is not yet complete.
func PrayerStreak(history []PrayerTracker, current PrayerTracker) int {
	byDate := make(map[string]PrayerTracker, len(history)+1)
	for _, entry := range history {
		byDate[entry.Date] = entry
	}
	byDate[current.Date] = current

	today := time.Now()
	day := today
	if entry, ok := byDate[utils.DayKey(today)]; !ok || !entry.Perfect() {
		day = today.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		entry, ok := byDate[utils.DayKey(day)]
		if !ok || !entry.Perfect() {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
