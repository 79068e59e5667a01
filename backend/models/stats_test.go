package models

import (
	"testing"
	"time"

	"github.com/mhasan/lifeos/lib/utils"
	"github.com/stretchr/testify/assert"
)

func TestGoalProgress(t *testing.T) {
	goal := Goal{}
	assert.Equal(t, 0, goal.Progress(), "no checklist means no progress")

	goal.ChecklistItems = []ChecklistItem{
		{Text: "one", Completed: true},
		{Text: "two", Completed: true},
		{Text: "three"},
	}
	assert.Equal(t, 67, goal.Progress(), "progress rounds to the nearest percent")

	goal.ChecklistItems[2].Completed = true
	assert.Equal(t, 100, goal.Progress())
}

func TestPerfectPrayerDay(t *testing.T) {
	full := PrayerTracker{Fajr: true, Dhuhr: true, Asr: true, Maghrib: true, Isha: true}
	assert.True(t, full.Perfect())

	full.Isha = false
	assert.False(t, full.Perfect())
	assert.False(t, PrayerTracker{}.Perfect())
}

func TestPrayerStreak(t *testing.T) {
	today := time.Now()
	perfect := func(offset int) PrayerTracker {
		return PrayerTracker{
			Date: utils.DayKey(today.AddDate(0, 0, offset)),
			Fajr: true, Dhuhr: true, Asr: true, Maghrib: true, Isha: true,
		}
	}

	history := []PrayerTracker{perfect(-1), perfect(-2)}

	assert.Equal(t, 3, PrayerStreak(history, perfect(0)))

	// Today is incomplete, so the streak is measured through yesterday.
	partial := PrayerTracker{Date: utils.DayKey(today), Fajr: true}
	assert.Equal(t, 2, PrayerStreak(history, partial))

	// A broken yesterday means no streak at all.
	assert.Equal(t, 0, PrayerStreak(nil, partial))
}
