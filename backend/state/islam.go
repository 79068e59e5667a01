package state

import (
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/lib/utils"
)

// Commands for the religious-practice collections: Quran reading position,
// hifz revision, daily azkar counters, tasbih counters and prayer tracking.

// Prayer names accepted by TogglePrayer.
const (
	PrayerFajr    = "fajr"
	PrayerDhuhr   = "dhuhr"
	PrayerAsr     = "asr"
	PrayerMaghrib = "maghrib"
	PrayerIsha    = "isha"
)

// UpdateQuranProgress moves the current reading position and stamps the
// last-read time.
func (s *Store) UpdateQuranProgress(page, juz int) {
	s.apply(func(data models.AppData) models.AppData {
		data.Islam.Quran.CurrentPage = page
		data.Islam.Quran.CurrentJuz = juz
		data.Islam.Quran.LastReadDate = time.Now().Format(time.RFC3339)
		return data
	})
}

// AddHifzItem registers a surah being memorized, starting at status "new".
func (s *Store) AddHifzItem(input models.HifzItem) models.HifzItem {
	item := models.HifzItem{
		ID:          utils.GenerateID(),
		SurahName:   input.SurahName,
		JuzNumber:   input.JuzNumber,
		Status:      models.HifzNew,
		LastRevised: time.Now().Format(time.RFC3339),
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Islam.Hifz = append(data.Islam.Hifz, item)
		return data
	})
	return item
}

// UpdateHifzStatus regrades a memorized surah and stamps the revision time.
func (s *Store) UpdateHifzStatus(id string, status models.HifzStatus) {
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Islam.Hifz {
			if data.Islam.Hifz[i].ID == id {
				data.Islam.Hifz[i].Status = status
				data.Islam.Hifz[i].LastRevised = time.Now().Format(time.RFC3339)
				break
			}
		}
		return data
	})
}

// DeleteHifzItem removes a surah from the hifz list.
func (s *Store) DeleteHifzItem(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Islam.Hifz[:0]
		for _, item := range data.Islam.Hifz {
			if item.ID != id {
				out = append(out, item)
			}
		}
		data.Islam.Hifz = out
		return data
	})
}

// TogglePrayer flips one of the five prayer flags on the current-day
// tracker, then upserts that same record into the history keyed by date.
// "Today" and the history entry for today are therefore always identical.
func (s *Store) TogglePrayer(prayer string) {
	s.apply(func(data models.AppData) models.AppData {
		tracker := data.Islam.PrayerTracker
		switch prayer {
		case PrayerFajr:
			tracker.Fajr = !tracker.Fajr
		case PrayerDhuhr:
			tracker.Dhuhr = !tracker.Dhuhr
		case PrayerAsr:
			tracker.Asr = !tracker.Asr
		case PrayerMaghrib:
			tracker.Maghrib = !tracker.Maghrib
		case PrayerIsha:
			tracker.Isha = !tracker.Isha
		default:
			return data
		}
		data.Islam.PrayerTracker = tracker

		replaced := false
		for i := range data.Islam.PrayerHistory {
			if data.Islam.PrayerHistory[i].Date == tracker.Date {
				data.Islam.PrayerHistory[i] = tracker
				replaced = true
				break
			}
		}
		if !replaced {
			data.Islam.PrayerHistory = append(data.Islam.PrayerHistory, tracker)
		}
		return data
	})
}

// IncrementAzkar adds amount to a counter, clamping at its target. The
// counter never decreases through this command and Completed is true
// exactly when the target has been reached.
func (s *Store) IncrementAzkar(id string, amount int) {
	if amount < 0 {
		amount = 0
	}
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Islam.DailyAzkar {
			item := &data.Islam.DailyAzkar[i]
			if item.ID != id {
				continue
			}
			item.Count += amount
			if item.Count > item.Target {
				item.Count = item.Target
			}
			item.Completed = item.Count >= item.Target
			break
		}
		return data
	})
}

// AddAzkarItem creates a remembrance counter starting at zero.
func (s *Store) AddAzkarItem(input models.AzkarItem) models.AzkarItem {
	item := models.AzkarItem{
		ID:       utils.GenerateID(),
		Text:     input.Text,
		Category: input.Category,
		Target:   input.Target,
	}
	if item.Category == "" {
		item.Category = models.AzkarGeneral
	}
	if item.Target == 0 {
		item.Target = 33
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Islam.DailyAzkar = append(data.Islam.DailyAzkar, item)
		return data
	})
	return item
}

// DeleteAzkarItem removes a remembrance counter.
func (s *Store) DeleteAzkarItem(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Islam.DailyAzkar[:0]
		for _, item := range data.Islam.DailyAzkar {
			if item.ID != id {
				out = append(out, item)
			}
		}
		data.Islam.DailyAzkar = out
		return data
	})
}

// ResetAzkar zeroes every counter for a fresh day.
func (s *Store) ResetAzkar() {
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Islam.DailyAzkar {
			data.Islam.DailyAzkar[i].Count = 0
			data.Islam.DailyAzkar[i].Completed = false
		}
		return data
	})
}

// AddTasbih creates a free-running counter.
func (s *Store) AddTasbih(label string, target int) models.TasbihWidget {
	widget := models.TasbihWidget{
		ID:     utils.GenerateID(),
		Label:  label,
		Target: target,
	}
	s.apply(func(data models.AppData) models.AppData {
		data.Islam.Tasbihs = append(data.Islam.Tasbihs, widget)
		return data
	})
	return widget
}

// UpdateTasbih sets a counter to an absolute value.
func (s *Store) UpdateTasbih(id string, count int) {
	s.apply(func(data models.AppData) models.AppData {
		for i := range data.Islam.Tasbihs {
			if data.Islam.Tasbihs[i].ID == id {
				data.Islam.Tasbihs[i].Count = count
				break
			}
		}
		return data
	})
}

// ResetTasbih sets a counter back to zero.
func (s *Store) ResetTasbih(id string) {
	s.UpdateTasbih(id, 0)
}

// DeleteTasbih removes a counter.
func (s *Store) DeleteTasbih(id string) {
	s.apply(func(data models.AppData) models.AppData {
		out := data.Islam.Tasbihs[:0]
		for _, widget := range data.Islam.Tasbihs {
			if widget.ID != id {
				out = append(out, widget)
			}
		}
		data.Islam.Tasbihs = out
		return data
	})
}
