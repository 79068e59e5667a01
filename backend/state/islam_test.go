package state

import (
	"testing"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAzkarClampsAtTarget(t *testing.T) {
	store := NewStore()
	item := store.AddAzkarItem(models.AzkarItem{Text: "Alhamdulillah", Target: 10})

	store.IncrementAzkar(item.ID, 7)
	azkar := findAzkar(t, store, item.ID)
	assert.Equal(t, 7, azkar.Count)
	assert.False(t, azkar.Completed)

	// Overshooting clamps at the target and flips Completed.
	store.IncrementAzkar(item.ID, 7)
	azkar = findAzkar(t, store, item.ID)
	assert.Equal(t, 10, azkar.Count)
	assert.True(t, azkar.Completed)

	// Incrementing a finished counter is a no-op.
	store.IncrementAzkar(item.ID, 1)
	assert.Equal(t, 10, findAzkar(t, store, item.ID).Count)
}

func TestIncrementAzkarNegativeAmountNeverDecrements(t *testing.T) {
	store := NewStore()
	item := store.AddAzkarItem(models.AzkarItem{Text: "Subhanallah", Target: 33})

	store.IncrementAzkar(item.ID, 5)
	store.IncrementAzkar(item.ID, -3)

	assert.Equal(t, 5, findAzkar(t, store, item.ID).Count)
}

func TestAddAzkarItemDefaults(t *testing.T) {
	store := NewStore()
	item := store.AddAzkarItem(models.AzkarItem{Text: "Istighfar"})

	assert.Equal(t, models.AzkarGeneral, item.Category)
	assert.Equal(t, 33, item.Target)
	assert.Zero(t, item.Count)
}

func TestResetAzkarZeroesEveryCounter(t *testing.T) {
	store := NewStore()
	item := store.AddAzkarItem(models.AzkarItem{Text: "Takbir", Target: 5})
	store.IncrementAzkar(item.ID, 5)
	require.True(t, findAzkar(t, store, item.ID).Completed)

	store.ResetAzkar()

	for _, azkar := range store.Data().Islam.DailyAzkar {
		assert.Zero(t, azkar.Count)
		assert.False(t, azkar.Completed)
	}
}

func TestTogglePrayerMirrorsIntoHistory(t *testing.T) {
	store := NewStore()

	store.TogglePrayer(PrayerFajr)
	store.TogglePrayer(PrayerIsha)

	data := store.Data()
	assert.True(t, data.Islam.PrayerTracker.Fajr)
	assert.True(t, data.Islam.PrayerTracker.Isha)
	assert.False(t, data.Islam.PrayerTracker.Dhuhr)

	// Both toggles land on the same history entry, keyed by date.
	require.Len(t, data.Islam.PrayerHistory, 1)
	assert.Equal(t, data.Islam.PrayerTracker, data.Islam.PrayerHistory[0])

	// Toggling off updates the history in place rather than appending.
	store.TogglePrayer(PrayerFajr)
	data = store.Data()
	assert.False(t, data.Islam.PrayerTracker.Fajr)
	require.Len(t, data.Islam.PrayerHistory, 1)
	assert.False(t, data.Islam.PrayerHistory[0].Fajr)
}

func TestTogglePrayerUnknownNameIsNoOp(t *testing.T) {
	store := NewStore()
	store.TogglePrayer("midnight")

	data := store.Data()
	assert.Empty(t, data.Islam.PrayerHistory)
	assert.Equal(t, models.PrayerTracker{Date: data.Islam.PrayerTracker.Date}, data.Islam.PrayerTracker)
}

func TestHifzLifecycle(t *testing.T) {
	store := NewStore()
	item := store.AddHifzItem(models.HifzItem{SurahName: "Al-Mulk", JuzNumber: 29})
	assert.Equal(t, models.HifzNew, item.Status)
	assert.NotEmpty(t, item.LastRevised)

	store.UpdateHifzStatus(item.ID, models.HifzStrong)
	hifz := store.Data().Islam.Hifz
	require.Len(t, hifz, 1)
	assert.Equal(t, models.HifzStrong, hifz[0].Status)

	store.DeleteHifzItem(item.ID)
	assert.Empty(t, store.Data().Islam.Hifz)
}

func TestTasbihCounters(t *testing.T) {
	store := NewStore()
	widget := store.AddTasbih("salawat", 100)

	store.UpdateTasbih(widget.ID, 42)
	assert.Equal(t, 42, findTasbih(t, store, widget.ID).Count)

	store.ResetTasbih(widget.ID)
	assert.Zero(t, findTasbih(t, store, widget.ID).Count)

	store.DeleteTasbih(widget.ID)
	for _, w := range store.Data().Islam.Tasbihs {
		assert.NotEqual(t, widget.ID, w.ID)
	}
}

func TestUpdateQuranProgress(t *testing.T) {
	store := NewStore()
	store.UpdateQuranProgress(104, 6)

	quran := store.Data().Islam.Quran
	assert.Equal(t, 104, quran.CurrentPage)
	assert.Equal(t, 6, quran.CurrentJuz)
	assert.NotEmpty(t, quran.LastReadDate)
}

func findAzkar(t *testing.T, store *Store, id string) models.AzkarItem {
	t.Helper()
	for _, item := range store.Data().Islam.DailyAzkar {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("azkar %s not found", id)
	return models.AzkarItem{}
}

func findTasbih(t *testing.T, store *Store, id string) models.TasbihWidget {
	t.Helper()
	for _, widget := range store.Data().Islam.Tasbihs {
		if widget.ID == id {
			return widget
		}
	}
	t.Fatalf("tasbih %s not found", id)
	return models.TasbihWidget{}
}
