package sync

import (
	"testing"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMergeWithDefaultsKeepsDefaultsForMissingSections(t *testing.T) {
	// A document written before newer sections existed carries only a
	// handful of fields.
	raw, err := bson.Marshal(bson.M{
		"settings": bson.M{"theme": "light"},
		"tasks": []bson.M{
			{"id": "t1", "title": "water the plants"},
		},
	})
	require.NoError(t, err)

	data, err := MergeWithDefaults(raw)
	require.NoError(t, err)

	assert.Equal(t, "light", data.Settings.Theme)
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, "water the plants", data.Tasks[0].Title)

	defaults := models.DefaultData()
	assert.Equal(t, defaults.Profile.Name, data.Profile.Name)
	assert.Len(t, data.Islam.DailyAzkar, len(models.DefaultAzkar()))
	assert.Len(t, data.Islam.Tasbihs, len(models.DefaultTasbihs()))
}

func TestMergeWithDefaultsRestoresEmptyDhikrSets(t *testing.T) {
	// Documents from older versions store the dhikr sections as empty
	// arrays rather than omitting them.
	raw, err := bson.Marshal(bson.M{
		"islam": bson.M{
			"dailyAzkar": []bson.M{},
			"tasbihs":    []bson.M{},
			"quran":      bson.M{"currentPage": 42},
		},
	})
	require.NoError(t, err)

	data, err := MergeWithDefaults(raw)
	require.NoError(t, err)

	assert.Equal(t, 42, data.Islam.Quran.CurrentPage)
	assert.Equal(t, models.DefaultAzkar(), data.Islam.DailyAzkar)
	assert.Equal(t, models.DefaultTasbihs(), data.Islam.Tasbihs)
}

func TestMergeWithDefaultsKeepsSavedDhikrSets(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"islam": bson.M{
			"dailyAzkar": []bson.M{
				{"id": "a1", "text": "custom dhikr", "target": 10, "count": 3},
			},
		},
	})
	require.NoError(t, err)

	data, err := MergeWithDefaults(raw)
	require.NoError(t, err)

	require.Len(t, data.Islam.DailyAzkar, 1)
	assert.Equal(t, "custom dhikr", data.Islam.DailyAzkar[0].Text)
	assert.Equal(t, 3, data.Islam.DailyAzkar[0].Count)
}

func TestMergeWithDefaultsRejectsGarbage(t *testing.T) {
	_, err := MergeWithDefaults(bson.Raw("not a bson document"))
	assert.Error(t, err)
}
