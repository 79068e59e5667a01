package state

import (
	"encoding/json"
	"testing"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	source := NewStore()
	task, err := source.AddTask(models.Task{Title: "Backup me", DueDate: "2026-07-01"})
	require.NoError(t, err)
	source.ToggleTheme("light")

	payload, err := source.ExportData()
	require.NoError(t, err)

	target := NewStore()
	require.True(t, target.ImportData(string(payload)))

	data := target.Data()
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, task.ID, data.Tasks[0].ID)
	assert.Equal(t, "light", data.Settings.Theme)
	require.Len(t, data.Reminders, 1)
	assert.Equal(t, task.ID, data.Reminders[0].RelatedID)
}

func TestImportRejectsNonBackupPayloads(t *testing.T) {
	store := NewStore()
	_, err := store.AddTask(models.Task{Title: "Keep me"})
	require.NoError(t, err)
	before := store.Data()

	assert.False(t, store.ImportData("not json at all"))
	assert.False(t, store.ImportData(`{"foo": 1}`))
	assert.False(t, store.ImportData(`{"tasks": []}`), "settings key is required")
	assert.False(t, store.ImportData(`{"settings": {}}`), "tasks key is required")

	after := store.Data()
	assert.Equal(t, before.Tasks, after.Tasks, "a rejected import must leave the aggregate untouched")
}

func TestImportFillsMissingSectionsFromDefaults(t *testing.T) {
	store := NewStore()
	payload := `{"tasks": [], "settings": {"theme": "light"}}`

	require.True(t, store.ImportData(payload))

	data := store.Data()
	assert.Equal(t, "light", data.Settings.Theme)
	assert.Len(t, data.Islam.DailyAzkar, len(models.DefaultAzkar()),
		"sections absent from the backup keep their defaults")
	assert.Len(t, data.Islam.Tasbihs, len(models.DefaultTasbihs()))
}

func TestImportPublishesLocalOriginChange(t *testing.T) {
	store := NewStore()
	changes := store.Subscribe()

	require.True(t, store.ImportData(`{"tasks": [], "settings": {"theme": "dark"}}`))

	change := <-changes
	assert.Equal(t, OriginLocal, change.Origin, "imports must be written back to the remote document")
}

func TestClearDataKeepsSettings(t *testing.T) {
	store := NewStore()
	_, err := store.AddTask(models.Task{Title: "Ephemeral", DueDate: "2026-01-01"})
	require.NoError(t, err)
	store.ToggleTheme("light")

	store.ClearData()

	data := store.Data()
	assert.Empty(t, data.Tasks)
	assert.Empty(t, data.Reminders)
	assert.Equal(t, "light", data.Settings.Theme)
}

func TestExportIsValidJSON(t *testing.T) {
	store := NewStore()
	payload, err := store.ExportData()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Contains(t, decoded, "tasks")
	assert.Contains(t, decoded, "settings")
	assert.Contains(t, decoded, "islam")
}
