package state

import (
	"sync"
	"testing"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreStartsFromDefaults(t *testing.T) {
	store := NewStore()
	data := store.Data()

	assert.Empty(t, data.Tasks)
	assert.Equal(t, "dark", data.Settings.Theme)
	assert.Len(t, data.Islam.DailyAzkar, len(models.DefaultAzkar()))
	assert.Len(t, data.Islam.Tasbihs, len(models.DefaultTasbihs()))
}

func TestDataReturnsIndependentSnapshot(t *testing.T) {
	store := NewStore()
	_, err := store.AddTask(models.Task{Title: "original"})
	require.NoError(t, err)

	snapshot := store.Data()
	snapshot.Tasks[0].Title = "mutated"
	snapshot.Islam.DailyAzkar[0].Count = 999

	fresh := store.Data()
	assert.Equal(t, "original", fresh.Tasks[0].Title)
	assert.Zero(t, fresh.Islam.DailyAzkar[0].Count)
}

func TestSubscribeDeliversOrigins(t *testing.T) {
	store := NewStore()
	changes := store.Subscribe()

	_, err := store.AddTask(models.Task{Title: "local change"})
	require.NoError(t, err)

	change := <-changes
	assert.Equal(t, OriginLocal, change.Origin)
	require.Len(t, change.Data.Tasks, 1)

	store.Replace(models.DefaultData(), OriginRemote)
	change = <-changes
	assert.Equal(t, OriginRemote, change.Origin)
	assert.Empty(t, change.Data.Tasks)
}

func TestSlowSubscriberStillSeesLatestState(t *testing.T) {
	store := NewStore()
	changes := store.Subscribe()

	// Push well past the channel buffer without draining.
	for i := 0; i < 100; i++ {
		store.AddTasbih("salawat", 100)
	}

	var last Change
	received := 0
	for {
		select {
		case change := <-changes:
			last = change
			received++
			continue
		default:
		}
		break
	}

	require.NotZero(t, received)
	assert.Len(t, last.Data.Islam.Tasbihs, len(store.Data().Islam.Tasbihs),
		"the newest change must survive buffer overflow")
}

func TestConcurrentCommandsPublishInMutationOrder(t *testing.T) {
	store := NewStore()
	changes := store.Subscribe()
	base := len(store.Data().Islam.Tasbihs)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				store.AddTasbih("dhikr", 100)
			}
		}()
	}
	wg.Wait()

	// Every snapshot grows by one tasbih, so delivered changes must carry
	// nondecreasing counts; an older snapshot arriving after a newer one
	// would show up as a decrease. Buffer overflow only skips changes, it
	// never reorders them.
	seen := base
	var last Change
	received := 0
	for {
		select {
		case change := <-changes:
			n := len(change.Data.Islam.Tasbihs)
			require.GreaterOrEqual(t, n, seen, "changes delivered out of mutation order")
			seen = n
			last = change
			received++
			continue
		default:
		}
		break
	}

	require.NotZero(t, received)
	assert.Len(t, last.Data.Islam.Tasbihs, base+100,
		"the final change must carry the final state")
}
