package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/backend/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStorage is an in-memory stand-in for the MongoDB layer. Saves are
// recorded for inspection and the watch channel is fed by tests.
type fakeStorage struct {
	mu       sync.Mutex
	doc      bson.Raw
	loadErr  error
	watchErr error
	saves    []models.AppData
	watch    chan bson.Raw
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{watch: make(chan bson.Raw)}
}

func (f *fakeStorage) Connect(dbName, connectionURI string) error { return nil }
func (f *fakeStorage) Disconnect() error                          { return nil }

func (f *fakeStorage) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

func (f *fakeStorage) FindUser(ctx context.Context, filter interface{}) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStorage) UpdateUser(ctx context.Context, filter interface{}, update interface{}) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStorage) DeleteUser(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	return &mongo.DeleteResult{}, nil
}

func (f *fakeStorage) UserCount(ctx context.Context, filter interface{}) (int64, error) {
	return 0, nil
}

func (f *fakeStorage) LoadData(ctx context.Context, userID string) (bson.Raw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.doc == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.doc, nil
}

func (f *fakeStorage) SaveData(ctx context.Context, userID string, data models.AppData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, data)
	return nil
}

func (f *fakeStorage) WatchData(ctx context.Context, userID string) (<-chan bson.Raw, error) {
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return f.watch, nil
}

func (f *fakeStorage) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStorage) lastSave(t *testing.T) models.AppData {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.saves)
	return f.saves[len(f.saves)-1]
}

func mustMarshal(t *testing.T, doc interface{}) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func startBridge(t *testing.T, store *state.Store, stor *fakeStorage) (*Bridge, context.CancelFunc) {
	t.Helper()
	bridge := NewBridge(store, stor, "user-1")
	bridge.SetDebounce(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	bridge.Start(ctx)
	return bridge, cancel
}

func TestStartSeedsNewUserWithDefaults(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	// The defaults are both in the store and written out immediately, so
	// a second device starts from the same document.
	assert.Equal(t, "dark", store.Data().Settings.Theme)
	require.Equal(t, 1, stor.saveCount())
	assert.Equal(t, models.DefaultData().Settings, stor.lastSave(t).Settings)
}

func TestStartLoadsExistingDocument(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{"settings": bson.M{"theme": "light"}})

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	assert.Equal(t, "light", store.Data().Settings.Theme)
	assert.Equal(t, 0, stor.saveCount(), "loading an existing document writes nothing back")
}

func TestBurstOfLocalChangesCollapsesToOneSave(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{})

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	widget := store.AddTasbih("subhanallah", 33)
	for i := 1; i <= 5; i++ {
		store.UpdateTasbih(widget.ID, i)
	}

	time.Sleep(100 * time.Millisecond)

	require.Equal(t, 1, stor.saveCount(), "edits within the debounce window collapse")
	saved := stor.lastSave(t)
	found := false
	for _, tasbih := range saved.Islam.Tasbihs {
		if tasbih.ID == widget.ID {
			found = true
			assert.Equal(t, 5, tasbih.Count, "the save carries the final state of the burst")
		}
	}
	assert.True(t, found)
}

func TestSpacedChangesSaveSeparately(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{})

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	widget := store.AddTasbih("alhamdulillah", 33)
	time.Sleep(100 * time.Millisecond)
	store.UpdateTasbih(widget.ID, 1)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 2, stor.saveCount())
}

func TestRemoteDocumentUpdatesStoreWithoutEcho(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{})

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	changes := store.Subscribe()

	stor.watch <- mustMarshal(t, bson.M{"settings": bson.M{"theme": "light"}})

	select {
	case change := <-changes:
		assert.Equal(t, state.OriginRemote, change.Origin)
		assert.Equal(t, "light", change.Data.Settings.Theme)
	case <-time.After(time.Second):
		t.Fatal("remote document never reached the store")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, stor.saveCount(), "merged remote documents are not written back")
}

func TestRemoteDocumentCancelsPendingSave(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{})

	bridge := NewBridge(store, stor, "user-1")
	bridge.SetDebounce(150 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	bridge.Start(ctx)
	defer cancel()

	store.AddTasbih("astaghfirullah", 33)
	time.Sleep(20 * time.Millisecond)

	// The remote write lands before the debounce fires and supersedes the
	// queued local save.
	stor.watch <- mustMarshal(t, bson.M{"settings": bson.M{"theme": "light"}})

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, stor.saveCount())
	assert.Equal(t, "light", store.Data().Settings.Theme)
}

func TestCancelDiscardsPendingSave(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{})

	bridge := NewBridge(store, stor, "user-1")
	bridge.SetDebounce(200 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	bridge.Start(ctx)

	store.AddTasbih("la ilaha illallah", 100)
	time.Sleep(20 * time.Millisecond)
	cancel()

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 0, stor.saveCount())
}

func TestLoadFailureStartsFromDefaultsWithoutSaving(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.loadErr = errors.New("connection reset")

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	// The session comes up on defaults; the remote document may still be
	// intact, so nothing is written over it.
	assert.Equal(t, "dark", store.Data().Settings.Theme)
	assert.Equal(t, 0, stor.saveCount())

	// Local work proceeds and settled changes still save.
	store.AddTasbih("subhanallah", 33)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, stor.saveCount())
}

func TestWatchFailureRunsLocalOnly(t *testing.T) {
	store := state.NewStore()
	stor := newFakeStorage()
	stor.doc = mustMarshal(t, bson.M{"settings": bson.M{"theme": "light"}})
	stor.watchErr = errors.New("change streams unavailable")

	_, cancel := startBridge(t, store, stor)
	defer cancel()

	assert.Equal(t, "light", store.Data().Settings.Theme)

	store.AddTasbih("alhamdulillah", 33)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, stor.saveCount())
}
