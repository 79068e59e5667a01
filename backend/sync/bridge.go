package sync

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/backend/state"
	storage "github.com/mhasan/lifeos/backend/storage/persistent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultDebounce is how long the bridge waits after the last local change
// before writing the aggregate to the remote document. A burst of edits
// collapses into a single save of the final state.
const DefaultDebounce = time.Second

// Bridge keeps one user's in-memory store and their remote life data
// document in sync. Local changes are written out after a debounce window,
// and remote writes (from another device or session) are merged into the
// store as they arrive.
type Bridge struct {
	store    *state.Store
	storage  storage.StorageInterface
	userID   string
	debounce time.Duration
}

// NewBridge returns a Bridge for the given user with the default debounce.
func NewBridge(st *state.Store, stor storage.StorageInterface, userID string) *Bridge {
	return &Bridge{
		store:    st,
		storage:  stor,
		userID:   userID,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the debounce window. Intended for tests.
func (b *Bridge) SetDebounce(d time.Duration) {
	b.debounce = d
}

// Start seeds the store from the remote document, then spawns the sync loop.
// It returns once the initial load has completed, so callers can serve reads
// immediately after, and the loop runs until ctx is cancelled. Remote
// failures never block the session: a failed load seeds the defaults and a
// failed watch leaves the loop running local-only, saving settled local
// changes as usual.
func (b *Bridge) Start(ctx context.Context) {
	b.loadInitial(ctx)

	changes := b.store.Subscribe()
	remote, err := b.storage.WatchData(ctx, b.userID)
	if err != nil {
		log.Printf("error opening remote watch for user %s, continuing local-only: %v", b.userID, err)
		remote = nil
	}

	go b.run(ctx, changes, remote)
}

// run shuttles changes in both directions until ctx is cancelled. A pending
// debounced save is discarded on cancellation; only settled state is worth
// persisting.
func (b *Bridge) run(ctx context.Context, changes <-chan state.Change, remote <-chan bson.Raw) {

	var timer *time.Timer
	var fire <-chan time.Time
	var pending models.AppData

	stop := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			fire = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return

		case change := <-changes:
			// Remote-origin changes are echoes of documents we just
			// merged in. Writing them back would bounce the document
			// between devices forever.
			if change.Origin == state.OriginRemote {
				stop()
				continue
			}
			pending = change.Data
			stop()
			timer = time.NewTimer(b.debounce)
			fire = timer.C

		case <-fire:
			timer = nil
			fire = nil
			if err := b.storage.SaveData(ctx, b.userID, pending); err != nil {
				log.Printf("error saving life data for user %s: %v", b.userID, err)
			}

		case raw, ok := <-remote:
			if !ok {
				remote = nil
				log.Printf("remote watch closed for user %s, continuing local-only", b.userID)
				continue
			}
			// A fresh remote document supersedes whatever local save
			// was pending.
			stop()
			merged, err := MergeWithDefaults(raw)
			if err != nil {
				log.Printf("error merging remote document for user %s: %v", b.userID, err)
				continue
			}
			b.store.Replace(merged, state.OriginRemote)
		}
	}
}

// loadInitial seeds the store from the remote document, or from defaults if
// the user has never saved anything. New users get their defaults written
// out immediately so every device starts from the same document. A read or
// decode failure also seeds the defaults, but writes nothing back: the
// remote document may still be intact, and the next settled local change
// saves fresh state anyway.
func (b *Bridge) loadInitial(ctx context.Context) {
	raw, err := b.storage.LoadData(ctx, b.userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		data := models.DefaultData()
		b.store.Replace(data, state.OriginRemote)
		if err := b.storage.SaveData(ctx, b.userID, data); err != nil {
			log.Printf("error saving initial life data for user %s: %v", b.userID, err)
		}
		return
	}
	if err != nil {
		log.Printf("error loading life data for user %s, starting from defaults: %v", b.userID, err)
		b.store.Replace(models.DefaultData(), state.OriginRemote)
		return
	}

	merged, err := MergeWithDefaults(raw)
	if err != nil {
		log.Printf("error decoding life data for user %s, starting from defaults: %v", b.userID, err)
		b.store.Replace(models.DefaultData(), state.OriginRemote)
		return
	}
	b.store.Replace(merged, state.OriginRemote)
}
