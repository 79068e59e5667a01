package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mhasan/lifeos/backend/notifications"
	"github.com/mhasan/lifeos/backend/queue"
	"github.com/mhasan/lifeos/backend/state"
	storage "github.com/mhasan/lifeos/backend/storage/persistent"
	lifesync "github.com/mhasan/lifeos/backend/sync"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// session is the per-user runtime: the in-memory life data store, the sync
// bridge keeping it aligned with the remote document, and the reminder
// poller. It is created lazily on the user's first authenticated request and
// lives until the server shuts down or the account is deleted.
type session struct {
	store  *state.Store
	poller *notifications.Poller
	cancel context.CancelFunc
}

// sessionManager hands out sessions keyed by user id, creating them on
// demand.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	storage  storage.StorageInterface
	alerts   *queue.Queue
}

func newSessionManager(stor storage.StorageInterface, alerts *queue.Queue) *sessionManager {
	return &sessionManager{
		sessions: make(map[string]*session),
		storage:  stor,
		alerts:   alerts,
	}
}

// get returns the session for the given user, starting one if none exists.
// Starting a session performs the initial document load, so the returned
// session is immediately readable.
func (m *sessionManager) get(ctx context.Context, userID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %v", err)
	}
	user, err := m.storage.FindUser(ctx, bson.M{"_id": objectID})
	if err != nil {
		return nil, fmt.Errorf("error loading user: %v", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())

	st := state.NewStore()
	bridge := lifesync.NewBridge(st, m.storage, userID)
	bridge.Start(runCtx)

	poller := notifications.NewPoller(st, notifications.DefaultInterval, m.alerts, user.Email)
	poller.Start(runCtx)

	s := &session{
		store:  st,
		poller: poller,
		cancel: cancel,
	}
	m.sessions[userID] = s
	return s, nil
}

// drop stops and removes the session for the given user, if any. Called when
// an account is deleted.
func (m *sessionManager) drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.cancel()
		delete(m.sessions, userID)
	}
}

// closeAll stops every running session.
func (m *sessionManager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.cancel()
		delete(m.sessions, id)
	}
}
