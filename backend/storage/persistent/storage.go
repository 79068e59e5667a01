package storage

import (
	"context"

	"github.com/mhasan/lifeos/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StorageInterface defines the set of persistence operations the rest of the
// backend relies on: account management for users and a per-user life data
// document that can be loaded, saved, and watched for external changes.
type StorageInterface interface {
	// Connect establishes a connection to the underlying data store.
	Connect(dbName, connectionURI string) error

	// Disconnect tears down the connection to the underlying data store.
	Disconnect() error

	// AddUser inserts a new user account and returns it with its id set.
	AddUser(ctx context.Context, user *models.User) (*models.User, error)

	// FindUser returns the first user matching the given filter.
	FindUser(ctx context.Context, filter interface{}) (*models.User, error)

	// UpdateUser applies the given update to the first user matching the
	// filter and returns the updated user.
	UpdateUser(ctx context.Context, filter interface{}, update interface{}) (*models.User, error)

	// DeleteUser removes the user matching the filter along with the
	// user's life data document.
	DeleteUser(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)

	// UserCount returns the number of users matching the given filter.
	UserCount(ctx context.Context, filter interface{}) (int64, error)

	// LoadData returns the raw life data document for the given user.
	// Returns mongo.ErrNoDocuments when the user has no document yet.
	LoadData(ctx context.Context, userID string) (bson.Raw, error)

	// SaveData upserts the given aggregate as the user's life data
	// document. Fields are written with $set so a concurrent writer's
	// unrelated fields are not clobbered by a stale full document.
	SaveData(ctx context.Context, userID string, data models.AppData) error

	// WatchData opens a change stream scoped to the given user's life
	// data document and returns a channel of full documents, one per
	// external write. The channel is closed when ctx is cancelled or the
	// stream fails.
	WatchData(ctx context.Context, userID string) (<-chan bson.Raw, error)
}

// NewStorage returns a StorageInterface backed by MongoDB.
func NewStorage() StorageInterface {
	return &MongoStorage{}
}
