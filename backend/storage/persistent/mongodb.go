package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mhasan/lifeos/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	lifeDataCollection = "lifedata"
)

// MongoStorage implements StorageInterface on top of a MongoDB database.
// Each user owns exactly one document in the lifedata collection, keyed by
// the user's id, holding the entire life data aggregate.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a connection to the MongoDB instance at connectionURI,
// pings it to verify reachability, and ensures the unique indexes on the
// users collection exist.
func (s *MongoStorage) Connect(dbName, connectionURI string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionURI))
	if err != nil {
		return fmt.Errorf("error connecting to mongodb: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("error pinging mongodb: %v", err)
	}

	s.client = client
	s.db = client.Database(dbName)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err = s.db.Collection(usersCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating user indexes: %v", err)
	}

	return nil
}

// Disconnect tears down the connection to MongoDB.
func (s *MongoStorage) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from mongodb: %v", err)
	}
	return nil
}

// AddUser inserts the given user and returns it with its inserted id set.
func (s *MongoStorage) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	result, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error adding user: %v", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// FindUser returns the first user matching the given filter.
func (s *MongoStorage) FindUser(ctx context.Context, filter interface{}) (*models.User, error) {
	var user models.User
	if err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the given update to the first matching user and returns
// the user as it exists after the update.
func (s *MongoStorage) UpdateUser(ctx context.Context, filter interface{}, update interface{}) (*models.User, error) {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.db.Collection(usersCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("error updating user: %v", err)
	}
	return &user, nil
}

// DeleteUser removes the first user matching the filter together with the
// user's life data document.
func (s *MongoStorage) DeleteUser(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	user, err := s.FindUser(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding user to delete: %v", err)
	}

	if _, err = s.db.Collection(lifeDataCollection).DeleteOne(ctx, bson.M{"_id": user.ID.Hex()}); err != nil {
		return nil, fmt.Errorf("error deleting user data: %v", err)
	}

	result, err := s.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": user.ID})
	if err != nil {
		return nil, fmt.Errorf("error deleting user: %v", err)
	}
	return result, nil
}

// UserCount returns the number of users matching the given filter.
func (s *MongoStorage) UserCount(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.db.Collection(usersCollection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %v", err)
	}
	return count, nil
}

// LoadData returns the raw life data document for the given user. Callers
// should treat mongo.ErrNoDocuments as "new user, start from defaults".
func (s *MongoStorage) LoadData(ctx context.Context, userID string) (bson.Raw, error) {
	raw, err := s.db.Collection(lifeDataCollection).FindOne(ctx, bson.M{"_id": userID}).DecodeBytes()
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// SaveData upserts the given aggregate as the user's life data document.
func (s *MongoStorage) SaveData(ctx context.Context, userID string, data models.AppData) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.db.Collection(lifeDataCollection).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": data}, opts)
	if err != nil {
		return fmt.Errorf("error saving user data: %v", err)
	}
	return nil
}

// WatchData opens a change stream on the user's life data document and
// forwards each full post-image document on the returned channel. The stream
// is closed and the channel drained when ctx is cancelled.
func (s *MongoStorage) WatchData(ctx context.Context, userID string) (<-chan bson.Raw, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: userID}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := s.db.Collection(lifeDataCollection).Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("error opening change stream: %v", err)
	}

	ch := make(chan bson.Raw)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			var event struct {
				FullDocument bson.Raw `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				log.Printf("error decoding change stream event: %v", err)
				continue
			}
			if event.FullDocument == nil {
				continue
			}
			select {
			case ch <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Printf("change stream closed with error: %v", err)
		}
	}()
	return ch, nil
}
