package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/campusnet/accounts/pkg/mongo"
)

// SessionsCollection is the default collection name.
const SessionsCollection = "sessions"

// MongoSessions stores sessions keyed by account id, so each account has at
// most one document.
type MongoSessions struct {
	coll *mongo.Collection
}

func NewMongoSessions(db *mongo.Database) *MongoSessions {
	return &MongoSessions{coll: db.Collection(SessionsCollection)}
}

// EnsureIndexes creates the TTL index that lets the server drop expired
// sessions.
func (m *MongoSessions) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("sessions_expires_at_ttl").SetExpireAfterSeconds(0),
	})
	return err
}

func (m *MongoSessions) Upsert(ctx context.Context, s Session) error {
	_, err := m.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: s.AccountID}}, s, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoSessions) Find(ctx context.Context, accountID string) (Session, error) {
	var s Session
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: accountID}}).Decode(&s)
	if mongox.IsNotFound(err) {
		return Session{}, ErrSessionNotFound
	}
	return s, err
}

func (m *MongoSessions) Delete(ctx context.Context, accountID string) error {
	_, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: accountID}})
	return err
}
