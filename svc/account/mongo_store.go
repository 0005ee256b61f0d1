package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/campusnet/accounts/pkg/mongo"
	"github.com/campusnet/accounts/svc/auth"
)

const (
	AccountsCollection = "accounts"

	emailIndex           = "accounts_email_unique"
	institutionalIDIndex = "accounts_institutional_id_unique"
)

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(AccountsCollection)}
}

// EnsureIndexes creates the unique indexes on email and institutional id.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(emailIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "institutional_id", Value: 1}},
			Options: options.Index().SetName(institutionalIDIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "roles", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("accounts_roles_status"),
		},
	})
	if err != nil {
		return fmt.Errorf("account: ensure indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, a *Account) error {
	a.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		if mongox.IsDuplicateKey(err) {
			if strings.Contains(err.Error(), institutionalIDIndex) {
				return ErrInstitutionalIDTaken
			}
			return ErrEmailTaken
		}
		return fmt.Errorf("account: insert: %w", err)
	}
	return nil
}

func (s *MongoStore) ByID(ctx context.Context, id string) (*Account, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *MongoStore) ByEmail(ctx context.Context, email string) (*Account, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoStore) ByInstitutionalID(ctx context.Context, institutionalID string) (*Account, error) {
	return s.findOne(ctx, bson.D{{Key: "institutional_id", Value: institutionalID}})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (*Account, error) {
	var a Account
	if err := s.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if mongox.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("account: find: %w", err)
	}
	return &a, nil
}

func (s *MongoStore) List(ctx context.Context, f ListFilter) ([]*Account, error) {
	filter := bson.D{}
	if f.Role != 0 {
		filter = append(filter, bson.E{Key: "roles", Value: f.Role})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(max(f.Offset, 0))).
		SetLimit(int64(f.limit()))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("account: list: %w", err)
	}
	accounts := []*Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("account: list decode: %w", err)
	}
	return accounts, nil
}

func (s *MongoStore) UpdateProfile(ctx context.Context, id string, p Profile, passwordHash string, at time.Time) (*Account, error) {
	set := bson.D{{Key: "profile", Value: p}, {Key: "updated_at", Value: at}}
	if passwordHash != "" {
		set = append(set, bson.E{Key: "password_hash", Value: passwordHash})
	}
	return s.update(ctx, id, nil, set)
}

func (s *MongoStore) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	_, err := s.update(ctx, id, nil, bson.D{{Key: "password_hash", Value: hash}, {Key: "updated_at", Value: at}})
	return err
}

func (s *MongoStore) UpdateRoles(ctx context.Context, id string, roles auth.RoleSet, at time.Time) (*Account, error) {
	return s.update(ctx, id, nil, bson.D{{Key: "roles", Value: roles}, {Key: "updated_at", Value: at}})
}

func (s *MongoStore) Transition(ctx context.Context, id string, from, to Status, at time.Time) (*Account, error) {
	set := bson.D{{Key: "status", Value: to}, {Key: "updated_at", Value: at}}
	if from == StatusPending && to == StatusActive {
		set = append(set, bson.E{Key: "activated_at", Value: at})
	}

	a, err := s.update(ctx, id, bson.D{{Key: "status", Value: from}}, set)
	if err == ErrAccountNotFound {
		// Distinguish a missing account from one whose status moved on.
		if _, lookupErr := s.ByID(ctx, id); lookupErr == nil {
			return nil, ErrStatusConflict
		}
	}
	return a, err
}

// update applies $set to the account matching id and extra, returning the
// updated document.
func (s *MongoStore) update(ctx context.Context, id string, extra, set bson.D) (*Account, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	filter := append(bson.D{{Key: "_id", Value: oid}}, extra...)

	var a Account
	err = s.coll.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if mongox.IsNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("account: update: %w", err)
	}
	return &a, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("account: delete: %w", err)
	}
	return nil
}
