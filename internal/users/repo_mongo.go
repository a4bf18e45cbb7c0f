package users

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// MongoRepo stores accounts in the "users" collection.
type MongoRepo struct {
	Coll *mongo.Collection
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty"`
	Provider     string    `bson:"provider"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// NewMongoRepo binds the users collection and ensures the unique email index.
func NewMongoRepo(ctx context.Context, db *mongo.Database) (*MongoRepo, error) {
	coll := db.Collection(usersCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return nil, err
	}
	return &MongoRepo{Coll: coll}, nil
}

func (r *MongoRepo) Create(ctx context.Context, user User) error {
	_, err := r.Coll.InsertOne(ctx, userDoc(user))
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailExists
	}
	return err
}

func (r *MongoRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: userID}})
}

func (r *MongoRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoRepo) findOne(ctx context.Context, filter bson.D) (User, error) {
	var doc userDoc
	if err := r.Coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return User(doc), nil
}
