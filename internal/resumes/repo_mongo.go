package resumes

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resume-builder/resume/model"
)

const resumesCollection = "resumes"

// MongoRepo stores resumes in the "resumes" collection.
type MongoRepo struct {
	Coll *mongo.Collection
}

type resumeDoc struct {
	ID        string           `bson:"_id"`
	UserID    string           `bson:"userId"`
	Title     string           `bson:"title"`
	Template  string           `bson:"template"`
	Thumbnail string           `bson:"thumbnail,omitempty"`
	Data      model.ResumeData `bson:"data"`
	CreatedAt time.Time        `bson:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

// NewMongoRepo binds the resumes collection and ensures the per-user index.
func NewMongoRepo(ctx context.Context, db *mongo.Database) (*MongoRepo, error) {
	coll := db.Collection(resumesCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("resumes_user_updated_idx"),
	})
	if err != nil {
		return nil, err
	}
	return &MongoRepo{Coll: coll}, nil
}

func (r *MongoRepo) Create(ctx context.Context, res Resume) error {
	_, err := r.Coll.InsertOne(ctx, resumeDoc(res))
	return err
}

func (r *MongoRepo) Get(ctx context.Context, userID, id string) (Resume, error) {
	var doc resumeDoc
	err := r.Coll.FindOne(ctx, ownerFilter(userID, id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return Resume(doc), nil
}

func (r *MongoRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.Coll.Find(ctx, bson.D{{Key: "userId", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Resume, 0)
	for cur.Next(ctx) {
		var doc resumeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, Resume(doc))
	}
	return out, cur.Err()
}

func (r *MongoRepo) Update(ctx context.Context, res Resume) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: res.Title},
		{Key: "template", Value: res.Template},
		{Key: "thumbnail", Value: res.Thumbnail},
		{Key: "data", Value: res.Data},
		{Key: "updatedAt", Value: res.UpdatedAt},
	}}}
	result, err := r.Coll.UpdateOne(ctx, ownerFilter(res.UserID, res.ID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.Coll.DeleteOne(ctx, ownerFilter(userID, id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func ownerFilter(userID, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "userId", Value: userID}}
}
