package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"resume-builder/resume/model"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), Resume{
			ID:        "resume-1",
			UserID:    "user-1",
			Title:     "Backend",
			Template:  "modern",
			Data:      model.ResumeData{ProfileInfo: model.ProfileInfo{FullName: "Ada"}},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			mt.Fatalf("Create: %v", err)
		}
	})

	mt.Run("get", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "resume-1"},
			{Key: "userId", Value: "user-1"},
			{Key: "title", Value: "Backend"},
			{Key: "template", Value: "modern"},
			{Key: "data", Value: bson.D{
				{Key: "profileInfo", Value: bson.D{{Key: "fullName", Value: "Ada"}}},
				{Key: "skills", Value: bson.A{bson.D{{Key: "name", Value: "Go"}}}},
			}},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}))

		res, err := repo.Get(context.Background(), "user-1", "resume-1")
		if err != nil {
			mt.Fatalf("Get: %v", err)
		}
		if res.Data.ProfileInfo.FullName != "Ada" || len(res.Data.Skills) != 1 || res.Data.Skills[0].Name != "Go" {
			mt.Fatalf("unexpected resume %+v", res)
		}
		if !res.UpdatedAt.Equal(now) {
			mt.Fatalf("UpdatedAt = %v", res.UpdatedAt)
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := repo.Get(context.Background(), "user-2", "resume-1"); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "resume-2"}, {Key: "userId", Value: "user-1"}, {Key: "title", Value: "Newer"}},
			bson.D{{Key: "_id", Value: "resume-1"}, {Key: "userId", Value: "user-1"}, {Key: "title", Value: "Older"}},
		))

		list, err := repo.ListByUser(context.Background(), "user-1")
		if err != nil {
			mt.Fatalf("ListByUser: %v", err)
		}
		if len(list) != 2 || list[0].ID != "resume-2" || list[1].Title != "Older" {
			mt.Fatalf("unexpected list %+v", list)
		}
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(context.Background(), Resume{ID: "resume-1", UserID: "user-2", Title: "x", UpdatedAt: now})
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		if err := repo.Delete(context.Background(), "user-1", "resume-1"); err != nil {
			mt.Fatalf("Delete: %v", err)
		}
		if err := repo.Delete(context.Background(), "user-1", "resume-1"); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("second Delete expected ErrNotFound, got %v", err)
		}
	})
}
