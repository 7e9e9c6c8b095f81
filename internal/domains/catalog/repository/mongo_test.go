package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"bookocean-backend/internal/domains/catalog/model"
)

const booksNS = "BookOceanDB.books"

func bookDoc(id primitive.ObjectID, title, category string, quantity int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "author", Value: "A. Writer"},
		{Key: "category", Value: category},
		{Key: "image", Value: "https://img.test/" + title + ".jpg"},
		{Key: "quantity", Value: quantity},
		{Key: "rating", Value: 4.5},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns object id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Create(ctx, &model.Book{Title: "Dune", Category: "Sci-Fi", Quantity: 2})
		require.NoError(mt, err)

		_, err = primitive.ObjectIDFromHex(created.ID)
		assert.NoError(mt, err)
		assert.Equal(mt, "Dune", created.Title)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch, bookDoc(id, "Dune", "Sci-Fi", 2)))

		got, err := repo.GetByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, 2, got.Quantity)
		assert.Equal(mt, 4.5, got.Rating)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, model.ErrBookNotFound)
	})

	mt.Run("malformed id is rejected before querying", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		_, err := repo.GetByID(ctx, "not-hex")
		assert.ErrorIs(mt, err, model.ErrInvalidBookID)

		_, err = repo.IncrementQuantity(ctx, "not-hex", 1)
		assert.ErrorIs(mt, err, model.ErrInvalidBookID)
	})

	mt.Run("list returns every document", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch,
			bookDoc(primitive.NewObjectID(), "Dune", "Sci-Fi", 2),
			bookDoc(primitive.NewObjectID(), "Emma", "Classic", 1),
		))

		books, err := repo.List(ctx, model.BookFilter{})
		require.NoError(mt, err)
		require.Len(mt, books, 2)
		assert.Equal(mt, "Dune", books[0].Title)
		assert.Equal(mt, "Classic", books[1].Category)
	})

	mt.Run("list images", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch,
			bson.D{{Key: "image", Value: "https://img.test/a.jpg"}},
			bson.D{{Key: "image", Value: "https://img.test/b.jpg"}},
		))

		images, err := repo.ListImages(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, []string{"https://img.test/a.jpg", "https://img.test/b.jpg"}, images)
	})

	mt.Run("increment returns document after update", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bookDoc(id, "Dune", "Sci-Fi", 1)},
		})

		got, err := repo.IncrementQuantity(ctx, id.Hex(), -1)
		require.NoError(mt, err)
		assert.Equal(mt, 1, got.Quantity)
	})

	mt.Run("increment on missing book", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.IncrementQuantity(ctx, primitive.NewObjectID().Hex(), 1)
		assert.ErrorIs(mt, err, model.ErrBookNotFound)
	})

	mt.Run("guarded decrement on exhausted book", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch, bookDoc(id, "Dune", "Sci-Fi", 0)),
		)

		_, err := repo.DecrementIfAvailable(ctx, id.Hex())
		assert.ErrorIs(mt, err, model.ErrOutOfStock)
	})

	mt.Run("guarded decrement on missing book", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch),
		)

		_, err := repo.DecrementIfAvailable(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, model.ErrBookNotFound)
	})

	mt.Run("update reports matched and modified", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		ack, err := repo.Update(ctx, id.Hex(), &model.Book{Title: "Dune", Category: "Sci-Fi", Quantity: 5})
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), ack.ID)
		assert.True(mt, ack.Matched)
		assert.True(mt, ack.Modified)
	})

	mt.Run("update on missing book", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := repo.Update(ctx, primitive.NewObjectID().Hex(), &model.Book{Title: "Dune"})
		assert.ErrorIs(mt, err, model.ErrBookNotFound)
	})
}
