package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"bookocean-backend/internal/domains/loan/model"
)

const borrowedNS = "BookOceanDB.borrowed"

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	borrowed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		loan, err := repo.Create(ctx, &model.Loan{BookID: "65a1b2c3d4e5f6a7b8c9d0e1", Email: "a@example.com", BorrowDate: borrowed})
		require.NoError(mt, err)
		assert.Len(mt, loan.ID, 24)
		assert.Equal(mt, "a@example.com", loan.Email)
	})

	mt.Run("list by email keeps store order", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, borrowedNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first},
				{Key: "bookId", Value: "65a1b2c3d4e5f6a7b8c9d0e1"},
				{Key: "email", Value: "a@example.com"},
				{Key: "borrowDate", Value: borrowed},
				{Key: "returnDate", Value: borrowed.AddDate(0, 0, 7)},
			},
			bson.D{
				{Key: "_id", Value: second},
				{Key: "bookId", Value: "65a1b2c3d4e5f6a7b8c9d0e2"},
				{Key: "email", Value: "a@example.com"},
			},
		))

		loans, err := repo.ListByEmail(ctx, "a@example.com")
		require.NoError(mt, err)
		require.Len(mt, loans, 2)
		assert.Equal(mt, first.Hex(), loans[0].ID)
		assert.Equal(mt, borrowed, loans[0].BorrowDate)
		assert.Equal(mt, second.Hex(), loans[1].ID)
	})

	mt.Run("get missing loan", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, borrowedNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, model.ErrLoanNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("delete missing loan", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, model.ErrLoanNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		err := repo.Delete(ctx, "42")
		assert.ErrorIs(mt, err, model.ErrInvalidLoanID)
	})
}
