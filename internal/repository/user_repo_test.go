package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"Murmur/internal/model"
)

const usersNS = "murmur.users"

func TestUserRepo_CreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &model.User{UserName: "alice", Email: "alice@example.com"}
		require.NoError(mt, repo.CreateUser(context.Background(), user))
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.CreateUser(context.Background(), &model.User{UserName: "alice", Email: "alice@example.com"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})
}

func TestUserRepo_Find(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("by id", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "userName", Value: "alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "hash"},
		}))

		user, err := repo.GetUserByID(context.Background(), id)
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, "alice", user.UserName)
		assert.Equal(mt, "hash", user.Password)
	})

	mt.Run("by email absent", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("by email or name", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "userName", Value: "alice"},
		}))

		user, err := repo.GetUserByEmailOrName(context.Background(), "other@example.com", "alice")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, id, user.ID)
	})
}
