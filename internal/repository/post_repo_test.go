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

	"Murmur/internal/model"
)

const postsNS = "murmur.posts"

func TestPostRepo_CreatePost_AssignsID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &model.Post{Author: primitive.NewObjectID(), Content: "hello"}
		require.NoError(mt, repo.CreatePost(context.Background(), post))
		assert.False(mt, post.ID.IsZero())
	})

	mt.Run("insert failure is wrapped", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"}))

		err := repo.CreatePost(context.Background(), &model.Post{Content: "x"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert post")
	})
}

func TestPostRepo_GetPost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()
	author := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "author", Value: author},
			{Key: "content", Value: "hello"},
			{Key: "media", Value: bson.D{{Key: "url", Value: "http://cdn/x.png"}, {Key: "reference_id", Value: "x.png"}}},
			{Key: "likes", Value: bson.A{author}},
			{Key: "comments", Value: bson.A{}},
		}))

		post, err := repo.GetPost(context.Background(), id)
		require.NoError(mt, err)
		require.NotNil(mt, post)
		assert.Equal(mt, id, post.ID)
		assert.Equal(mt, "hello", post.Content)
		require.NotNil(mt, post.Media)
		assert.Equal(mt, "x.png", post.Media.ReferenceID)
		assert.True(mt, post.HasLike(author))
	})

	mt.Run("absent returns nil", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		post, err := repo.GetPost(context.Background(), id)
		require.NoError(mt, err)
		assert.Nil(mt, post)
	})
}

func TestPostRepo_GetPostDetail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()
	author := primitive.NewObjectID()

	mt.Run("joined document", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "author", Value: bson.D{{Key: "_id", Value: author}, {Key: "userName", Value: "alice"}}},
			{Key: "content", Value: "hello"},
			{Key: "likes", Value: bson.A{bson.D{{Key: "_id", Value: author}, {Key: "userName", Value: "alice"}}}},
			{Key: "comments", Value: bson.A{bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "comment", Value: "nice"},
				{Key: "user", Value: bson.D{{Key: "_id", Value: author}, {Key: "userName", Value: "alice"}}},
			}}},
		}))

		detail, err := repo.GetPostDetail(context.Background(), id)
		require.NoError(mt, err)
		require.NotNil(mt, detail)
		require.NotNil(mt, detail.Author)
		assert.Equal(mt, "alice", detail.Author.UserName)
		require.Len(mt, detail.Likes, 1)
		require.Len(mt, detail.Comments, 1)
		assert.Equal(mt, "nice", detail.Comments[0].Text)
		assert.Equal(mt, "alice", detail.Comments[0].User.UserName)
	})

	mt.Run("absent returns nil", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		detail, err := repo.GetPostDetail(context.Background(), id)
		require.NoError(mt, err)
		assert.Nil(mt, detail)
	})
}

func TestPostRepo_GetPostPage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("items and total", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(12)}}),
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "content", Value: "b"}, {Key: "created_at", Value: now}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "content", Value: "a"}, {Key: "created_at", Value: now.Add(-time.Minute)}},
			),
		)

		posts, total, err := repo.GetPostPage(context.Background(), 2, 10)
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), total)
		require.Len(mt, posts, 2)
		assert.Equal(mt, "b", posts[0].Content)
	})

	mt.Run("count failure", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"}))

		_, _, err := repo.GetPostPage(context.Background(), 1, 10)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "count posts")
	})
}

func TestPostRepo_SavePost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matched", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(mt, repo.SavePost(context.Background(), &model.Post{ID: primitive.NewObjectID()}))
	})

	mt.Run("document gone", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.SavePost(context.Background(), &model.Post{ID: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestPostRepo_DeletePost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted count", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := repo.DeletePost(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		n, err := repo.DeletePost(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})
}

func TestPostRepo_CountPostsByAuthor(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("grouped", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch,
			bson.D{{Key: "authorId", Value: a}, {Key: "authorName", Value: "alice"}, {Key: "totalPosts", Value: int64(2)}},
			bson.D{{Key: "authorId", Value: b}, {Key: "authorName", Value: "bob"}, {Key: "totalPosts", Value: int64(1)}},
		))

		counts, err := repo.CountPostsByAuthor(context.Background())
		require.NoError(mt, err)
		require.Len(mt, counts, 2)
		assert.Equal(mt, model.AuthorPostCount{AuthorID: a, AuthorName: "alice", TotalPosts: 2}, *counts[0])
	})

	mt.Run("empty", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		counts, err := repo.CountPostsByAuthor(context.Background())
		require.NoError(mt, err)
		assert.Empty(mt, counts)
	})
}
