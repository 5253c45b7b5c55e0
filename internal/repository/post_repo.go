package repository

import (
	"Murmur/internal/model"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	GetPostDetail(ctx context.Context, id primitive.ObjectID) (*model.PostDetail, error)
	GetPostPage(ctx context.Context, page, pageSize int64) ([]*model.PostDetail, int64, error)
	GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*model.PostDetail, error)
	SavePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error)
	CountPostsByAuthor(ctx context.Context) ([]*model.AuthorPostCount, error)
}

type postRepoImpl struct {
	col       *mongo.Collection
	usersColl string
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col:       db.Collection(model.Post{}.CollectionName()),
		usersColl: model.User{}.CollectionName(),
	}
}

func (r *postRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, post); err != nil {
		return errors.Wrap(err, "insert post")
	}
	return nil
}

// GetPost 原始文档，不存在时返回 nil, nil
func (r *postRepoImpl) GetPost(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post := &model.Post{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find post %s", id.Hex())
	}
	return post, nil
}

// GetPostDetail 关联作者、点赞用户与评论用户
func (r *postRepoImpl) GetPostDetail(ctx context.Context, id primitive.ObjectID) (*model.PostDetail, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, r.joinStages()...)

	posts, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrapf(err, "load post detail %s", id.Hex())
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

// GetPostPage 按创建时间倒序分页，同时返回总数
func (r *postRepoImpl) GetPostPage(ctx context.Context, page, pageSize int64) ([]*model.PostDetail, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, errors.Wrap(err, "count posts")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * pageSize}},
		{{Key: "$limit", Value: pageSize}},
	}
	pipeline = append(pipeline, r.joinStages()...)

	posts, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, errors.Wrap(err, "load post page")
	}
	return posts, total, nil
}

func (r *postRepoImpl) GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*model.PostDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"author": authorID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	pipeline = append(pipeline, r.joinStages()...)

	posts, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrapf(err, "load posts of author %s", authorID.Hex())
	}
	return posts, nil
}

// SavePost 整文档覆盖写，最后写入者生效
func (r *postRepoImpl) SavePost(ctx context.Context, post *model.Post) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return errors.Wrapf(err, "replace post %s", post.ID.Hex())
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNotFound, "replace post %s", post.ID.Hex())
	}
	return nil
}

func (r *postRepoImpl) DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.Wrapf(err, "delete post %s", id.Hex())
	}
	return res.DeletedCount, nil
}

// CountPostsByAuthor 按作者分组计数并带出用户名
func (r *postRepoImpl) CountPostsByAuthor(ctx context.Context) ([]*model.AuthorPostCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "totalPosts", Value: bson.M{"$sum": 1}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersColl},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: "$author"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "authorId", Value: "$_id"},
			{Key: "authorName", Value: "$author.userName"},
			{Key: "totalPosts", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalPosts", Value: -1}, {Key: "authorName", Value: 1}}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, errors.Wrap(err, "aggregate posts by author")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	counts := make([]*model.AuthorPostCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, errors.Wrap(err, "decode author post counts")
	}
	return counts, nil
}

func (r *postRepoImpl) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*model.PostDetail, error) {
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := make([]*model.PostDetail, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// joinStages 作者、点赞用户、评论用户三次 $lookup，剔除密码等敏感字段
func (r *postRepoImpl) joinStages() mongo.Pipeline {
	commentUser := bson.M{"$arrayElemAt": bson.A{
		bson.M{"$filter": bson.M{
			"input": "$comment_users",
			"as":    "u",
			"cond":  bson.M{"$eq": bson.A{"$$u._id", "$$c.user"}},
		}},
		0,
	}}

	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersColl},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersColl},
			{Key: "localField", Value: "likes"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "likes"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersColl},
			{Key: "localField", Value: "comments.user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "comment_users"},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"comments": bson.M{"$map": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$comments", bson.A{}}},
				"as":    "c",
				"in": bson.M{
					"_id":        "$$c._id",
					"comment":    "$$c.comment",
					"created_at": "$$c.created_at",
					"user":       commentUser,
				},
			}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "comment_users", Value: 0},
			{Key: "author.password", Value: 0},
			{Key: "author.profilePicturePublicID", Value: 0},
			{Key: "likes.password", Value: 0},
			{Key: "likes.profilePicturePublicID", Value: 0},
			{Key: "comments.user.password", Value: 0},
			{Key: "comments.user.profilePicturePublicID", Value: 0},
		}}},
	}
}
