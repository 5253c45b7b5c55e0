package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 帖子文档，点赞与评论内嵌
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Content   string               `bson:"content" json:"content"`
	Media     *MediaAsset          `bson:"media" json:"mediaAsset"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updatedAt"`
}

// PostDetail 关联了作者、点赞用户、评论用户的帖子视图
type PostDetail struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Author    *UserBrief         `bson:"author" json:"author"`
	Content   string             `bson:"content" json:"content"`
	Media     *MediaAsset        `bson:"media" json:"mediaAsset"`
	Likes     []UserBrief        `bson:"likes" json:"likes"`
	Comments  []CommentDetail    `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (Post) CollectionName() string {
	return "posts"
}
