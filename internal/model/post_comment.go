package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 内嵌评论，只追加
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Text      string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CommentDetail 评论作者已关联
type CommentDetail struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	User      *UserBrief         `bson:"user" json:"user"`
	Text      string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
