package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// AuthorPostCount 按作者聚合的帖子数
type AuthorPostCount struct {
	AuthorID   primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorName string             `bson:"authorName" json:"authorName"`
	TotalPosts int64              `bson:"totalPosts" json:"totalPosts"`
}
