package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	UserName               string             `bson:"userName"`
	Email                  string             `bson:"email"`
	Password               string             `bson:"password"`
	ProfilePicture         string             `bson:"profilePicture,omitempty"`
	ProfilePicturePublicID string             `bson:"profilePicturePublicID,omitempty"`
	CreatedAt              time.Time          `bson:"created_at"`
	UpdatedAt              time.Time          `bson:"updated_at"`
}

func (User) CollectionName() string {
	return "users"
}

// UserBrief 关联查询时对外暴露的用户字段
type UserBrief struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	UserName       string             `bson:"userName" json:"userName"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}

// Identity 已认证的调用者
type Identity struct {
	ID          primitive.ObjectID `json:"id"`
	DisplayName string             `json:"userName"`
	Email       string             `json:"email"`
}
