package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	UserName string `json:"userName" form:"userName" validate:"required,min=3,max=30"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=64"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserDTO 用户
type UserDTO struct {
	ID             string    `json:"id"`
	UserName       string    `json:"userName"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
