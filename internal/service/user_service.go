package service

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/model"
	"Murmur/internal/pkg/security"
	"Murmur/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO, localPath string) (*dto.UserDTO, error)
	Login(ctx context.Context, credential *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	media    MediaStore
	tokens   *security.TokenManager
	revoked  TokenRevocationStore
}

func NewUserService(userRepo repository.UserRepo, media MediaStore, tokens *security.TokenManager, revoked TokenRevocationStore) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		media:    media,
		tokens:   tokens,
		revoked:  revoked,
	}
}

// Register 注册，头像可选
func (s *userServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO, localPath string) (*dto.UserDTO, error) {
	regDTO.Email = strings.ToLower(strings.TrimSpace(regDTO.Email))
	regDTO.UserName = strings.TrimSpace(regDTO.UserName)

	found, err := s.userRepo.GetUserByEmailOrName(ctx, regDTO.Email, regDTO.UserName)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return nil, ErrUserExist
	}

	user := &model.User{}
	if err = copier.Copy(user, regDTO); err != nil {
		return nil, err
	}
	user.Password, err = security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	var asset *model.MediaAsset
	if localPath != "" {
		asset, err = s.media.Upload(ctx, localPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		user.ProfilePicture = asset.URL
		user.ProfilePicturePublicID = asset.ReferenceID
	}

	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if asset != nil {
			if delErr := s.media.Delete(ctx, asset.ReferenceID); delErr != nil {
				log.ErrorContext(ctx, "failed to delete media", "reference_id", asset.ReferenceID, "err", delErr)
			}
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	return toUserDTO(user)
}

// Login 邮箱密码登录，签发令牌
func (s *userServiceImpl) Login(ctx context.Context, credential *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(credential.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(credential.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := s.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{Token: token, User: userDTO}, nil
}

// Logout 签名加入注销名单直到令牌自然过期
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrInvalidToken
	}
	ttl := s.tokens.Expiry()
	if claims, err := s.tokens.ValidateToken(token); err == nil && claims.ExpiresAt != nil {
		ttl = remaining(claims.ExpiresAt)
	}
	return s.revoked.Revoke(ctx, signature, ttl)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

// objectIDToHex copier 中 ObjectID 到 string 的转换
var objectIDToHex = copier.TypeConverter{
	SrcType: primitive.ObjectID{},
	DstType: copier.String,
	Fn: func(src interface{}) (interface{}, error) {
		return src.(primitive.ObjectID).Hex(), nil
	},
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	err := copier.CopyWithOption(userDTO, user, copier.Option{
		Converters: []copier.TypeConverter{objectIDToHex},
	})
	if err != nil {
		return nil, err
	}
	return userDTO, nil
}

func remaining(expiresAt *jwt.NumericDate) time.Duration {
	return time.Until(expiresAt.Time)
}
