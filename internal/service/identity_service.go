package service

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/security"
	"Murmur/internal/pkg/util"
	"Murmur/internal/repository"
	"context"
	"fmt"
	log "log/slog"
)

// IdentityResolver 将请求凭证解析为调用者身份
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (*model.Identity, error)
}

type identityResolverImpl struct {
	tokens   *security.TokenManager
	revoked  TokenRevocationStore
	userRepo repository.UserRepo
}

func NewIdentityResolver(tokens *security.TokenManager, revoked TokenRevocationStore, userRepo repository.UserRepo) IdentityResolver {
	return &identityResolverImpl{
		tokens:   tokens,
		revoked:  revoked,
		userRepo: userRepo,
	}
}

func (r *identityResolverImpl) Resolve(ctx context.Context, credential string) (*model.Identity, error) {
	if credential == "" {
		return nil, ErrUnauthorized
	}

	signature, err := security.ExtractSignature(credential)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if r.revoked != nil {
		revoked, err := r.revoked.IsRevoked(ctx, signature)
		if err != nil {
			log.ErrorContext(ctx, "revocation lookup failed", "err", err)
			return nil, fmt.Errorf("%w: %v", UnExpectedError, err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	claims, err := r.tokens.ValidateToken(credential)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, ok := util.ParseObjectID(claims.UserID)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := r.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		ID:          user.ID,
		DisplayName: user.UserName,
		Email:       user.Email,
	}, nil
}
