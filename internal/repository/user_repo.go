package repository

import (
	"Murmur/internal/model"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByEmailOrName(ctx context.Context, email, userName string) (*model.User, error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{col: db.Collection(model.User{}.CollectionName())}
}

func (r *userRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(ErrDuplicate, user.Email)
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *userRepoImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByEmailOrName 注册前查重
func (r *userRepoImpl) GetUserByEmailOrName(ctx context.Context, email, userName string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"userName": userName},
	}})
}

func (r *userRepoImpl) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	user := &model.User{}
	if err := r.col.FindOne(ctx, filter).Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user")
	}
	return user, nil
}
