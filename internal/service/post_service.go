package service

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/model"
	"Murmur/internal/pkg/util"
	"Murmur/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID primitive.ObjectID, content, localPath string) (*model.Post, error)
	ListPosts(ctx context.Context, page, limit int) (*dto.PostPageDTO, error)
	GetPost(ctx context.Context, postID string) (*model.PostDetail, error)
	ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.PostDetail, error)
	UpdatePost(ctx context.Context, postID string, requesterID primitive.ObjectID, content, localPath string) (*model.Post, error)
	DeletePost(ctx context.Context, postID string, requesterID primitive.ObjectID) (*dto.DeleteResultDTO, error)
	ToggleLike(ctx context.Context, postID string, userID primitive.ObjectID) (*dto.LikeResultDTO, error)
	AddComment(ctx context.Context, postID string, userID primitive.ObjectID, text string) (*dto.CommentResultDTO, error)
	PostCountsByAuthor(ctx context.Context) ([]*model.AuthorPostCount, error)
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	media     MediaStore
	publisher EventPublisher
	now       func() time.Time
}

func NewPostService(postRepo repository.PostRepo, media MediaStore, publisher EventPublisher) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		media:     media,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreatePost 先上传媒体再落库，落库失败时回收刚上传的对象
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID primitive.ObjectID, content, localPath string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if authorID.IsZero() {
		return nil, ErrUnauthorized
	}

	asset, err := s.upload(ctx, localPath)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Post{
		ID:        primitive.NewObjectID(),
		Author:    authorID,
		Content:   content,
		Media:     asset,
		Likes:     []primitive.ObjectID{},
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		s.discardMedia(ctx, asset)
		return nil, err
	}

	s.publish(ctx, model.PostEventCreated, post, authorID)
	return post, nil
}

// ListPosts 最新优先分页
func (s *postServiceImpl) ListPosts(ctx context.Context, page, limit int) (*dto.PostPageDTO, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPagination
	}

	posts, total, err := s.postRepo.GetPostPage(ctx, int64(page), int64(limit))
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNoPostsFound
	}

	pageSize := int64(limit)
	return &dto.PostPageDTO{
		TotalPosts:   total,
		CurrentPage:  int64(page),
		TotalPages:   (total + pageSize - 1) / pageSize,
		PostsPerPage: pageSize,
		Posts:        posts,
	}, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*model.PostDetail, error) {
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetPostDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postServiceImpl) ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.PostDetail, error) {
	id, ok := util.ParseObjectID(authorID)
	if !ok {
		return nil, ErrNoPostsFound
	}
	posts, err := s.postRepo.GetPostsByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNoPostsFound
	}
	return posts, nil
}

// UpdatePost 内容与媒体均为可选；新媒体上传成功且落库后才删除旧媒体
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID string, requesterID primitive.ObjectID, content, localPath string) (*model.Post, error) {
	if requesterID.IsZero() {
		return nil, ErrUnauthorized
	}
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	asset, err := s.upload(ctx, localPath)
	if err != nil {
		return nil, err
	}

	previous := post.Media
	if strings.TrimSpace(content) != "" {
		post.Content = content
	}
	if asset != nil {
		post.Media = asset
	}
	post.UpdatedAt = s.now()

	if err = s.postRepo.SavePost(ctx, post); err != nil {
		s.discardMedia(ctx, asset)
		return nil, s.mapWriteErr(err)
	}
	if asset != nil {
		s.discardMedia(ctx, previous)
	}

	s.publish(ctx, model.PostEventUpdated, post, requesterID)
	return post, nil
}

// DeletePost 仅作者本人可删除，远端媒体删除失败只记录日志
func (s *postServiceImpl) DeletePost(ctx context.Context, postID string, requesterID primitive.ObjectID) (*dto.DeleteResultDTO, error) {
	if requesterID.IsZero() {
		return nil, ErrUnauthorized
	}
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Author != requesterID {
		return nil, ErrNotPostOwner
	}

	deleted, err := s.postRepo.DeletePost(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrPostAlreadyDeleted
	}
	s.discardMedia(ctx, post.Media)

	s.publish(ctx, model.PostEventDeleted, post, requesterID)
	return &dto.DeleteResultDTO{Acknowledged: true, DeletedCount: deleted}, nil
}

// ToggleLike 已点赞则取消，否则点赞
func (s *postServiceImpl) ToggleLike(ctx context.Context, postID string, userID primitive.ObjectID) (*dto.LikeResultDTO, error) {
	if userID.IsZero() {
		return nil, ErrUnauthorized
	}
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	liked := post.ToggleLike(userID)
	if err = s.postRepo.SavePost(ctx, post); err != nil {
		return nil, s.mapWriteErr(err)
	}

	evt := model.PostEventUnliked
	if liked {
		evt = model.PostEventLiked
	}
	s.publish(ctx, evt, post, userID)

	return &dto.LikeResultDTO{
		Liked:       liked,
		TotalLikes:  len(post.Likes),
		UpdatedPost: post,
	}, nil
}

// AddComment 追加评论并返回关联了评论作者的帖子
func (s *postServiceImpl) AddComment(ctx context.Context, postID string, userID primitive.ObjectID, text string) (*dto.CommentResultDTO, error) {
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return nil, ErrInvalidPostID
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	if userID.IsZero() {
		return nil, ErrUnauthorized
	}

	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := model.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Text:      text,
		CreatedAt: s.now(),
	}
	post.Comments = append(post.Comments, comment)
	if err = s.postRepo.SavePost(ctx, post); err != nil {
		return nil, s.mapWriteErr(err)
	}
	s.publish(ctx, model.PostEventCommented, post, userID)

	result := &dto.CommentResultDTO{TotalComments: len(post.Comments)}
	detail, err := s.postRepo.GetPostDetail(ctx, id)
	if err != nil || detail == nil {
		// 评论已落库，关联失败时退化为未关联的评论
		log.WarnContext(ctx, "comment saved but post detail unavailable", "post_id", postID, "err", err)
		result.Comment = &model.CommentDetail{
			ID:        comment.ID,
			User:      &model.UserBrief{ID: userID},
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		}
		return result, nil
	}

	result.UpdatedPost = detail
	for i := range detail.Comments {
		if detail.Comments[i].ID == comment.ID {
			result.Comment = &detail.Comments[i]
			break
		}
	}
	return result, nil
}

func (s *postServiceImpl) PostCountsByAuthor(ctx context.Context) ([]*model.AuthorPostCount, error) {
	counts, err := s.postRepo.CountPostsByAuthor(ctx)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrNoPostsFound
	}
	return counts, nil
}

func (s *postServiceImpl) upload(ctx context.Context, localPath string) (*model.MediaAsset, error) {
	if localPath == "" {
		return nil, nil
	}
	asset, err := s.media.Upload(ctx, localPath)
	if err != nil {
		log.WarnContext(ctx, "media upload failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}
	return asset, nil
}

func (s *postServiceImpl) discardMedia(ctx context.Context, asset *model.MediaAsset) {
	if asset == nil || asset.ReferenceID == "" {
		return
	}
	if err := s.media.Delete(ctx, asset.ReferenceID); err != nil {
		log.ErrorContext(ctx, "failed to delete media", "reference_id", asset.ReferenceID, "err", err)
	}
}

func (s *postServiceImpl) mapWriteErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (s *postServiceImpl) publish(ctx context.Context, eventType string, post *model.Post, actor primitive.ObjectID) {
	if s.publisher == nil {
		return
	}
	evt := &model.PostEvent{
		Type:       eventType,
		PostID:     post.ID.Hex(),
		AuthorID:   post.Author.Hex(),
		ActorID:    actor.Hex(),
		HasMedia:   post.Media != nil,
		LikeCount:  len(post.Likes),
		OccurredAt: s.now(),
	}
	if eventType == model.PostEventCreated || eventType == model.PostEventUpdated {
		evt.Content = post.Content
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		log.WarnContext(ctx, "post event publish failed", "type", eventType, "post_id", evt.PostID, "err", err)
	}
}
