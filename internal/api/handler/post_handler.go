package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/api/middleware"
	"Murmur/internal/model"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/response"
	"Murmur/internal/service"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostPictureField 帖子图片的 multipart 字段名
const PostPictureField = "postPicture"

type PostHandler struct {
	postSvc service.PostService
	uploads *TempUploader
}

func NewPostHandler(postSvc service.PostService, uploads *TempUploader) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
		uploads: uploads,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	localPath, err := s.uploads.Save(c, PostPictureField)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer s.uploads.Discard(c, localPath)

	var req dto.PostFormDTO
	if err = bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), callerID(c), req.Content, localPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Post created successfully", post)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	page := queryInt(c, "page", consts.DefaultPage)
	limit := queryInt(c, "limit", consts.DefaultLimit)

	result, err := s.postSvc.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Posts fetched successfully", result)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Post fetched successfully", post)
}

func (s *PostHandler) GetPostSelf(c *gin.Context) {
	s.listByAuthor(c, callerID(c).Hex())
}

func (s *PostHandler) GetPostsByAuthor(c *gin.Context) {
	s.listByAuthor(c, c.Param("user_id"))
}

func (s *PostHandler) listByAuthor(c *gin.Context, authorID string) {
	posts, err := s.postSvc.ListPostsByAuthor(c.Request.Context(), authorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "User posts fetched successfully", posts)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	localPath, err := s.uploads.Save(c, PostPictureField)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer s.uploads.Discard(c, localPath)

	var req dto.PostFormDTO
	if err = bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), c.Param("post_id"), callerID(c), req.Content, localPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, "Post updated successfully", post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	result, err := s.postSvc.DeletePost(c.Request.Context(), c.Param("post_id"), callerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Post deleted successfully", result)
}

func (s *PostHandler) GetPostCountsByAuthor(c *gin.Context) {
	counts, err := s.postSvc.PostCountsByAuthor(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Total posts by each user fetched successfully", counts)
}

// queryInt 缺省、非数字或 0 时取默认值，负数原样交给业务层校验
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v == 0 {
		return def
	}
	return v
}

// bindBody 空 body 视为未提交任何字段
func bindBody(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", service.ErrParamInvalid, err)
	}
	return nil
}

func callerID(c *gin.Context) primitive.ObjectID {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return primitive.NilObjectID
	}
	return identity.ID
}

func caller(c *gin.Context) *model.Identity {
	return middleware.CurrentIdentity(c)
}
