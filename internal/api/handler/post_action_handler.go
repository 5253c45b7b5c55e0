package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/response"
	"Murmur/internal/pkg/util"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postSvc service.PostService
}

func NewPostActionHandler(postSvc service.PostService) *PostActionHandler {
	return &PostActionHandler{postSvc: postSvc}
}

func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	result, err := s.postSvc.ToggleLike(c.Request.Context(), c.Param("post_id"), callerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Post unliked successfully"
	if result.Liked {
		message = "Post liked successfully"
	}
	response.Success(c, message, result)
}

func (s *PostActionHandler) AddComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := bindBody(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.AddComment(c.Request.Context(), c.Param("post_id"), callerID(c), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Comment added successfully", result)
}
