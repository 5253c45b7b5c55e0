package handler

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/api/middleware"
	"Murmur/internal/pkg/consts"
	"Murmur/internal/pkg/response"
	"Murmur/internal/pkg/util"
	"Murmur/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ProfilePictureField 头像的 multipart 字段名
const ProfilePictureField = "profilePicture"

type UserHandler struct {
	userSvc     service.UserService
	uploads     *TempUploader
	tokenExpiry time.Duration
}

func NewUserHandler(userSvc service.UserService, uploads *TempUploader, tokenExpiry time.Duration) *UserHandler {
	return &UserHandler{
		userSvc:     userSvc,
		uploads:     uploads,
		tokenExpiry: tokenExpiry,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	localPath, err := s.uploads.Save(c, ProfilePictureField)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer s.uploads.Discard(c, localPath)

	var registerDTO dto.RegisterDTO
	if err = bindBody(c, &registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userSvc.Register(c.Request.Context(), &registerDTO, localPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "User registered successfully", user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := bindBody(c, &loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.TokenCookie, result.Token, int(s.tokenExpiry.Seconds()), "/", "", false, true)
	response.Success(c, "Login successful", result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	if err := s.userSvc.Logout(c.Request.Context(), middleware.CurrentCredential(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.SetCookie(consts.TokenCookie, "", -1, "/", "", false, true)
	response.Success(c, "Logout successful", nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	identity := caller(c)
	if identity == nil {
		response.Error(c, service.ErrUnauthorized)
		return
	}
	user, err := s.userSvc.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Profile fetched successfully", user)
}
