package service

import (
	"errors"
	"net/http"
)

// 对外暴露的错误类别
const (
	KindValidation   = "ValidationError"
	KindUnauthorized = "Unauthorized"
	KindForbidden    = "Forbidden"
	KindNotFound     = "NotFoundError"
	KindMediaUpload  = "MediaUploadError"
	KindMediaDelete  = "MediaDeleteError"
	KindDependency   = "DependencyError"
)

var (
	ErrParamInvalid       = errors.New("invalid parameters")
	ErrContentRequired    = errors.New("content field is required")
	ErrInvalidPagination  = errors.New("page and limit should be greater than 0")
	ErrInvalidPostID      = errors.New("invalid post id")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotPostOwner       = errors.New("you are not authorized to delete this post")
	ErrPostNotFound       = errors.New("post not found")
	ErrNoPostsFound       = errors.New("no posts found")
	ErrPostAlreadyDeleted = errors.New("post not found or already deleted")
	ErrMediaUpload        = errors.New("error uploading media or file not provided")
	ErrMediaDelete        = errors.New("error deleting media")
	ErrUserExist          = errors.New("user with this email or user name already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordIncorrect  = errors.New("invalid email or password")
	UnExpectedError       = errors.New("something went wrong, please try again later")
)

// ErrorInfo HTTP 状态码与错误类别
type ErrorInfo struct {
	Status int
	Kind   string
}

var ErrorMap = map[error]ErrorInfo{
	ErrParamInvalid:       {http.StatusBadRequest, KindValidation},
	ErrContentRequired:    {http.StatusBadRequest, KindValidation},
	ErrInvalidPagination:  {http.StatusBadRequest, KindValidation},
	ErrInvalidPostID:      {http.StatusBadRequest, KindValidation},
	ErrEmptyComment:       {http.StatusBadRequest, KindValidation},
	ErrUnauthorized:       {http.StatusUnauthorized, KindUnauthorized},
	ErrInvalidToken:       {http.StatusUnauthorized, KindUnauthorized},
	ErrPasswordIncorrect:  {http.StatusUnauthorized, KindUnauthorized},
	ErrNotPostOwner:       {http.StatusForbidden, KindForbidden},
	ErrPostNotFound:       {http.StatusNotFound, KindNotFound},
	ErrNoPostsFound:       {http.StatusNotFound, KindNotFound},
	ErrPostAlreadyDeleted: {http.StatusNotFound, KindNotFound},
	ErrUserNotFound:       {http.StatusNotFound, KindNotFound},
	ErrMediaUpload:        {http.StatusBadRequest, KindMediaUpload},
	ErrMediaDelete:        {http.StatusInternalServerError, KindMediaDelete},
	ErrUserExist:          {http.StatusBadRequest, KindValidation},
	UnExpectedError:       {http.StatusInternalServerError, KindDependency},
}

// LookupError 找到 err 链上的业务错误，未登记的错误返回 false
func LookupError(err error) (error, ErrorInfo, bool) {
	if err == nil {
		return nil, ErrorInfo{}, false
	}
	if info, ok := ErrorMap[err]; ok {
		return err, info, true
	}
	for sentinel, info := range ErrorMap {
		if errors.Is(err, sentinel) {
			return sentinel, info, true
		}
	}
	return nil, ErrorInfo{}, false
}
