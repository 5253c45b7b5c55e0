package response

import (
	"Murmur/internal/api/dto"
	"Murmur/internal/pkg/util"
	"Murmur/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 200 成功返回封装
func Success(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, message, data)
}

// Created 201
func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, message, data)
}

// Accepted 202
func Accepted(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusAccepted, message, data)
}

func write(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, dto.Response{
		Success: false,
		Message: message,
		Data:    nil,
		Error:   kind,
	})
}

// Error 处理错误，未登记的错误统一按依赖故障返回
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, service.KindValidation, service.ErrParamInvalid.Error())
		return
	}

	var fe *util.FieldError
	if errors.As(err, &fe) {
		Fail(c, http.StatusBadRequest, service.KindValidation, fe.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, service.KindValidation, "malformed json body")
		return
	}

	sentinel, info, ok := service.LookupError(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "unhandled error", "err", err)
		Fail(c, http.StatusInternalServerError, service.KindDependency, service.UnExpectedError.Error())
		return
	}
	if info.Status >= http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "request failed", "err", err)
	}
	Fail(c, info.Status, info.Kind, sentinel.Error())
}
