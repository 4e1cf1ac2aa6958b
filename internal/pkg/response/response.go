package response

import (
	"Mapdrop/internal/api/dto"
	"Mapdrop/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, data)
}

// Created 创建成功返回封装
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, data)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, code string, message string) {
	c.JSON(status, dto.ErrorResponse{
		Ok:      false,
		Error:   code,
		Message: message,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, "bad_request", "参数错误")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, "bad_json", "Json错误")
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		log.Error("Error", "err", err)
		Fail(c, http.StatusInternalServerError, "internal", service.UnExpectedError.Error())
		return
	}
	Fail(c, status, service.ErrorCode[err], err.Error())
}
