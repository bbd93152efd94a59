package util

import (
	"errors"
	"net/http"

	"edu_platform_backend/internal/schema"
	"edu_platform_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// ValidationFailed 400，data.errors 为逐字段的错误列表
func ValidationFailed(c *gin.Context, errs schema.ValidationErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Data:    gin.H{"errors": errs},
	})
}

// BindError 处理 ShouldBind* 的错误：规则校验失败返回字段列表，其余（JSON 语法等）返回原始信息
func BindError(c *gin.Context, err error) {
	if ve, ok := schema.AsValidationErrors(err); ok {
		ValidationFailed(c, ve)
		return
	}
	BadRequest(c, err.Error())
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	InternalServerError(c)
}

// HandleError 把服务层错误映射为 HTTP 状态码
func HandleError(c *gin.Context, err error) {
	if ve, ok := schema.AsValidationErrors(err); ok {
		ValidationFailed(c, ve)
		return
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, ErrNotFound):
		NotFound(c)
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrFeatureDisabled):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyEnrolled),
		errors.Is(err, ErrPathFull),
		errors.Is(err, ErrCertificationExists),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, gorm.ErrDuplicatedKey):
		Conflict(c, err.Error())
	case errors.Is(err, ErrNotPublished),
		errors.Is(err, ErrEnrollmentClosed),
		errors.Is(err, ErrActiveEnrollmentLimit),
		errors.Is(err, ErrSelfEnrollmentDisabled),
		errors.Is(err, ErrMaxAttemptsReached),
		errors.Is(err, ErrConcurrentLabLimit),
		errors.Is(err, ErrPastDue),
		errors.Is(err, ErrThreadNotOpen),
		errors.Is(err, ErrNotEnrolled),
		errors.Is(err, ErrCriteriaNotMet),
		errors.Is(err, ErrNoCertification):
		Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrInvalidVote),
		errors.Is(err, ErrInvalidRubricScore),
		errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrInvalidSort):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
