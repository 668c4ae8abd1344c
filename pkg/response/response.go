package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HMODeveloper/hmo-mms/pkg/errors"
)

// CodeOK 成功响应码
const CodeOK = "OK"

// Response 统一响应结构
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Message 200 仅带提示信息的成功响应
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: message,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: message,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code string, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// FailWith 按业务错误写出响应；未知错误返回 500
func FailWith(c *gin.Context, err error) {
	e := apperrors.From(err)
	if e.Kind == apperrors.KindServer {
		_ = c.Error(err)
	}
	Error(c, e.Status, e.Code, e.Message)
}

// AbortWith 写出错误响应并中止后续处理
func AbortWith(c *gin.Context, err error) {
	FailWith(c, err)
	c.Abort()
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code string, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code string, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, apperrors.ErrServer.Code, apperrors.ErrServer.Message)
}
