// Package errors 定义业务错误分类。
// 每个错误携带稳定的机器可读码、可读消息和对应的 HTTP 状态码。
package errors

import (
	"errors"
	"net/http"
)

// Kind 错误类别
type Kind int

const (
	KindServer Kind = iota
	KindNotFound
	KindInvalidCredential
	KindValidation
	KindUnauthenticated
	KindPermissionDenied
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidCredential:
		return "INVALID_CREDENTIAL"
	case KindValidation:
		return "VALIDATION"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindPermissionDenied:
		return "PERMISSION_DENIED"
	case KindConflict:
		return "CONFLICT"
	default:
		return "SERVER_ERROR"
	}
}

// Error 业务错误
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	cause   error
}

// New 创建业务错误
func New(kind Kind, status int, code, message string) *Error {
	return &Error{Kind: kind, Status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.Message + ": " + e.cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is 按错误码比较，使 Wrap 后的副本仍能与哨兵错误匹配
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Status == t.Status
}

// Wrap 返回附带底层原因的副本
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// ErrServer 通用服务器内部错误
var ErrServer = New(KindServer, http.StatusInternalServerError, "SERVER_ERROR", "服务器内部错误，请联系管理员")

// From 提取业务错误；非业务错误统一视为服务器内部错误
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrServer.Wrap(err)
}

// IsAuthFailure 是否为认证失败（401 类）
func IsAuthFailure(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnauthenticated
}
