package service

import (
	"net/http"

	apperrors "github.com/HMODeveloper/hmo-mms/pkg/errors"
)

// ── 认证模块业务错误 ──

var (
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, http.StatusNotFound, "USER_NOT_FOUND", "用户不存在")
	ErrInvalidCredentials = apperrors.New(apperrors.KindInvalidCredential, http.StatusForbidden, "INVALID_PASSWORD", "密码错误")
)

// ── 会话校验错误 ──

var (
	ErrNoToken             = apperrors.New(apperrors.KindUnauthenticated, http.StatusUnauthorized, "NO_TOKEN", "未登录")
	ErrSessionUserNotFound = apperrors.New(apperrors.KindUnauthenticated, http.StatusUnauthorized, "USER_NOT_FOUND", "用户不存在")
	ErrSessionExpired      = apperrors.New(apperrors.KindUnauthenticated, http.StatusUnauthorized, "EXPIRED", "登录已过期，请重新登录")
	ErrDBConnFail          = apperrors.New(apperrors.KindServer, http.StatusInternalServerError, "DB_CONN_FAIL", "数据库连接失败")
)

// ── 注册模块业务错误 ──

var (
	ErrQQIDExists = apperrors.New(apperrors.KindConflict, http.StatusConflict, "QQID_EXISTS", "该 QQ 号已被注册")
	ErrIntegrity  = apperrors.New(apperrors.KindServer, http.StatusInternalServerError, "INTEGRITY_ERROR", "注册失败，填写信息有误")
)

// ── 个人信息模块业务错误 ──

var (
	ErrInvalidNickname    = apperrors.New(apperrors.KindValidation, http.StatusBadRequest, "INVALID_NICKNAME", "昵称不能为空.")
	ErrInvalidRealName    = apperrors.New(apperrors.KindValidation, http.StatusBadRequest, "INVALID_REAL_NAME", "真实姓名不能为空.")
	ErrInvalidStudentID   = apperrors.New(apperrors.KindValidation, http.StatusBadRequest, "INVALID_STUDENT_ID", "学号不能为空.")
	ErrInvalidCollegeName = apperrors.New(apperrors.KindValidation, http.StatusBadRequest, "INVALID_COLLEGE_NAME", "学院不能为空.")
	ErrDuplicateField     = apperrors.New(apperrors.KindValidation, http.StatusBadRequest, "DUPLICATE_FIELD", "MC 名称或学号已被占用.")
	ErrInvalidOldPassword = apperrors.New(apperrors.KindInvalidCredential, http.StatusForbidden, "INVALID_OLD_PASSWORD", "旧密码错误.")
	ErrSameAsOldPassword  = apperrors.New(apperrors.KindValidation, http.StatusBadRequest, "SAME_AS_OLD_PASSWORD", "新密码不能与旧密码相同.")
)

// ── 成员模块业务错误 ──

var (
	ErrPermissionDenied = apperrors.New(apperrors.KindPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED", "权限不足")
)
