package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/repository"
)

// AuthService 认证业务接口
type AuthService interface {
	// Login 校验 QQ 号与密码，成功时签发新 token
	Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.LoginResponse, error)
	// Logout 清除当前用户的会话
	Logout(ctx context.Context, user *model.User) error
	// Authenticate 按 token 解析用户并校验、刷新会话有效期
	Authenticate(ctx context.Context, token string) (*model.User, error)
	// Resolve 仅按 token 解析用户，不检查过期也不刷新（免登录模式）
	Resolve(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	cfg         config.AuthConfig
	repo        *repository.Repository
	credentials CredentialStore
	now         func() time.Time
	logger      *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg config.AuthConfig,
	repo *repository.Repository,
	credentials CredentialStore,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:         cfg,
		repo:        repo,
		credentials: credentials,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.LoginResponse, error) {
	// 1. 查询用户
	user, err := s.credentials.FindByQQID(ctx, req.QQID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("查询用户失败", zap.Error(err))
		}
		return "", nil, err
	}

	// 2. 验证密码 (bcrypt)
	if !s.credentials.VerifyPassword(user, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	// 3. 签发 token
	token, err := s.credentials.IssueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("用户登录", zap.Uint("user_id", user.ID))
	return token, &dto.LoginResponse{
		QQID:     user.QQID,
		MCName:   user.MCName,
		Nickname: user.Nickname,
	}, nil
}

func (s *authService) Logout(ctx context.Context, user *model.User) error {
	return s.credentials.ClearToken(ctx, user)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	user, err := s.credentials.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionUserNotFound
		}
		s.logger.Error("会话校验查询失败", zap.Error(err))
		return nil, ErrDBConnFail.Wrap(err)
	}

	// 过期判定：最近活动时间缺失或超过会话时长，token 保持不变
	now := s.now()
	if user.UpdateAt == nil || now.Sub(*user.UpdateAt) > s.cfg.SessionTimeoutDuration() {
		return nil, ErrSessionExpired
	}

	// 滑动续期
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.User.TouchSession(ctx, user.ID, now)
	})
	if err != nil {
		s.logger.Error("刷新会话时间失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, ErrDBConnFail.Wrap(err)
	}
	user.UpdateAt = &now

	return user, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	user, err := s.credentials.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionUserNotFound
		}
		return nil, ErrDBConnFail.Wrap(err)
	}
	return user, nil
}
