package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/repository"
)

// tokenBytes 会话 token 的随机字节数，十六进制编码后为 64 个字符
const tokenBytes = 32

// CredentialStore 凭据存取：按 QQ 号或 token 查找用户、校验与设置密码、签发与清除会话 token
type CredentialStore interface {
	FindByQQID(ctx context.Context, qqID int64) (*model.User, error)
	FindByToken(ctx context.Context, token string) (*model.User, error)
	VerifyPassword(user *model.User, plaintext string) bool
	SetPassword(user *model.User, plaintext string) error
	IssueToken(ctx context.Context, user *model.User) (string, error)
	ClearToken(ctx context.Context, user *model.User) error
}

type credentialStore struct {
	repo       *repository.Repository
	bcryptCost int
	now        func() time.Time
	logger     *zap.Logger
}

// NewCredentialStore 创建 CredentialStore 实例
func NewCredentialStore(repo *repository.Repository, bcryptCost int, logger *zap.Logger) CredentialStore {
	return &credentialStore{
		repo:       repo,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (s *credentialStore) FindByQQID(ctx context.Context, qqID int64) (*model.User, error) {
	user, err := s.repo.User.GetByQQID(ctx, qqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *credentialStore) FindByToken(ctx context.Context, token string) (*model.User, error) {
	user, err := s.repo.User.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// VerifyPassword 常数时间比较；哈希损坏时视为不匹配
func (s *credentialStore) VerifyPassword(user *model.User, plaintext string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}

// SetPassword 计算哈希并写入 user.PasswordHash，持久化由调用方负责
func (s *credentialStore) SetPassword(user *model.User, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return nil
}

// IssueToken 生成新 token 并与当前时间一起写入；写入失败时不修改 user
func (s *credentialStore) IssueToken(ctx context.Context, user *model.User) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	now := s.now()

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.User.SetSession(ctx, user.ID, token, now)
	})
	if err != nil {
		s.logger.Error("写入会话 token 失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return "", err
	}

	user.Token = &token
	user.UpdateAt = &now
	return token, nil
}

// ClearToken 同时清空 token 与最近活动时间
func (s *credentialStore) ClearToken(ctx context.Context, user *model.User) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.User.ClearSession(ctx, user.ID)
	})
	if err != nil {
		s.logger.Error("清除会话 token 失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return err
	}

	user.Token = nil
	user.UpdateAt = nil
	return nil
}
