package service

import (
	"go.uber.org/zap"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Credentials CredentialStore
	Auth        AuthService
	SignUp      SignUpService
	Profile     ProfileService
	Member      MemberService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	credentials := NewCredentialStore(repo, cfg.Auth.BcryptCost, logger)
	return &Service{
		Credentials: credentials,
		Auth:        NewAuthService(cfg.Auth, repo, credentials, logger),
		SignUp:      NewSignUpService(repo, credentials, logger),
		Profile:     NewProfileService(repo, credentials, logger),
		Member:      NewMemberService(repo, logger),
	}
}
