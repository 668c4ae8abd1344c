package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/repository"
)

// SignUpService 注册业务接口
type SignUpService interface {
	// Info 注册页可选的学院与部门
	Info(ctx context.Context) (*dto.SignUpInfoResponse, error)
	// CheckQQ QQ 号已注册时返回 ErrQQIDExists
	CheckQQ(ctx context.Context, qqID int64) error
	// SignUp 创建新成员，级别固定为 MEMBER
	SignUp(ctx context.Context, req *dto.SignUpRequest) error
}

type signUpService struct {
	repo        *repository.Repository
	credentials CredentialStore
	logger      *zap.Logger
}

// NewSignUpService 创建 SignUpService 实例
func NewSignUpService(repo *repository.Repository, credentials CredentialStore, logger *zap.Logger) SignUpService {
	return &signUpService{repo: repo, credentials: credentials, logger: logger}
}

func (s *signUpService) Info(ctx context.Context) (*dto.SignUpInfoResponse, error) {
	depts, err := s.repo.Department.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询部门列表失败", zap.Error(err))
		return nil, err
	}
	return &dto.SignUpInfoResponse{
		Colleges:    collegeCatalogue(),
		Departments: toDepartmentInfos(depts),
	}, nil
}

func (s *signUpService) CheckQQ(ctx context.Context, qqID int64) error {
	return checkQQFree(ctx, s.repo, qqID)
}

func checkQQFree(ctx context.Context, repo *repository.Repository, qqID int64) error {
	_, err := repo.User.GetByQQID(ctx, qqID)
	if err == nil {
		return ErrQQIDExists
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *signUpService) SignUp(ctx context.Context, req *dto.SignUpRequest) error {
	college, collegeName := model.ResolveCollege(req.CollegeName)
	user := &model.User{
		QQID:        req.QQID,
		Nickname:    req.Nickname,
		MCName:      nonEmpty(req.MCName),
		RealName:    req.RealName,
		StudentID:   req.StudentID,
		CollegeEnum: college,
		CollegeName: collegeName,
		Major:       nonEmpty(req.Major),
		Grade:       req.Grade,
		ClassIndex:  req.ClassIndex,
		Level:       model.LevelMember,
	}
	if err := s.credentials.SetPassword(user, req.Password); err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := checkQQFree(ctx, tx, req.QQID); err != nil {
			return err
		}
		return tx.User.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("注册唯一约束冲突", zap.Int64("qq_id", req.QQID), zap.Error(err))
			return ErrIntegrity.Wrap(err)
		}
		if !errors.Is(err, ErrQQIDExists) {
			s.logger.Error("创建用户失败", zap.Error(err))
		}
		return err
	}

	s.logger.Info("新成员注册", zap.Uint("user_id", user.ID), zap.Int64("qq_id", user.QQID))
	return nil
}

// nonEmpty 空字符串按未填写处理
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
