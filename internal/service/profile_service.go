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

// ProfileService 个人信息业务接口
type ProfileService interface {
	Get(ctx context.Context, user *model.User) (*dto.MemberInfo, error)
	// Update 按字段修补个人资料，未提供的字段保持不变
	Update(ctx context.Context, user *model.User, req *dto.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, user *model.User, req *dto.ChangePasswordRequest) error
}

type profileService struct {
	repo        *repository.Repository
	credentials CredentialStore
	logger      *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository, credentials CredentialStore, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, credentials: credentials, logger: logger}
}

func (s *profileService) Get(ctx context.Context, user *model.User) (*dto.MemberInfo, error) {
	fresh, err := s.repo.User.GetByID(ctx, user.ID)
	if err != nil {
		s.logger.Error("查询个人信息失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	info := toMemberInfo(fresh, false)
	return &info, nil
}

// validateProfilePatch 必填字段显式传空时拒绝
func validateProfilePatch(req *dto.UpdateProfileRequest) error {
	if req.Nickname != nil && *req.Nickname == "" {
		return ErrInvalidNickname
	}
	if req.RealName != nil && *req.RealName == "" {
		return ErrInvalidRealName
	}
	if req.StudentID != nil && *req.StudentID == "" {
		return ErrInvalidStudentID
	}
	if req.CollegeName != nil && *req.CollegeName == "" {
		return ErrInvalidCollegeName
	}
	return nil
}

func applyProfilePatch(user *model.User, req *dto.UpdateProfileRequest) {
	if req.MCName != nil {
		user.MCName = nonEmpty(req.MCName)
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.RealName != nil {
		user.RealName = *req.RealName
	}
	if req.StudentID != nil {
		user.StudentID = *req.StudentID
	}
	if req.CollegeName != nil {
		user.CollegeEnum, user.CollegeName = model.ResolveCollege(*req.CollegeName)
	}
	if req.Major != nil {
		user.Major = nonEmpty(req.Major)
	}
	if req.Grade != nil {
		user.Grade = req.Grade
	}
	if req.ClassIndex != nil {
		user.ClassIndex = req.ClassIndex
	}
}

func (s *profileService) Update(ctx context.Context, user *model.User, req *dto.UpdateProfileRequest) error {
	if err := validateProfilePatch(req); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		current, err := tx.User.GetByID(ctx, user.ID)
		if err != nil {
			return err
		}
		applyProfilePatch(current, req)
		return tx.User.Update(ctx, current)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateField.Wrap(err)
		}
		s.logger.Error("修改个人信息失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return err
	}

	applyProfilePatch(user, req)
	return nil
}

func (s *profileService) ChangePassword(ctx context.Context, user *model.User, req *dto.ChangePasswordRequest) error {
	if !s.credentials.VerifyPassword(user, req.OldPassword) {
		return ErrInvalidOldPassword
	}
	if s.credentials.VerifyPassword(user, req.NewPassword) {
		return ErrSameAsOldPassword
	}

	updated := *user
	if err := s.credentials.SetPassword(&updated, req.NewPassword); err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.User.UpdatePassword(ctx, user.ID, updated.PasswordHash)
	})
	if err != nil {
		s.logger.Error("修改密码失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return err
	}

	user.PasswordHash = updated.PasswordHash
	s.logger.Info("用户修改密码", zap.Uint("user_id", user.ID))
	return nil
}
