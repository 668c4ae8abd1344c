package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/HMODeveloper/hmo-mms/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByQQID(ctx context.Context, qqID int64) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	SetSession(ctx context.Context, id uint, token string, at time.Time) error
	TouchSession(ctx context.Context, id uint, at time.Time) error
	ClearSession(ctx context.Context, id uint) error
	Search(ctx context.Context, filters *MemberSearchFilters, offset, limit int) ([]model.User, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func preloadDepartments(db *gorm.DB) *gorm.DB {
	return db.Preload("Departments", func(db *gorm.DB) *gorm.DB {
		return db.Order("departments.id ASC")
	})
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := preloadDepartments(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByQQID(ctx context.Context, qqID int64) (*model.User, error) {
	var user model.User
	err := preloadDepartments(r.db.WithContext(ctx)).
		Where("qq_id = ?", qqID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	err := preloadDepartments(r.db.WithContext(ctx)).
		Where("token = ?", token).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新个人资料字段，不触碰密码、会话与部门关联
func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("nickname", "mc_name", "real_name", "student_id", "college_enum", "college_name", "major", "grade", "class_index", "updated_at").
		Updates(user).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// SetSession 同时写入 token 与最近活动时间
func (r *userRepo) SetSession(ctx context.Context, id uint, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"token":     token,
			"update_at": at,
		}).Error
}

// TouchSession 刷新最近活动时间（滑动过期）
func (r *userRepo) TouchSession(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("update_at", at).Error
}

// ClearSession 同时清空 token 与最近活动时间
func (r *userRepo) ClearSession(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"token":     nil,
			"update_at": nil,
		}).Error
}

func (r *userRepo) Search(ctx context.Context, filters *MemberSearchFilters, offset, limit int) ([]model.User, error) {
	var users []model.User
	err := preloadDepartments(applyMemberFilters(r.db.WithContext(ctx).Model(&model.User{}), filters)).
		Order("users.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
