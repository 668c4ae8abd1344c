package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/repository"
)

var errMockDB = errors.New("mock: connection refused")

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint

	// 故障注入
	getErr    error
	writeErr  error
	searchErr error

	lastFilters *repository.MemberSearchFilters
	lastOffset  int
	lastLimit   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) conflicts(user *model.User) bool {
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if u.QQID == user.QQID || u.StudentID == user.StudentID {
			return true
		}
		if u.MCName != nil && user.MCName != nil && *u.MCName == *user.MCName {
			return true
		}
	}
	return false
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.conflicts(user) {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.ID == id })
}

func (m *mockUserRepo) GetByQQID(_ context.Context, qqID int64) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.QQID == qqID })
}

func (m *mockUserRepo) GetByToken(_ context.Context, token string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Token != nil && *u.Token == token })
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.conflicts(user) {
		return gorm.ErrDuplicatedKey
	}
	stored, ok := m.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Nickname = user.Nickname
	stored.MCName = user.MCName
	stored.RealName = user.RealName
	stored.StudentID = user.StudentID
	stored.CollegeEnum = user.CollegeEnum
	stored.CollegeName = user.CollegeName
	stored.Major = user.Major
	stored.Grade = user.Grade
	stored.ClassIndex = user.ClassIndex
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockUserRepo) SetSession(_ context.Context, id uint, token string, at time.Time) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if u, ok := m.users[id]; ok {
		u.Token = &token
		u.UpdateAt = &at
	}
	return nil
}

func (m *mockUserRepo) TouchSession(_ context.Context, id uint, at time.Time) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if u, ok := m.users[id]; ok {
		u.UpdateAt = &at
	}
	return nil
}

func (m *mockUserRepo) ClearSession(_ context.Context, id uint) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if u, ok := m.users[id]; ok {
		u.Token = nil
		u.UpdateAt = nil
	}
	return nil
}

// Search 仅记录条件并按 id 倒序分页返回全部用户，条件组合由仓储层测试覆盖
func (m *mockUserRepo) Search(_ context.Context, filters *repository.MemberSearchFilters, offset, limit int) ([]model.User, error) {
	m.lastFilters, m.lastOffset, m.lastLimit = filters, offset, limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}

	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })

	if offset >= len(result) {
		return []model.User{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	depts   []model.Department
	listErr error
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	dept.ID = uint(len(m.depts) + 1)
	m.depts = append(m.depts, *dept)
	return nil
}

func (m *mockDepartmentRepo) GetByCode(_ context.Context, code string) (*model.Department, error) {
	for i := range m.depts {
		if m.depts[i].Code == code {
			return &m.depts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) ListAll(_ context.Context) ([]model.Department, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.depts, nil
}

func (m *mockDepartmentRepo) AddMember(_ context.Context, dept *model.Department, user *model.User) error {
	user.Departments = append(user.Departments, *dept)
	return nil
}

// ── 测试辅助 ──

type testEnv struct {
	cfg      *config.Config
	users    *mockUserRepo
	depts    *mockDepartmentRepo
	repo     *repository.Repository
	services *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			SessionTimeout: 3600,
			BcryptCost:     bcrypt.MinCost,
		},
	}
	users := newMockUserRepo()
	depts := &mockDepartmentRepo{depts: []model.Department{
		{ID: 1, Name: "技术部", Code: "TECH"},
		{ID: 2, Name: "美术部", Code: "ART"},
	}}
	repo := &repository.Repository{User: users, Department: depts}

	return &testEnv{
		cfg:      cfg,
		users:    users,
		depts:    depts,
		repo:     repo,
		services: NewService(cfg, repo, zap.NewNop()),
	}
}

func hashPassword(t *testing.T, plaintext string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	return string(hash)
}

// seedUser 写入一名成员，密码为 password
func (e *testEnv) seedUser(t *testing.T, qqID int64, level model.UserLevel) *model.User {
	t.Helper()
	major := "计算机科学与技术"
	grade, class := 2023, 1
	u := &model.User{
		QQID:         qqID,
		Nickname:     "user",
		RealName:     "张三",
		StudentID:    fmt.Sprintf("S%d", qqID),
		CollegeEnum:  "CCSEE",
		CollegeName:  "信息科学与工程学院",
		Major:        &major,
		Grade:        &grade,
		ClassIndex:   &class,
		Level:        level,
		PasswordHash: hashPassword(t, "password"),
		Departments:  []model.Department{e.depts.depts[0]},
	}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("写入用户失败: %v", err)
	}
	return u
}

func strPtr(s string) *string { return &s }
