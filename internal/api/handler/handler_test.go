package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/api/middleware"
	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	apperrors "github.com/HMODeveloper/hmo-mms/pkg/errors"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginToken  string
	loginResult *dto.LoginResponse
	loginErr    error
	logoutErr   error
	loggedOut   *model.User
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (string, *dto.LoginResponse, error) {
	return m.loginToken, m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, user *model.User) error {
	m.loggedOut = user
	return m.logoutErr
}
func (m *mockAuthService) Authenticate(_ context.Context, _ string) (*model.User, error) {
	return nil, service.ErrNoToken
}
func (m *mockAuthService) Resolve(_ context.Context, _ string) (*model.User, error) {
	return nil, service.ErrNoToken
}

// ── Mock SignUpService ──

type mockSignUpService struct {
	infoResult *dto.SignUpInfoResponse
	infoErr    error
	checkErr   error
	signUpErr  error
	lastSignUp *dto.SignUpRequest
}

func (m *mockSignUpService) Info(_ context.Context) (*dto.SignUpInfoResponse, error) {
	return m.infoResult, m.infoErr
}
func (m *mockSignUpService) CheckQQ(_ context.Context, _ int64) error {
	return m.checkErr
}
func (m *mockSignUpService) SignUp(_ context.Context, req *dto.SignUpRequest) error {
	m.lastSignUp = req
	return m.signUpErr
}

// ── Mock ProfileService ──

type mockProfileService struct {
	getResult  *dto.MemberInfo
	getErr     error
	updateErr  error
	changeErr  error
	lastUpdate *dto.UpdateProfileRequest
}

func (m *mockProfileService) Get(_ context.Context, _ *model.User) (*dto.MemberInfo, error) {
	return m.getResult, m.getErr
}
func (m *mockProfileService) Update(_ context.Context, _ *model.User, req *dto.UpdateProfileRequest) error {
	m.lastUpdate = req
	return m.updateErr
}
func (m *mockProfileService) ChangePassword(_ context.Context, _ *model.User, _ *dto.ChangePasswordRequest) error {
	return m.changeErr
}

// ── Mock MemberService ──

type mockMemberService struct {
	infoResult   *dto.SearchInfoResponse
	searchResult *dto.MemberListResponse
	searchErr    error
	lastSearch   *dto.SearchRequest
	exportBuf    *bytes.Buffer
	exportName   string
	exportErr    error
}

func (m *mockMemberService) Info(_ context.Context) (*dto.SearchInfoResponse, error) {
	return m.infoResult, nil
}
func (m *mockMemberService) Search(_ context.Context, _ *model.User, req *dto.SearchRequest) (*dto.MemberListResponse, error) {
	m.lastSearch = req
	return m.searchResult, m.searchErr
}
func (m *mockMemberService) Export(_ context.Context, _ *model.User, req *dto.SearchRequest) (*bytes.Buffer, string, error) {
	m.lastSearch = req
	return m.exportBuf, m.exportName, m.exportErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

var testUser = &model.User{ID: 1, QQID: 10001, Nickname: "tester", Level: model.LevelMember}

var testCookie = config.CookieConfig{
	Name:     "token",
	MaxAge:   24 * time.Hour,
	Path:     "/",
	SameSite: "Lax",
}

// withUser 模拟会话中间件注入当前用户
func withUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CurrentUserKey, user)
		}
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginToken:  "abc123",
		loginResult: &dto.LoginResponse{QQID: 10001, Nickname: "tester"},
	}
	h := NewAuthHandler(mock, testCookie)

	r := gin.New()
	r.POST("/api/login", h.Login)
	w := serve(r, http.MethodPost, "/api/login", jsonBody(map[string]interface{}{"QQID": 10001, "password": "pw"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeOK {
		t.Errorf("expected code OK, got %s", resp.Code)
	}
	if !strings.Contains(w.Body.String(), `"QQID":10001`) {
		t.Errorf("body = %s", w.Body.String())
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			found = true
			if c.Value != "abc123" || !c.HttpOnly || c.MaxAge != 86400 {
				t.Errorf("cookie = %+v", c)
			}
		}
	}
	if !found {
		t.Error("expected token cookie to be set")
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{"非法 JSON", "invalid json", nil, http.StatusBadRequest, "VALIDATION"},
		{"缺少密码", `{"QQID":10001}`, nil, http.StatusBadRequest, "VALIDATION"},
		{"用户不存在", `{"QQID":1,"password":"x"}`, service.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"密码错误", `{"QQID":1,"password":"x"}`, service.ErrInvalidCredentials, http.StatusForbidden, "INVALID_PASSWORD"},
		{"未知错误", `{"QQID":1,"password":"x"}`, io.ErrUnexpectedEOF, http.StatusInternalServerError, "SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{loginErr: tt.err}, testCookie)
			r := gin.New()
			r.POST("/api/login", h.Login)
			w := serve(r, http.MethodPost, "/api/login", strings.NewReader(tt.body))

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if parseResponse(w).Code != tt.wantBody {
				t.Errorf("body = %s", w.Body.String())
			}
			if len(w.Result().Cookies()) != 0 {
				t.Error("失败时不应下发 Cookie")
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, testCookie)

	r := gin.New()
	r.GET("/api/logout", withUser(testUser), h.Logout)
	w := serve(r, http.MethodGet, "/api/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if parseResponse(w).Message != "注销成功" {
		t.Errorf("body = %s", w.Body.String())
	}
	if mock.loggedOut != testUser {
		t.Error("应注销当前用户")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "token" || cookies[0].MaxAge >= 0 {
		t.Errorf("应清除 token Cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_NoUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testCookie)
	r := gin.New()
	r.GET("/api/logout", withUser(nil), h.Logout)
	w := serve(r, http.MethodGet, "/api/logout", nil)

	if w.Code != http.StatusUnauthorized || parseResponse(w).Code != "NO_TOKEN" {
		t.Errorf("expected 401 NO_TOKEN, got %d %s", w.Code, w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// SignUpHandler Tests
// ═══════════════════════════════════════════════════════════

func validSignUpBody() map[string]interface{} {
	return map[string]interface{}{
		"QQID":         123456,
		"nickname":     "newbie",
		"password":     "pw",
		"real_name":    "李四",
		"student_id":   "202301010001",
		"college_name": "SM",
	}
}

func TestSignUpHandler_SignUp(t *testing.T) {
	mock := &mockSignUpService{}
	h := NewSignUpHandler(mock)
	r := gin.New()
	r.POST("/api/signup", h.SignUp)

	w := serve(r, http.MethodPost, "/api/signup", jsonBody(validSignUpBody()))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w).Message != "注册成功" {
		t.Errorf("body = %s", w.Body.String())
	}
	if mock.lastSignUp == nil || mock.lastSignUp.CollegeName != "SM" {
		t.Errorf("请求未正确绑定: %+v", mock.lastSignUp)
	}
}

func TestSignUpHandler_SignUp_Errors(t *testing.T) {
	missing := validSignUpBody()
	delete(missing, "real_name")

	tests := []struct {
		name     string
		body     map[string]interface{}
		err      error
		wantCode int
		wantBody string
	}{
		{"缺少必填字段", missing, nil, http.StatusBadRequest, "VALIDATION"},
		{"QQ 已注册", validSignUpBody(), service.ErrQQIDExists, http.StatusConflict, "QQID_EXISTS"},
		{"唯一约束冲突", validSignUpBody(), service.ErrIntegrity, http.StatusInternalServerError, "INTEGRITY_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSignUpHandler(&mockSignUpService{signUpErr: tt.err})
			r := gin.New()
			r.POST("/api/signup", h.SignUp)
			w := serve(r, http.MethodPost, "/api/signup", jsonBody(tt.body))

			if w.Code != tt.wantCode || parseResponse(w).Code != tt.wantBody {
				t.Errorf("expected %d %s, got %d %s", tt.wantCode, tt.wantBody, w.Code, w.Body.String())
			}
		})
	}
}

func TestSignUpHandler_CheckQQ(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		err      error
		wantCode int
	}{
		{"可用", "?qq_id=10001", nil, http.StatusOK},
		{"已注册", "?qq_id=10001", service.ErrQQIDExists, http.StatusConflict},
		{"缺少参数", "", nil, http.StatusBadRequest},
		{"非数字", "?qq_id=abc", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSignUpHandler(&mockSignUpService{checkErr: tt.err})
			r := gin.New()
			r.GET("/api/signup/check_qq", h.CheckQQ)
			w := serve(r, http.MethodGet, "/api/signup/check_qq"+tt.query, nil)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode == http.StatusOK && !strings.Contains(w.Body.String(), `"QQID":10001`) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestSignUpHandler_Info(t *testing.T) {
	mock := &mockSignUpService{infoResult: &dto.SignUpInfoResponse{
		Colleges: []dto.CollegeInfo{{Name: "数学学院", Code: "SM"}},
	}}
	h := NewSignUpHandler(mock)
	r := gin.New()
	r.GET("/api/signup/info", h.Info)

	w := serve(r, http.MethodGet, "/api/signup/info", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "数学学院") {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}

	mock.infoErr = apperrors.ErrServer
	w = serve(r, http.MethodGet, "/api/signup/info", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ProfileHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProfileHandler_Get(t *testing.T) {
	mock := &mockProfileService{getResult: &dto.MemberInfo{QQID: 10001, RealName: "张三", Level: "普通成员", LevelCode: "MEMBER"}}
	h := NewProfileHandler(mock)
	r := gin.New()
	r.GET("/api/profile", withUser(testUser), h.Get)

	w := serve(r, http.MethodGet, "/api/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, key := range []string{`"realName":"张三"`, `"levelCode":"MEMBER"`, `"createAt"`} {
		if !strings.Contains(w.Body.String(), key) {
			t.Errorf("body 缺少 %s: %s", key, w.Body.String())
		}
	}
}

func TestProfileHandler_Update(t *testing.T) {
	mock := &mockProfileService{}
	h := NewProfileHandler(mock)
	r := gin.New()
	r.PUT("/api/profile/update", withUser(testUser), h.Update)

	w := serve(r, http.MethodPut, "/api/profile/update", strings.NewReader(`{"nickname":"renamed"}`))
	if w.Code != http.StatusOK || parseResponse(w).Message != "修改成功." {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if mock.lastUpdate.Nickname == nil || *mock.lastUpdate.Nickname != "renamed" || mock.lastUpdate.RealName != nil {
		t.Errorf("未提供的字段应为 nil: %+v", mock.lastUpdate)
	}

	mock.updateErr = service.ErrInvalidNickname
	w = serve(r, http.MethodPut, "/api/profile/update", strings.NewReader(`{"nickname":""}`))
	if w.Code != http.StatusBadRequest || parseResponse(w).Code != "INVALID_NICKNAME" {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"成功", nil, http.StatusOK, response.CodeOK},
		{"旧密码错误", service.ErrInvalidOldPassword, http.StatusForbidden, "INVALID_OLD_PASSWORD"},
		{"新旧密码相同", service.ErrSameAsOldPassword, http.StatusBadRequest, "SAME_AS_OLD_PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProfileHandler(&mockProfileService{changeErr: tt.err})
			r := gin.New()
			r.PUT("/api/profile/change_password", withUser(testUser), h.ChangePassword)
			w := serve(r, http.MethodPut, "/api/profile/change_password",
				jsonBody(dto.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"}))

			if w.Code != tt.wantCode || parseResponse(w).Code != tt.wantBody {
				t.Errorf("expected %d %s, got %d %s", tt.wantCode, tt.wantBody, w.Code, w.Body.String())
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// MemberHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMemberHandler_Search(t *testing.T) {
	mock := &mockMemberService{searchResult: &dto.MemberListResponse{
		Members: []dto.MemberInfo{{QQID: 2, RealName: "***"}},
		Total:   1,
	}}
	h := NewMemberHandler(mock)
	r := gin.New()
	r.POST("/api/member/search", withUser(testUser), h.Search)

	w := serve(r, http.MethodPost, "/api/member/search", strings.NewReader(`{"globalQuery":"abc","pageSize":10,"levels":["ADMIN"]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"total":1`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if mock.lastSearch.GetPageSize() != 10 || *mock.lastSearch.GlobalQuery != "abc" || mock.lastSearch.Levels[0] != "ADMIN" {
		t.Errorf("请求未正确绑定: %+v", mock.lastSearch)
	}
}

func TestMemberHandler_Search_EmptyBodyUsesDefaults(t *testing.T) {
	mock := &mockMemberService{searchResult: &dto.MemberListResponse{Members: []dto.MemberInfo{}}}
	h := NewMemberHandler(mock)
	r := gin.New()
	r.POST("/api/member/search", withUser(testUser), h.Search)

	w := serve(r, http.MethodPost, "/api/member/search", http.NoBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	if mock.lastSearch.GetPageIndex() != 1 || mock.lastSearch.GetPageSize() != 5 {
		t.Errorf("默认分页错误: %+v", mock.lastSearch)
	}
}

func TestMemberHandler_Search_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"pageSize 超限", `{"pageSize":101}`, nil, http.StatusBadRequest},
		{"pageIndex 为负", `{"pageIndex":-1}`, nil, http.StatusBadRequest},
		{"服务失败", `{}`, apperrors.ErrServer, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMemberHandler(&mockMemberService{searchErr: tt.err})
			r := gin.New()
			r.POST("/api/member/search", withUser(testUser), h.Search)
			w := serve(r, http.MethodPost, "/api/member/search", strings.NewReader(tt.body))
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestMemberHandler_Export(t *testing.T) {
	mock := &mockMemberService{exportBuf: bytes.NewBufferString("xlsx"), exportName: "成员列表_1.xlsx"}
	h := NewMemberHandler(mock)
	r := gin.New()
	r.POST("/api/member/export", withUser(testUser), h.Export)

	w := serve(r, http.MethodPost, "/api/member/export", strings.NewReader(`{}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != xlsxContentType {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") || w.Body.String() != "xlsx" {
		t.Errorf("下载响应错误: %v %s", w.Header(), w.Body.String())
	}

	mock.exportErr = service.ErrPermissionDenied
	w = serve(r, http.MethodPost, "/api/member/export", strings.NewReader(`{}`))
	if w.Code != http.StatusForbidden || parseResponse(w).Code != "PERMISSION_DENIED" {
		t.Errorf("expected 403 PERMISSION_DENIED, got %d %s", w.Code, w.Body.String())
	}
}

func TestMemberHandler_Info(t *testing.T) {
	mock := &mockMemberService{infoResult: &dto.SearchInfoResponse{
		Levels: []dto.UserLevelInfo{{Level: "管理员", Code: "ADMIN"}},
	}}
	h := NewMemberHandler(mock)
	r := gin.New()
	r.GET("/api/member/info", withUser(testUser), h.Info)

	w := serve(r, http.MethodGet, "/api/member/info", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"code":"ADMIN"`) {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}
