package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/permission"
	"github.com/HMODeveloper/hmo-mms/internal/repository"
	apperrors "github.com/HMODeveloper/hmo-mms/pkg/errors"
)

// MemberService 成员目录业务接口
type MemberService interface {
	// Info 搜索筛选项目录：学院、部门、级别
	Info(ctx context.Context) (*dto.SearchInfoResponse, error)
	// Search 按条件分页搜索成员，对无权查看的记录做字段脱敏
	Search(ctx context.Context, requester *model.User, req *dto.SearchRequest) (*dto.MemberListResponse, error)
	// Export 以 Excel 导出与 Search 相同条件的当前页，仅管理员可用
	Export(ctx context.Context, requester *model.User, req *dto.SearchRequest) (*bytes.Buffer, string, error)
}

type memberService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(repo *repository.Repository, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, logger: logger}
}

func (s *memberService) Info(ctx context.Context) (*dto.SearchInfoResponse, error) {
	depts, err := s.repo.Department.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询部门列表失败", zap.Error(err))
		return nil, apperrors.ErrServer.Wrap(err)
	}
	return &dto.SearchInfoResponse{
		Colleges:    collegeCatalogue(),
		Departments: toDepartmentInfos(depts),
		Levels:      levelCatalogue(),
	}, nil
}

// buildFilters 将请求转为仓储层条件；全局搜索是否覆盖敏感字段取决于请求者级别
func buildFilters(requester *model.User, req *dto.SearchRequest) *repository.MemberSearchFilters {
	f := &repository.MemberSearchFilters{
		IncludeSensitive: permission.HasPermission(requester, permission.SensitiveViewers...),
		CreatedFrom:      req.CreateAtStart,
		CreatedTo:        req.CreateAtEnd,
		Colleges:         req.Colleges,
		DepartmentCodes:  req.Departments,
		Levels:           req.Levels,
	}
	if req.GlobalQuery != nil {
		f.GlobalQuery = *req.GlobalQuery
	}
	return f
}

func (s *memberService) search(ctx context.Context, requester *model.User, req *dto.SearchRequest) ([]model.User, error) {
	users, err := s.repo.User.Search(ctx, buildFilters(requester, req), req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("成员搜索失败", zap.Error(err))
		return nil, apperrors.ErrServer.Wrap(err)
	}
	return users, nil
}

func (s *memberService) Search(ctx context.Context, requester *model.User, req *dto.SearchRequest) (*dto.MemberListResponse, error) {
	users, err := s.search(ctx, requester, req)
	if err != nil {
		return nil, err
	}

	members := make([]dto.MemberInfo, 0, len(users))
	for i := range users {
		u := &users[i]
		members = append(members, toMemberInfo(u, !permission.CanViewSensitive(requester, u)))
	}

	// total 为本页记录数
	return &dto.MemberListResponse{Members: members, Total: len(members)}, nil
}

// ═══════════════════════════════════════════════════════════
// Export — 导出成员为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单个 Sheet "成员列表"，首行为表头，每名成员一行

var exportHeaders = []string{
	"QQ 号", "MC 名称", "昵称", "真实姓名", "学号", "学院", "专业", "年级", "班级", "部门", "级别", "入库时间",
}

func (s *memberService) Export(ctx context.Context, requester *model.User, req *dto.SearchRequest) (*bytes.Buffer, string, error) {
	if !permission.HasPermission(requester, model.LevelAdmin) {
		return nil, "", ErrPermissionDenied
	}

	users, err := s.search(ctx, requester, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成员列表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellName, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)
	f.SetColWidth(sheetName, "A", "L", 16)

	for r, u := range users {
		info := toMemberInfo(&u, false)
		deptNames := make([]string, 0, len(info.Departments))
		for _, d := range info.Departments {
			deptNames = append(deptNames, d.Name)
		}
		values := []interface{}{
			info.QQID,
			derefString(info.MCName),
			info.Nickname,
			info.RealName,
			info.StudentID,
			info.CollegeName,
			derefString(info.Major),
			derefInt(info.Grade),
			derefInt(info.ClassIndex),
			strings.Join(deptNames, "、"),
			info.Level,
			info.CreateAt.Format(time.DateTime),
		}
		for c, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cellName, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", apperrors.ErrServer.Wrap(err)
	}

	filename := fmt.Sprintf("成员列表_%d.xlsx", req.GetPageIndex())
	return buf, filename, nil
}

// ── 辅助函数 ──

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// derefInt 空值导出为空单元格
func derefInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
