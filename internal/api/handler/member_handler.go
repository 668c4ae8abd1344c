package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MemberHandler 成员模块 HTTP 处理器
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler 创建 MemberHandler
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Info 搜索筛选项目录
// GET /api/member/info
func (h *MemberHandler) Info(c *gin.Context) {
	result, err := h.memberSvc.Info(c.Request.Context())
	if err != nil {
		response.FailWith(c, err)
		return
	}
	response.OK(c, result)
}

// Search 成员搜索
// POST /api/member/search
func (h *MemberHandler) Search(c *gin.Context) {
	user, ok := MustGetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.SearchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.memberSvc.Search(c.Request.Context(), user, &req)
	if err != nil {
		response.FailWith(c, err)
		return
	}
	response.OK(c, result)
}

// Export 按搜索条件导出成员 Excel
// POST /api/member/export
func (h *MemberHandler) Export(c *gin.Context) {
	user, ok := MustGetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.SearchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.memberSvc.Export(c.Request.Context(), user, &req)
	if err != nil {
		response.FailWith(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
