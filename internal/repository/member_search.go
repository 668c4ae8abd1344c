package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// MemberSearchFilters 成员搜索条件，零值字段表示不限制
type MemberSearchFilters struct {
	GlobalQuery string
	// IncludeSensitive 为 true 时全局搜索额外匹配真实姓名、学号、学院名称与专业
	IncludeSensitive bool
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
	Colleges         []string
	DepartmentCodes  []string
	Levels           []string
}

// 全局搜索匹配的基本字段与敏感字段
// SQLite 的 LOWER 只折叠 ASCII 字母，非 ASCII 大小写字母（如 Ä）在 SQLite 上按大小写敏感匹配，PostgreSQL 不受影响
var (
	basicSearchColumns     = []string{"LOWER(nickname)", "CAST(qq_id AS TEXT)", "LOWER(mc_name)"}
	sensitiveSearchColumns = []string{"LOWER(real_name)", "LOWER(student_id)", "LOWER(college_name)", "LOWER(major)"}
)

// likeEscaper 转义 LIKE 通配符，保证按字面子串匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyMemberFilters 组合搜索条件：各条件之间 AND，全局搜索内部各字段 OR
func applyMemberFilters(db *gorm.DB, f *MemberSearchFilters) *gorm.DB {
	if f == nil {
		return db
	}

	if f.GlobalQuery != "" {
		columns := basicSearchColumns
		if f.IncludeSensitive {
			columns = append(append([]string{}, basicSearchColumns...), sensitiveSearchColumns...)
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.GlobalQuery)) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	// 统一转为 UTC：SQLite 以文本存储时间并按字符串比较
	if f.CreatedFrom != nil {
		db = db.Where("users.created_at >= ?", f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		db = db.Where("users.created_at <= ?", f.CreatedTo.UTC())
	}

	if len(f.Colleges) > 0 {
		db = db.Where("users.college_enum IN ?", f.Colleges)
	}

	if len(f.DepartmentCodes) > 0 {
		db = db.Where(
			"users.id IN (SELECT ud.user_id FROM user_departments ud JOIN departments d ON d.id = ud.department_id WHERE d.code IN ?)",
			f.DepartmentCodes,
		)
	}

	if len(f.Levels) > 0 {
		db = db.Where("users.level IN ?", f.Levels)
	}

	return db
}
