package service

import (
	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/model"
)

// redactedText 脱敏后的字符串占位
const redactedText = "***"

// toMemberInfo 构造成员信息；redact 为 true 时隐藏敏感字段（学院名称除外）
func toMemberInfo(u *model.User, redact bool) dto.MemberInfo {
	info := dto.MemberInfo{
		QQID:        u.QQID,
		MCName:      u.MCName,
		Nickname:    u.Nickname,
		CreateAt:    u.CreatedAt.UTC(),
		RealName:    u.RealName,
		StudentID:   u.StudentID,
		CollegeName: u.CollegeName,
		Major:       u.Major,
		Grade:       u.Grade,
		ClassIndex:  u.ClassIndex,
		Departments: toDepartmentInfos(u.Departments),
		Level:       u.Level.Name(),
		LevelCode:   u.Level.Code(),
	}
	if redact {
		info.RealName = redactedText
		info.StudentID = redactedText
		info.Major = nil
		info.Grade = nil
		info.ClassIndex = nil
	}
	return info
}

func toDepartmentInfos(depts []model.Department) []dto.DepartmentInfo {
	result := make([]dto.DepartmentInfo, 0, len(depts))
	for _, d := range depts {
		result = append(result, dto.DepartmentInfo{Name: d.Name, Code: d.Code})
	}
	return result
}

// collegeCatalogue 学院目录，不含 OTHERS
func collegeCatalogue() []dto.CollegeInfo {
	result := make([]dto.CollegeInfo, 0, len(model.Colleges))
	for _, c := range model.Colleges {
		if c.Code == model.CollegeOthers {
			continue
		}
		result = append(result, dto.CollegeInfo{Name: c.Name, Code: c.Code.Code()})
	}
	return result
}

func levelCatalogue() []dto.UserLevelInfo {
	result := make([]dto.UserLevelInfo, 0, len(model.Levels))
	for _, l := range model.Levels {
		result = append(result, dto.UserLevelInfo{Level: l.Name(), Code: l.Code()})
	}
	return result
}
