// Package permission 判定用户级别是否满足接口或字段所需权限。
//
// 规则：
//   - 用户为空时拒绝；
//   - 超级管理员无条件通过，包括要求为空；
//   - 其余级别在要求为空时拒绝；
//   - 其余级别只做集合成员判断，MEMBER/MINISTER/ADMIN 之间不存在继承。
package permission

import "github.com/HMODeveloper/hmo-mms/internal/model"

// SensitiveViewers 可查看他人敏感信息的级别
var SensitiveViewers = []model.UserLevel{model.LevelAdmin}

// HasPermission 判断 user 的级别是否属于 required 之一
func HasPermission(user *model.User, required ...model.UserLevel) bool {
	if user == nil {
		return false
	}

	if user.Level == model.LevelSuperAdmin {
		return true
	}

	for _, level := range required {
		if user.Level == level {
			return true
		}
	}
	return false
}

// CanViewSensitive 判断 viewer 能否查看 owner 的敏感字段
// 本人记录始终可见
func CanViewSensitive(viewer, owner *model.User) bool {
	if viewer == nil || owner == nil {
		return false
	}
	if viewer.ID != 0 && viewer.ID == owner.ID {
		return true
	}
	return HasPermission(viewer, SensitiveViewers...)
}
