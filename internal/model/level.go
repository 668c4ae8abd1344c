package model

// UserLevel 用户权限级别
// 以机器码存储，Name() 返回展示名称。级别之间只做集合比较，不存在继承关系。
type UserLevel string

const (
	LevelSuperAdmin UserLevel = "SUPERADMIN"
	LevelAdmin      UserLevel = "ADMIN"
	LevelMinister   UserLevel = "MINISTER"
	LevelMember     UserLevel = "MEMBER"
)

// Levels 按权限意图从高到低排列
var Levels = []UserLevel{LevelSuperAdmin, LevelAdmin, LevelMinister, LevelMember}

var levelNames = map[UserLevel]string{
	LevelSuperAdmin: "超级管理员",
	LevelAdmin:      "管理员",
	LevelMinister:   "部长",
	LevelMember:     "普通成员",
}

// Code 机器码
func (l UserLevel) Code() string { return string(l) }

// Name 展示名称；未知级别返回机器码本身
func (l UserLevel) Name() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return string(l)
}

// Valid 是否为已定义的级别
func (l UserLevel) Valid() bool {
	_, ok := levelNames[l]
	return ok
}
