package model

// College 学院（所属单位）
// 以机器码存储，Name() 返回展示名称。
type College string

const (
	CollegeNotHNU College = "NOT_HNU"
	CollegeOthers College = "OTHERS"
)

// CollegeEntry 学院目录项
type CollegeEntry struct {
	Code College
	Name string
}

// Colleges 固定的学院目录，OTHERS 放在最后
var Colleges = []CollegeEntry{
	{"NIoOE", "国家卓越工程师学院"},
	{"YLA", "岳麓书院(历史与哲学学院)"},
	{"CET", "经济与贸易学院"},
	{"CFS", "金融与统计学院"},
	{"SOL", "法学院"},
	{"SOM", "马克思主义学院"},
	{"CFL", "外国语学院"},
	{"SJC", "新闻与传播学院"},
	{"SM", "数学学院"},
	{"SPM", "物理与微电子科学学院"},
	{"CCCE", "化学化工学院"},
	{"SB", "生物学院"},
	{"CMVE", "机械与运载工程学院"},
	{"SMSE", "材料科学与工程学院"},
	{"CEIE", "电气与信息工程学院"},
	{"CCSEE", "信息科学与工程学院"},
	{"SAP", "建筑与规划学院"},
	{"CCE", "土木工程学院"},
	{"CESE", "环境科学与工程学院"},
	{"IBS", "工商管理学院"},
	{"SPA", "公共管理学院"},
	{"SD", "设计艺术学院"},
	{"SAIR", "人工智能与机器人学院"},
	{"SSIC", "半导体学院(集成电路学院)"},
	{"SCSS", "网络空间安全学院"},
	{"LCA", "隆平农学院"},
	{"SFT", "未来技术学院"},
	{CollegeNotHNU, "非本校"},
	{CollegeOthers, "其他"},
}

var collegeNames = func() map[College]string {
	m := make(map[College]string, len(Colleges))
	for _, c := range Colleges {
		m[c.Code] = c.Name
	}
	return m
}()

// Code 机器码
func (c College) Code() string { return string(c) }

// Name 展示名称；未知学院返回机器码本身
func (c College) Name() string {
	if name, ok := collegeNames[c]; ok {
		return name
	}
	return string(c)
}

// ResolveCollege 将用户输入解析为学院机器码与需存储的展示名称
// 输入为目录中的机器码时存储其展示名称；否则归入 OTHERS 并原样保存输入
func ResolveCollege(input string) (College, string) {
	c := College(input)
	if name, ok := collegeNames[c]; ok && c != CollegeOthers {
		return c, name
	}
	return CollegeOthers, input
}
