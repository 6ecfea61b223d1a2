package model

// SkillKey 技能评估类目，固定可扩展集合
type SkillKey string

const (
	SkillAnalytical     SkillKey = "analytical"
	SkillLeadership     SkillKey = "leadership"
	SkillProblemSolving SkillKey = "problemSolving"
	SkillArtistic       SkillKey = "artistic"
)

// AllSkills 当前支持的全部技能键，新增技能在此注册即可，无需改表结构
var AllSkills = []SkillKey{
	SkillAnalytical,
	SkillLeadership,
	SkillProblemSolving,
	SkillArtistic,
}

func (s SkillKey) Valid() bool {
	for _, k := range AllSkills {
		if s == k {
			return true
		}
	}
	return false
}

// 路线图等级枚举
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

func ValidRoadmapLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
