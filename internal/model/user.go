package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SkillScoreMap 职业要求的技能分值（0-100），以 JSON 列存储
type SkillScoreMap map[string]int

func (m SkillScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *SkillScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = SkillScoreMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type %T for SkillScoreMap", value)
}

// swagger:model User
// User 档案由外部登录服务创建的 JWT 身份驱动，本服务只维护生涯相关字段
type User struct {
	BaseModel
	Username           string        `gorm:"size:100;not null" json:"username"`
	Email              string        `gorm:"size:100;unique;not null" json:"email"`
	ALStream           string        `gorm:"size:100" json:"AL_stream"`
	Specialization     string        `gorm:"size:100" json:"specialization"`
	Career             string        `gorm:"size:255" json:"career"`
	DecisionStyle      string        `gorm:"size:50" json:"decisionStyle"`
	RequiredSkills     SkillScoreMap `gorm:"type:json" json:"requiredSkills"`
	SkillJustification string        `gorm:"type:text" json:"skillJustification"`
}

func (User) TableName() string {
	return "users"
}
