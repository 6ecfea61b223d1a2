package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LevelUnknown 上游未给出等级时的哨兵值
const LevelUnknown = "Unknown"

// TraitMap 单项技能的特质得分，键和量纲由各评估服务自行定义，不做全局归一化
type TraitMap map[string]float64

func (m TraitMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *TraitMap) Scan(value interface{}) error {
	if value == nil {
		*m = TraitMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type %T for TraitMap", value)
}

// swagger:model SkillResult
// SkillResult 一次已完成评估的规范化结果，写入后不再修改
type SkillResult struct {
	Traits       TraitMap        `json:"traits"`
	OverallScore float64         `json:"overall_score"`
	Level        string          `json:"level"`
	Feedback     string          `json:"feedback"`
	Details      json.RawMessage `json:"details,omitempty"`
}

// SkillResultRecord 每 (user, skill) 仅一行的当前结果，由最近一次完成覆盖
type SkillResultRecord struct {
	BaseModel
	UserID       uint            `gorm:"uniqueIndex:idx_result_user_skill;not null" json:"userId"`
	Skill        SkillKey        `gorm:"uniqueIndex:idx_result_user_skill;size:50;not null" json:"skill"`
	Traits       TraitMap        `gorm:"type:json" json:"traits"`
	OverallScore float64         `json:"overall_score"`
	Level        string          `gorm:"size:50" json:"level"`
	Feedback     string          `gorm:"type:text" json:"feedback"`
	Details      json.RawMessage `gorm:"type:json" json:"details,omitempty"`
}

func (SkillResultRecord) TableName() string {
	return "skill_results"
}

func (r *SkillResultRecord) Result() SkillResult {
	return SkillResult{
		Traits:       r.Traits,
		OverallScore: r.OverallScore,
		Level:        r.Level,
		Feedback:     r.Feedback,
		Details:      r.Details,
	}
}

// SkillResultAttempt 尝试历史，按 (user, skill) 只追加、从不删除或改序
type SkillResultAttempt struct {
	BaseModel
	UserID        uint            `gorm:"index:idx_attempt_user_skill;not null" json:"userId"`
	Skill         SkillKey        `gorm:"index:idx_attempt_user_skill;size:50;not null" json:"skill"`
	AttemptNumber int             `gorm:"not null" json:"attemptNumber"`
	Traits        TraitMap        `gorm:"type:json" json:"traits"`
	OverallScore  float64         `json:"overall_score"`
	Level         string          `gorm:"size:50" json:"level"`
	Feedback      string          `gorm:"type:text" json:"feedback"`
	Details       json.RawMessage `gorm:"type:json" json:"details,omitempty"`
	CompletedAt   time.Time       `json:"completedAt"`
}

func (SkillResultAttempt) TableName() string {
	return "skill_result_attempts"
}

func (a *SkillResultAttempt) Result() SkillResult {
	return SkillResult{
		Traits:       a.Traits,
		OverallScore: a.OverallScore,
		Level:        a.Level,
		Feedback:     a.Feedback,
		Details:      a.Details,
	}
}
