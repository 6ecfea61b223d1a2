package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 阶段的相关性标记，仅作展示元数据，后端不依据其分支
const (
	RelevanceRequired  = "required"
	RelevanceReference = "reference"
	RelevanceCompleted = "completed"
)

// swagger:model Question
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// swagger:model KnowledgeDomain
type KnowledgeDomain struct {
	Topic     string   `json:"topic"`
	Resources []string `json:"resources"`
}

// swagger:model KnowledgeCheck
type KnowledgeCheck struct {
	Instructions string     `json:"instructions"`
	Questions    []Question `json:"questions"`
}

// StageProgress 每阶段进度，仅通过进度更新接口修改
type StageProgress struct {
	Viewed   bool `json:"viewed"`
	QuizDone bool `json:"quiz_done"`
}

// swagger:model Stage
type Stage struct {
	StageName                string            `json:"stage_name"`
	RelevanceStatus          string            `json:"relevance_status"`
	Description              string            `json:"description"`
	KnowledgeDomains         []KnowledgeDomain `json:"knowledge_domains"`
	ExpectedLearningOutcomes []string          `json:"expected_learning_outcomes"`
	KnowledgeCheck           *KnowledgeCheck   `json:"knowledge_check,omitempty"`
	Progress                 StageProgress     `json:"progress"`
}

// StageList 以 JSON 列整体存储的阶段序列
type StageList []Stage

func (s StageList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *StageList) Scan(value interface{}) error {
	if value == nil {
		*s = StageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return fmt.Errorf("unsupported type %T for StageList", value)
}

// AIMetadata 生成溯源信息
type AIMetadata struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

func (m AIMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *AIMetadata) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type %T for AIMetadata", value)
}

// swagger:model Roadmap
// Roadmap 每 (user, skill) 唯一，重新生成时整体替换而非合并
type Roadmap struct {
	UUIDBase
	UserID        uint       `gorm:"uniqueIndex:idx_roadmap_user_skill;not null" json:"user_id"`
	Career        string     `gorm:"size:255;not null" json:"career"`
	Skill         SkillKey   `gorm:"uniqueIndex:idx_roadmap_user_skill;size:50;not null" json:"skill"`
	CurrentLevel  string     `gorm:"size:20;not null" json:"current_level"`
	RequiredLevel string     `gorm:"size:20;not null" json:"required_level"`
	Stages        StageList  `gorm:"type:json" json:"stages"`
	GeneratedBy   string     `gorm:"size:20;default:'AI'" json:"generated_by"`
	GeneratedAt   time.Time  `json:"generated_at"`
	AIMeta        AIMetadata `gorm:"type:json;column:ai_metadata" json:"ai_metadata"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}
