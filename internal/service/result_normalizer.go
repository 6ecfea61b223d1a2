package service

import (
	"encoding/json"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
)

// 各评估服务回传的完成载荷字段名互不一致，这里按候选名统一提取，
// 不按技能分派——规则对所有评估一视同仁。
var (
	traitContainerFields = []string{"traits", "category_scores", "subskill_breakdown", "subskill_summary"}
	overallScoreFields   = []string{"overall_score", "overall_percentage"}
	levelFields          = []string{"level", "skill_level", "leadership_level"}

	// 提取特质时跳过的保留键（载荷把特质平铺在顶层时使用）
	reservedFields = map[string]bool{
		"overall_score":      true,
		"overall_percentage": true,
		"level":              true,
		"skill_level":        true,
		"leadership_level":   true,
		"feedback":           true,
		"details":            true,
		"status":             true,
		"session_id":         true,
		"message":            true,
	}
)

// levelFeedback 上游缺省反馈时按等级查表，最后一条为兜底
var levelFeedback = map[string]string{
	"Novice":       "You're just getting started. Focus on the fundamentals and practice a little every day.",
	"Beginner":     "A solid start. Keep practicing the basics to build a stronger foundation.",
	"Intermediate": "Continue improving in weaker sub-skills to reach the next level.",
	"Advanced":     "Strong performance. Challenge yourself with harder, real-world problems to keep growing.",
	"Expert":       "Outstanding result. Consider mentoring others and tackling open-ended challenges.",
}

const defaultFeedback = "Your assessment is complete. Review your trait scores to see where to focus next."

// NormalizeResult 把任意评估服务的成功载荷规范化为 SkillResult。
// 纯转换，任何缺失或畸形字段都退化为默认值而不报错——
// 评估此刻已对用户标记为完成，这里失败只会更糟。
func NormalizeResult(raw map[string]interface{}) model.SkillResult {
	result := model.SkillResult{
		Traits: model.TraitMap{},
		Level:  model.LevelUnknown,
	}
	if raw == nil {
		result.Feedback = fallbackFeedback(result.Level)
		return result
	}

	if container, ok := findTraitContainer(raw); ok {
		for key, value := range container {
			result.Traits[key] = traitScore(value)
		}
	} else {
		// 特质平铺在顶层：仅收集数值或 {score: n} 形状的条目
		for key, value := range raw {
			if reservedFields[key] {
				continue
			}
			if n, ok := numeric(value); ok {
				result.Traits[key] = n
				continue
			}
			if wrapped, ok := value.(map[string]interface{}); ok {
				if n, ok := numeric(wrapped["score"]); ok {
					result.Traits[key] = n
				}
			}
		}
	}

	for _, field := range overallScoreFields {
		if n, ok := numeric(raw[field]); ok {
			result.OverallScore = n
			break
		}
	}

	for _, field := range levelFields {
		if s, ok := raw[field].(string); ok && s != "" {
			result.Level = s
			break
		}
	}

	if s, ok := raw["feedback"].(string); ok && s != "" {
		result.Feedback = s
	} else {
		result.Feedback = fallbackFeedback(result.Level)
	}

	if details, ok := raw["details"]; ok && details != nil {
		if data, err := json.Marshal(details); err == nil {
			result.Details = data
		}
	}

	return result
}

func findTraitContainer(raw map[string]interface{}) (map[string]interface{}, bool) {
	for _, field := range traitContainerFields {
		if container, ok := raw[field].(map[string]interface{}); ok {
			return container, true
		}
	}
	return nil, false
}

// traitScore 逐项提取规则：{score: n} 取 n，数值原样保留，其余记 0
func traitScore(value interface{}) float64 {
	if n, ok := numeric(value); ok {
		return n
	}
	if wrapped, ok := value.(map[string]interface{}); ok {
		if n, ok := numeric(wrapped["score"]); ok {
			return n
		}
	}
	return 0
}

func numeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	}
	return 0, false
}

func fallbackFeedback(level string) string {
	if msg, ok := levelFeedback[level]; ok {
		return msg
	}
	return defaultFeedback
}
