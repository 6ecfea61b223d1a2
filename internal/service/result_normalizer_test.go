package service

import (
	"encoding/json"
	"testing"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeResult_AnalyticalPayload(t *testing.T) {
	raw := map[string]interface{}{
		"category_scores": map[string]interface{}{
			"logical_reasoning": 78.5,
			"numerical":         62.0,
		},
		"overall_score": 70.25,
		"level":         "Advanced",
		"feedback":      "Strong analytical performance.",
	}

	result := NormalizeResult(raw)

	assert.Equal(t, model.TraitMap{"logical_reasoning": 78.5, "numerical": 62.0}, result.Traits)
	assert.Equal(t, 70.25, result.OverallScore)
	assert.Equal(t, "Advanced", result.Level)
	assert.Equal(t, "Strong analytical performance.", result.Feedback)
}

func TestNormalizeResult_WrappedScoresAndAlternateFieldNames(t *testing.T) {
	raw := map[string]interface{}{
		"subskill_breakdown": map[string]interface{}{
			"Logic":  map[string]interface{}{"score": 72.0, "attempted": 8.0},
			"Memory": 55.0,
		},
		"overall_percentage": 63.0,
		"skill_level":        "Intermediate",
	}

	result := NormalizeResult(raw)

	assert.Equal(t, model.TraitMap{"Logic": 72, "Memory": 55}, result.Traits)
	assert.Equal(t, 63.0, result.OverallScore)
	assert.Equal(t, "Intermediate", result.Level)
	assert.Equal(t, "Continue improving in weaker sub-skills to reach the next level.", result.Feedback)
}

func TestNormalizeResult_FlatLeadershipPayload(t *testing.T) {
	// 领导力结果把特质平铺在顶层，和分数字段混在一起
	raw := map[string]interface{}{
		"decision_making":     7.5,
		"empathy":             6.0,
		"conflict_management": 8.0,
		"strategic_thinking":  5.5,
		"overall_score":       6.75,
		"leadership_level":    "Advanced",
		"session_id":          "abc-123",
		"status":              "completed",
	}

	result := NormalizeResult(raw)

	assert.Equal(t, model.TraitMap{
		"decision_making":     7.5,
		"empathy":             6.0,
		"conflict_management": 8.0,
		"strategic_thinking":  5.5,
	}, result.Traits)
	assert.Equal(t, 6.75, result.OverallScore)
	assert.Equal(t, "Advanced", result.Level)
	assert.NotContains(t, result.Traits, "session_id")
	assert.NotContains(t, result.Traits, "overall_score")
}

func TestNormalizeResult_NonNumericTraitCoercesToZero(t *testing.T) {
	raw := map[string]interface{}{
		"traits": map[string]interface{}{
			"valid":   80.0,
			"garbage": "not-a-number",
			"empty":   map[string]interface{}{"note": "no score field"},
		},
	}

	result := NormalizeResult(raw)

	assert.Equal(t, 80.0, result.Traits["valid"])
	assert.Equal(t, 0.0, result.Traits["garbage"])
	assert.Equal(t, 0.0, result.Traits["empty"])
}

func TestNormalizeResult_Defaults(t *testing.T) {
	result := NormalizeResult(map[string]interface{}{})

	assert.Empty(t, result.Traits)
	assert.Equal(t, 0.0, result.OverallScore)
	assert.Equal(t, model.LevelUnknown, result.Level)
	assert.Equal(t, defaultFeedback, result.Feedback)
	assert.Nil(t, result.Details)
}

func TestNormalizeResult_NilInput(t *testing.T) {
	result := NormalizeResult(nil)

	assert.Equal(t, model.LevelUnknown, result.Level)
	assert.Equal(t, defaultFeedback, result.Feedback)
	assert.Empty(t, result.Traits)
}

func TestNormalizeResult_DetailsPassthrough(t *testing.T) {
	raw := map[string]interface{}{
		"traits": map[string]interface{}{"Artistic": 8.0},
		"details": map[string]interface{}{
			"cvAnalysis": map[string]interface{}{"prediction": "artistic", "confidence": 0.92},
		},
	}

	result := NormalizeResult(raw)
	require.NotNil(t, result.Details)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Details, &details))
	cv, ok := details["cvAnalysis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "artistic", cv["prediction"])
}

func TestNormalizeResult_LevelFallbackFeedbackPerTier(t *testing.T) {
	tests := []struct {
		level string
	}{
		{"Novice"}, {"Beginner"}, {"Intermediate"}, {"Advanced"}, {"Expert"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := NormalizeResult(map[string]interface{}{"level": tt.level})
			assert.Equal(t, tt.level, result.Level)
			assert.Equal(t, levelFeedback[tt.level], result.Feedback)
		})
	}
}

func TestNormalizeResult_UpstreamFeedbackWins(t *testing.T) {
	result := NormalizeResult(map[string]interface{}{
		"level":    "Beginner",
		"feedback": "custom upstream feedback",
	})
	assert.Equal(t, "custom upstream feedback", result.Feedback)
}
