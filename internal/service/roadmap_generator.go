package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/config"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
	"go.uber.org/zap"
)

type RoadmapGenerator struct {
	config config.AIConfig
	client *http.Client
}

func NewRoadmapGenerator(cfg config.AIConfig) *RoadmapGenerator {
	return &RoadmapGenerator{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeneratedRoadmap 生成器的候选产物，结构校验在 roadmap_validator 中单独完成，
// 便于校验规则独立于提示词/解析逻辑演进
type GeneratedRoadmap struct {
	Skill       string           `json:"skill"`
	Career      string           `json:"career"`
	Stages      []model.Stage    `json:"stages"`
	GeneratedBy string           `json:"generated_by"`
	GeneratedAt time.Time        `json:"generated_at"`
	AIMeta      model.AIMetadata `json:"ai_metadata"`
}

const roadmapPromptTemplate = `You are an AI curriculum designer for post-A/L students.

GOAL:
Generate a two-stage learning roadmap to improve the user's "%s" skills
for their selected career: "%s". The user is currently at %s level and
needs to reach %s level.

=========================
EDUCATIONAL FRAMEWORK (FOR YOUR INTERNAL REFERENCE)
=========================
Base your reasoning on the following five educational theories:
1. Bloom's Taxonomy - Learning outcomes should progress from Understanding -> Application -> Analysis -> Creation.
2. Formative Assessment Theory - Each stage includes 10 MCQs for self-reflection (no scoring).
3. Cognitive Apprenticeship - Always show both stages so the learner can visualize the mastery journey.
4. Zone of Proximal Development (Vygotsky) - Slightly challenge the learner's current capacity.
5. Mastery Learning Model - Ensure staged, measurable progression.

=========================
OUTPUT FORMAT (JSON ONLY)
=========================
{
  "skill": "%s",
  "career": "%s",
  "stages": [
    {
      "stage_name": "Beginner -> Intermediate",
      "relevance_status": "required | reference | completed",
      "description": "Why this stage matters for this career and skill area.",
      "knowledge_domains": [
        {
          "topic": "Concept name",
          "resources": ["Free global resource 1", "Free global resource 2"]
        }
      ],
      "expected_learning_outcomes": [
        "Start each outcome with Bloom's verbs (explain, apply, analyze)"
      ],
      "knowledge_check": {
        "instructions": "Answer 10 reflective MCQs to test your understanding.",
        "questions": [
          {
            "question": "Example question text",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_answer": "Option A"
          }
        ]
      }
    },
    {
      "stage_name": "Intermediate -> Advanced",
      "relevance_status": "required | reference | completed",
      "description": "Advanced skill development focus.",
      "knowledge_domains": [],
      "expected_learning_outcomes": [],
      "knowledge_check": {}
    }
  ]
}

=========================
OUTPUT REQUIREMENTS
=========================
- Return valid JSON only, no text outside the JSON block.
- Always include both stages (even if one is reference only).
- Use globally accessible free resources (Coursera, Khan Academy, YouTube).
- MCQs must test understanding and application, not rote memory.

Now generate the roadmap.`

// Generate 生成候选路线图。上游调用失败返回 error；
// 响应不可解析或缺少 stages 时返回 (nil, nil)，调用方视为生成失败，不做重试。
func (g *RoadmapGenerator) Generate(ctx context.Context, career, skill, currentLevel, requiredLevel string) (*GeneratedRoadmap, error) {
	prompt := fmt.Sprintf(roadmapPromptTemplate,
		skill, career, currentLevel, requiredLevel, skill, career)

	reqBody := ChatCompletionRequest{
		Model:       g.config.Model,
		Messages:    []AIChatMessage{{Role: "user", Content: prompt}},
		Temperature: g.config.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("AI returned no choices")
	}

	raw := strings.TrimSpace(result.Choices[0].Message.Content)

	roadmap := g.parseRoadmap(raw)
	if roadmap == nil {
		return nil, nil
	}

	// 生成溯源元数据
	roadmap.GeneratedBy = "AI"
	roadmap.GeneratedAt = time.Now()
	roadmap.AIMeta = model.AIMetadata{
		Model:       g.config.Model,
		Temperature: g.config.Temperature,
	}

	return roadmap, nil
}

// parseRoadmap 截取首个 '{' 到末个 '}' 之间的子串尝试解析。
// 模型输出只是松散结构的不可信文本，任何解析失败都按整体失败处理，不做局部修复。
func (g *RoadmapGenerator) parseRoadmap(raw string) *GeneratedRoadmap {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		logger.Log.Warn("no JSON object found in AI response", zap.String("preview", preview(raw)))
		return nil
	}

	var roadmap GeneratedRoadmap
	if err := json.Unmarshal([]byte(raw[start:end+1]), &roadmap); err != nil {
		logger.Log.Warn("JSON parsing error in roadmap", zap.Error(err), zap.String("preview", preview(raw)))
		return nil
	}

	if roadmap.Stages == nil {
		logger.Log.Warn("invalid roadmap format: missing stages array")
		return nil
	}

	return &roadmap
}

func preview(raw string) string {
	if len(raw) > 400 {
		return raw[:400]
	}
	return raw
}
