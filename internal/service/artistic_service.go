package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
)

// ArtisticService 艺术能力测评：RIASEC 分数来自客户端，CV/作品集分类走外部
// 模型服务，最终得分在本地按固定公式合成
type ArtisticService struct {
	client     *ModelClient
	resultRepo *repository.ResultRepository
	baseURL    string
}

func NewArtisticService(client *ModelClient, resultRepo *repository.ResultRepository, baseURL string) *ArtisticService {
	return &ArtisticService{client: client, resultRepo: resultRepo, baseURL: baseURL}
}

type ClassifyCVRequest struct {
	Text             string             `json:"text" binding:"required"`
	AssessmentScores map[string]float64 `json:"assessmentScores"`
}

type SaveArtisticResultRequest struct {
	RiasecScores          map[string]float64     `json:"riasecScores"`
	RiasecAssessmentScore float64                `json:"riasecAssessmentScore" binding:"required"`
	TotalCorrect          int                    `json:"totalCorrect"`
	TotalQuestions        int                    `json:"totalQuestions"`
	CVText                string                 `json:"cvText"`
	CVPrediction          string                 `json:"cvPrediction" binding:"required"`
	CVConfidence          *float64               `json:"cvConfidence" binding:"required"`
	CVProbabilities       map[string]interface{} `json:"cvProbabilities"`
}

// FinalScore 最终得分的完整合成过程，返回给客户端供展示分解
type FinalScore struct {
	AssessmentScore      float64 `json:"assessmentScore"`
	AssessmentPercentage float64 `json:"assessmentPercentage"`
	CVPrediction         string  `json:"cvPrediction"`
	CVConfidence         float64 `json:"cvConfidence"`
	CVImpact             float64 `json:"cvImpact"`
	FinalScore           float64 `json:"finalScore"`
	Level                string  `json:"level"`
}

type ArtisticResultResponse struct {
	Result        model.SkillResult   `json:"result"`
	History       []model.SkillResult `json:"history"`
	TotalAttempts int                 `json:"totalAttempts"`
}

// ClassifyCV 把 CV/作品集文本转发给分类模型
func (s *ArtisticService) ClassifyCV(ctx context.Context, req ClassifyCVRequest) (map[string]interface{}, error) {
	return s.client.Post(ctx, s.baseURL+"/predict", map[string]interface{}{
		"text":              req.Text,
		"assessment_scores": req.AssessmentScores,
	})
}

// CalculateFinalScore 合成最终得分：RIASEC 0-10 换算为百分比，
// CV 判定为 artistic 时最多加 20 分，否则最多减 10 分，钳制到 0-100
func CalculateFinalScore(riasecScore float64, cvPrediction string, cvConfidence float64) FinalScore {
	assessmentPercentage := (riasecScore / 10) * 100

	var cvImpact float64
	if cvPrediction == "artistic" {
		cvImpact = cvConfidence * 20
	} else {
		cvImpact = -(cvConfidence * 10)
	}

	finalScore := math.Max(0, math.Min(100, assessmentPercentage+cvImpact))

	return FinalScore{
		AssessmentScore:      riasecScore,
		AssessmentPercentage: round1(assessmentPercentage),
		CVPrediction:         cvPrediction,
		CVConfidence:         math.Round(cvConfidence*100) / 100,
		CVImpact:             round1(cvImpact),
		FinalScore:           round1(finalScore),
		Level:                FinalLevel(finalScore),
	}
}

func FinalLevel(score float64) string {
	switch {
	case score >= 80:
		return "Expert"
	case score >= 60:
		return model.LevelAdvanced
	case score >= 40:
		return model.LevelIntermediate
	case score >= 20:
		return model.LevelBeginner
	default:
		return "Novice"
	}
}

// GenerateFeedback 按得分区间与 CV 影响拼接反馈文案
func GenerateFeedback(fs FinalScore) string {
	feedback := fmt.Sprintf("You've achieved a %s level in artistic skills with a score of %g/100. ", fs.Level, fs.FinalScore)

	switch {
	case fs.FinalScore >= 80:
		feedback += "Excellent! You demonstrate strong artistic abilities. "
	case fs.FinalScore >= 60:
		feedback += "Great job! You have solid artistic skills. "
	case fs.FinalScore >= 40:
		feedback += "Good progress! Continue developing your artistic skills. "
	default:
		feedback += "Keep practicing to improve your artistic abilities. "
	}

	if fs.CVPrediction == "artistic" && fs.CVImpact > 0 {
		feedback += fmt.Sprintf("Your CV/portfolio shows strong alignment with artistic roles, boosting your score by %g%%.", math.Abs(fs.CVImpact))
	} else if fs.CVPrediction != "artistic" && fs.CVImpact < 0 {
		feedback += "Your CV/portfolio could be enhanced to better reflect artistic skills."
	}

	return feedback
}

// SaveResult 合成最终得分并作为当前艺术技能结果落库（同时追加历史）
func (s *ArtisticService) SaveResult(userID uint, req SaveArtisticResultRequest) (*model.SkillResult, *FinalScore, error) {
	finalScore := CalculateFinalScore(req.RiasecAssessmentScore, req.CVPrediction, *req.CVConfidence)

	totalQuestions := req.TotalQuestions
	if totalQuestions == 0 {
		totalQuestions = 30
	}

	details := map[string]interface{}{
		"assessmentScore":      req.RiasecAssessmentScore,
		"assessmentPercentage": finalScore.AssessmentPercentage,
		"totalCorrect":         req.TotalCorrect,
		"totalQuestions":       totalQuestions,
		"cvAnalysis": map[string]interface{}{
			"prediction":    req.CVPrediction,
			"confidence":    *req.CVConfidence,
			"probabilities": req.CVProbabilities,
			"cvText":        req.CVText,
		},
		"cvImpact":     finalScore.CVImpact,
		"calculatedAt": time.Now().Format(time.RFC3339),
	}
	detailsJSON, _ := json.Marshal(details)

	traits := make(model.TraitMap, len(req.RiasecScores))
	for k, v := range req.RiasecScores {
		traits[k] = v
	}

	result := model.SkillResult{
		Traits:       traits,
		OverallScore: finalScore.FinalScore,
		Level:        finalScore.Level,
		Feedback:     GenerateFeedback(finalScore),
		Details:      detailsJSON,
	}

	if _, err := s.resultRepo.SetCurrentResult(userID, model.SkillArtistic, result); err != nil {
		return nil, nil, err
	}
	return &result, &finalScore, nil
}

// GetResult 返回当前艺术技能结果及全部历史尝试
func (s *ArtisticService) GetResult(userID uint) (*ArtisticResultResponse, error) {
	current, err := s.resultRepo.GetCurrentResult(userID, model.SkillArtistic)
	if err != nil {
		return nil, err
	}

	attempts, err := s.resultRepo.GetHistory(userID, model.SkillArtistic)
	if err != nil {
		return nil, err
	}

	history := make([]model.SkillResult, 0, len(attempts))
	for _, attempt := range attempts {
		history = append(history, attempt.Result())
	}

	return &ArtisticResultResponse{
		Result:        current.Result(),
		History:       history,
		TotalAttempts: len(history),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
