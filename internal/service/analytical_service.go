package service

import (
	"context"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
	"go.uber.org/zap"
)

// AnalyticalService 分析能力测评代理。题目生成与判分都在外部模型服务完成，
// 这里只做转发；唯一本地职责是在会话完成时落库归一化结果
type AnalyticalService struct {
	client     *ModelClient
	resultRepo *repository.ResultRepository
	baseURL    string
}

func NewAnalyticalService(client *ModelClient, resultRepo *repository.ResultRepository, baseURL string) *AnalyticalService {
	return &AnalyticalService{client: client, resultRepo: resultRepo, baseURL: baseURL}
}

type StartAnalyticalQuizRequest struct {
	UserID     uint   `json:"user_id"`
	Career     string `json:"career"`
	ALStream   string `json:"AL_stream"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type SubmitAnalyticalAnswerRequest struct {
	UserID         uint   `json:"user_id"`
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Category       string `json:"category"`
}

type EvaluateAnalyticalRequest struct {
	UserAnswers      map[string]interface{} `json:"user_answers"`
	CorrectAnswers   map[string]interface{} `json:"correct_answers"`
	QuestionMetadata map[string]interface{} `json:"question_metadata"`
}

func (s *AnalyticalService) StartQuiz(ctx context.Context, req StartAnalyticalQuizRequest) (map[string]interface{}, error) {
	return s.client.Post(ctx, s.baseURL+"/start-quiz", req)
}

// SubmitAnswer 转发答案；响应标记 completed 且携带 evaluation 时立即落库。
// 落库失败只记日志不影响响应，上游已向用户宣告完成，此刻报错只会更糟
func (s *AnalyticalService) SubmitAnswer(ctx context.Context, userID uint, req SubmitAnalyticalAnswerRequest) (map[string]interface{}, error) {
	req.UserID = userID
	data, err := s.client.Post(ctx, s.baseURL+"/submit-answer", req)
	if err != nil {
		return nil, err
	}

	if status, _ := data["status"].(string); status == "completed" {
		if evaluation, ok := data["evaluation"].(map[string]interface{}); ok {
			result := NormalizeResult(evaluation)
			if _, err := s.resultRepo.SetCurrentResult(userID, model.SkillAnalytical, result); err != nil {
				logger.Log.Error("failed to save analytical result",
					zap.Uint("userID", userID), zap.Error(err))
			} else {
				logger.Log.Info("analytical result saved", zap.Uint("userID", userID),
					zap.Float64("overallScore", result.OverallScore), zap.String("level", result.Level))
			}
		}
	}

	return data, nil
}

func (s *AnalyticalService) Evaluate(ctx context.Context, req EvaluateAnalyticalRequest) (map[string]interface{}, error) {
	return s.client.Post(ctx, s.baseURL+"/evaluate", req)
}

// ActiveSessions 查询模型服务当前会话，调试用
func (s *AnalyticalService) ActiveSessions(ctx context.Context) (map[string]interface{}, error) {
	return s.client.Get(ctx, s.baseURL+"/")
}
