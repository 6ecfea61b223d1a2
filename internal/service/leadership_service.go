package service

import (
	"context"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
	"go.uber.org/zap"
)

// LeadershipService 领导力测评代理，会话完成信号是响应中出现 results 字段
type LeadershipService struct {
	client     *ModelClient
	resultRepo *repository.ResultRepository
	baseURL    string
}

func NewLeadershipService(client *ModelClient, resultRepo *repository.ResultRepository, baseURL string) *LeadershipService {
	return &LeadershipService{client: client, resultRepo: resultRepo, baseURL: baseURL}
}

type StartLeadershipRequest struct {
	ALStream string `json:"al_stream" binding:"required"`
	Career   string `json:"career" binding:"required"`
}

type SubmitLeadershipAnswerRequest struct {
	SessionID string                 `json:"session_id" binding:"required"`
	Weights   map[string]interface{} `json:"weights" binding:"required"`
}

func (s *LeadershipService) StartSession(ctx context.Context, req StartLeadershipRequest) (map[string]interface{}, error) {
	return s.client.Post(ctx, s.baseURL+"/start", req)
}

func (s *LeadershipService) SubmitAnswer(ctx context.Context, userID uint, req SubmitLeadershipAnswerRequest) (map[string]interface{}, error) {
	data, err := s.client.Post(ctx, s.baseURL+"/answer", req)
	if err != nil {
		return nil, err
	}

	// results 里特质分散在顶层且等级字段叫 leadership_level，归一化器的
	// 平铺回退模式正好覆盖这种形态
	if results, ok := data["results"].(map[string]interface{}); ok {
		result := NormalizeResult(results)
		if _, err := s.resultRepo.SetCurrentResult(userID, model.SkillLeadership, result); err != nil {
			logger.Log.Error("failed to save leadership result",
				zap.Uint("userID", userID), zap.Error(err))
		} else {
			logger.Log.Info("leadership result saved", zap.Uint("userID", userID),
				zap.String("level", result.Level))
		}
	}

	return data, nil
}

// GetSummary 从本地库读取当前领导力结果
func (s *LeadershipService) GetSummary(userID uint) (*model.SkillResult, error) {
	record, err := s.resultRepo.GetCurrentResult(userID, model.SkillLeadership)
	if err != nil {
		return nil, err
	}
	result := record.Result()
	return &result, nil
}
