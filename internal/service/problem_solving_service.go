package service

import (
	"context"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
)

// ProblemSolvingService 问题解决测评代理。这条链路的结果不由后端自动落库，
// 客户端在会话结束后显式调用 SaveResult 提交 summary
type ProblemSolvingService struct {
	client     *ModelClient
	resultRepo *repository.ResultRepository
	userRepo   *repository.UserRepository
	baseURL    string
}

func NewProblemSolvingService(client *ModelClient, resultRepo *repository.ResultRepository, userRepo *repository.UserRepository, baseURL string) *ProblemSolvingService {
	return &ProblemSolvingService{client: client, resultRepo: resultRepo, userRepo: userRepo, baseURL: baseURL}
}

type SubmitProblemSolvingAnswerRequest struct {
	SessionID  string `json:"session_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
	SubSkill   string `json:"sub_skill"`
	Difficulty string `json:"difficulty"`
}

type SaveQuizResultRequest struct {
	Category string                 `json:"category" binding:"required"`
	Summary  map[string]interface{} `json:"summary" binding:"required"`
}

// StartQuiz 以用户已选职业发起测评会话，未选职业直接拒绝
func (s *ProblemSolvingService) StartQuiz(ctx context.Context, userID uint) (map[string]interface{}, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Career == "" {
		return nil, util.ErrNoCareerSelected
	}

	return s.client.Post(ctx, s.baseURL+"/generate", map[string]interface{}{
		"user_id": userID,
		"career":  user.Career,
	})
}

func (s *ProblemSolvingService) SubmitAnswer(ctx context.Context, req SubmitProblemSolvingAnswerRequest) (map[string]interface{}, error) {
	return s.client.Post(ctx, s.baseURL+"/answer", req)
}

// SaveResult 归一化客户端提交的 summary 并作为该技能的当前结果落库
func (s *ProblemSolvingService) SaveResult(userID uint, req SaveQuizResultRequest) (*model.SkillResult, error) {
	skill := model.SkillKey(req.Category)
	if !skill.Valid() {
		return nil, util.ErrInvalidSkill
	}

	result := NormalizeResult(req.Summary)
	if _, err := s.resultRepo.SetCurrentResult(userID, skill, result); err != nil {
		return nil, err
	}
	return &result, nil
}
