package service

import (
	"context"
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/monitoring"
	"go.uber.org/zap"
)

type RoadmapService struct {
	roadmapRepo *repository.RoadmapRepository
	resultRepo  *repository.ResultRepository
	userRepo    *repository.UserRepository
	generator   *RoadmapGenerator
}

func NewRoadmapService(
	roadmapRepo *repository.RoadmapRepository,
	resultRepo *repository.ResultRepository,
	userRepo *repository.UserRepository,
	generator *RoadmapGenerator,
) *RoadmapService {
	return &RoadmapService{
		roadmapRepo: roadmapRepo,
		resultRepo:  resultRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// ProgressUpdate 进度更新请求，nil 字段表示不修改
type ProgressUpdate struct {
	Viewed   *bool `json:"viewed"`
	QuizDone *bool `json:"quiz_done"`
}

// GenerateRoadmap 生成并持久化路线图：生成 -> 校验 -> 整体替换，任一步失败则不落库。
// 校验失败通过 *RoadmapValidationError 携带完整错误列表返回
func (s *RoadmapService) GenerateRoadmap(ctx context.Context, userID uint, skill model.SkillKey, requiredLevel string) (*model.Roadmap, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Career == "" {
		return nil, util.ErrNoCareerSelected
	}

	currentLevel := s.currentLevelFor(userID, skill)

	generated, err := s.generator.Generate(ctx, user.Career, string(skill), currentLevel, requiredLevel)
	if err != nil {
		monitoring.RoadmapGenerations.WithLabelValues(string(skill), "upstream_error").Inc()
		logger.Log.Error("roadmap generation upstream failure",
			zap.Uint("userID", userID), zap.String("skill", string(skill)), zap.Error(err))
		return nil, err
	}
	if generated == nil {
		monitoring.RoadmapGenerations.WithLabelValues(string(skill), "parse_failure").Inc()
		return nil, util.ErrGenerationFailed
	}

	if errs := ValidateRoadmap(generated); len(errs) > 0 {
		monitoring.RoadmapGenerations.WithLabelValues(string(skill), "validation_failure").Inc()
		logger.Log.Warn("generated roadmap failed validation",
			zap.Uint("userID", userID), zap.String("skill", string(skill)), zap.Strings("errors", errs))
		return nil, &RoadmapValidationError{Errors: errs}
	}

	roadmap := &model.Roadmap{
		UserID:        userID,
		Career:        user.Career,
		Skill:         skill,
		CurrentLevel:  currentLevel,
		RequiredLevel: requiredLevel,
		Stages:        model.StageList(generated.Stages),
		GeneratedBy:   generated.GeneratedBy,
		GeneratedAt:   generated.GeneratedAt,
		AIMeta:        generated.AIMeta,
	}

	if err := s.roadmapRepo.Replace(roadmap); err != nil {
		monitoring.RoadmapGenerations.WithLabelValues(string(skill), "store_error").Inc()
		return nil, err
	}

	monitoring.RoadmapGenerations.WithLabelValues(string(skill), "success").Inc()
	return roadmap, nil
}

func (s *RoadmapService) GetUserRoadmaps(userID uint) ([]model.Roadmap, error) {
	return s.roadmapRepo.FindByUser(userID)
}

func (s *RoadmapService) GetSingleRoadmap(userID uint, skill model.SkillKey) (*model.Roadmap, error) {
	return s.roadmapRepo.FindByUserAndSkill(userID, skill)
}

// UpdateProgress 合并式更新单个阶段的进度，未提供的字段保持原值
func (s *RoadmapService) UpdateProgress(userID uint, skill model.SkillKey, stageIndex int, update ProgressUpdate) (*model.Roadmap, error) {
	roadmap, err := s.roadmapRepo.FindByUserAndSkill(userID, skill)
	if err != nil {
		return nil, err
	}

	if stageIndex < 0 || stageIndex >= len(roadmap.Stages) {
		return nil, util.ErrStageNotFound
	}

	if update.Viewed != nil {
		roadmap.Stages[stageIndex].Progress.Viewed = *update.Viewed
	}
	if update.QuizDone != nil {
		roadmap.Stages[stageIndex].Progress.QuizDone = *update.QuizDone
	}

	if err := s.roadmapRepo.Save(roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

// currentLevelFor 从当前技能结果推导路线图起点，无结果时默认 Beginner。
// 结果等级集合比路线图等级集合更宽，需收敛到 Beginner/Intermediate/Advanced
func (s *RoadmapService) currentLevelFor(userID uint, skill model.SkillKey) string {
	result, err := s.resultRepo.GetCurrentResult(userID, skill)
	if err != nil {
		if !errors.Is(err, util.ErrResultNotFound) {
			logger.Log.Warn("failed to load current result for roadmap level",
				zap.Uint("userID", userID), zap.String("skill", string(skill)), zap.Error(err))
		}
		return model.LevelBeginner
	}

	switch result.Level {
	case model.LevelIntermediate:
		return model.LevelIntermediate
	case model.LevelAdvanced, "Expert":
		return model.LevelAdvanced
	default:
		// Novice / Beginner / Unknown 都从头开始
		return model.LevelBeginner
	}
}
