package repository

import (
	"errors"
	"time"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// SetCurrentResult 覆盖该技能的当前结果并追加一条尝试历史。
// 计数与追加在同一事务内完成，保证 attemptNumber 按 (user, skill) 严格递增。
func (r *ResultRepository) SetCurrentResult(userID uint, skill model.SkillKey, result model.SkillResult) (*model.SkillResultAttempt, error) {
	var attempt model.SkillResultAttempt

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}

		var record model.SkillResultRecord
		err := tx.Where("user_id = ? AND skill = ?", userID, skill).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = model.SkillResultRecord{UserID: userID, Skill: skill}
		case err != nil:
			return err
		}

		record.Traits = result.Traits
		record.OverallScore = result.OverallScore
		record.Level = result.Level
		record.Feedback = result.Feedback
		record.Details = result.Details
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.SkillResultAttempt{}).
			Where("user_id = ? AND skill = ?", userID, skill).
			Count(&count).Error; err != nil {
			return err
		}

		attempt = model.SkillResultAttempt{
			UserID:        userID,
			Skill:         skill,
			AttemptNumber: int(count) + 1,
			Traits:        result.Traits,
			OverallScore:  result.OverallScore,
			Level:         result.Level,
			Feedback:      result.Feedback,
			Details:       result.Details,
			CompletedAt:   time.Now(),
		}
		return tx.Create(&attempt).Error
	})

	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *ResultRepository) GetCurrentResult(userID uint, skill model.SkillKey) (*model.SkillResultRecord, error) {
	var record model.SkillResultRecord
	err := r.DB.Where("user_id = ? AND skill = ?", userID, skill).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAllCurrent 用户全部技能的当前结果，键为技能
func (r *ResultRepository) GetAllCurrent(userID uint) (map[model.SkillKey]model.SkillResult, error) {
	var records []model.SkillResultRecord
	if err := r.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	results := make(map[model.SkillKey]model.SkillResult, len(records))
	for i := range records {
		results[records[i].Skill] = records[i].Result()
	}
	return results, nil
}

func (r *ResultRepository) GetHistory(userID uint, skill model.SkillKey) ([]model.SkillResultAttempt, error) {
	var attempts []model.SkillResultAttempt
	err := r.DB.Where("user_id = ? AND skill = ?", userID, skill).
		Order("attempt_number asc").
		Find(&attempts).Error
	return attempts, err
}
