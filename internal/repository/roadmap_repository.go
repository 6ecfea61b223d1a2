package repository

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

// Replace 删除同 (user, skill) 的旧路线图后写入新图。
// 替换语义：旧图的阶段进度一并丢弃。两步在同一事务内，避免删完插失败留下空档。
func (r *RoadmapRepository) Replace(roadmap *model.Roadmap) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ? AND skill = ?", roadmap.UserID, roadmap.Skill).
			Delete(&model.Roadmap{}).Error; err != nil {
			return err
		}
		return tx.Create(roadmap).Error
	})
}

// FindByUser 用户全部路线图，最新生成的在前
func (r *RoadmapRepository) FindByUser(userID uint) ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&roadmaps).Error
	return roadmaps, err
}

func (r *RoadmapRepository) FindByUserAndSkill(userID uint, skill model.SkillKey) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	err := r.DB.Where("user_id = ? AND skill = ?", userID, skill).First(&roadmap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRoadmapNotFound
	}
	if err != nil {
		return nil, err
	}
	return &roadmap, nil
}

func (r *RoadmapRepository) Save(roadmap *model.Roadmap) error {
	return r.DB.Save(roadmap).Error
}
