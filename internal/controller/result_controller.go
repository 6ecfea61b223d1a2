package controller

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

// ResultController 技能评估结果查询
type ResultController struct {
	ResultRepo *repository.ResultRepository
}

func NewResultController(resultRepo *repository.ResultRepository) *ResultController {
	return &ResultController{ResultRepo: resultRepo}
}

// GetAll godoc
// @Summary 获取全部技能的当前结果
// @Description 返回当前用户每项技能的最新评估结果
// @Tags 评估结果
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/results [get]
func (c *ResultController) GetAll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.ResultRepo.GetAllCurrent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"results": results})
}

// GetOne godoc
// @Summary 获取单项技能的当前结果
// @Tags 评估结果
// @Produce  json
// @Param   skill path string true "技能键"
// @Success 200 {object} util.Response{data=model.SkillResult} "成功"
// @Failure 404 {object} util.Response "暂无该技能结果"
// @Router /api/results/{skill} [get]
func (c *ResultController) GetOne(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skill := model.SkillKey(ctx.Param("skill"))
	if !skill.Valid() {
		util.BadRequest(ctx, "invalid skill key: "+string(skill))
		return
	}

	record, err := c.ResultRepo.GetCurrentResult(claims.UserID, skill)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, record.Result())
}

// GetHistory godoc
// @Summary 获取单项技能的全部尝试历史
// @Description 按尝试序号升序返回该技能的历史结果
// @Tags 评估结果
// @Produce  json
// @Param   skill path string true "技能键"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/results/{skill}/history [get]
func (c *ResultController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skill := model.SkillKey(ctx.Param("skill"))
	if !skill.Valid() {
		util.BadRequest(ctx, "invalid skill key: "+string(skill))
		return
	}

	attempts, err := c.ResultRepo.GetHistory(claims.UserID, skill)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"history": attempts, "totalAttempts": len(attempts)})
}
