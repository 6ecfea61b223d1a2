package controller

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

type CareerController struct {
	CareerService *service.CareerService
}

func NewCareerController(careerService *service.CareerService) *CareerController {
	return &CareerController{CareerService: careerService}
}

// SuggestCareerRequest 职业推荐请求
// swagger:model SuggestCareerRequest
type SuggestCareerRequest struct {
	ALStream       string `json:"AL_stream" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
}

// ChooseCareerRequest 职业选定请求
// swagger:model ChooseCareerRequest
type ChooseCareerRequest struct {
	ChosenCareer string `json:"chosenCareer" binding:"required"`
}

// Suggest godoc
// @Summary 按 A/L 流向和专业方向推荐职业
// @Description 在职业数据集中做归一化匹配，返回推荐职业列表及依据
// @Tags 职业
// @Accept  json
// @Produce  json
// @Param   body body SuggestCareerRequest true "流向与专业"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "无匹配职业"
// @Router /api/career/suggest [post]
func (c *CareerController) Suggest(ctx *gin.Context) {
	var req SuggestCareerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide both A/L stream and specialization.")
		return
	}

	suggestions, err := c.CareerService.Suggest(ctx.Request.Context(), req.ALStream, req.Specialization)
	if err != nil {
		if errors.Is(err, util.ErrSuggestionNoMatch) {
			util.NotFoundMessage(ctx, "No career match found for "+req.ALStream+" + "+req.Specialization+".")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"suggestions": suggestions})
}

// Choose godoc
// @Summary 选定职业并写回技能要求
// @Description 在技能数据集中查找所选职业，把四项技能要求保存到用户档案
// @Tags 职业
// @Accept  json
// @Produce  json
// @Param   body body ChooseCareerRequest true "所选职业"
// @Success 200 {object} util.Response{data=service.ChooseCareerResult} "保存成功"
// @Failure 404 {object} util.Response "职业不在数据集中"
// @Router /api/career/choose [post]
func (c *CareerController) Choose(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChooseCareerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide chosenCareer")
		return
	}

	result, err := c.CareerService.ChooseCareer(claims.UserID, req.ChosenCareer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCareerNotFound):
			util.NotFoundMessage(ctx, "Career '"+req.ChosenCareer+"' not found in skill dataset")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
