package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
}

func NewRoadmapController(roadmapService *service.RoadmapService) *RoadmapController {
	return &RoadmapController{RoadmapService: roadmapService}
}

// GenerateRoadmapRequest 生成路线图请求
// swagger:model GenerateRoadmapRequest
type GenerateRoadmapRequest struct {
	Skill         string `json:"skill" binding:"required"`
	RequiredLevel string `json:"required_level" binding:"required"`
}

// Generate godoc
// @Summary 生成学习路线图
// @Description 按所选职业和技能生成两阶段学习路线图，覆盖该技能已有路线图
// @Tags 路线图
// @Accept  json
// @Produce  json
// @Param   body body GenerateRoadmapRequest true "技能与目标等级"
// @Success 201 {object} util.Response{data=model.Roadmap} "生成成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "用户未选择职业"
// @Failure 422 {object} util.Response{data=object} "生成内容未通过结构校验"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/roadmap/generate [post]
func (c *RoadmapController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateRoadmapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill := model.SkillKey(req.Skill)
	if !skill.Valid() {
		util.BadRequest(ctx, "invalid skill key: "+req.Skill)
		return
	}
	if !model.ValidRoadmapLevel(req.RequiredLevel) {
		util.BadRequest(ctx, "required_level must be one of Beginner, Intermediate, Advanced")
		return
	}

	roadmap, err := c.RoadmapService.GenerateRoadmap(ctx.Request.Context(), claims.UserID, skill, req.RequiredLevel)
	if err != nil {
		var validationErr *service.RoadmapValidationError
		switch {
		case errors.As(err, &validationErr):
			util.ErrorWithData(ctx, http.StatusUnprocessableEntity, "generated roadmap failed validation",
				gin.H{"errors": validationErr.Errors})
		case errors.Is(err, util.ErrGenerationFailed):
			util.BadGateway(ctx, err.Error())
		case errors.Is(err, util.ErrNoCareerSelected):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.BadGateway(ctx, "roadmap generation failed: "+err.Error())
		}
		return
	}

	util.Created(ctx, roadmap)
}

// GetAll godoc
// @Summary 获取用户全部路线图
// @Description 按创建时间倒序返回当前用户的所有路线图
// @Tags 路线图
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Roadmap} "成功"
// @Router /api/roadmap/ [get]
func (c *RoadmapController) GetAll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	roadmaps, err := c.RoadmapService.GetUserRoadmaps(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"roadmaps": roadmaps, "count": len(roadmaps)})
}

// GetOne godoc
// @Summary 获取单个技能的路线图
// @Tags 路线图
// @Produce  json
// @Param   skill path string true "技能键"
// @Success 200 {object} util.Response{data=model.Roadmap} "成功"
// @Failure 404 {object} util.Response "该技能暂无路线图"
// @Router /api/roadmap/{skill} [get]
func (c *RoadmapController) GetOne(ctx *gin.Context) {
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

	roadmap, err := c.RoadmapService.GetSingleRoadmap(claims.UserID, skill)
	if err != nil {
		if errors.Is(err, util.ErrRoadmapNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, roadmap)
}

// UpdateProgressRequest 阶段进度更新请求，缺省字段不变
// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	Viewed   *bool `json:"viewed"`
	QuizDone *bool `json:"quiz_done"`
}

// UpdateProgress godoc
// @Summary 更新阶段学习进度
// @Description 合并式更新指定阶段的 viewed / quiz_done，未提供的字段保持不变
// @Tags 路线图
// @Accept  json
// @Produce  json
// @Param   skill path string true "技能键"
// @Param   stageIndex path int true "阶段序号（从 0 开始）"
// @Param   body body UpdateProgressRequest true "进度字段"
// @Success 200 {object} util.Response{data=model.Roadmap} "更新后的路线图"
// @Failure 404 {object} util.Response "路线图或阶段不存在"
// @Router /api/roadmap/{skill}/{stageIndex}/progress [patch]
func (c *RoadmapController) UpdateProgress(ctx *gin.Context) {
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

	stageIndex, err := strconv.Atoi(ctx.Param("stageIndex"))
	if err != nil {
		util.BadRequest(ctx, "stageIndex must be an integer")
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Viewed == nil && req.QuizDone == nil {
		util.BadRequest(ctx, "at least one of viewed or quiz_done is required")
		return
	}

	roadmap, err := c.RoadmapService.UpdateProgress(claims.UserID, skill, stageIndex, service.ProgressUpdate{
		Viewed:   req.Viewed,
		QuizDone: req.QuizDone,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoadmapNotFound), errors.Is(err, util.ErrStageNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, roadmap)
}
