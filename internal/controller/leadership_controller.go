package controller

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

type LeadershipController struct {
	LeadershipService *service.LeadershipService
}

func NewLeadershipController(leadershipService *service.LeadershipService) *LeadershipController {
	return &LeadershipController{LeadershipService: leadershipService}
}

// Start godoc
// @Summary 开始领导力测评会话
// @Tags 领导力测评
// @Accept  json
// @Produce  json
// @Param   body body service.StartLeadershipRequest true "流向与职业"
// @Success 200 {object} util.Response{data=object} "首题与会话标识"
// @Router /api/leadership/start [post]
func (c *LeadershipController) Start(ctx *gin.Context) {
	var req service.StartLeadershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing required fields")
		return
	}

	data, err := c.LeadershipService.StartSession(ctx.Request.Context(), req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// Answer godoc
// @Summary 提交领导力测评答案
// @Description 转发权重到模型服务；响应携带最终结果时立即落库
// @Tags 领导力测评
// @Accept  json
// @Produce  json
// @Param   body body service.SubmitLeadershipAnswerRequest true "会话与权重"
// @Success 200 {object} util.Response{data=object} "下一题或最终结果"
// @Router /api/leadership/answer [post]
func (c *LeadershipController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitLeadershipAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing session_id or weights")
		return
	}

	data, err := c.LeadershipService.SubmitAnswer(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// Summary godoc
// @Summary 获取已保存的领导力结果
// @Tags 领导力测评
// @Produce  json
// @Success 200 {object} util.Response{data=model.SkillResult} "成功"
// @Failure 404 {object} util.Response "暂无领导力结果"
// @Router /api/leadership/summary [get]
func (c *LeadershipController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.LeadershipService.GetSummary(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFoundMessage(ctx, "Leadership results not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
