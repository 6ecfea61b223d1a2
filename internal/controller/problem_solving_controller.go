package controller

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

type ProblemSolvingController struct {
	ProblemSolvingService *service.ProblemSolvingService
}

func NewProblemSolvingController(problemSolvingService *service.ProblemSolvingService) *ProblemSolvingController {
	return &ProblemSolvingController{ProblemSolvingService: problemSolvingService}
}

// StartQuiz godoc
// @Summary 开始问题解决测评
// @Description 以用户已选职业发起测评会话
// @Tags 问题解决测评
// @Produce  json
// @Success 200 {object} util.Response{data=object} "题目与会话信息"
// @Failure 400 {object} util.Response "用户未选择职业"
// @Router /api/problem-solving/start [post]
func (c *ProblemSolvingController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.ProblemSolvingService.StartQuiz(ctx.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoCareerSelected):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.BadGateway(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, data)
}

// SubmitAnswer godoc
// @Summary 提交问题解决测评答案
// @Tags 问题解决测评
// @Accept  json
// @Produce  json
// @Param   body body service.SubmitProblemSolvingAnswerRequest true "作答内容"
// @Success 200 {object} util.Response{data=object} "下一题或汇总"
// @Router /api/problem-solving/answer [post]
func (c *ProblemSolvingController) SubmitAnswer(ctx *gin.Context) {
	var req service.SubmitProblemSolvingAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing required fields: session_id or question id")
		return
	}

	data, err := c.ProblemSolvingService.SubmitAnswer(ctx.Request.Context(), req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// SaveResult godoc
// @Summary 保存测评结果
// @Description 归一化客户端提交的 summary 并保存为该技能的当前结果
// @Tags 问题解决测评
// @Accept  json
// @Produce  json
// @Param   body body service.SaveQuizResultRequest true "类目与汇总"
// @Success 200 {object} util.Response{data=model.SkillResult} "保存成功"
// @Router /api/problem-solving/save-result [post]
func (c *ProblemSolvingController) SaveResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SaveQuizResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing category or summary")
		return
	}

	result, err := c.ProblemSolvingService.SaveResult(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidSkill):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFoundMessage(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": req.Category + " result saved successfully", "result": result})
}
