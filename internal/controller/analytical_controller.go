package controller

import (
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

// AnalyticalController 分析能力测评接口，题目与判分由外部模型服务承担
type AnalyticalController struct {
	AnalyticalService *service.AnalyticalService
}

func NewAnalyticalController(analyticalService *service.AnalyticalService) *AnalyticalController {
	return &AnalyticalController{AnalyticalService: analyticalService}
}

// StartQuiz godoc
// @Summary 开始分析能力测评
// @Description 按职业生成测评题目并创建会话
// @Tags 分析测评
// @Accept  json
// @Produce  json
// @Param   body body service.StartAnalyticalQuizRequest true "测评参数"
// @Success 200 {object} util.Response{data=object} "题目与会话信息"
// @Failure 502 {object} util.Response "模型服务不可用"
// @Router /api/analytical/start-quiz [post]
func (c *AnalyticalController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartAnalyticalQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Career == "" {
		util.BadRequest(ctx, "Missing Career — No career provided for quiz generation.")
		return
	}
	req.UserID = claims.UserID

	data, err := c.AnalyticalService.StartQuiz(ctx.Request.Context(), req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// SubmitAnswer godoc
// @Summary 提交分析测评答案
// @Description 转发答案到模型服务；会话完成时保存最终结果
// @Tags 分析测评
// @Accept  json
// @Produce  json
// @Param   body body service.SubmitAnalyticalAnswerRequest true "作答内容"
// @Success 200 {object} util.Response{data=object} "下一题或完成载荷"
// @Router /api/analytical/submit-answer [post]
func (c *AnalyticalController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnalyticalAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := c.AnalyticalService.SubmitAnswer(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// Evaluate godoc
// @Summary 手动评估
// @Description 把完整答卷直接交给模型服务评估，调试用
// @Tags 分析测评
// @Accept  json
// @Produce  json
// @Param   body body service.EvaluateAnalyticalRequest true "答卷"
// @Success 200 {object} util.Response{data=object} "评估结果"
// @Router /api/analytical/evaluate [post]
func (c *AnalyticalController) Evaluate(ctx *gin.Context) {
	var req service.EvaluateAnalyticalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := c.AnalyticalService.Evaluate(ctx.Request.Context(), req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// ActiveSessions godoc
// @Summary 查询模型服务活跃会话
// @Tags 分析测评
// @Produce  json
// @Success 200 {object} util.Response{data=object} "会话列表"
// @Router /api/analytical/sessions [get]
func (c *AnalyticalController) ActiveSessions(ctx *gin.Context) {
	data, err := c.AnalyticalService.ActiveSessions(ctx.Request.Context())
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}
