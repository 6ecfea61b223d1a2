package controller

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

// UserController 用户生涯档案。账号与登录由外部服务负责，这里只维护
// 流向、专业、决策风格等生涯字段
type UserController struct {
	UserRepo *repository.UserRepository
}

func NewUserController(userRepo *repository.UserRepository) *UserController {
	return &UserController{UserRepo: userRepo}
}

// UpdateProfileRequest 档案更新请求，缺省字段不变
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Username       *string `json:"username"`
	ALStream       *string `json:"AL_stream"`
	Specialization *string `json:"specialization"`
	DecisionStyle  *string `json:"decisionStyle"`
}

// GetProfile godoc
// @Summary 获取用户档案
// @Description 首次访问时按令牌身份补建档案行
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserRepo.FindOrCreate(claims.UserID, claims.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新用户档案
// @Description 合并式更新生涯字段，未提供的字段保持不变
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body UpdateProfileRequest true "档案字段"
// @Success 200 {object} util.Response{data=model.User} "更新后的档案"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.ALStream != nil {
		fields["al_stream"] = *req.ALStream
	}
	if req.Specialization != nil {
		fields["specialization"] = *req.Specialization
	}
	if req.DecisionStyle != nil {
		fields["decision_style"] = *req.DecisionStyle
	}
	if len(fields) == 0 {
		util.BadRequest(ctx, "no profile fields provided")
		return
	}

	if err := c.UserRepo.UpdateProfile(claims.UserID, fields); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
