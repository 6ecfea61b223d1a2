package controller

import (
	"errors"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/gin-gonic/gin"
)

// 作品集上传大小上限 10MB
const maxPortfolioSize = 10 << 20

type ArtisticController struct {
	ArtisticService *service.ArtisticService
	StorageService  *service.StorageService
}

func NewArtisticController(artisticService *service.ArtisticService, storageService *service.StorageService) *ArtisticController {
	return &ArtisticController{ArtisticService: artisticService, StorageService: storageService}
}

// ClassifyCV godoc
// @Summary CV/作品集文本分类
// @Description 把文本交给分类模型判定是否艺术方向
// @Tags 艺术测评
// @Accept  json
// @Produce  json
// @Param   body body service.ClassifyCVRequest true "文本与可选 RIASEC 分数"
// @Success 200 {object} util.Response{data=object} "分类结果"
// @Router /api/artistic/classify [post]
func (c *ArtisticController) ClassifyCV(ctx *gin.Context) {
	var req service.ClassifyCVRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Text is required for classification")
		return
	}

	data, err := c.ArtisticService.ClassifyCV(ctx.Request.Context(), req)
	if err != nil {
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Success(ctx, data)
}

// SaveResult godoc
// @Summary 保存艺术测评结果
// @Description 合成 RIASEC 与 CV 分类的最终得分并落库
// @Tags 艺术测评
// @Accept  json
// @Produce  json
// @Param   body body service.SaveArtisticResultRequest true "测评数据"
// @Success 200 {object} util.Response{data=object} "保存成功"
// @Router /api/artistic/save-result [post]
func (c *ArtisticController) SaveResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SaveArtisticResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing required fields: riasecAssessmentScore, cvPrediction, cvConfidence")
		return
	}

	result, finalScore, err := c.ArtisticService.SaveResult(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFoundMessage(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message":    "Artistic assessment result saved successfully",
		"result":     result,
		"finalScore": finalScore,
	})
}

// GetResult godoc
// @Summary 获取艺术测评结果
// @Description 返回当前结果与全部历史尝试
// @Tags 艺术测评
// @Produce  json
// @Success 200 {object} util.Response{data=service.ArtisticResultResponse} "成功"
// @Failure 404 {object} util.Response "暂无艺术测评结果"
// @Router /api/artistic/result [get]
func (c *ArtisticController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.ArtisticService.GetResult(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFoundMessage(ctx, "No artistic assessment result found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// UploadPortfolio godoc
// @Summary 上传 CV/作品集文件
// @Description 文件存入对象存储，返回可访问地址
// @Tags 艺术测评
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "作品集文件"
// @Success 200 {object} util.Response{data=object} "上传成功"
// @Router /api/artistic/portfolio [post]
func (c *ArtisticController) UploadPortfolio(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > maxPortfolioSize {
		util.BadRequest(ctx, "file exceeds 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.UploadPortfolio(ctx.Request.Context(), claims.UserID,
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url, "filename": fileHeader.Filename})
}
