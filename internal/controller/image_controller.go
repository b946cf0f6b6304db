package controller

import (
	"studentia/internal/model"
	"studentia/internal/service"
	"studentia/internal/util"

	"github.com/gin-gonic/gin"
)

type ImageController struct {
	Service *service.ImageService
}

func NewImageController(svc *service.ImageService) *ImageController {
	return &ImageController{Service: svc}
}

// @Summary 根据描述和风格生成图片
// @Tags 图片
// @Accept json
// @Produce json
// @Param body body model.ImageOptions true "场景描述与风格"
// @Success 200 {object} util.Response{data=model.ImageResult}
// @Failure 400 {object} util.Response "参数不合法"
// @Failure 502 {object} util.Response "生成服务调用失败"
// @Router /api/images [post]
func (c *ImageController) Generate(ctx *gin.Context) {
	var req model.ImageOptions
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Generate(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
