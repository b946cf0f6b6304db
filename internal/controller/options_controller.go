package controller

import (
	"studentia/internal/config"
	"studentia/internal/model"
	"studentia/internal/util"

	"github.com/gin-gonic/gin"
)

type OptionsController struct {
	quiz config.QuizConfig
}

func NewOptionsController(quiz config.QuizConfig) *OptionsController {
	return &OptionsController{quiz: quiz}
}

// @Summary 表单可选项
// @Description 图片风格枚举、分辨率以及题目数量范围
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/options [get]
func (c *OptionsController) List(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"image": gin.H{
			"styles":      model.ImageStyles,
			"lightings":   model.ImageLightings,
			"mediums":     model.ImageMediums,
			"moods":       model.ImageMoods,
			"resolutions": model.ImageResolutions,
		},
		"quiz": gin.H{
			"minQuestions":     c.quiz.MinQuestions,
			"maxQuestions":     c.quiz.MaxQuestions,
			"defaultQuestions": c.quiz.DefaultQuestions,
			"answerLabels":     model.OptionLabels,
		},
	})
}
