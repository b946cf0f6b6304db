package controller

import (
	"errors"
	"net/http"
	"studentia/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 将业务错误映射为对应的 HTTP 状态码
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrQuizAlreadySubmitted), errors.Is(err, util.ErrQuizNotSubmitted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyDocument), errors.Is(err, util.ErrUnreadableDocument):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyScene),
		errors.Is(err, util.ErrInvalidOption),
		errors.Is(err, util.ErrQuestionCount),
		errors.Is(err, util.ErrInvalidAnswer):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUpstream):
		util.BadGateway(ctx, err)
	default:
		util.LogInternalError(ctx, err)
	}
}
