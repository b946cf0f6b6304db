package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"studentia/internal/config"
	"studentia/internal/service"
	"studentia/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
	cfg     config.QuizConfig
	session config.SessionConfig
}

func NewQuizController(svc *service.QuizService, cfg config.QuizConfig, session config.SessionConfig) *QuizController {
	return &QuizController{Service: svc, cfg: cfg, session: session}
}

type SetAnswersReq struct {
	Answers map[int]string `json:"answers" binding:"required"`
}

// @Summary 上传学习资料并生成测验
// @Tags 测验
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF 学习资料"
// @Param num_questions formData int false "题目数量 (1-20)" default(5)
// @Success 201 {object} util.Response{data=service.QuizView}
// @Failure 422 {object} util.Response "文档没有可提取的文本"
// @Failure 502 {object} util.Response "生成服务调用失败"
// @Router /api/quizzes [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	count := c.cfg.DefaultQuestions
	if raw := ctx.PostForm("num_questions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "num_questions must be an integer")
			return
		}
		count = n
	}
	if err := c.Service.ValidateCount(count); err != nil {
		respondError(ctx, err)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "a PDF file is required")
		return
	}
	if c.cfg.MaxUploadBytes > 0 && header.Size > c.cfg.MaxUploadBytes {
		util.Error(ctx, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", c.cfg.MaxUploadBytes))
		return
	}
	if !util.HasAllowedExtension(header.Filename, util.AllowedDocumentExtensions) {
		util.BadRequest(ctx, "only PDF documents are supported")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	if _, err := util.ValidateMimeType(file, []string{util.MimePDF}); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	replaces, _ := ctx.Cookie(c.session.CookieName)
	session, err := c.Service.Generate(ctx.Request.Context(), service.GenerateQuizInput{
		DocumentName: header.Filename,
		Document:     file,
		Size:         header.Size,
		Count:        count,
		Replaces:     replaces,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.session.CookieName, session.ID, int(c.session.TTL.Seconds()), "/", "", false, true)
	util.Created(ctx, service.NewQuizView(session))
}

// @Summary 获取测验
// @Tags 测验
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	session, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, service.NewQuizView(session))
}

// @Summary 记录作答
// @Description answers 的键为题号，值为 A/B/C/D，空字符串表示清除
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body SetAnswersReq true "作答"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 409 {object} util.Response "测验已提交"
// @Router /api/quizzes/{id}/answers [put]
func (c *QuizController) SetAnswers(ctx *gin.Context) {
	var req SetAnswersReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.SetAnswers(ctx.Request.Context(), ctx.Param("id"), req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, service.NewQuizView(session))
}

// @Summary 提交测验并获取评分与反馈
// @Tags 测验
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 409 {object} util.Response "测验已提交"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	result, err := c.Service.Submit(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 获取已提交测验的结果
// @Tags 测验
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Router /api/quizzes/{id}/result [get]
func (c *QuizController) Result(ctx *gin.Context) {
	_, result, err := c.Service.Result(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 下载 PDF 成绩单
// @Tags 测验
// @Produce application/pdf
// @Param id path string true "会话ID"
// @Success 200 {file} binary
// @Router /api/quizzes/{id}/report [get]
func (c *QuizController) Report(ctx *gin.Context) {
	id := ctx.Param("id")
	data, err := c.Service.Report(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quiz-%s.pdf"`, id))
	ctx.Data(http.StatusOK, util.MimePDF, data)
}

// @Summary 丢弃测验
// @Tags 测验
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.SetCookie(c.session.CookieName, "", -1, "/", "", false, true)
	util.Success(ctx, nil)
}
