package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"studentia/internal/config"
	"studentia/internal/model"
	"studentia/internal/repository"
	"studentia/internal/util"
	"studentia/pkg/logger"
	"studentia/pkg/monitoring"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuizService struct {
	sessions  repository.SessionRepository
	generator TextGenerator
	extractor DocumentExtractor
	report    *ReportService
	cfg       config.QuizConfig

	// 串行化同一进程内对会话的读-改-写
	mu sync.Mutex
}

func NewQuizService(sessions repository.SessionRepository, generator TextGenerator, extractor DocumentExtractor, report *ReportService, cfg config.QuizConfig) *QuizService {
	return &QuizService{
		sessions:  sessions,
		generator: generator,
		extractor: extractor,
		report:    report,
		cfg:       cfg,
	}
}

// GenerateQuizInput 一次出题请求
type GenerateQuizInput struct {
	DocumentName string
	Document     io.ReaderAt
	Size         int64
	Count        int
	// Replaces 同一浏览器上一次的会话，新会话创建后会被丢弃
	Replaces string
}

// QuizView 对外展示的会话状态，提交前不包含正确答案
type QuizView struct {
	ID            string               `json:"id"`
	DocumentName  string               `json:"documentName"`
	ExpectedCount int                  `json:"expectedCount"`
	Questions     []model.QuestionView `json:"questions"`
	Warnings      []string             `json:"warnings"`
	Answers       map[int]string       `json:"answers"`
	Submitted     bool                 `json:"submitted"`
}

// QuizResult 提交后的评分与总结反馈
type QuizResult struct {
	Score         model.Score        `json:"score"`
	Results       []model.ResultLine `json:"results"`
	Feedback      string             `json:"feedback,omitempty"`
	FeedbackError string             `json:"feedbackError,omitempty"`
}

func NewQuizView(s *model.QuizSession) *QuizView {
	return &QuizView{
		ID:            s.ID,
		DocumentName:  s.DocumentName,
		ExpectedCount: s.ExpectedCount,
		Questions:     s.Views(),
		Warnings:      s.Warnings,
		Answers:       s.Answers,
		Submitted:     s.Submitted,
	}
}

func (s *QuizService) ValidateCount(count int) error {
	if count < s.cfg.MinQuestions || count > s.cfg.MaxQuestions {
		return fmt.Errorf("%w: must be between %d and %d", util.ErrQuestionCount, s.cfg.MinQuestions, s.cfg.MaxQuestions)
	}
	return nil
}

// Generate 提取文档文本、请求生成题目并解析为新的测验会话。
// 文档没有可提取文本时不会调用生成服务。
func (s *QuizService) Generate(ctx context.Context, in GenerateQuizInput) (*model.QuizSession, error) {
	if err := s.ValidateCount(in.Count); err != nil {
		return nil, err
	}

	text, err := s.extractor.ExtractText(in.Document, in.Size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, util.ErrEmptyDocument
	}

	prompt := BuildQuizPrompt(text, in.Count, s.cfg.MaxDocumentChars)
	reply, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}

	parsed := ParseQuizReply(reply, in.Count)
	monitoring.QuizQuestionsParsed.Add(float64(len(parsed.Questions)))
	monitoring.QuizSegmentsDropped.Add(float64(parsed.Dropped))

	session := model.NewQuizSession(uuid.New().String(), in.DocumentName, in.Count, reply, parsed.Questions, parsed.Warnings)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if in.Replaces != "" && in.Replaces != session.ID {
		if err := s.sessions.Delete(ctx, in.Replaces); err != nil {
			logger.Log.Warn("Failed to discard replaced quiz session", zap.String("id", in.Replaces), zap.Error(err))
		}
	}

	logger.Log.Info("Quiz generated",
		zap.String("id", session.ID),
		zap.Int("requested", in.Count),
		zap.Int("parsed", len(parsed.Questions)),
		zap.Int("dropped", parsed.Dropped),
	)
	return session, nil
}

func (s *QuizService) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	return s.sessions.Get(ctx, id)
}

// SetAnswers 批量记录作答，任一答案不合法则整体不生效
func (s *QuizService) SetAnswers(ctx context.Context, id string, answers map[int]string) (*model.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for index, label := range answers {
		if err := session.SetAnswer(index, strings.TrimSpace(label)); err != nil {
			if errors.Is(err, util.ErrInvalidAnswer) {
				return nil, fmt.Errorf("%w: question %d, label %q", err, index, label)
			}
			return nil, err
		}
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit 冻结作答、评分并请求一段总结反馈。
// 反馈请求失败不会影响评分结果，错误信息随结果返回。
func (s *QuizService) Submit(ctx context.Context, id string) (*QuizResult, error) {
	s.mu.Lock()
	session, err := s.sessions.Get(ctx, id)
	if err == nil {
		err = session.Submit()
	}
	if err == nil {
		err = s.sessions.Save(ctx, session)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	report := ScoreQuiz(session.Questions, session.Answers)
	result := &QuizResult{Score: report.Score, Results: report.Results}

	if len(session.Questions) > 0 {
		feedback, err := s.generator.GenerateText(ctx, report.FeedbackPrompt)
		if err != nil {
			logger.Log.Warn("Feedback generation failed", zap.String("id", id), zap.Error(err))
			result.FeedbackError = fmt.Sprintf("Could not generate feedback: %v", err)
		} else {
			result.Feedback = feedback
		}
	}

	s.mu.Lock()
	session.Feedback = result.Feedback
	session.FeedbackError = result.FeedbackError
	if err := s.sessions.Save(ctx, session); err != nil {
		logger.Log.Warn("Failed to store quiz feedback", zap.String("id", id), zap.Error(err))
	}
	s.mu.Unlock()

	logger.Log.Info("Quiz submitted",
		zap.String("id", id),
		zap.Int("correct", report.Score.CorrectCount),
		zap.Int("total", report.Score.Total),
	)
	return result, nil
}

// Result 返回已提交会话的评分结果，不再请求反馈
func (s *QuizService) Result(ctx context.Context, id string) (*model.QuizSession, *QuizResult, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !session.Submitted {
		return nil, nil, util.ErrQuizNotSubmitted
	}
	report := ScoreQuiz(session.Questions, session.Answers)
	return session, &QuizResult{
		Score:         report.Score,
		Results:       report.Results,
		Feedback:      session.Feedback,
		FeedbackError: session.FeedbackError,
	}, nil
}

// Report 生成已提交会话的 PDF 成绩单
func (s *QuizService) Report(ctx context.Context, id string) ([]byte, error) {
	session, result, err := s.Result(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.report.Render(session, result)
}

func (s *QuizService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
