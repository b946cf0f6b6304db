package model

import (
	"studentia/internal/util"
	"time"
)

// 选项标签
const (
	LabelA = "A"
	LabelB = "B"
	LabelC = "C"
	LabelD = "D"

	Unanswered = "unanswered"
)

// OptionLabels 按展示顺序排列的合法选项标签
var OptionLabels = []string{LabelA, LabelB, LabelC, LabelD}

func IsOptionLabel(label string) bool {
	for _, l := range OptionLabels {
		if l == label {
			return true
		}
	}
	return false
}

// ParsedQuestion 从生成结果中解析出的单道选择题
type ParsedQuestion struct {
	Index        int      `json:"index"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectLabel string   `json:"correctLabel"`
}

// QuestionView 答题阶段对外展示的题目，不含正确答案
type QuestionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// QuizSession 一次交互式测验的会话状态
type QuizSession struct {
	ID            string           `json:"id"`
	DocumentName  string           `json:"documentName"`
	ExpectedCount int              `json:"expectedCount"`
	RawReply      string           `json:"rawReply"`
	Questions     []ParsedQuestion `json:"questions"`
	Warnings      []string         `json:"warnings"`
	Answers       map[int]string   `json:"answers"`
	Submitted     bool             `json:"submitted"`
	Feedback      string           `json:"feedback,omitempty"`
	FeedbackError string           `json:"feedbackError,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func NewQuizSession(id, documentName string, expectedCount int, rawReply string, questions []ParsedQuestion, warnings []string) *QuizSession {
	return &QuizSession{
		ID:            id,
		DocumentName:  documentName,
		ExpectedCount: expectedCount,
		RawReply:      rawReply,
		Questions:     questions,
		Warnings:      warnings,
		Answers:       make(map[int]string),
		CreatedAt:     time.Now(),
	}
}

func (s *QuizSession) Question(index int) (ParsedQuestion, bool) {
	for _, q := range s.Questions {
		if q.Index == index {
			return q, true
		}
	}
	return ParsedQuestion{}, false
}

// SetAnswer 记录用户对某题的选择，空标签表示清除作答
func (s *QuizSession) SetAnswer(index int, label string) error {
	if s.Submitted {
		return util.ErrQuizAlreadySubmitted
	}
	if _, ok := s.Question(index); !ok {
		return util.ErrInvalidAnswer
	}
	if label == "" {
		delete(s.Answers, index)
		return nil
	}
	if !IsOptionLabel(label) {
		return util.ErrInvalidAnswer
	}
	if s.Answers == nil {
		s.Answers = make(map[int]string)
	}
	s.Answers[index] = label
	return nil
}

// Submit 冻结作答，之后才允许评分
func (s *QuizSession) Submit() error {
	if s.Submitted {
		return util.ErrQuizAlreadySubmitted
	}
	s.Submitted = true
	return nil
}

func (s *QuizSession) Views() []QuestionView {
	views := make([]QuestionView, 0, len(s.Questions))
	for _, q := range s.Questions {
		views = append(views, QuestionView{Index: q.Index, Text: q.Text, Options: q.Options})
	}
	return views
}

// Score 评分汇总
type Score struct {
	CorrectCount    int     `json:"correctCount"`
	Total           int     `json:"total"`
	AccuracyPercent float64 `json:"accuracyPercent"`
}

// ResultLine 单题评分结果
type ResultLine struct {
	Index        int    `json:"index"`
	Question     string `json:"question"`
	UserLabel    string `json:"userLabel"`
	CorrectLabel string `json:"correctLabel"`
	Correct      bool   `json:"correct"`
	Message      string `json:"message"`
}
