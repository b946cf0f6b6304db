package service

import (
	"fmt"
	"math"
	"strings"
	"studentia/internal/model"
)

const (
	feedbackHeader      = "Evaluate the following answers and provide brief feedback:\n\n"
	feedbackInstruction = "Give a single consolidated summary feedback for the whole quiz, not per-question commentary."
)

// ScoreReport 评分结果以及用于请求总结反馈的提示词
type ScoreReport struct {
	Score          model.Score        `json:"score"`
	Results        []model.ResultLine `json:"results"`
	FeedbackPrompt string             `json:"-"`
}

// ScoreQuiz 按题目顺序逐一比对用户答案与正确答案（单字母、区分大小写）
func ScoreQuiz(questions []model.ParsedQuestion, answers map[int]string) ScoreReport {
	report := ScoreReport{
		Results: make([]model.ResultLine, 0, len(questions)),
	}

	var prompt strings.Builder
	prompt.WriteString(feedbackHeader)

	for _, q := range questions {
		user, ok := answers[q.Index]
		if !ok || user == "" {
			user = model.Unanswered
		}

		line := model.ResultLine{
			Index:        q.Index,
			Question:     q.Text,
			UserLabel:    user,
			CorrectLabel: q.CorrectLabel,
			Correct:      user == q.CorrectLabel,
		}
		if line.Correct {
			report.Score.CorrectCount++
			line.Message = fmt.Sprintf("Q%d: Correct", q.Index)
		} else {
			line.Message = fmt.Sprintf("Q%d: Incorrect (Your answer: %s, Correct: %s)", q.Index, user, q.CorrectLabel)
		}
		report.Results = append(report.Results, line)

		fmt.Fprintf(&prompt, "Q%d: %s\n%s\nCorrect Answer: %s\nUser Answer: %s\n\n",
			q.Index, q.Text, strings.Join(q.Options, "\n"), q.CorrectLabel, user)
	}

	report.Score.Total = len(questions)
	report.Score.AccuracyPercent = Accuracy(report.Score.CorrectCount, report.Score.Total)

	prompt.WriteString(feedbackInstruction)
	report.FeedbackPrompt = prompt.String()

	return report
}

// Accuracy 正确率百分比，保留一位小数；total 为 0 时返回 0
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*1000/float64(total)) / 10
}
