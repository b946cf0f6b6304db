package service

import (
	"fmt"
	"regexp"
	"strings"
	"studentia/internal/model"
	"unicode"
)

const answerMarker = "Answer:"

// questionMarker 匹配行首的题号标记，如 "Q1:"、"Q2."、"**Q3:**"
var questionMarker = regexp.MustCompile(`(?m)^[ \t]*(?:\*\*)?Q\d+[ \t]*[:.)](?:\*\*)?`)

// optionPrefixes 选项行必须依次以这些前缀开头
var optionPrefixes = []string{"A.", "B.", "C.", "D."}

// ParseResult 解析结果，Warnings 面向用户展示
type ParseResult struct {
	Questions []model.ParsedQuestion `json:"questions"`
	Warnings  []string               `json:"warnings"`
	Dropped   int                    `json:"-"`
}

// ParseQuizReply 将生成服务返回的题目文本解析为结构化题目。
// 不合规的题目段会被丢弃并记录警告，不会导致整体失败。
func ParseQuizReply(rawReply string, expectedCount int) ParseResult {
	result := ParseResult{
		Questions: []model.ParsedQuestion{},
		Warnings:  []string{},
	}

	for i, segment := range splitSegments(rawReply) {
		index := i + 1
		q, reason := parseSegment(segment, index)
		if reason != "" {
			result.Dropped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipping malformed question Q%d: %s", index, reason))
			continue
		}
		result.Questions = append(result.Questions, q)
	}

	switch {
	case len(result.Questions) < expectedCount:
		result.Warnings = append(result.Warnings, fmt.Sprintf("Only %d of %d requested questions could be parsed.", len(result.Questions), expectedCount))
	case len(result.Questions) == 0:
		result.Warnings = append(result.Warnings, "No questions could be parsed from the reply.")
	}

	return result
}

// splitSegments 按题号标记切分，丢弃第一个标记之前的内容
func splitSegments(rawReply string) []string {
	locs := questionMarker.FindAllStringIndex(rawReply, -1)
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(rawReply)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, rawReply[loc[1]:end])
	}
	return segments
}

func parseSegment(segment string, index int) (model.ParsedQuestion, string) {
	parts := strings.Split(segment, answerMarker)
	if len(parts) != 2 {
		return model.ParsedQuestion{}, "'Answer:' missing or repeated"
	}

	lines := strings.Split(parts[0], "\n")
	questionLine, rest := firstNonEmptyLine(lines)
	text := stripEchoedOrdinal(questionLine, index)
	if text == "" {
		return model.ParsedQuestion{}, "question text missing"
	}

	var options []string
	for _, line := range rest {
		line = strings.TrimSpace(line)
		if hasOptionPrefix(line) {
			options = append(options, line)
		}
	}
	if len(options) != len(optionPrefixes) {
		return model.ParsedQuestion{}, fmt.Sprintf("expected %d options, found %d", len(optionPrefixes), len(options))
	}
	for i, opt := range options {
		if !strings.HasPrefix(opt, optionPrefixes[i]) {
			return model.ParsedQuestion{}, "options are not labelled A, B, C, D in order"
		}
	}

	label := answerLabel(parts[1])
	if !model.IsOptionLabel(label) {
		return model.ParsedQuestion{}, fmt.Sprintf("invalid answer label %q", label)
	}

	return model.ParsedQuestion{
		Index:        index,
		Text:         text,
		Options:      options,
		CorrectLabel: label,
	}, ""
}

func firstNonEmptyLine(lines []string) (string, []string) {
	for i, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, lines[i+1:]
		}
	}
	return "", nil
}

// stripEchoedOrdinal 去掉题干里重复出现的本题题号，如 "Q2: Q2: ..." 中的第二个 "Q2:"
func stripEchoedOrdinal(line string, index int) string {
	line = strings.TrimSpace(strings.Trim(line, "*"))
	for _, sep := range []string{":", ".", ")"} {
		prefix := fmt.Sprintf("Q%d%s", index, sep)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

func hasOptionPrefix(line string) bool {
	for _, p := range optionPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// answerLabel 取答案部分第一个非空白字符并转大写
func answerLabel(answerPart string) string {
	for _, r := range answerPart {
		if !unicode.IsSpace(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return ""
}
