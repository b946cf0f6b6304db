package service

import "fmt"

const quizPromptTemplate = `You are a quiz master. Based on the following study material, generate %d multiple-choice questions with 4 options each and one correct answer.

Study Material:
"""%s"""

Format:
Q1: [Question text]
A. Option 1
B. Option 2
C. Option 3
D. Option 4
Answer: [Correct option letter]
`

// BuildQuizPrompt 组装出题提示词，学习材料最多取前 maxChars 个字符
func BuildQuizPrompt(text string, count, maxChars int) string {
	return fmt.Sprintf(quizPromptTemplate, count, TruncateRunes(text, maxChars))
}

// TruncateRunes 按字符（而非字节）截断，避免切断多字节字符
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
