package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildQuizPromptTruncatesMaterial(t *testing.T) {
	text := strings.Repeat("x", 5000)
	prompt := BuildQuizPrompt(text, 7, 3000)

	if !strings.Contains(prompt, "generate 7 multiple-choice questions") {
		t.Error("prompt should carry the requested count")
	}
	if strings.Contains(prompt, strings.Repeat("x", 3001)) {
		t.Error("material should be limited to 3000 characters")
	}
	if !strings.Contains(prompt, `"""`+strings.Repeat("x", 3000)+`"""`) {
		t.Error("material should be quoted verbatim")
	}
	if !strings.Contains(prompt, "Answer: [Correct option letter]") {
		t.Error("prompt should describe the expected answer format")
	}
}

func TestTruncateRunes(t *testing.T) {
	s := "héllo wörld"
	got := TruncateRunes(s, 4)
	if got != "héll" {
		t.Errorf("TruncateRunes = %q, want %q", got, "héll")
	}
	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
	if TruncateRunes("abc", 10) != "abc" {
		t.Error("short strings should be returned unchanged")
	}
	if TruncateRunes("abc", 0) != "abc" {
		t.Error("non-positive limits disable truncation")
	}
}
