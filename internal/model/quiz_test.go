package model

import (
	"errors"
	"testing"

	"studentia/internal/util"
)

func newSession() *QuizSession {
	return NewQuizSession("s", "doc.pdf", 2, "raw", []ParsedQuestion{
		{Index: 1, Text: "One?", Options: []string{"A. a", "B. b", "C. c", "D. d"}, CorrectLabel: "A"},
		{Index: 3, Text: "Three?", Options: []string{"A. a", "B. b", "C. c", "D. d"}, CorrectLabel: "D"},
	}, nil)
}

func TestQuizSessionSetAnswer(t *testing.T) {
	s := newSession()

	if err := s.SetAnswer(1, "C"); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if err := s.SetAnswer(1, "B"); err != nil {
		t.Fatalf("changing an answer before submit should work: %v", err)
	}
	if s.Answers[1] != "B" {
		t.Errorf("answer = %q, want B", s.Answers[1])
	}

	if err := s.SetAnswer(2, "A"); !errors.Is(err, util.ErrInvalidAnswer) {
		t.Errorf("dropped index err = %v, want ErrInvalidAnswer", err)
	}
	if err := s.SetAnswer(3, "b"); !errors.Is(err, util.ErrInvalidAnswer) {
		t.Errorf("lower-case label err = %v, want ErrInvalidAnswer", err)
	}

	if err := s.SetAnswer(1, ""); err != nil {
		t.Fatalf("clearing: %v", err)
	}
	if _, ok := s.Answers[1]; ok {
		t.Error("empty label should clear the answer")
	}
}

func TestQuizSessionSubmitFreezesAnswers(t *testing.T) {
	s := newSession()
	s.SetAnswer(3, "D")

	if err := s.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := s.SetAnswer(3, "A"); !errors.Is(err, util.ErrQuizAlreadySubmitted) {
		t.Errorf("err = %v, want ErrQuizAlreadySubmitted", err)
	}
	if s.Answers[3] != "D" {
		t.Error("answers changed after submit")
	}
	if err := s.Submit(); !errors.Is(err, util.ErrQuizAlreadySubmitted) {
		t.Errorf("second submit err = %v", err)
	}
}

func TestIsOptionLabel(t *testing.T) {
	for _, l := range []string{"A", "B", "C", "D"} {
		if !IsOptionLabel(l) {
			t.Errorf("%q should be a label", l)
		}
	}
	for _, l := range []string{"", "E", "a", "AB"} {
		if IsOptionLabel(l) {
			t.Errorf("%q should not be a label", l)
		}
	}
}
