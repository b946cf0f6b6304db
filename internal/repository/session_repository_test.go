package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"studentia/internal/model"
	"studentia/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func sampleSession(id string) *model.QuizSession {
	return model.NewQuizSession(id, "notes.pdf", 2, "Q1: ...", []model.ParsedQuestion{
		{Index: 1, Text: "What is 2+2?", Options: []string{"A. 3", "B. 4", "C. 5", "D. 6"}, CorrectLabel: "B"},
		{Index: 2, Text: "Capital of France?", Options: []string{"A. Paris", "B. Rome", "C. Berlin", "D. Madrid"}, CorrectLabel: "A"},
	}, nil)
}

func exerciseRepository(t *testing.T, repo SessionRepository) {
	t.Helper()
	ctx := context.Background()

	s := sampleSession("s1")
	if err := s.SetAnswer(1, "B"); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Questions) != 2 || got.Questions[1].CorrectLabel != "A" {
		t.Errorf("questions not round-tripped: %+v", got.Questions)
	}
	if got.Answers[1] != "B" {
		t.Errorf("answers not round-tripped: %+v", got.Answers)
	}

	// 修改读出的副本不能影响存储中的数据
	got.Answers[2] = "C"
	again, _ := repo.Get(ctx, "s1")
	if _, ok := again.Answers[2]; ok {
		t.Error("store leaked a shared reference")
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("Get after delete = %v, want ErrQuizNotFound", err)
	}
}

func TestMemorySessionRepository(t *testing.T) {
	exerciseRepository(t, NewMemorySessionRepository(time.Hour))
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	now := time.Now()
	repo.now = func() time.Time { return now }

	if err := repo.Save(context.Background(), sampleSession("s1")); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := repo.Get(context.Background(), "s1"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("expired session returned err %v, want ErrQuizNotFound", err)
	}
}

func TestRedisSessionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewRedisSessionRepository(rdb, time.Hour)
	exerciseRepository(t, repo)

	if err := repo.Save(context.Background(), sampleSession("s2")); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("quiz:session:s2"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := repo.Get(context.Background(), "s2"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("expired redis session returned err %v", err)
	}
}
