package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/chat"
)

func TestServiceGetSession(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, session.ID)
	}

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("expected empty transcript, got %d turns", len(transcript))
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.LoadTranscript(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceFirstContactIsEmpty(t *testing.T) {
	svc := NewService()
	transcript, err := svc.Get(context.Background(), "new-session")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("expected empty transcript, got %v", transcript)
	}
}

func TestServicePutThenGet(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	stored := chat.Transcript{chat.UserTurn("hi"), chat.BotTurn("hello")}
	if err := svc.Put(ctx, "s1", stored); err != nil {
		t.Fatalf("Put err: %v", err)
	}
	stored[0] = chat.UserTurn("mutated")

	got, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(got) != 2 || got[0].Content != "hi" {
		t.Fatalf("store must keep its own copy, got %v", got)
	}

	got[1] = chat.BotTurn("changed")
	again, _ := svc.Get(ctx, "s1")
	if again[1].Content != "hello" {
		t.Fatal("Get must return a copy")
	}

	if _, err := svc.GetSession(ctx, "s1"); err != nil {
		t.Fatalf("Put should register the session: %v", err)
	}
}

func TestServiceRejectsEmptyID(t *testing.T) {
	svc := NewService()
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, ErrSessionIDRequired) {
		t.Fatalf("expected ErrSessionIDRequired, got %v", err)
	}
	if err := svc.Put(context.Background(), "", nil); !errors.Is(err, ErrSessionIDRequired) {
		t.Fatalf("expected ErrSessionIDRequired, got %v", err)
	}
}

func TestServicePruneIdle(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	if err := svc.Put(ctx, "old", chat.Transcript{chat.UserTurn("a")}); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	now = now.Add(20 * time.Minute)
	if err := svc.Put(ctx, "fresh", chat.Transcript{chat.UserTurn("b")}); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	now = now.Add(15 * time.Minute)
	if removed := svc.PruneIdle(30 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 pruned session, got %d", removed)
	}
	if _, err := svc.GetSession(ctx, "old"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("old session should be pruned")
	}
	if svc.Len() != 1 {
		t.Fatalf("expected 1 session left, got %d", svc.Len())
	}
	if svc.PruneIdle(0) != 0 {
		t.Fatal("zero ttl must not prune")
	}
}
