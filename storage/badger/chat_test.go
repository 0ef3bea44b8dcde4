package badger

import (
	"context"
	"testing"
	"time"

	"github.com/refindhq/refind/core"
)

func TestChatMessageThreadOrder(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	finder := core.IDFromContent([]byte("finder"))
	claimant := core.IDFromContent([]byte("claimant"))

	// Append out of timestamp order; iteration must come back sorted
	messages := []*core.ChatMessage{
		{ClaimId: 5, SenderId: finder, Body: "second", Timestamp: now.Add(-1 * time.Hour)},
		{ClaimId: 5, SenderId: claimant, Body: "first", Timestamp: now.Add(-2 * time.Hour)},
		{ClaimId: 5, SenderId: claimant, Body: "third", Timestamp: now},
	}
	for _, msg := range messages {
		if _, err := repos.Chat.AppendMessage(ctx, msg); err != nil {
			t.Fatalf("Failed to append message: %v", err)
		}
	}

	// Message on a different claim must not leak into the thread
	if _, err := repos.Chat.AppendMessage(ctx, &core.ChatMessage{
		ClaimId: 6, SenderId: finder, Body: "elsewhere", Timestamp: now,
	}); err != nil {
		t.Fatalf("Failed to append message: %v", err)
	}

	thread, err := repos.Chat.GetMessages(ctx, 5)
	if err != nil {
		t.Fatalf("Failed to get messages: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(thread))
	}

	want := []string{"first", "second", "third"}
	for i, msg := range thread {
		if msg.Body != want[i] {
			t.Fatalf("Expected '%s' at position %d, got '%s'", want[i], i, msg.Body)
		}
	}
}

func TestChatMessageDefaultTimestamp(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	msg := &core.ChatMessage{ClaimId: 1, SenderId: 2, Body: "hello"}
	added, err := repos.Chat.AppendMessage(ctx, msg)
	if err != nil {
		t.Fatalf("Failed to append message: %v", err)
	}
	if added.Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added.Timestamp.IsZero() {
		t.Fatal("Expected timestamp to be stamped")
	}
}

func TestChatMessageEmptyThread(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	thread, err := repos.Chat.GetMessages(context.Background(), 404)
	if err != nil {
		t.Fatalf("Failed to get messages: %v", err)
	}
	if len(thread) != 0 {
		t.Fatalf("Expected empty thread, got %d messages", len(thread))
	}
}
