package dataset

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/instapersona/dmcorpus/internal/archive"
)

func msg(sender string, ts time.Time, text string) archive.Message {
	return archive.Message{
		Sender:    sender,
		Timestamp: ts,
		Payload:   archive.Classify(text, true, false),
	}
}

func conv(title string, participants []string, msgs ...archive.Message) *archive.Conversation {
	return &archive.Conversation{
		Title:        title,
		Participants: participants,
		Messages:     msgs,
	}
}

func TestBuildResponseDataset_Basic(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	inbox := archive.NewInbox(conv("chat", []string{"A", "B"},
		msg("A", base, "first from A"),
		msg("B", base.Add(5*time.Second), "question from B"),
		msg("A", base.Add(7*time.Second), "answer from A"),
	))

	got := BuildResponseDataset(inbox, "A", 10, AbsoluteTime)

	if len(got) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(got))
	}

	// A's opening message has no prior messages: empty context is valid.
	if got[0].Context != "" {
		t.Errorf("examples[0].Context = %q, want empty", got[0].Context)
	}
	if got[0].Response != "first from A" {
		t.Errorf("examples[0].Response = %q", got[0].Response)
	}

	if got[1].Response != "answer from A" {
		t.Errorf("examples[1].Response = %q", got[1].Response)
	}
	if !strings.Contains(got[1].Context, "question from B") {
		t.Errorf("examples[1].Context = %q, want the B message rendered", got[1].Context)
	}
	if strings.Contains(got[1].Context, "answer from A") {
		t.Error("context must never include the response message itself")
	}
}

func TestBuildResponseDataset_WindowBounded(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	msgs := make([]archive.Message, 0, 21)
	for i := 0; i < 20; i++ {
		msgs = append(msgs, msg("B", base.Add(time.Duration(i)*time.Second), fmt.Sprintf("b%d", i)))
	}
	msgs = append(msgs, msg("A", base.Add(20*time.Second), "reply"))

	inbox := archive.NewInbox(conv("chat", []string{"A", "B"}, msgs...))
	got := BuildResponseDataset(inbox, "A", 10, AbsoluteTime)

	if len(got) != 1 {
		t.Fatalf("expected 1 example, got %d", len(got))
	}
	lines := strings.Split(got[0].Context, "\n")
	if len(lines) != 10 {
		t.Fatalf("context has %d lines, want exactly contextSize", len(lines))
	}
	// Oldest first: the window is the 10 messages immediately preceding.
	if !strings.Contains(lines[0], "b10") || !strings.Contains(lines[9], "b19") {
		t.Errorf("window bounds wrong:\n%s", got[0].Context)
	}
}

func TestBuildResponseDataset_SkipsConversationsWithoutTarget(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	inbox := archive.NewInbox(
		conv("no target", []string{"B", "C"},
			msg("B", base, "hi"),
			// A sender can appear without being a participant (left group);
			// participant membership is what qualifies a conversation.
			msg("A", base.Add(time.Second), "ghost"),
		),
		conv("with target", []string{"A", "B"},
			msg("A", base, "hello"),
		),
	)

	got := BuildResponseDataset(inbox, "A", 10, AbsoluteTime)
	if len(got) != 1 {
		t.Fatalf("expected only the qualifying conversation to emit, got %d", len(got))
	}
	if got[0].Response != "hello" {
		t.Errorf("Response = %q", got[0].Response)
	}
}

func TestBuildResponseDataset_EmptyResponseKept(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	attachment := archive.Message{
		Sender:    "A",
		Timestamp: base,
		Payload:   archive.Classify("", false, true),
	}
	inbox := archive.NewInbox(conv("chat", []string{"A", "B"}, attachment))

	got := BuildResponseDataset(inbox, "A", 10, AbsoluteTime)
	if len(got) != 1 {
		t.Fatalf("expected 1 example, got %d", len(got))
	}
	if got[0].Response != "" {
		t.Errorf("Response = %q, want empty (callers filter post hoc)", got[0].Response)
	}
}

func TestAbsoluteTimeFormat(t *testing.T) {
	ts := time.Date(2025, 3, 1, 22, 15, 30, 0, time.UTC)
	got := AbsoluteTime(msg("Ana", ts, "hey"), time.Time{})
	want := "Ana (2025-03-01 22:15:30): hey"
	if got != want {
		t.Errorf("AbsoluteTime = %q, want %q", got, want)
	}
}

func TestRelativeTimeFormat(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ref := ts.Add(95 * time.Second)
	got := RelativeTime(msg("Ana", ts, "hey"), ref)
	want := "Ana (95s): hey"
	if got != want {
		t.Errorf("RelativeTime = %q, want %q", got, want)
	}
}
