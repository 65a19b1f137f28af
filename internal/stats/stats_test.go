package stats

import (
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

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestActiveHours(t *testing.T) {
	inbox := archive.NewInbox(&archive.Conversation{
		Title:        "chat",
		Participants: []string{"A", "B"},
		Messages: []archive.Message{
			msg("A", at(9, 0), "morning"),
			msg("A", at(9, 30), "still morning"),
			msg("B", at(9, 45), "not counted, wrong sender"),
			msg("A", at(22, 0), "night"),
		},
	})

	hours := ActiveHours(inbox, "A")

	if hours[9] != 2 {
		t.Errorf("hours[9] = %d, want 2", hours[9])
	}
	if hours[22] != 1 {
		t.Errorf("hours[22] = %d, want 1", hours[22])
	}
	total := 0
	for _, n := range hours {
		total += n
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestActiveHours_SkipsTextlessMessages(t *testing.T) {
	inbox := archive.NewInbox(&archive.Conversation{
		Title:        "chat",
		Participants: []string{"A", "B"},
		Messages: []archive.Message{
			{Sender: "A", Timestamp: at(9, 0), Payload: archive.Classify("", false, true)},
		},
	})

	hours := ActiveHours(inbox, "A")
	if hours[9] != 0 {
		t.Errorf("hours[9] = %d, want textless message excluded", hours[9])
	}
}

func TestActiveHours_NoMessagesIsZero(t *testing.T) {
	inbox := archive.NewInbox()
	hours := ActiveHours(inbox, "A")
	for h, n := range hours {
		if n != 0 {
			t.Fatalf("hours[%d] = %d, want all zero", h, n)
		}
	}
}

func TestReplyProbabilityByHour(t *testing.T) {
	inbox := archive.NewInbox(&archive.Conversation{
		Title:        "chat",
		Participants: []string{"A", "B"},
		Messages: []archive.Message{
			// Hour 9: two B messages, one followed by A.
			msg("B", at(9, 0), "b1"),
			msg("A", at(9, 1), "reply"),
			msg("B", at(9, 2), "b2"),
			msg("B", at(9, 3), "b3 follows, no reply"),
			// The trailing B message at 9:03 has a successor in hour 10.
			msg("C", at(10, 0), "c1"),
			msg("A", at(10, 1), "reply"),
		},
	})

	probs := ReplyProbabilityByHour(inbox, "A")

	// Hour 9 pairs: (b1→A reply), (b2→b3 no), (b3→c1 no) ⇒ 1/3.
	if want := 1.0 / 3.0; probs[9] != want {
		t.Errorf("probs[9] = %v, want %v", probs[9], want)
	}
	// Hour 10 pairs: (c1→A reply) ⇒ 1.
	if probs[10] != 1.0 {
		t.Errorf("probs[10] = %v, want 1", probs[10])
	}
	// Hours with no observed pairs are exactly 0.
	if probs[3] != 0 {
		t.Errorf("probs[3] = %v, want 0", probs[3])
	}
	for h, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probs[%d] = %v outside [0,1]", h, p)
		}
	}
}

func TestReplyProbabilityByHour_TargetMessagesNotPairs(t *testing.T) {
	inbox := archive.NewInbox(&archive.Conversation{
		Title:        "chat",
		Participants: []string{"A", "B"},
		Messages: []archive.Message{
			msg("A", at(9, 0), "a1"),
			msg("A", at(9, 1), "a2"),
		},
	})

	probs := ReplyProbabilityByHour(inbox, "A")
	if probs[9] != 0 {
		t.Errorf("probs[9] = %v, target-authored messages are never 'current'", probs[9])
	}
}
