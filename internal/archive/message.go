package archive

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is one immutable record in a conversation. It is built once during
// ingestion and never mutated afterwards.
type Message struct {
	Sender    string
	Timestamp time.Time
	Payload   Payload
}

// rawMessage mirrors a single message record in an export file.
type rawMessage struct {
	SenderName  string          `json:"sender_name"`
	TimestampMS int64           `json:"timestamp_ms"`
	Content     *string         `json:"content"`
	Photos      json.RawMessage `json:"photos"`
	Share       json.RawMessage `json:"share"`
}

// rawConversation mirrors one export file: a batch of message records plus
// conversation metadata.
type rawConversation struct {
	Title        string           `json:"title"`
	Participants []rawParticipant `json:"participants"`
	Messages     []rawMessage     `json:"messages"`
}

type rawParticipant struct {
	Name string `json:"name"`
}

// newMessage builds a Message from a raw record. Sender and content pass
// through the text repair function exactly once; timestamp_ms is converted
// once. A record missing its sender or timestamp is a hard error: it means
// the export format has changed and must not be silently skipped.
func newMessage(raw rawMessage, repair func(string) string) (Message, error) {
	if raw.SenderName == "" {
		return Message{}, fmt.Errorf("record missing sender_name")
	}
	if raw.TimestampMS == 0 {
		return Message{}, fmt.Errorf("record missing timestamp_ms")
	}

	hasText := raw.Content != nil
	text := ""
	if hasText {
		text = repair(*raw.Content)
	}
	hasMedia := rawFieldPresent(raw.Photos) || rawFieldPresent(raw.Share)

	return Message{
		Sender:    repair(raw.SenderName),
		Timestamp: time.UnixMilli(raw.TimestampMS),
		Payload:   Classify(text, hasText, hasMedia),
	}, nil
}

func rawFieldPresent(f json.RawMessage) bool {
	switch string(f) {
	case "", "null", "[]", "{}":
		return false
	}
	return true
}
