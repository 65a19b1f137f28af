package dataset

import (
	"github.com/instapersona/dmcorpus/internal/archive"
)

// ContextExample is one (context, response) pair of the response dataset.
type ContextExample struct {
	Context  string `json:"context"`
	Response string `json:"response"`
}

// BuildResponseDataset emits one ContextExample per target-authored message
// in every conversation the target participates in. The context is the up to
// contextSize messages immediately preceding the response, rendered oldest
// first through the formatter with the response's timestamp as reference. A
// window clipped at the start of the conversation (including an empty one
// for a conversation-opening message) is valid, just shorter.
//
// The response text may be empty when the target's message carried no text;
// callers filter those post hoc if unwanted.
func BuildResponseDataset(inbox *archive.Inbox, target string, contextSize int, format Formatter) []ContextExample {
	if format == nil {
		format = AbsoluteTime
	}

	var out []ContextExample
	for _, conv := range inbox.Conversations() {
		if !conv.HasParticipant(target) {
			continue
		}
		for i, m := range conv.Messages {
			if m.Sender != target {
				continue
			}
			out = append(out, ContextExample{
				Context:  renderContext(conv.Messages, i-contextSize, i, m.Timestamp, format),
				Response: m.Payload.Text,
			})
		}
	}
	return out
}
