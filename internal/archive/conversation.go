package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

// MessageFilter decides whether a message enters a conversation's history.
type MessageFilter func(Message) bool

// ConversationFilter decides whether a loaded conversation enters the inbox.
type ConversationFilter func(*Conversation) bool

// Options tunes ingestion. The zero value accepts every record and repairs
// text with FixMojibake.
type Options struct {
	// Repair decodes mis-encoded export text. Defaults to FixMojibake.
	Repair func(string) string
	// KeepMessage drops records before they enter a conversation. Defaults
	// to accepting everything.
	KeepMessage MessageFilter
	// KeepConversation excludes whole conversations from the inbox. Defaults
	// to accepting everything.
	KeepConversation ConversationFilter
	// Logger receives ingestion warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Repair == nil {
		o.Repair = FixMojibake
	}
	if o.KeepMessage == nil {
		o.KeepMessage = func(Message) bool { return true }
	}
	if o.KeepConversation == nil {
		o.KeepConversation = func(*Conversation) bool { return true }
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Conversation is one direct or group chat: its metadata plus the full
// message history, oldest first.
type Conversation struct {
	Title        string
	Participants []string
	Messages     []Message
}

// IsGroup reports whether the conversation has more than two participants.
// The export does not store this; it is always derived.
func (c *Conversation) IsGroup() bool {
	return len(c.Participants) > 2
}

// HasParticipant reports whether name is in the conversation's participant
// set.
func (c *Conversation) HasParticipant(name string) bool {
	for _, p := range c.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// LoadConversation ingests every export file of one conversation directory.
//
// Files are merged in embedded-index order. Metadata (title, participants)
// is authoritative from the first file only; later files contribute messages
// only, and a metadata mismatch in a later file is logged but never
// reconciled. Each file's record batch arrives newest first, so per-file
// contributions are reversed and the merged history is stable-sorted by
// timestamp: after ingestion Messages is ascending, ties in chronological
// input order.
func LoadConversation(dir string, opts Options) (*Conversation, error) {
	opts = opts.withDefaults()

	paths, err := conversationFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no export files in %s", dir)
	}

	conv := &Conversation{}
	for i, path := range paths {
		raw, err := readExportFile(path)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			conv.Title = opts.Repair(raw.Title)
			for _, p := range raw.Participants {
				conv.Participants = append(conv.Participants, opts.Repair(p.Name))
			}
		} else if mismatch := metadataMismatch(conv, raw, opts.Repair); mismatch != "" {
			opts.Logger.Warn("conversation metadata differs from first file, keeping first",
				"file", path,
				"field", mismatch,
			)
		}

		batch := make([]Message, 0, len(raw.Messages))
		for j, rec := range raw.Messages {
			msg, err := newMessage(rec, opts.Repair)
			if err != nil {
				return nil, fmt.Errorf("%s: message %d: %w", path, j, err)
			}
			if opts.KeepMessage(msg) {
				batch = append(batch, msg)
			}
		}

		// Each file is a newest-first batch; restore chronological order
		// before merging.
		for l, r := 0, len(batch)-1; l < r; l, r = l+1, r-1 {
			batch[l], batch[r] = batch[r], batch[l]
		}
		conv.Messages = append(conv.Messages, batch...)
	}

	sort.SliceStable(conv.Messages, func(i, j int) bool {
		return conv.Messages[i].Timestamp.Before(conv.Messages[j].Timestamp)
	})

	return conv, nil
}

func readExportFile(path string) (*rawConversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	var raw rawConversation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &raw, nil
}

func metadataMismatch(conv *Conversation, raw *rawConversation, repair func(string) string) string {
	if repair(raw.Title) != conv.Title {
		return "title"
	}
	if len(raw.Participants) != len(conv.Participants) {
		return "participants"
	}
	for i, p := range raw.Participants {
		if repair(p.Name) != conv.Participants[i] {
			return "participants"
		}
	}
	return ""
}
