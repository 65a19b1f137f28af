package archive

// Inbox is the full archive: every conversation that passed the filters,
// keyed by title, plus the union of their participant sets. Built once per
// run and read-only afterwards.
type Inbox struct {
	conversations   map[string]*Conversation
	order           []string // titles in load order, for deterministic iteration
	AllParticipants map[string]bool
}

// NewInbox assembles an inbox from already-built conversations, in the
// given order. Duplicate titles resolve last-write-wins, as in LoadInbox.
func NewInbox(convs ...*Conversation) *Inbox {
	inbox := &Inbox{
		conversations:   make(map[string]*Conversation),
		AllParticipants: make(map[string]bool),
	}
	for _, conv := range convs {
		if _, dup := inbox.conversations[conv.Title]; !dup {
			inbox.order = append(inbox.order, conv.Title)
		}
		inbox.conversations[conv.Title] = conv
		for _, p := range conv.Participants {
			inbox.AllParticipants[p] = true
		}
	}
	return inbox
}

// LoadInbox ingests one conversation per sub-directory of root.
//
// Conversation titles collide legitimately in real archives (unrelated group
// renames), so duplicates resolve last-write-wins with a logged warning
// rather than failing the run.
func LoadInbox(root string, opts Options) (*Inbox, error) {
	opts = opts.withDefaults()

	dirs, err := conversationDirs(root)
	if err != nil {
		return nil, err
	}

	inbox := &Inbox{
		conversations:   make(map[string]*Conversation),
		AllParticipants: make(map[string]bool),
	}

	for _, dir := range dirs {
		conv, err := LoadConversation(dir, opts)
		if err != nil {
			return nil, err
		}
		if !opts.KeepConversation(conv) {
			continue
		}

		if _, dup := inbox.conversations[conv.Title]; dup {
			opts.Logger.Warn("duplicate conversation title, keeping last",
				"title", conv.Title,
				"dir", dir,
			)
		} else {
			inbox.order = append(inbox.order, conv.Title)
		}
		inbox.conversations[conv.Title] = conv

		for _, p := range conv.Participants {
			inbox.AllParticipants[p] = true
		}
	}

	return inbox, nil
}

// Conversations returns every conversation in load order. Load order is
// stable for a given archive, which keeps dataset emission deterministic;
// the order itself is not part of the artifact contract.
func (in *Inbox) Conversations() []*Conversation {
	out := make([]*Conversation, 0, len(in.order))
	for _, title := range in.order {
		out = append(out, in.conversations[title])
	}
	return out
}

// Get returns the conversation with the given title, if present.
func (in *Inbox) Get(title string) (*Conversation, bool) {
	c, ok := in.conversations[title]
	return c, ok
}

// Len returns the number of conversations in the inbox.
func (in *Inbox) Len() int {
	return len(in.conversations)
}
