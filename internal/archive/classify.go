package archive

import "regexp"

// Kind is the collapsed view of a payload classification.
type Kind int

const (
	KindPlainText Kind = iota
	KindAttachment
	KindReaction
	KindAction
)

// Payload is the classification of one message's content, computed once at
// message construction. A payload may match more than one category; the
// individual flags record every match, Kind() collapses them with
// attachment > reaction > action precedence.
type Payload struct {
	Text    string
	HasText bool

	Attachment bool
	Reaction   bool
	Action     bool
}

// Export phrasings vary by locale and app version, so the classifier is an
// extensible pattern table rather than inline conditionals. All patterns are
// anchored at the start of the content.
var (
	attachmentPatterns = compileAll(
		`.*sent an attachment.`,
	)
	reactionPatterns = compileAll(
		`.* reacted.*to your message `,
		`Reacted.*to your message `,
		`.*liked a message`,
		`Liked by .*`,
	)
	actionPatterns = compileAll(
		`.* started an audio call`,
		`You missed an audio call`,
		`.* started a video chat`,
		`You missed a video chat`,
		`.* created the group`,
	)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`^` + e)
	}
	return out
}

// Classify derives a payload from a message's decoded content. hasText is
// false when the record carried no content field at all; hasMedia is true
// when the record carried a photo or share attachment. Pure function, no
// side effects.
func Classify(text string, hasText, hasMedia bool) Payload {
	p := Payload{Text: text, HasText: hasText}

	if !hasText {
		// No content at all is treated as attachment-like.
		p.Attachment = true
		return p
	}
	if hasMedia {
		p.Attachment = true
	}

	p.Attachment = p.Attachment || matchAny(attachmentPatterns, text)
	p.Reaction = matchAny(reactionPatterns, text)
	p.Action = matchAny(actionPatterns, text)
	return p
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Kind collapses the match flags into a single tag.
func (p Payload) Kind() Kind {
	switch {
	case p.Attachment:
		return KindAttachment
	case p.Reaction:
		return KindReaction
	case p.Action:
		return KindAction
	default:
		return KindPlainText
	}
}

// IsPlainText reports whether the payload is an ordinary text message:
// content present and nothing matched a system phrasing.
func (p Payload) IsPlainText() bool {
	return p.HasText && !p.Attachment && !p.Reaction && !p.Action
}
