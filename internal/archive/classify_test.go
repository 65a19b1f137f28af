package archive

import "testing"

func TestClassify_PlainText(t *testing.T) {
	p := Classify("see you at 8", true, false)

	if !p.IsPlainText() {
		t.Errorf("expected plain text, got %+v", p)
	}
	if p.Kind() != KindPlainText {
		t.Errorf("Kind() = %v, want KindPlainText", p.Kind())
	}
}

func TestClassify_NoContentIsAttachment(t *testing.T) {
	p := Classify("", false, false)

	if !p.Attachment {
		t.Error("expected Attachment for a record with no content")
	}
	if p.IsPlainText() {
		t.Error("a record with no content must not be plain text")
	}
}

func TestClassify_MediaIsAttachment(t *testing.T) {
	p := Classify("check this out", true, true)

	if !p.Attachment {
		t.Error("expected Attachment for a record with photos/share")
	}
	if p.IsPlainText() {
		t.Error("a media record must not be plain text")
	}
}

func TestClassify_ReactionPhrase(t *testing.T) {
	// From the export format: "Reacted ❤️ to your message "
	p := Classify("Reacted ❤️ to your message ", true, false)

	if !p.Reaction {
		t.Error("expected Reaction")
	}
	if p.Attachment {
		t.Error("did not expect Attachment")
	}
	if p.Kind() != KindReaction {
		t.Errorf("Kind() = %v, want KindReaction", p.Kind())
	}
}

func TestClassify_PhraseTable(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"Katherine sent an attachment.", KindAttachment},
		{"Katherine reacted ☠️ to your message ", KindReaction},
		{"Katherine liked a message", KindReaction},
		{"Liked by Katherine", KindReaction},
		{"Katherine started an audio call", KindAction},
		{"You missed an audio call", KindAction},
		{"Katherine started a video chat", KindAction},
		{"You missed a video chat", KindAction},
		{"Katherine created the group.", KindAction},
		{"let's grab lunch tomorrow", KindPlainText},
	}

	for _, tt := range tests {
		p := Classify(tt.text, true, false)
		if p.Kind() != tt.want {
			t.Errorf("Classify(%q).Kind() = %v, want %v", tt.text, p.Kind(), tt.want)
		}
	}
}

func TestClassify_PatternsAnchoredAtStart(t *testing.T) {
	// "Liked by" only matches at the start of the content.
	p := Classify("she said Liked by everyone", true, false)
	if p.Reaction {
		t.Error("mid-string phrase must not classify as reaction")
	}
}

func TestClassify_FlagsNotExclusive(t *testing.T) {
	// A single content string can match multiple categories; all flags stick.
	p := Classify("You missed a video chat", true, true)
	if !p.Action || !p.Attachment {
		t.Errorf("expected Action and Attachment both set, got %+v", p)
	}
}
