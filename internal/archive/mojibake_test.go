package archive

import "testing"

func TestFixMojibake_RepairsDoubleEncoding(t *testing.T) {
	// "café" encoded as UTF-8 then re-read as Latin-1 yields "cafÃ©".
	got := FixMojibake("cafÃ©")
	if got != "café" {
		t.Errorf("FixMojibake = %q, want %q", got, "café")
	}
}

func TestFixMojibake_RepairsEmoji(t *testing.T) {
	// U+2764 HEAVY BLACK HEART mangled into three Latin-1 code points.
	got := FixMojibake("â¤")
	if got != "❤" {
		t.Errorf("FixMojibake = %q, want %q", got, "❤")
	}
}

func TestFixMojibake_LeavesCleanTextAlone(t *testing.T) {
	// Text with runes above U+00FF cannot be the Latin-1 reading of UTF-8
	// bytes, so it passes through untouched.
	for _, s := range []string{"already fine ❤", "日本語"} {
		if got := FixMojibake(s); got != s {
			t.Errorf("FixMojibake(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestFixMojibake_PlainASCIIUnchanged(t *testing.T) {
	if got := FixMojibake("hello there"); got != "hello there" {
		t.Errorf("FixMojibake = %q", got)
	}
}

func TestFixMojibake_InvalidRoundTripUnchanged(t *testing.T) {
	// All code points fit in a byte but the bytes are not valid UTF-8.
	s := "ÿþ"
	if got := FixMojibake(s); got != s {
		t.Errorf("FixMojibake(%q) = %q, want unchanged", s, got)
	}
}
