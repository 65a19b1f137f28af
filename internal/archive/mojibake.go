package archive

import "unicode/utf8"

// FixMojibake repairs the double encoding in DM exports: the exporter emits
// UTF-8 bytes reinterpreted as Latin-1 code points. Re-encoding each code
// point as a single byte and decoding the result as UTF-8 recovers the
// original text. Strings that do not round-trip (a rune above U+00FF, or
// bytes that are not valid UTF-8 afterwards) are returned unchanged.
func FixMojibake(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		buf = append(buf, byte(r))
	}
	if !utf8.Valid(buf) {
		return s
	}
	return string(buf)
}
