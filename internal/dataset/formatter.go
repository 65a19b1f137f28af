package dataset

import (
	"fmt"
	"math"
	"time"

	"github.com/instapersona/dmcorpus/internal/archive"
)

// Formatter renders one context message relative to a reference point (the
// timestamp of the message the context leads up to).
type Formatter func(m archive.Message, ref time.Time) string

// AbsoluteTime renders "{sender} (yyyy-mm-dd HH:MM:SS): {text}". The default
// formatter.
func AbsoluteTime(m archive.Message, _ time.Time) string {
	return fmt.Sprintf("%s (%s): %s", m.Sender, m.Timestamp.Format("2006-01-02 15:04:05"), m.Payload.Text)
}

// RelativeTime renders "{sender} ({n}s): {text}" where n is the whole number
// of seconds between the message and the reference point. Datasets built
// with it teach elapsed-time awareness instead of wall-clock memorization.
func RelativeTime(m archive.Message, ref time.Time) string {
	secs := math.Round(ref.Sub(m.Timestamp).Seconds())
	return fmt.Sprintf("%s (%ds): %s", m.Sender, int64(secs), m.Payload.Text)
}

// renderContext joins the formatter output for window[from:to], oldest first.
func renderContext(window []archive.Message, from, to int, ref time.Time, format Formatter) string {
	if from < 0 {
		from = 0
	}
	out := ""
	for i := from; i < to; i++ {
		if i > from {
			out += "\n"
		}
		out += format(window[i], ref)
	}
	return out
}
