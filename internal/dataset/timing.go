package dataset

import (
	"math/rand"

	"github.com/instapersona/dmcorpus/internal/archive"
)

// TimingExample is one labeled instant of the reply-timing dataset. Label 1
// means the context ends exactly before a genuine target reply; label 0
// means it ends before a non-reply instant drawn from the same burst.
type TimingExample struct {
	Context string `json:"context"`
	Label   int    `json:"label"`
}

// burst is one high-density window: a maximal span of messages during which
// consecutive target replies are never more than contextSize messages apart,
// plus the positions of those replies within the span.
type burst struct {
	messages  []archive.Message
	senderIdx []int
}

// BuildTimingDataset detects high-density activity windows for the target
// and draws a class-balanced set of reply/non-reply instants from each.
// Sampling uses the supplied generator, so reproducibility is a property of
// the call: same inbox + same seed yields identical output.
func BuildTimingDataset(inbox *archive.Inbox, target string, contextSize int, format Formatter, rng *rand.Rand) []TimingExample {
	if format == nil {
		format = AbsoluteTime
	}

	var bursts []burst
	for _, conv := range inbox.Conversations() {
		if !conv.HasParticipant(target) {
			continue
		}
		bursts = append(bursts, detectBursts(conv.Messages, target, contextSize)...)
	}

	var out []TimingExample
	for _, b := range bursts {
		out = append(out, sampleBurst(b, contextSize, format, rng)...)
	}
	return out
}

// detectBursts is a two-state scan (idle / in-burst) over the immutable
// message slice, tracking window bounds as indices.
//
// Idle: a target message at i opens a window seeded with up to contextSize
// prior messages and becomes the burst reference point. In-burst: a message
// within contextSize of the reference extends the window, and advances the
// reference when target-authored. A message beyond that distance closes the
// burst; the closing message is not part of the window and does not seed the
// next one. A burst still open at the end of the history is discarded.
func detectBursts(msgs []archive.Message, target string, contextSize int) []burst {
	var bursts []burst
	start, end := 0, 0
	refI := -1
	var senderIdx []int

	for i, m := range msgs {
		if refI < 0 {
			if m.Sender == target {
				start = i - contextSize
				if start < 0 {
					start = 0
				}
				end = i + 1
				senderIdx = []int{i - start}
				refI = i
			}
			continue
		}

		if i-refI <= contextSize {
			end = i + 1
			if m.Sender == target {
				senderIdx = append(senderIdx, i-start)
				refI = i
			}
			continue
		}

		bursts = append(bursts, burst{messages: msgs[start:end], senderIdx: senderIdx})
		senderIdx = nil
		refI = -1
	}

	return bursts
}

// sampleBurst draws exactly k negatives for the window's k positives and
// renders both. Negative candidates are the positions far enough in to carry
// a full-size context and not themselves reply instants; a window with fewer
// candidates than positives cannot be balanced and contributes nothing.
func sampleBurst(b burst, contextSize int, format Formatter, rng *rand.Rand) []TimingExample {
	k := len(b.senderIdx)

	isReply := make(map[int]bool, k)
	for _, i := range b.senderIdx {
		isReply[i] = true
	}

	var candidates []int
	for i := contextSize + 1; i < len(b.messages); i++ {
		if !isReply[i] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < k {
		return nil
	}

	out := make([]TimingExample, 0, 2*k)
	for _, j := range rng.Perm(len(candidates))[:k] {
		i := candidates[j]
		out = append(out, TimingExample{
			Context: renderContext(b.messages, i-contextSize, i, b.messages[i].Timestamp, format),
			Label:   0,
		})
	}
	for _, i := range b.senderIdx {
		out = append(out, TimingExample{
			Context: renderContext(b.messages, i-contextSize, i, b.messages[i].Timestamp, format),
			Label:   1,
		})
	}
	return out
}
