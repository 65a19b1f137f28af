// Package stats derives read-only hour-of-day summaries from an ingested
// inbox: when the target participant is active, and how likely they are to
// be the next to speak.
package stats

import (
	"github.com/instapersona/dmcorpus/internal/archive"
)

// ActiveHours counts the target's text-bearing messages per local hour of
// day. An all-zero histogram just means the target never spoke.
func ActiveHours(inbox *archive.Inbox, target string) [24]int {
	var hours [24]int
	for _, conv := range inbox.Conversations() {
		if !conv.HasParticipant(target) {
			continue
		}
		for _, m := range conv.Messages {
			if m.Sender == target && m.Payload.HasText && m.Payload.Text != "" {
				hours[m.Timestamp.Hour()]++
			}
		}
	}
	return hours
}

// ReplyProbabilityByHour estimates, for each hour of day, the probability
// that the target is the next to speak after someone else's message. For
// every adjacent pair (current, next) where current is not the target, the
// pair buckets by current's local hour; the hour's probability is
// replies/pairs, or 0 for hours with no observed pairs.
//
// The resulting 24-element array is consumed downstream as a lookup table
// indexed by hour, so index order is part of the contract.
func ReplyProbabilityByHour(inbox *archive.Inbox, target string) [24]float64 {
	var replies, pairs [24]int

	for _, conv := range inbox.Conversations() {
		if !conv.HasParticipant(target) {
			continue
		}
		for i := 0; i+1 < len(conv.Messages); i++ {
			current := conv.Messages[i]
			if current.Sender == target {
				continue
			}
			hour := current.Timestamp.Hour()
			pairs[hour]++
			if conv.Messages[i+1].Sender == target {
				replies[hour]++
			}
		}
	}

	var probs [24]float64
	for h := range probs {
		if pairs[h] > 0 {
			probs[h] = float64(replies[h]) / float64(pairs[h])
		}
	}
	return probs
}
