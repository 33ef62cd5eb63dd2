package chat

// DefaultTranscriptCap bounds the number of turns kept per session.
const DefaultTranscriptCap = 20

// Transcript is the ordered, capped history of one session.
type Transcript []Turn

// Append returns a new transcript holding t followed by turns, keeping only
// the newest limit turns. The receiver is left untouched so callers can share
// transcripts between goroutines without copying first.
func (t Transcript) Append(limit int, turns ...Turn) Transcript {
	if limit <= 0 {
		limit = DefaultTranscriptCap
	}

	total := len(t) + len(turns)
	start := 0
	if total > limit {
		start = total - limit
	}

	out := make(Transcript, 0, total-start)
	for i := start; i < total; i++ {
		if i < len(t) {
			out = append(out, t[i])
			continue
		}
		out = append(out, turns[i-len(t)])
	}
	return out
}

// Clone returns a copy that does not share a backing array with t.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return Transcript{}
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}
