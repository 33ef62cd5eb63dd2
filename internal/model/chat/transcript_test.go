package chat

import (
	"fmt"
	"testing"
)

func TestAppendEvictsOldestTurn(t *testing.T) {
	var transcript Transcript
	for i := 1; i <= DefaultTranscriptCap; i++ {
		transcript = transcript.Append(DefaultTranscriptCap, UserTurn(fmt.Sprintf("turn-%d", i)))
	}
	if len(transcript) != DefaultTranscriptCap {
		t.Fatalf("expected %d turns, got %d", DefaultTranscriptCap, len(transcript))
	}

	transcript = transcript.Append(DefaultTranscriptCap, BotTurn("turn-21"))

	if len(transcript) != DefaultTranscriptCap {
		t.Fatalf("expected length to stay at %d, got %d", DefaultTranscriptCap, len(transcript))
	}
	if transcript[0].Content != "turn-2" {
		t.Fatalf("expected turn-1 evicted, first is %q", transcript[0].Content)
	}
	if last := transcript[len(transcript)-1]; last.Content != "turn-21" || last.Role != RoleBot {
		t.Fatalf("unexpected last turn %+v", last)
	}
}

func TestAppendPairAcrossCap(t *testing.T) {
	transcript := Transcript{UserTurn("a"), BotTurn("b"), UserTurn("c")}
	got := transcript.Append(4, BotTurn("d"), UserTurn("e"))

	want := []string{"b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(got))
	}
	for i, content := range want {
		if got[i].Content != content {
			t.Fatalf("turn %d: expected %q got %q", i, content, got[i].Content)
		}
	}
}

func TestAppendDoesNotMutateReceiver(t *testing.T) {
	base := make(Transcript, 0, 8)
	base = append(base, UserTurn("hello"))

	first := base.Append(20, BotTurn("one"))
	second := base.Append(20, BotTurn("two"))

	if len(base) != 1 {
		t.Fatalf("receiver changed length: %d", len(base))
	}
	if first[1].Content != "one" || second[1].Content != "two" {
		t.Fatalf("appends share storage: %v %v", first, second)
	}
}

func TestAppendDefaultsLimit(t *testing.T) {
	var transcript Transcript
	for i := 0; i < 30; i++ {
		transcript = transcript.Append(0, UserTurn("x"))
	}
	if len(transcript) != DefaultTranscriptCap {
		t.Fatalf("expected default cap, got %d", len(transcript))
	}
}
