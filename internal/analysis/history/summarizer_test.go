package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/chat"
)

func pairs(n int) chat.Transcript {
	var t chat.Transcript
	for i := 1; i <= n; i++ {
		t = append(t, chat.UserTurn(fmt.Sprintf("q%d", i)), chat.BotTurn(fmt.Sprintf("a%d", i)))
	}
	return t
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != Empty {
		t.Fatalf("expected sentinel, got %q", got)
	}
	if got := Summarize(chat.Transcript{}); got != Empty {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestSummarizeKeepsLastThreePairs(t *testing.T) {
	for _, n := range []int{3, 4, 10} {
		got := Summarize(pairs(n))
		lines := strings.Split(got, "\n")
		if len(lines) != 3 {
			t.Fatalf("n=%d: expected 3 lines, got %d: %q", n, len(lines), got)
		}
		want := fmt.Sprintf("User: q%d | Bot: a%d", n-2, n-2)
		if lines[0] != want {
			t.Fatalf("n=%d: expected first line %q, got %q", n, want, lines[0])
		}
		if lines[2] != fmt.Sprintf("User: q%d | Bot: a%d", n, n) {
			t.Fatalf("n=%d: unexpected last line %q", n, lines[2])
		}
	}
}

func TestSummarizeFewerPairs(t *testing.T) {
	got := Summarize(pairs(1))
	if got != "User: q1 | Bot: a1" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSummarizeTrailingUserTurn(t *testing.T) {
	transcript := append(pairs(1), chat.UserTurn("still there?"))
	got := Summarize(transcript)
	want := "User: q1 | Bot: a1\nLatest User: still there?"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSummarizeOddWindowStartsWithBot(t *testing.T) {
	transcript := append(pairs(3), chat.UserTurn("q4"))
	got := Summarize(transcript)
	lines := strings.Split(got, "\n")
	if lines[0] != "Bot: a1" {
		t.Fatalf("expected orphan bot line, got %q", lines[0])
	}
	if lines[len(lines)-1] != "Latest User: q4" {
		t.Fatalf("expected latest user line, got %q", lines[len(lines)-1])
	}
}

func TestSummarizeTruncatesLongTurns(t *testing.T) {
	long := strings.Repeat("é", 80)
	got := Summarize(chat.Transcript{chat.UserTurn(long), chat.BotTurn("ok")})
	want := "User: " + strings.Repeat("é", MaxTurnRunes) + Ellipsis + " | Bot: ok"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	exact := strings.Repeat("a", MaxTurnRunes)
	if got := Summarize(chat.Transcript{chat.UserTurn(exact)}); got != "Latest User: "+exact {
		t.Fatalf("content at the limit must not be truncated: %q", got)
	}
}

func TestSummarizeFlattensNewlines(t *testing.T) {
	got := Summarize(chat.Transcript{chat.UserTurn("line one\nline two"), chat.BotTurn("<b>hi</b>\n")})
	if strings.Count(got, "\n") != 0 {
		t.Fatalf("expected a single line, got %q", got)
	}
}
