// Package history compresses a session transcript into a short context block
// for generation prompts.
package history

import (
	"strings"
	"unicode/utf8"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/chat"
)

const (
	// MaxTurns is the number of most recent turns rendered.
	MaxTurns = 6
	// MaxTurnRunes is the per-turn content budget before truncation.
	MaxTurnRunes = 50
	// Ellipsis marks truncated content.
	Ellipsis = "..."
	// Empty is returned for a transcript with no turns.
	Empty = "No previous conversation."
)

// Summarize renders at most the last MaxTurns turns as "User: u | Bot: b"
// lines. A trailing user turn without a reply becomes "Latest User: u".
func Summarize(transcript chat.Transcript) string {
	if len(transcript) == 0 {
		return Empty
	}

	start := len(transcript) - MaxTurns
	if start < 0 {
		start = 0
	}
	window := transcript[start:]

	lines := make([]string, 0, (len(window)+1)/2)
	for i := 0; i < len(window); i++ {
		turn := window[i]
		content := truncate(turn.Content)

		if turn.Role != chat.RoleUser {
			// Window opened on a reply whose question was cut off.
			lines = append(lines, "Bot: "+content)
			continue
		}

		if i+1 < len(window) && window[i+1].Role == chat.RoleBot {
			lines = append(lines, "User: "+content+" | Bot: "+truncate(window[i+1].Content))
			i++
			continue
		}

		if i == len(window)-1 {
			lines = append(lines, "Latest User: "+content)
		} else {
			lines = append(lines, "User: "+content)
		}
	}

	if len(lines) == 0 {
		return Empty
	}
	return strings.Join(lines, "\n")
}

func truncate(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= MaxTurnRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:MaxTurnRunes]) + Ellipsis
}
