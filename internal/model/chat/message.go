package chat

// Role identifies the author of a turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one message in a conversation. Turns are values and are never
// modified after they are appended to a Transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds a turn authored by the caller.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// BotTurn builds a turn authored by the bot.
func BotTurn(content string) Turn {
	return Turn{Role: RoleBot, Content: content}
}
