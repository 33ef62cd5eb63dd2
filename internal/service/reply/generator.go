package reply

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/llm"
)

// DefaultWordBudget caps generated replies when no budget is configured.
const DefaultWordBudget = 80

const generateUserPrompt = `Conversation so far:
{history}

Latest message: {message}
Detected sentiment: {sentiment}

Reply:`

// FallbackReply is returned whenever generation fails.
func FallbackReply(sentiment string) string {
	return fmt.Sprintf("Thanks for reaching out! It sounds like you're feeling %s about this. Could you tell me a little more so I can help?", sentiment)
}

// Generator writes free-form empathetic replies.
type Generator struct {
	chain *llm.Chain
}

// NewGenerator compiles the reply prompt. chatModel may be nil, in which case
// every call returns the fallback reply.
func NewGenerator(ctx context.Context, chatModel model.BaseChatModel, policy llm.Policy, wordBudget int) (*Generator, error) {
	if wordBudget <= 0 {
		wordBudget = DefaultWordBudget
	}

	tmpl := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt(wordBudget)),
		schema.UserMessage(generateUserPrompt),
	)

	chain, err := llm.NewChain(ctx, "generate", chatModel, tmpl, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to build reply generator: %w", err)
	}
	return &Generator{chain: chain}, nil
}

func systemPrompt(wordBudget int) string {
	return strings.Join([]string{
		"You are a friendly, empathetic assistant for a freelance chatbot developer.",
		"Match your tone to the detected sentiment: be upbeat when it is positive, clear and informative when it is neutral, and apologetic and reassuring when it is negative.",
		"Use the conversation so far for context but answer the latest message.",
		fmt.Sprintf("Keep the reply under %d words and end with one short follow-up question.", wordBudget),
		"Reply in plain text without markdown.",
	}, " ")
}

// Generate returns the model's reply, or FallbackReply with ok=false when the
// call fails or yields nothing.
func (g *Generator) Generate(ctx context.Context, message, sentiment, summary string) (string, bool) {
	text, err := g.chain.Run(ctx, map[string]any{
		"history":   summary,
		"message":   message,
		"sentiment": sentiment,
	})
	if err != nil {
		log.Printf("[reply] %s failed, using fallback: %v", g.chain.Name(), err)
		return FallbackReply(sentiment), false
	}
	return text, true
}
