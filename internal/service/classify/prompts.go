package classify

import "github.com/AquinasRousseau/sentiment-chatbot-api/internal/analysis/label"

// Task describes one classification: its prompt and its label table.
// User is an FString template and must reference {text}.
type Task struct {
	Name   string
	System string
	User   string
	Table  *label.Table
}

// SentimentTask classifies emotional valence.
var SentimentTask = Task{
	Name: "sentiment",
	System: "You label the sentiment of customer chat messages. " +
		"Answer with exactly one lowercase word: positive, negative, or neutral. " +
		"Do not add punctuation, explanations, or any other text.",
	User: `Examples:
Message: Love the new features!
Sentiment: positive

Message: How do I reset my password?
Sentiment: neutral

Message: Fees too high, I'm frustrated!
Sentiment: negative

Message: My battery died again
Sentiment: negative

Message: {text}
Sentiment:`,
	Table: label.SentimentTable,
}

// IntentTask classifies the conversational purpose.
var IntentTask = Task{
	Name: "intent",
	System: "Classify the user's message into one intent: test_drive, info, support, capabilities, pricing, portfolio, general_upwork, or general. " +
		"Output ONLY the intent name, lowercase, with no punctuation and no extra text or explanations.",
	User: `Examples:
Message: Test drive a Model Y?
Intent: test_drive

Message: What's the range on the long range trim?
Intent: info

Message: My battery died
Intent: support

Message: What kinds of chatbots do you build?
Intent: capabilities

Message: How much for a custom bot?
Intent: pricing

Message: Show me your portfolio
Intent: portfolio

Message: Can you help with my Upwork project?
Intent: general_upwork

Message: Hi there
Intent: general

Message: {text}
Intent:`,
	Table: label.IntentTable,
}
