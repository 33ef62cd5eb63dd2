package label

// Sentiment labels.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Intent labels.
const (
	IntentTestDrive     = "test_drive"
	IntentInfo          = "info"
	IntentSupport       = "support"
	IntentCapabilities  = "capabilities"
	IntentPricing       = "pricing"
	IntentPortfolio     = "portfolio"
	IntentGeneralUpwork = "general_upwork"
	IntentGeneral       = "general"
)

// Sentiments lists the sentiment labels in prompt order.
var Sentiments = []string{Positive, Negative, Neutral}

// Intents lists the intent labels in prompt order.
var Intents = []string{
	IntentTestDrive, IntentInfo, IntentSupport, IntentCapabilities,
	IntentPricing, IntentPortfolio, IntentGeneralUpwork, IntentGeneral,
}

// SentimentTable resolves sentiment completions. Negative cues are checked
// before positive ones.
var SentimentTable = NewTable(Sentiments, Neutral, []Rule{
	{Label: Negative, Keywords: []string{"negatively", "bad", "angry", "frustrated", "upset", "unhappy", "disappointed"}},
	{Label: Positive, Keywords: []string{"positively", "good", "great", "happy", "pleased", "excited", "love"}},
	{Label: Neutral, Keywords: []string{"mixed", "neither", "objective", "indifferent"}},
})

// IntentTable resolves intent completions. Every keyword belongs to exactly
// one intent; "demo" is a portfolio cue and "price" a pricing cue.
var IntentTable = NewTable(Intents, IntentGeneral, []Rule{
	{Label: IntentTestDrive, Keywords: []string{"test drive", "test-drive", "schedule", "try", "book a drive"}},
	{Label: IntentInfo, Keywords: []string{"specs", "range", "info", "details", "features"}},
	{Label: IntentSupport, Keywords: []string{"help", "support", "issue", "problem", "broken", "error"}},
	{Label: IntentCapabilities, Keywords: []string{"build", "capabilities", "kinds", "types"}},
	{Label: IntentPricing, Keywords: []string{"cost", "price", "much", "quote", "budget"}},
	{Label: IntentPortfolio, Keywords: []string{"portfolio", "examples", "work", "demo", "case study"}},
	{Label: IntentGeneralUpwork, Keywords: []string{"upwork", "hire", "project", "job", "freelance"}},
})
