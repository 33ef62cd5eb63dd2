// Package classify labels chat messages through a chat model, degrading to a
// task default whenever the model cannot be used.
package classify

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/metrics"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/llm"
)

// Outcome is the result of one classification. Raw is kept for logs only.
// Degraded is set when the model call failed and Label is the task default.
type Outcome struct {
	Label    string
	Raw      string
	Degraded bool
	Reason   string
}

// Reasons reported on outcomes that did not come from a recognised label.
const (
	ReasonUnmatched = "unmatched"
	ReasonPanic     = "panic"
)

func (o Outcome) metricLabel() string {
	switch {
	case o.Degraded:
		return "degraded"
	case o.Reason == ReasonUnmatched:
		return "unmatched"
	default:
		return "ok"
	}
}

// Classifier runs one Task against a chat model at temperature 0.
type Classifier struct {
	task  Task
	chain *llm.Chain
}

// New compiles the task prompt for chatModel. chatModel may be nil, in which
// case every call degrades to the task default.
func New(ctx context.Context, task Task, chatModel model.BaseChatModel, policy llm.Policy) (*Classifier, error) {
	tmpl := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(task.System),
		schema.UserMessage(task.User),
	)

	chain, err := llm.NewChain(ctx, task.Name, chatModel, tmpl, policy.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s classifier: %w", task.Name, err)
	}
	return &Classifier{task: task, chain: chain}, nil
}

// Classify never fails: any model error resolves to the task default with
// Degraded set.
func (c *Classifier) Classify(ctx context.Context, text string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[classify] %s panicked, using %s: %v", c.chain.Name(), c.task.Table.Default, r)
			out = Outcome{Label: c.task.Table.Default, Degraded: true, Reason: ReasonPanic}
		}
		metrics.Classifications.WithLabelValues(c.task.Name, out.metricLabel()).Inc()
	}()

	raw, err := c.chain.Run(ctx, map[string]any{"text": text})
	if err != nil {
		log.Printf("[classify] %s call failed, using %s: %v", c.chain.Name(), c.task.Table.Default, err)
		return Outcome{Label: c.task.Table.Default, Degraded: true, Reason: err.Error()}
	}

	resolved, matched := c.task.Table.Resolve(raw)
	out = Outcome{Label: resolved, Raw: raw}
	if !matched {
		out.Reason = ReasonUnmatched
	}
	log.Printf("[classify] %s raw=%q label=%s", c.chain.Name(), raw, resolved)
	return out
}
