package classify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/analysis/label"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/llm"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/llm/llmtest"
)

func newClassifier(t *testing.T, task Task, chatModel model.BaseChatModel) *Classifier {
	t.Helper()
	c, err := New(context.Background(), task, chatModel, llm.Policy{Timeout: time.Second})
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	return c
}

func TestClassifyIntentFromCompletion(t *testing.T) {
	fake := llmtest.Reply("Capabilities.")
	c := newClassifier(t, IntentTask, fake)

	out := c.Classify(context.Background(), "What kinds of chatbots do you build?")
	if out.Label != label.IntentCapabilities {
		t.Fatalf("expected capabilities, got %s", out.Label)
	}
	if out.Degraded {
		t.Fatal("unexpected degraded outcome")
	}
	if out.Raw != "Capabilities." {
		t.Fatalf("raw completion not kept: %q", out.Raw)
	}

	calls := fake.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(calls))
	}
	prompt := llmtest.Text(calls[0].Input)
	if !strings.Contains(prompt, "Message: What kinds of chatbots do you build?\nIntent:") {
		t.Fatalf("message not embedded in prompt: %q", prompt)
	}
	if calls[0].Options.Temperature == nil || *calls[0].Options.Temperature != 0 {
		t.Fatal("classification must request temperature 0")
	}
}

func TestClassifySentimentKeywordFallback(t *testing.T) {
	c := newClassifier(t, SentimentTask, llmtest.Reply("The customer sounds frustrated."))
	out := c.Classify(context.Background(), "Fees too high")
	if out.Label != label.Negative || out.Degraded {
		t.Fatalf("expected negative, got %+v", out)
	}
}

func TestClassifyUnmatchedCompletion(t *testing.T) {
	c := newClassifier(t, IntentTask, llmtest.Reply("I cannot determine that."))
	out := c.Classify(context.Background(), "??")
	if out.Label != label.IntentGeneral {
		t.Fatalf("expected general, got %s", out.Label)
	}
	if out.Degraded || out.Reason != ReasonUnmatched {
		t.Fatalf("expected unmatched, got %+v", out)
	}
}

func TestClassifyModelFailureDegrades(t *testing.T) {
	cases := []struct {
		task Task
		want string
	}{
		{SentimentTask, label.Neutral},
		{IntentTask, label.IntentGeneral},
	}
	for _, tc := range cases {
		c := newClassifier(t, tc.task, llmtest.Fail(errors.New("connection reset")))
		out := c.Classify(context.Background(), "anything")
		if out.Label != tc.want || !out.Degraded {
			t.Fatalf("%s: expected degraded %s, got %+v", tc.task.Name, tc.want, out)
		}
		if out.Reason == "" {
			t.Fatalf("%s: expected a reason", tc.task.Name)
		}
	}
}

func TestClassifyWithoutModelDegrades(t *testing.T) {
	c := newClassifier(t, IntentTask, nil)
	out := c.Classify(context.Background(), "hello")
	if out.Label != label.IntentGeneral || !out.Degraded {
		t.Fatalf("expected degraded general, got %+v", out)
	}
}

func TestClassifyTimeoutDegrades(t *testing.T) {
	slow := llmtest.New(func(ctx context.Context, _ []*schema.Message) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	c, err := New(context.Background(), SentimentTask, slow, llm.Policy{Timeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	out := c.Classify(context.Background(), "hello")
	if out.Label != label.Neutral || !out.Degraded {
		t.Fatalf("expected degraded neutral, got %+v", out)
	}
}

func TestClassifyRecoversFromPanic(t *testing.T) {
	boom := llmtest.New(func(context.Context, []*schema.Message) (string, error) {
		panic("provider bug")
	})
	c := newClassifier(t, IntentTask, boom)

	out := c.Classify(context.Background(), "hello")
	if out.Label != label.IntentGeneral || !out.Degraded {
		t.Fatalf("expected degraded general, got %+v", out)
	}
}

func TestClassifyAlwaysReturnsAllowedLabel(t *testing.T) {
	completions := []string{"", "pricing", "PORTFOLIO!!!", "blah", "test drive please", "general_upwork"}
	for _, completion := range completions {
		c := newClassifier(t, IntentTask, llmtest.Reply(completion))
		if got := c.Classify(context.Background(), "msg").Label; !label.IntentTable.Contains(got) {
			t.Fatalf("completion %q produced %q", completion, got)
		}
	}
}
