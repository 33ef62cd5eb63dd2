package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/config"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/metrics"
)

// Policy bounds a single chain run.
type Policy struct {
	// Timeout caps each model call. Zero means no extra deadline.
	Timeout time.Duration
	// Temperature, when set, is passed to the model on every call.
	Temperature *float32
	// RateLimitBackoff is slept after every 429 before retrying or giving up.
	RateLimitBackoff time.Duration
	// RateLimitRetries is the number of extra attempts after a 429.
	RateLimitRetries int
}

// PolicyFromConfig derives the shared call policy from the AI settings.
func PolicyFromConfig(cfg config.AIConfig) Policy {
	return Policy{
		Timeout:          cfg.CallTimeout,
		RateLimitBackoff: cfg.RateLimitBackoff,
		RateLimitRetries: cfg.RateLimitRetries,
	}
}

// WithTemperature returns a copy of p with the temperature set.
func (p Policy) WithTemperature(t float32) Policy {
	p.Temperature = &t
	return p
}

// Chain is a compiled prompt template feeding a chat model.
type Chain struct {
	name     string
	runnable compose.Runnable[map[string]any, *schema.Message]
	policy   Policy
	sleep    func(context.Context, time.Duration) error
}

// NewChain compiles tmpl -> chatModel. A nil chatModel yields a chain whose
// every run fails with ErrNoModel.
func NewChain(ctx context.Context, name string, chatModel model.BaseChatModel, tmpl prompt.ChatTemplate, policy Policy) (*Chain, error) {
	c := &Chain{name: name, policy: policy, sleep: sleepContext}
	if chatModel == nil {
		return c, nil
	}

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(tmpl)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s chain: %w", name, err)
	}
	c.runnable = runnable
	return c, nil
}

// Name identifies the chain in logs and metrics.
func (c *Chain) Name() string {
	return c.name
}

// Run renders vars into the prompt and returns the trimmed completion.
// A 429 sleeps RateLimitBackoff and is retried at most RateLimitRetries
// times; every other error is returned immediately.
func (c *Chain) Run(ctx context.Context, vars map[string]any) (string, error) {
	if c.runnable == nil {
		return "", ErrNoModel
	}

	for attempt := 0; ; attempt++ {
		content, err := c.invoke(ctx, vars)
		if err == nil {
			return content, nil
		}
		if !IsRateLimited(err) {
			return "", err
		}

		log.Printf("[llm] %s rate limited (attempt %d), backing off %s", c.name, attempt+1, c.policy.RateLimitBackoff)
		if sleepErr := c.sleep(ctx, c.policy.RateLimitBackoff); sleepErr != nil {
			return "", fmt.Errorf("%w: %v", err, sleepErr)
		}
		if attempt >= c.policy.RateLimitRetries {
			return "", err
		}
	}
}

func (c *Chain) invoke(ctx context.Context, vars map[string]any) (string, error) {
	callCtx := ctx
	if c.policy.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
		defer cancel()
	}

	var opts []compose.Option
	if c.policy.Temperature != nil {
		opts = append(opts, compose.WithChatModelOption(model.WithTemperature(*c.policy.Temperature)))
	}

	started := time.Now()
	msg, err := c.runnable.Invoke(callCtx, vars, opts...)
	status := callStatus(callCtx, err)
	metrics.LLMCallDuration.WithLabelValues(c.name, status).Observe(time.Since(started).Seconds())

	if err != nil {
		if status == "timeout" && !errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%s call timed out after %s: %w", c.name, c.policy.Timeout, context.DeadlineExceeded)
		}
		return "", err
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(msg.Content), nil
}

func callStatus(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	case IsRateLimited(err):
		return "rate_limited"
	default:
		return "error"
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
