// Package pipeline wires classification, reply dispatch and session history
// into the single call made per chat message.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/analysis/history"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/metrics"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/chat"
	chatservice "github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/chat"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/classify"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/service/reply"
)

// ErrEmptyMessage is returned for blank input.
var ErrEmptyMessage = errors.New("message is required")

// Result is the outcome of one message.
type Result struct {
	SessionID string `json:"sessionId,omitempty"`
	Sentiment string `json:"sentiment"`
	Intent    string `json:"intent"`
	Reply     string `json:"reply"`
	Source    string `json:"source"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Options tune a Pipeline.
type Options struct {
	// Parallel classifies sentiment and intent concurrently.
	Parallel bool
	// TranscriptCap bounds the stored history per session.
	TranscriptCap int
}

// Pipeline runs sentiment and intent classification, then dispatches a reply.
type Pipeline struct {
	sentiment  *classify.Classifier
	intent     *classify.Classifier
	dispatcher *reply.Dispatcher
	store      chatservice.Store
	opts       Options
}

// New assembles a pipeline. store may be nil when only Run is used.
func New(sentiment, intent *classify.Classifier, dispatcher *reply.Dispatcher, store chatservice.Store, opts Options) *Pipeline {
	if opts.TranscriptCap <= 0 {
		opts.TranscriptCap = chat.DefaultTranscriptCap
	}
	return &Pipeline{
		sentiment:  sentiment,
		intent:     intent,
		dispatcher: dispatcher,
		store:      store,
		opts:       opts,
	}
}

// Run classifies message and produces a reply given the prior history. It
// never fails: classifiers and the generator degrade on their own.
func (p *Pipeline) Run(ctx context.Context, message string, transcript chat.Transcript) Result {
	started := time.Now()

	sentiment, intent := p.classify(ctx, message)
	summary := history.Summarize(transcript)
	answer := p.dispatcher.Dispatch(ctx, intent.Label, sentiment.Label, message, summary)

	elapsed := time.Since(started)
	metrics.PipelineDuration.Observe(elapsed.Seconds())
	log.Printf("[pipeline] sentiment=%s intent=%s source=%s elapsed=%s", sentiment.Label, intent.Label, answer.Source, elapsed)

	return Result{
		Sentiment: sentiment.Label,
		Intent:    intent.Label,
		Reply:     answer.Text,
		Source:    answer.Source,
		ElapsedMs: elapsed.Milliseconds(),
	}
}

func (p *Pipeline) classify(ctx context.Context, message string) (sentiment, intent classify.Outcome) {
	if !p.opts.Parallel {
		return p.sentiment.Classify(ctx, message), p.intent.Classify(ctx, message)
	}

	// Classify never returns an error, so the group only joins the two calls.
	var g errgroup.Group
	g.Go(func() error {
		sentiment = p.sentiment.Classify(ctx, message)
		return nil
	})
	g.Go(func() error {
		intent = p.intent.Classify(ctx, message)
		return nil
	})
	_ = g.Wait()
	return sentiment, intent
}

// Handle loads the session transcript, runs the message through Run and
// stores the new user and bot turns. Only blank input and store failures
// are reported as errors.
func (p *Pipeline) Handle(ctx context.Context, sessionID, message string) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, ErrEmptyMessage
	}
	if p.store == nil {
		return Result{}, errors.New("pipeline has no session store")
	}

	transcript, err := p.store.Get(ctx, sessionID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	result := p.Run(ctx, message, transcript)
	result.SessionID = sessionID

	updated := transcript.Append(p.opts.TranscriptCap, chat.UserTurn(message), chat.BotTurn(result.Reply))
	if err := p.store.Put(ctx, sessionID, updated); err != nil {
		return Result{}, fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return result, nil
}
