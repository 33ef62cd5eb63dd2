// Package llmtest provides a scripted chat model for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Responder produces the completion for one call.
type Responder func(ctx context.Context, input []*schema.Message) (string, error)

// Call records the rendered prompt and options of one Generate call.
type Call struct {
	Input   []*schema.Message
	Options *model.Options
}

// ChatModel is an eino chat model driven by a Responder.
type ChatModel struct {
	respond Responder

	mu    sync.Mutex
	calls []Call
}

var _ model.BaseChatModel = (*ChatModel)(nil)

// New returns a model that answers every call with respond.
func New(respond Responder) *ChatModel {
	return &ChatModel{respond: respond}
}

// Reply returns a model that always answers content.
func Reply(content string) *ChatModel {
	return New(func(context.Context, []*schema.Message) (string, error) { return content, nil })
}

// Fail returns a model whose every call fails with err.
func Fail(err error) *ChatModel {
	return New(func(context.Context, []*schema.Message) (string, error) { return "", err })
}

// Generate implements model.BaseChatModel.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{}, opts...)

	m.mu.Lock()
	m.calls = append(m.calls, Call{Input: input, Options: options})
	m.mu.Unlock()

	content, err := m.respond(ctx, input)
	if err != nil {
		return nil, err
	}
	return schema.AssistantMessage(content, nil), nil
}

// Stream implements model.BaseChatModel with a single chunk.
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// BindTools is a no-op.
func (m *ChatModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *ChatModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns how many times Generate ran.
func (m *ChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Text joins the contents of a rendered prompt, system message first.
func Text(input []*schema.Message) string {
	var out string
	for _, msg := range input {
		if msg == nil {
			continue
		}
		out += msg.Content + "\n"
	}
	return out
}
