// Package reply turns a classified message into the text sent back to the
// user, either from a canned template or from the model.
package reply

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/analysis/label"
	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/metrics"
	tmplstore "github.com/AquinasRousseau/sentiment-chatbot-api/internal/model/template"
)

// Reply sources.
const (
	SourceTemplate  = "template"
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// CannedIntents are answered from templates; every other intent is generated.
var CannedIntents = []string{
	label.IntentTestDrive,
	label.IntentInfo,
	label.IntentSupport,
	label.IntentCapabilities,
	label.IntentPricing,
	label.IntentPortfolio,
}

// Reply is the dispatched answer.
type Reply struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type templateData struct {
	Sentiment string
	Message   string
}

// Dispatcher routes an intent to its template or to the generator.
type Dispatcher struct {
	templates map[string]*template.Template
	generator *Generator
}

// NewDispatcher parses the canned template of every CannedIntents entry from
// store. A missing or invalid template is an error.
func NewDispatcher(store tmplstore.Store, generator *Generator) (*Dispatcher, error) {
	if generator == nil {
		return nil, fmt.Errorf("reply generator is required")
	}

	parsed := make(map[string]*template.Template, len(CannedIntents))
	for _, intent := range CannedIntents {
		item, ok := store.FindByIntent(intent)
		if !ok {
			return nil, fmt.Errorf("missing reply template for intent %q", intent)
		}
		tmpl, err := template.New(intent).Option("missingkey=error").Parse(item.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reply template %q: %w", intent, err)
		}
		parsed[intent] = tmpl
	}

	return &Dispatcher{templates: parsed, generator: generator}, nil
}

// Dispatch picks the reply for one classified message.
func (d *Dispatcher) Dispatch(ctx context.Context, intent, sentiment, message, summary string) Reply {
	reply := d.dispatch(ctx, intent, sentiment, message, summary)
	metrics.Replies.WithLabelValues(reply.Source).Inc()
	return reply
}

func (d *Dispatcher) dispatch(ctx context.Context, intent, sentiment, message, summary string) Reply {
	if tmpl, ok := d.templates[intent]; ok {
		var buf bytes.Buffer
		err := tmpl.Execute(&buf, templateData{Sentiment: sentiment, Message: message})
		if err == nil {
			return Reply{Text: buf.String(), Source: SourceTemplate}
		}
		log.Printf("[reply] template %s failed, generating instead: %v", intent, err)
	}

	text, ok := d.generator.Generate(ctx, message, sentiment, summary)
	if !ok {
		return Reply{Text: text, Source: SourceFallback}
	}
	return Reply{Text: text, Source: SourceGenerated}
}
