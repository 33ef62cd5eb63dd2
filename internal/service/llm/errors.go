package llm

import (
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrNoModel is returned by chains built without a chat model, which is
	// how the service runs when no provider credentials are configured.
	ErrNoModel = errors.New("llm: no chat model configured")

	// ErrRateLimited marks an upstream 429.
	ErrRateLimited = errors.New("llm: upstream rate limit exceeded")

	// ErrEmptyCompletion is returned when the model answers with no text.
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// IsRateLimited reports whether err signals provider throttling. Provider
// errors may reach us wrapped by the chain runtime, so the message is
// inspected as well.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "status code: 429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "toomanyrequests")
}
