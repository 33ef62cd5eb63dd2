package demo

import (
	"bytes"
	_ "embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	APIKey string
}

// Handler 演示页面处理器
type Handler struct {
	apiKey string
}

// New 创建演示页面处理器。apiKey 会预填到页面中，传空字符串则由用户手动输入。
func New(apiKey string) *Handler {
	return &Handler{apiKey: apiKey}
}

// ServeHTTP 渲染演示页面
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{APIKey: h.apiKey}); err != nil {
		log.Printf("[demo] render failed: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
