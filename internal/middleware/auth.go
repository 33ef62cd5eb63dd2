// Package middleware 提供路由共用的 HTTP 中间件。
package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/AquinasRousseau/sentiment-chatbot-api/pkg/utils"
)

// APIKeyHeader carries the shared secret on API requests.
const APIKeyHeader = "X-API-Key"

// APIKeyQueryParam is accepted where browsers cannot set headers (websocket).
const APIKeyQueryParam = "apiKey"

// APIKey 校验请求携带的共享密钥，失败时返回 401。
func APIKey(expected string) func(http.Handler) http.Handler {
	want := []byte(expected)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if got == "" {
				got = r.URL.Query().Get(APIKeyQueryParam)
			}
			if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				log.Printf("[auth] rejected %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
