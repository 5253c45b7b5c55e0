package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const maxAuditBody = 16384

var redactedFields = []string{"password", "token"}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应，multipart 不记录正文，JSON 中的口令字段打码
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBody := "<omitted>"
		if !strings.HasPrefix(c.ContentType(), "multipart/") && c.Request.Body != nil {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			reqBody = redact(raw)
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", reqBody),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", redact(w.body.Bytes())),
		)
	}
}

func redact(raw []byte) string {
	if len(raw) > maxAuditBody {
		raw = raw[:maxAuditBody]
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}
	if maskFields(body) {
		if masked, err := json.Marshal(body); err == nil {
			return string(masked)
		}
	}
	return string(raw)
}

func maskFields(m map[string]any) bool {
	changed := false
	for k, v := range m {
		for _, f := range redactedFields {
			if strings.EqualFold(k, f) {
				m[k] = "***"
				changed = true
			}
		}
		if nested, ok := v.(map[string]any); ok && maskFields(nested) {
			changed = true
		}
	}
	return changed
}
