package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDHeader is echoed on every response so a failing turn can be matched
// to its log lines.
const TraceIDHeader = "X-Trace-ID"

// TraceIDMiddleware tags each request with a fresh trace id. Handlers read it
// from the context key "trace_id"; the response envelope carries it too.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("trace_id", id)
		c.Header(TraceIDHeader, id)
		c.Next()
	}
}
