package cache

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// bufferedWriter holds the response back until the handler chain is done so
// its hash can be sent ahead of the body.
type bufferedWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.body.Len() > 0
}

// ETag tags successful GET responses with a hash of their body and answers
// 304 Not Modified when the client already holds that version. Responses
// that change the session cookie are always sent in full.
func ETag() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		original := c.Writer
		writer := &bufferedWriter{
			ResponseWriter: original,
			body:           bytes.NewBuffer(nil),
			status:         http.StatusOK,
		}
		c.Writer = writer

		c.Next()

		c.Writer = original

		if writer.status == http.StatusOK {
			tag := generateTag(writer.body.Bytes())
			header := original.Header()
			header.Set("ETag", tag)
			header.Set("Cache-Control", "no-cache")
			header.Add("Vary", "Cookie")

			if header.Get("Set-Cookie") == "" && matches(c.GetHeader("If-None-Match"), tag) {
				original.WriteHeader(http.StatusNotModified)
				original.WriteHeaderNow()
				return
			}
		}

		original.WriteHeader(writer.status)
		original.WriteHeaderNow()
		if writer.body.Len() > 0 {
			original.Write(writer.body.Bytes())
		}
	}
}

// generateTag returns a quoted xxHash of body
func generateTag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}

func matches(ifNoneMatch, tag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}
