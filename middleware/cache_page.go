package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/utils"
)

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves GET responses from store for ttl. The key is the request URI
// plus the viewer id, since the navigation differs per viewer. Only 200s are stored.
func CachePage(store utils.ResponseCache, ttl time.Duration, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := prefix + c.Request.URL.RequestURI() + "|u=" + strconv.FormatUint(uint64(CurrentUserID(c)), 10)

		if b, ok := store.Get(c.Request.Context(), key); ok {
			utils.PageCacheLookups.WithLabelValues("hit").Inc()
			c.Data(http.StatusOK, "text/html; charset=utf-8", b)
			c.Abort()
			return
		}
		utils.PageCacheLookups.WithLabelValues("miss").Inc()

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() == http.StatusOK && w.body.Len() > 0 {
			store.Set(c.Request.Context(), key, w.body.Bytes(), ttl)
		}
	}
}
