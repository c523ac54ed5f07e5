package api

import (
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliWriter compresses everything written through it. The encoder buffers,
// so Written reports body bytes accepted rather than bytes sent.
type brotliWriter struct {
	gin.ResponseWriter
	br    *brotli.Writer
	wrote bool
}

func (w *brotliWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	w.Header().Del("Content-Length")
	if len(data) > 0 {
		w.wrote = true
	}
	return w.br.Write(data)
}

func (w *brotliWriter) Written() bool {
	return w.wrote || w.ResponseWriter.Written()
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *brotliWriter) Flush() {
	w.br.Flush()
	w.ResponseWriter.Flush()
}

// brotliMiddleware compresses responses for clients that accept "br"
func brotliMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Add("Vary", "Accept-Encoding")
		if c.Request.Method == http.MethodHead || !acceptsEncoding(c.Request, "br") {
			c.Next()
			return
		}

		c.Writer.Header().Set("Content-Encoding", "br")
		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			br:             brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression),
		}
		c.Writer = bw
		defer func() {
			bw.br.Close()
			c.Writer = bw.ResponseWriter
		}()

		c.Next()
	}
}
