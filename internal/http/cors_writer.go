package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/cors"
)

// corsWriter re-applies the CORS header set whenever the wrapped handler
// commits headers, so same-named headers it set are overwritten. Status and
// body pass through untouched.
type corsWriter struct {
	gin.ResponseWriter
	policy *cors.Policy
}

func newCORSWriter(w gin.ResponseWriter, policy *cors.Policy) *corsWriter {
	return &corsWriter{ResponseWriter: w, policy: policy}
}

func (w *corsWriter) WriteHeader(code int) {
	w.policy.Apply(w.Header())
	w.ResponseWriter.WriteHeader(code)
}

func (w *corsWriter) WriteHeaderNow() {
	if !w.Written() {
		w.policy.Apply(w.Header())
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *corsWriter) Write(data []byte) (int, error) {
	if !w.Written() {
		w.policy.Apply(w.Header())
	}
	return w.ResponseWriter.Write(data)
}

func (w *corsWriter) WriteString(s string) (int, error) {
	if !w.Written() {
		w.policy.Apply(w.Header())
	}
	return w.ResponseWriter.WriteString(s)
}

func (w *corsWriter) Flush() {
	if !w.Written() {
		w.policy.Apply(w.Header())
	}
	w.ResponseWriter.Flush()
}
