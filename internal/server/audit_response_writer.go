package server

import (
	"bytes"
	"net/http"
)

// responseRecorder passes the response through and keeps a copy for the audit
// log.
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *responseRecorder) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	if w.body.Len() < maxAuditBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) StatusCode() int {
	return w.statusCode
}

func (w *responseRecorder) Body() []byte {
	return w.body.Bytes()
}
