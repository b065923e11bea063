// Package devserver serves a directory over HTTP for local development.
package devserver

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// LogEntry describes one completed request.
type LogEntry struct {
	// Message is the request line, e.g. "GET /index.html HTTP/1.1".
	Message string
	// Status is the response status code sent to the client.
	Status int
}

// LogFunc is called once after each request has been served.
type LogFunc func(LogEntry)

// HeaderFunc is called right before the response header is sent, for
// every response.
type HeaderFunc func(http.Header)

// Option configures a Handler.
type Option func(*Handler)

// WithLogFunc sets the post-request log hook.
func WithLogFunc(fn LogFunc) Option {
	return func(h *Handler) { h.logf = fn }
}

// WithHeaderFunc sets the pre-response header hook.
func WithHeaderFunc(fn HeaderFunc) Option {
	return func(h *Handler) { h.headerf = fn }
}

// NoCache sets the headers that forbid clients and proxies from caching
// the response.
func NoCache(h http.Header) {
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// Handler serves files below a root directory. Directories get a
// generated listing unless they hold an index.html.
type Handler struct {
	root    http.FileSystem
	files   http.Handler
	logf    LogFunc
	headerf HeaderFunc
}

// NewHandler returns a Handler serving root. Without options it adds the
// no-cache headers and logs nothing.
func NewHandler(root string, opts ...Option) *Handler {
	h := &Handler{
		root:    http.Dir(root),
		files:   http.FileServer(http.Dir(root)),
		headerf: NoCache,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sw := &statusWriter{ResponseWriter: w, headerf: h.headerf}
	switch {
	case r.Method != http.MethodGet && r.Method != http.MethodHead:
		http.Error(sw, fmt.Sprintf("Unsupported method (%q)", r.Method), http.StatusNotImplemented)
	case strings.HasSuffix(path.Clean("/"+r.URL.Path), "/index.html"):
		h.serveIndex(sw, r)
	default:
		h.files.ServeHTTP(sw, r)
	}
	if !sw.wroteHeader {
		// Nothing was written; make sure the hook still runs.
		sw.WriteHeader(http.StatusOK)
	}
	if h.logf != nil {
		h.logf(LogEntry{
			Message: fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
			Status:  sw.status,
		})
	}
}

// serveIndex serves an explicitly requested index.html in place.
// http.FileServer would redirect it to the enclosing directory.
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	f, err := h.root.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// statusWriter records the status code and runs the header hook exactly
// once, before the header goes out.
type statusWriter struct {
	http.ResponseWriter
	headerf     HeaderFunc
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	if w.headerf != nil {
		w.headerf(w.Header())
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
