package console

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   color.Attribute
		wantOK bool
	}{
		{status: "200", want: color.FgGreen, wantOK: true},
		{status: "204", want: color.FgGreen, wantOK: true},
		{status: "301", want: color.FgYellow, wantOK: true},
		{status: "304", want: color.FgYellow, wantOK: true},
		{status: "404", want: color.FgRed, wantOK: true},
		{status: "500", want: color.FgRed, wantOK: true},
		{status: "100", want: color.Reset},
		{status: "", want: color.Reset},
		{status: "-", want: color.Reset},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, ok := StatusColor(tt.status)
			assert.Equal(t, got, tt.want)
			assert.Equal(t, ok, tt.wantOK)
		})
	}
}

func TestRequestColored(t *testing.T) {
	tests := []struct {
		status string
		code   string
	}{
		{status: "200", code: "\x1b[32m"},
		{status: "302", code: "\x1b[33m"},
		{status: "404", code: "\x1b[31m"},
		{status: "503", code: "\x1b[31m"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf)
			l.SetColor(true)
			l.Request(tt.status, `GET / HTTP/1.1`)

			line := buf.String()
			assert.Assert(t, strings.HasPrefix(line, tt.code+"["+tt.status+"]"), "line = %q", line)
			assert.Assert(t, strings.HasSuffix(line, "\x1b[0m GET / HTTP/1.1\n"), "line = %q", line)
		})
	}
}

func TestRequestUncoloredStatus(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetColor(true)
	l.Request("101", `GET /ws HTTP/1.1`)
	assert.Equal(t, buf.String(), "[101] GET /ws HTTP/1.1\n")
}

func TestRequestColorDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetColor(false)
	l.Request("404", `GET /missing.txt HTTP/1.1`)
	assert.Equal(t, buf.String(), "[404] GET /missing.txt HTTP/1.1\n")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetColor(false)
	l.Banner("eightfold", 8001, "/srv/site")

	out := buf.String()
	assert.Check(t, is.Contains(out, "eightfold Development Server"))
	assert.Check(t, is.Contains(out, "Local:   http://localhost:8001"))
	assert.Check(t, is.Contains(out, "Root:    /srv/site"))
	assert.Check(t, is.Contains(out, "Press Ctrl+C to stop."))
}

func TestStopped(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetColor(false)
	l.Stopped()
	assert.Check(t, is.Contains(buf.String(), "Server stopped. Good work today!"))
}

func TestRequestConcurrentLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetColor(false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Request("200", `GET /index.html HTTP/1.1`)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, len(lines), 50)
	for _, line := range lines {
		assert.Equal(t, line, "[200] GET /index.html HTTP/1.1")
	}
}
