// Package console prints the development server's banner and colorized
// request log lines.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// StatusColor picks the color for a status code by its leading digit:
// 2xx green, 3xx yellow, 4xx and 5xx red. Anything else is left
// uncolored and reported with ok == false.
func StatusColor(status string) (attr color.Attribute, ok bool) {
	switch {
	case strings.HasPrefix(status, "2"):
		return color.FgGreen, true
	case strings.HasPrefix(status, "3"):
		return color.FgYellow, true
	case strings.HasPrefix(status, "4"), strings.HasPrefix(status, "5"):
		return color.FgRed, true
	}
	return color.Reset, false
}

// Logger writes console output. It is safe for concurrent use; each call
// writes whole lines.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	noColor bool
}

// New returns a Logger writing to out. Color is enabled unless fatih/color
// has detected that the terminal does not support it.
func New(out io.Writer) *Logger {
	return &Logger{out: out, noColor: color.NoColor}
}

// SetColor forces color output on or off.
func (l *Logger) SetColor(enabled bool) {
	l.mu.Lock()
	l.noColor = !enabled
	l.mu.Unlock()
}

func (l *Logger) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if l.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(s)
}

func (l *Logger) write(lines ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(l.out, line)
	}
}

// Request prints one "[<status>] <message>" line. Only the bracketed
// status is colored.
func (l *Logger) Request(status, message string) {
	tag := "[" + status + "]"
	if attr, ok := StatusColor(status); ok {
		tag = l.paint(tag, attr)
	}
	l.write(tag + " " + message)
}

// Banner prints the startup banner with the product name, the local URL
// and the served root.
func (l *Logger) Banner(name string, port int, root string) {
	l.write(
		"",
		"  "+l.paint(name+" ", color.Bold, color.FgYellow)+l.paint("Development Server", color.FgHiBlack),
		"",
		"  "+l.paint("➜", color.FgGreen)+"  Local:   "+l.paint(fmt.Sprintf("http://localhost:%d", port), color.FgCyan),
		"  "+l.paint("➜", color.FgHiBlack)+"  Root:    "+root,
		"",
		"  "+l.paint("Reload browser to see changes. Press Ctrl+C to stop.", color.FgHiBlack),
		"",
	)
}

// Stopped prints the shutdown message.
func (l *Logger) Stopped() {
	l.write(
		"",
		"",
		"  "+l.paint("Server stopped.", color.FgYellow)+" Good work today!",
		"",
	)
}
