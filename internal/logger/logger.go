package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	colors           = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
)

// SetOutput redirects log output. Colours are kept only for terminals.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	colors = false
	if f, ok := w.(*os.File); ok {
		colors = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

func paint(color, s string) string {
	if !colors {
		return s
	}
	return color + s + reset
}

func line(color, symbol, tag, msg string) {
	mu.Lock()
	defer mu.Unlock()
	ts := paint(dim, time.Now().Format("15:04:05"))
	fmt.Fprintf(out, "%s %s %s %s\n", ts, paint(color, symbol), paint(bold+color, fmt.Sprintf("[%s]", tag)), msg)
}

// Info logs a neutral progress message.
func Info(tag, msg string) { line(cyan, "•", tag, msg) }

// Success logs a completed step.
func Success(tag, msg string) { line(green, "✓", tag, msg) }

// Warn logs a recoverable problem.
func Warn(tag, msg string) { line(yellow, "!", tag, msg) }

// Error logs a failure.
func Error(tag, msg string) { line(red, "✗", tag, msg) }

// Banner prints the startup banner.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	mu.Lock()
	defer mu.Unlock()
	title := fmt.Sprintf("key-maze %s", version)
	rule := strings.Repeat("─", len(title)+4)
	fmt.Fprintln(out, paint(cyan, rule))
	fmt.Fprintln(out, paint(bold+cyan, "  "+title))
	fmt.Fprintln(out, paint(cyan, rule))
}

// Section prints a section heading.
func Section(title string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "\n%s\n", paint(bold, "── "+title+" ──"))
}

// Stats prints one aligned key/value line. Integers get thousands
// separators; durations are rounded.
func Stats(key string, value interface{}) {
	var v string
	switch x := value.(type) {
	case int:
		v = humanize.Comma(int64(x))
	case int64:
		v = humanize.Comma(x)
	case time.Duration:
		v = x.Round(time.Microsecond).String()
	case time.Time:
		v = humanize.Time(x)
	default:
		v = fmt.Sprint(x)
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "  %-18s %s\n", key+":", paint(bold, v))
}
