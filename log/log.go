// Package log writes structured entries, one line of key=value pairs
// each, to stderr or to the writer given to SetOutput.
//
// An entry opens with the run ID carried by its context, the caller's
// file:line and a UTC timestamp. NewRunContext gives every interpreter
// run its own ID so its lines can be grouped.
package log

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// Keys written by this package.
const (
	KeyRunID   = "runid"
	KeyCaller  = "at"
	KeyTime    = "t"
	KeyMessage = "message"
	KeyError   = "error"
	KeyStack   = "stack" // printed on the lines after the entry

	keyLogError = "log-error"
)

// UnknownRunID is reported for contexts that carry no run ID.
const UnknownRunID = "unknown_run_id"

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// delims separate pairs, following Splunk. Keys have them replaced;
// values holding one are quoted.
const delims = " ,;|&\t\n\r"

var (
	logWriterMu sync.Mutex // guards logWriter and prefix
	logWriter   io.Writer  = os.Stderr
	prefix      string
)

type runIDKey struct{}

// NewRunContext returns a copy of ctx carrying a fresh random run ID.
func NewRunContext(ctx context.Context) context.Context {
	var id [6]byte
	if _, err := rand.Read(id[:]); err != nil {
		return WithRunID(ctx, UnknownRunID)
	}
	return WithRunID(ctx, hex.EncodeToString(id[:]))
}

// WithRunID returns a copy of ctx carrying id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run ID stored in ctx, or UnknownRunID.
func RunID(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(runIDKey{}).(string); ok {
			return id
		}
	}
	return UnknownRunID
}

// SetOutput redirects every later entry to w.
func SetOutput(w io.Writer) {
	logWriterMu.Lock()
	logWriter = w
	logWriterMu.Unlock()
}

// SetPrefix sets pairs written ahead of every entry, such as the
// program being run. SetPrefix() clears them.
func SetPrefix(keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		panic(fmt.Sprintf("log: odd number of prefix params: %v", keyvals))
	}
	var b strings.Builder
	for i := 0; i < len(keyvals); i += 2 {
		appendPair(&b, keyvals[i], keyvals[i+1])
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	logWriterMu.Lock()
	prefix = b.String()
	logWriterMu.Unlock()
}

// Write logs keyvals, alternating keys and values, after the run ID,
// caller and time. Duplicate keys are kept.
//
// A leading KeyCaller pair replaces the computed caller; wrappers
// around Write use it to report their own caller.
//
// A KeyStack pair holding []byte or []errors.StackFrame is printed
// below the entry instead of inline. Without one, the stack of a
// KeyError error is printed.
func Write(ctx context.Context, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "", keyLogError, "odd number of log params")
	}

	var at interface{}
	if len(keyvals) >= 2 && keyvals[0] == KeyCaller {
		at, keyvals = keyvals[1], keyvals[2:]
	} else {
		at = caller()
	}

	var b strings.Builder
	appendPair(&b, KeyRunID, RunID(ctx))
	appendPair(&b, KeyCaller, at)
	appendPair(&b, KeyTime, time.Now().UTC().Format(timeLayout))

	var trace []string
	haveTrace := false
	for i := 0; i < len(keyvals); i += 2 {
		k, v := keyvals[i], keyvals[i+1]
		if k == KeyStack {
			if lines, ok := stackLines(v); ok {
				trace, haveTrace = lines, true
				continue
			}
		}
		if e, ok := v.(error); ok && k == KeyError && !haveTrace {
			trace, haveTrace = stackLines(errors.Stack(errors.Wrap(e)))
		}
		appendPair(&b, k, v)
	}
	b.WriteByte('\n')
	for _, l := range trace {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	logWriterMu.Lock()
	io.WriteString(logWriter, prefix+b.String()) // errors ignored
	logWriterMu.Unlock()
}

// Fatal is Write followed by os.Exit(1).
func Fatal(ctx context.Context, keyvals ...interface{}) {
	Write(ctx, keyvals...)
	os.Exit(1)
}

// Messagef logs a formatted message under KeyMessage.
func Messagef(ctx context.Context, format string, a ...interface{}) {
	Write(ctx, KeyCaller, caller(), KeyMessage, fmt.Sprintf(format, a...))
}

// Error logs err under KeyError. Any a is printed ahead of the error
// text as by fmt.Sprint; a stack already on err is kept.
func Error(ctx context.Context, err error, a ...interface{}) {
	switch {
	case len(a) == 0:
	case len(errors.Stack(err)) > 0:
		err = errors.Wrap(err, a...)
	default:
		err = fmt.Errorf("%s: %s", fmt.Sprint(a...), err)
	}
	Write(ctx, KeyCaller, caller(), KeyError, err)
}

// RecoverAndLogError logs a recovered panic with the goroutine's
// stack. It must be deferred.
func RecoverAndLogError(ctx context.Context) {
	if r := recover(); r != nil {
		buf := make([]byte, 64<<10)
		buf = buf[:runtime.Stack(buf, false)]
		Write(ctx, KeyMessage, "panic", KeyError, r, KeyStack, buf)
	}
}

// stackLines renders a raw runtime stack or a list of frames.
// ok is false for any other value.
func stackLines(v interface{}) (lines []string, ok bool) {
	switch v := v.(type) {
	case []byte:
		if len(v) > 0 {
			lines = []string{strings.TrimRight(string(v), "\n")}
		}
		return lines, true
	case []errors.StackFrame:
		for _, f := range v {
			lines = append(lines, f.String())
		}
		return lines, true
	}
	return nil, false
}

func appendPair(b *strings.Builder, k, v interface{}) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(formatKey(k))
	b.WriteByte('=')
	b.WriteString(formatValue(v))
}

// formatKey replaces delimiters, '=' and '"' in k with '-'.
// An empty key becomes "?".
func formatKey(k interface{}) string {
	s := fmt.Sprint(k)
	if s == "" {
		return "?"
	}
	return strings.Map(func(r rune) rune {
		if r == '=' || r == '"' || strings.ContainsRune(delims, r) {
			return '-'
		}
		return r
	}, s)
}

// formatValue quotes v when it holds a delimiter.
func formatValue(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, delims) {
		return strconv.Quote(s)
	}
	return s
}
