package log

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func setTestLogWriter(w io.Writer) func() {
	logWriterMu.Lock()
	old := logWriter
	logWriter = w
	logWriterMu.Unlock()

	return func() {
		logWriterMu.Lock()
		logWriter = old
		logWriterMu.Unlock()
	}
}

func TestWrite(t *testing.T) {
	examples := []struct {
		keyvals []interface{}
		want    []string
	}{
		// Basic example
		{
			keyvals: []interface{}{"opcode", "+", "line", 3},
			want: []string{
				"runid=unknown_run_id",
				"at=log_test.go:",
				"t=",
				"opcode=+",
				"line=3",
			},
		},

		// Duplicate keys
		{
			keyvals: []interface{}{"path", "txn.Sender", "path", "globals.Round"},
			want: []string{
				"path=txn.Sender",
				"path=globals.Round",
			},
		},

		// Zero log params
		{
			keyvals: nil,
			want: []string{
				"runid=unknown_run_id",
				"at=log_test.go:",
				"t=",
			},
		},

		// Odd number of log params
		{
			keyvals: []interface{}{"k1", "v1", "k2"},
			want: []string{
				"k1=v1",
				"k2=",
				`log-error="odd number of log params"`,
			},
		},
	}

	for i, ex := range examples {
		t.Log("Example", i)

		buf := new(bytes.Buffer)
		reset := setTestLogWriter(buf)

		Write(context.Background(), ex.keyvals...)
		reset()

		got := buf.String()
		for _, w := range ex.want {
			if !strings.Contains(got, w) {
				t.Errorf("Result did not contain string:\ngot:  %s\nwant: %s", got, w)
			}
		}
	}
}

func TestWriteRunID(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	Write(WithRunID(context.Background(), "example-run-id"))

	got := buf.String()
	want := "runid=example-run-id"
	if !strings.Contains(got, want) {
		t.Errorf("Result did not contain string:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestNewRunContext(t *testing.T) {
	a := RunID(NewRunContext(context.Background()))
	b := RunID(NewRunContext(context.Background()))
	if a == UnknownRunID || len(a) != 12 {
		t.Errorf("RunID = %q, want 12 hex digits", a)
	}
	if a == b {
		t.Errorf("two run contexts share ID %q", a)
	}
	if got := RunID(context.Background()); got != UnknownRunID {
		t.Errorf("RunID(background) = %q want %q", got, UnknownRunID)
	}
}

func TestPrefix(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	SetPrefix("app", "teali", "mode", "run all")
	defer SetPrefix()

	Write(context.Background(), "k", "v")
	if got := buf.String(); !strings.HasPrefix(got, `app=teali mode="run all" runid=`) {
		t.Errorf("got %q, want prefixed entry", got)
	}
}

func TestMessagef(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	Messagef(context.Background(), "loaded %d tokens", 7)

	got := buf.String()
	want := []string{
		"at=log_test.go:",
		`message="loaded 7 tokens"`,
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("Result did not contain string:\ngot:  %s\nwant: %s", got, w)
		}
	}
}

func TestError(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	Error(context.Background(), errors.New("boo"), "failure x ", 0)

	got := buf.String()
	want := []string{
		"at=log_test.go:",
		`error="failure x 0: boo"`,
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("Result did not contain string:\ngot:  %s\nwant: %s", got, w)
		}
	}
}

func TestRecoverAndLogError(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	func() {
		defer RecoverAndLogError(context.Background())
		panic("stack exploded")
	}()

	got := buf.String()
	for _, w := range []string{"message=panic", `error="stack exploded"`, "goroutine"} {
		if !strings.Contains(got, w) {
			t.Errorf("Result did not contain string:\ngot:  %s\nwant: %s", got, w)
		}
	}
}

func TestWriteStack(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	Write(context.Background(), "k", "v", KeyStack, []byte("goroutine 1 [running]:\n"))

	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 3 || lines[1] != "goroutine 1 [running]:" || lines[2] != "" {
		t.Fatalf("got %q, want entry line then stack line", buf.String())
	}
	if strings.Contains(lines[0], "stack=") {
		t.Errorf("stack printed inline: %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], " k=v") {
		t.Errorf("entry = %q, want k=v last", lines[0])
	}
}

func TestFormatKey(t *testing.T) {
	examples := []struct {
		key  interface{}
		want string
	}{
		{"hello", "hello"},
		{"hello world", "hello-world"},
		{"", "?"},
		{true, "true"},
		{"a b\"c\nd;e\tf龜g", "a-b-c-d-e-f龜g"},
	}

	for i, ex := range examples {
		t.Log("Example", i)
		got := formatKey(ex.key)
		if got != ex.want {
			t.Errorf("formatKey(%#v) = %q want %q", ex.key, got, ex.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	examples := []struct {
		value interface{}
		want  string
	}{
		{"hello", "hello"},
		{"hello world", `"hello world"`},
		{1.5, "1.5"},
		{true, "true"},
		{errors.New("this is an error"), `"this is an error"`},
		{[]byte{'a', 'b', 'c'}, `"[97 98 99]"`},
		{bytes.NewBuffer([]byte{'a', 'b', 'c'}), "abc"},
		{"a b\"c\nd;e\tf龜g", `"a b\"c\nd;e\tf龜g"`},
	}

	for i, ex := range examples {
		t.Log("Example", i)
		got := formatValue(ex.value)
		if got != ex.want {
			t.Errorf("formatValue(%#v) = %q want %q", ex.value, got, ex.want)
		}
	}
}
