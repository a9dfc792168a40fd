package rotation

import (
	"os"
	"path/filepath"
	"testing"
)

func readFile(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestWritePartialLine(t *testing.T) {
	name := filepath.Join(t.TempDir(), "teali.log")
	f := Create(name, 1024, 2)

	f.Write([]byte("op=+ "))
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("partial line reached disk: %v", err)
	}
	f.Write([]byte("line=1\nop=-"))
	if got := readFile(t, name); got != "op=+ line=1\n" {
		t.Errorf("got %q", got)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, name); got != "op=+ line=1\nop=-\n" {
		t.Errorf("after close got %q", got)
	}
}

func TestRotate(t *testing.T) {
	name := filepath.Join(t.TempDir(), "teali.log")
	f := Create(name, 8, 2)
	defer f.Close()

	for _, line := range []string{"aaaaaa\n", "bbbbbb\n", "cccccc\n", "dddddd\n"} {
		if _, err := f.Write([]byte(line)); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[string]string{
		name:        "dddddd\n",
		name + ".1": "cccccc\n",
		name + ".2": "bbbbbb\n",
	}
	for file, want := range cases {
		if got := readFile(t, file); got != want {
			t.Errorf("%s = %q want %q", filepath.Base(file), got, want)
		}
	}
	if _, err := os.Stat(name + ".3"); !os.IsNotExist(err) {
		t.Errorf("kept more than 2 generations")
	}
}

func TestWriteError(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "teali.log")
	f := Create(name, 64, 1)
	if _, err := f.Write([]byte("x\n")); err == nil {
		t.Fatal("expected error opening log in missing directory")
	}
	if string(f.tail) != string(dropped) {
		t.Errorf("tail = %q want drop notice", f.tail)
	}
}
