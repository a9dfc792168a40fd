package env

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func setenv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatal("unexpected error", err)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestInt(t *testing.T) {
	defer Reset()
	result := Int("TEALI_TEST_NONEXISTENT", 15)
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if *result != 15 {
		t.Fatalf("expected result=15, got result=%d", *result)
	}

	setenv(t, "TEALI_TEST_INT", "25")
	result = Int("TEALI_TEST_INT", 15)
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if *result != 25 {
		t.Fatalf("expected result=25, got result=%d", *result)
	}
}

func TestUint64Var(t *testing.T) {
	defer Reset()
	var result uint64
	setenv(t, "TEALI_TEST_STEPS", "0x10")
	Uint64Var(&result, "TEALI_TEST_STEPS", 7)
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if result != 16 {
		t.Fatalf("expected result=16, got result=%d", result)
	}
}

func TestBool(t *testing.T) {
	defer Reset()
	result := Bool("TEALI_TEST_NONEXISTENT", true)
	setenv(t, "TEALI_TEST_BOOL", "true")
	other := Bool("TEALI_TEST_BOOL", false)
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if !*result || !*other {
		t.Fatalf("expected true, true got %t, %t", *result, *other)
	}
}

func TestDurationVar(t *testing.T) {
	defer Reset()
	var result time.Duration
	setenv(t, "TEALI_TEST_DURATION", "25s")
	DurationVar(&result, "TEALI_TEST_DURATION", 15*time.Second)
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if result != 25*time.Second {
		t.Fatalf("expected result=25s, got result=%v", result)
	}
}

func TestString(t *testing.T) {
	defer Reset()
	result := String("TEALI_TEST_NONEXISTENT", "default")
	setenv(t, "TEALI_TEST_STRING", "something-new")
	var other string
	StringVar(&other, "TEALI_TEST_STRING", "default")
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if *result != "default" || other != "something-new" {
		t.Fatalf("got %q, %q", *result, other)
	}
}

func TestStringSliceVar(t *testing.T) {
	defer Reset()
	var result []string
	StringSliceVar(&result, "TEALI_TEST_NONEXISTENT", "hi")
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if exp := []string{"hi"}; !reflect.DeepEqual(exp, result) {
		t.Fatalf("expected %v, got %v", exp, result)
	}

	setenv(t, "TEALI_TEST_SLICE", "hello, ,world")
	StringSliceVar(&result, "TEALI_TEST_SLICE", "hi", "there")
	if err := Parse(); err != nil {
		t.Fatal(err)
	}
	if exp := []string{"hello", "world"}; !reflect.DeepEqual(exp, result) {
		t.Fatalf("expected %v, got %v", exp, result)
	}
}

func TestParseError(t *testing.T) {
	defer Reset()
	setenv(t, "TEALI_TEST_BAD_INT", "twelve")
	setenv(t, "TEALI_TEST_GOOD_INT", "12")
	bad := Int("TEALI_TEST_BAD_INT", 3)
	good := Int("TEALI_TEST_GOOD_INT", 3)

	err := Parse()
	if errors.Root(err) != ErrBadValue {
		t.Fatalf("Parse() = %v want ErrBadValue", err)
	}
	if *bad != 3 || *good != 12 {
		t.Errorf("bad=%d good=%d, want 3 and 12", *bad, *good)
	}
}
