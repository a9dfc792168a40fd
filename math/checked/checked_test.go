package checked

import (
	"math"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestUint64(t *testing.T) {
	cases := []struct {
		f          func(a, b uint64) (uint64, bool)
		a, b, want uint64
		wantOk     bool
	}{
		{AddUint64, 2, 3, 5, true},
		{AddUint64, math.MaxUint64, 0, math.MaxUint64, true},
		{AddUint64, math.MaxUint64, 1, 0, false},
		{SubUint64, 3, 2, 1, true},
		{SubUint64, 2, 2, 0, true},
		{SubUint64, 2, 3, 0, false},
		{MulUint64, 2, 3, 6, true},
		{MulUint64, math.MaxUint64, 1, math.MaxUint64, true},
		{MulUint64, math.MaxUint64, 2, 0, false},
		{MulUint64, 1 << 32, 1 << 32, 0, false},
		{MulUint64, 0, math.MaxUint64, 0, true},
		{DivUint64, 7, 2, 3, true},
		{DivUint64, 1, 0, 0, false},
		{ModUint64, 7, 2, 1, true},
		{ModUint64, 1, 0, 0, false},
		{ExpUint64, 2, 10, 1024, true},
		{ExpUint64, 2, 63, 1 << 63, true},
		{ExpUint64, 2, 64, 0, false},
		{ExpUint64, 0, 5, 0, true},
		{ExpUint64, 5, 0, 1, true},
		{ExpUint64, 0, 0, 0, false},
		{ExpUint64, 1, math.MaxUint64, 1, true},
		{LshiftUint64, 1, 2, 4, true},
		{LshiftUint64, 1, 63, 1 << 63, true},
		{LshiftUint64, 1, 64, 0, false},
		{LshiftUint64, 2, 63, 0, false},
	}

	for _, c := range cases {
		got, gotOk := c.f(c.a, c.b)

		if got != c.want {
			t.Errorf("%s(%d, %d) = %d want %d", fname(c.f), c.a, c.b, got, c.want)
		}

		if gotOk != c.wantOk {
			t.Errorf("%s(%d, %d) ok = %v want %v", fname(c.f), c.a, c.b, gotOk, c.wantOk)
		}
	}
}

func TestSqrtUint64(t *testing.T) {
	cases := []struct{ a, want uint64 }{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{99, 9},
		{100, 10},
		{math.MaxUint64, math.MaxUint32},
		{(1 << 32) * (1 << 31), 3037000499},
	}
	for _, c := range cases {
		if got := SqrtUint64(c.a); got != c.want {
			t.Errorf("SqrtUint64(%d) = %d want %d", c.a, got, c.want)
		}
	}
}

func fname(f interface{}) string {
	name := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	return name[strings.LastIndex(name, ".")+1:]
}
