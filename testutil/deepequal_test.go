package testutil

import (
	"math/big"
	"strings"
	"testing"
)

func TestDeepEqual(t *testing.T) {
	type s struct {
		a int
		b string
		n *big.Int
	}

	cases := []struct {
		a, b interface{}
		want bool
	}{
		{1, 1, true},
		{1, 2, false},
		{nil, nil, true},
		{nil, []byte{}, true},
		{nil, []byte{1}, false},
		{[]byte{1}, []byte{1}, true},
		{[]byte{1}, []byte{2}, false},
		{[]byte{1}, []byte{1, 2}, false},
		{[]byte{1}, []string{"1"}, false},
		{[3]byte{}, [4]byte{}, false},
		{[3]byte{1}, [3]byte{1, 0, 0}, true},
		{s{}, s{}, true},
		{s{a: 1}, s{}, false},
		{s{b: "foo"}, s{}, false},
		{s{n: big.NewInt(5)}, s{n: big.NewInt(5)}, true},
		{s{n: big.NewInt(5)}, s{n: big.NewInt(6)}, false},
		{s{n: new(big.Int).Sub(big.NewInt(5), big.NewInt(5))}, s{n: new(big.Int)}, true},
		{s{n: big.NewInt(0)}, s{}, false},
		{map[string][]byte{"k": nil}, map[string][]byte{"k": {}}, true},
		{map[string]int{"k": 1}, map[string]int{"j": 1}, false},
		{"foo", "foo", true},
		{"foo", "bar", false},
		{"foo", nil, false},
	}

	for i, c := range cases {
		got := DeepEqual(c.a, c.b)
		if got != c.want {
			t.Errorf("case %d: got %v want %v", i, got, c.want)
		}
	}
}

func TestDump(t *testing.T) {
	got := Dump(map[string]int{"b": 2, "a": 1})
	a := strings.Index(got, `"a": (int) 1`)
	b := strings.Index(got, `"b": (int) 2`)
	if a < 0 || b < 0 || a > b {
		t.Errorf("Dump = %q, want sorted keys a then b", got)
	}
}
