package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func sampleDocument() *Document {
	doc := New()
	doc.Args = []Value{Text("arg"), {EncHex, "0x01"}}
	acct := NewAccount()
	acct.Balance = 1000
	acct.MinBalance = 100
	acct.AppLocals["7"] = Table{"counter": Uint(3)}
	acct.AppsOptedIn = []string{"7"}
	acct.AssetHoldings["9"] = Table{"AssetBalance": Uint(50)}
	doc.Accounts["alice"] = acct
	doc.AppGlobals["7"] = Table{"owner": Text("alice")}
	doc.AssetParams["9"] = Table{"AssetTotal": Uint(1000000)}
	doc.Txn = TxnTable{
		"Sender":        Scalar(Text("alice")),
		"Amount":        Scalar(Uint(25)),
		"ApplicationID": Scalar(Uint(7)),
		"Accounts":      Array(Text("bob")),
	}
	doc.Txns = []TxnTable{doc.Txn, {"Fee": Scalar(Uint(1000))}}
	doc.Globals = Table{"Round": Uint(12)}
	doc.Scratch = Table{"3": Value{EncHex, "0x01"}}
	return doc
}

func TestTreeRoundTrip(t *testing.T) {
	doc := sampleDocument()
	tree := doc.Tree()

	// through json to get decoder-shaped types
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	var generic interface{}
	require.NoError(t, json.Unmarshal(data, &generic))

	got, err := FromTree(generic)
	require.NoError(t, err)
	require.Equal(t, doc.Tree(), got.Tree())
	require.Equal(t, uint64(1000), got.Accounts["alice"].Balance)
	require.True(t, got.Txn["Accounts"].IsArray)
	require.Equal(t, Uint(25), got.Txns[0]["Amount"].Value)
}

func TestFromTreeYAMLShape(t *testing.T) {
	tree := map[interface{}]interface{}{
		"gtxn": []interface{}{
			map[interface{}]interface{}{"Amount": 5},
		},
		"globals": map[interface{}]interface{}{"Round": uint64(1)},
	}
	doc, err := FromTree(tree)
	require.NoError(t, err)
	require.Len(t, doc.Txns, 1)
	require.Equal(t, Uint(5), doc.Txns[0]["Amount"].Value)
	require.Equal(t, Uint(1), doc.Globals["Round"])
}

func TestFromTreeNil(t *testing.T) {
	doc, err := FromTree(nil)
	require.NoError(t, err)
	require.Empty(t, doc.Accounts)
	require.Empty(t, doc.Tree())
}

func TestFromTreeErrors(t *testing.T) {
	cases := []struct {
		tree    interface{}
		wantErr error
	}{
		{[]interface{}{1}, ErrDocument},
		{map[string]interface{}{"bogus": 1}, ErrDocument},
		{map[string]interface{}{"args": 1}, ErrDocument},
		{map[string]interface{}{"args": []interface{}{-1}}, ErrDocument},
		{map[string]interface{}{"args": []interface{}{1.5}}, ErrDocument},
		{map[string]interface{}{"txns": map[string]interface{}{}}, ErrDocument},
		{map[string]interface{}{"showCodeCoverage": "yes"}, ErrDocument},
		{map[string]interface{}{"accounts": map[string]interface{}{
			"a": map[string]interface{}{"nickname": "x"},
		}}, ErrDocument},
		{map[string]interface{}{"globals": map[string]interface{}{
			"X": map[string]interface{}{"encoding": "rot13", "value": "x"},
		}}, ErrDecode},
		{map[string]interface{}{"globals": map[string]interface{}{
			"X": map[string]interface{}{"encoding": "hex", "value": "0xq"},
		}}, ErrDecode},
	}
	for i, c := range cases {
		_, err := FromTree(c.tree)
		if errors.Root(err) != c.wantErr {
			t.Errorf("case %d: FromTree err = %v want %v", i, err, c.wantErr)
		}
	}
}
