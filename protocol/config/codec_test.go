package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func TestCodecs(t *testing.T) {
	doc := sampleDocument()
	for _, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, doc, f), string(f))

		got, err := Decode(&buf, f)
		require.NoError(t, err, string(f))
		require.Equal(t, doc.Tree(), got.Tree(), string(f))
	}
}

func TestDecodeYAML(t *testing.T) {
	const src = `
txn:
  Sender: alice
  Amount: 10
  Note:
    encoding: base64
    value: aGVsbG8=
accounts:
  alice:
    balance: 5000
    appsOptedIn: [7]
showCodeCoverage: true
`
	doc, err := Decode(strings.NewReader(src), YAML)
	require.NoError(t, err)
	require.Equal(t, Text("alice"), doc.Txn["Sender"].Value)
	note, err := doc.Txn["Note"].Value.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), note)
	require.Equal(t, uint64(5000), doc.Accounts["alice"].Balance)
	require.Equal(t, []string{"7"}, doc.Accounts["alice"].AppsOptedIn)
	require.True(t, doc.ShowCodeCoverage)
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range Formats {
		doc, err := Decode(strings.NewReader(""), f)
		require.NoError(t, err, string(f))
		require.Empty(t, doc.Tree(), string(f))
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()
	for _, name := range []string{"doc.json", "doc.yml", "doc.toml", "doc.cbor"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, doc), name)
		got, err := Load(path)
		require.NoError(t, err, name)
		require.Equal(t, doc.Tree(), got.Tree(), name)
	}

	_, err := FormatOf("doc.ini")
	require.Equal(t, ErrFormat, errors.Root(err))
	err = Encode(&bytes.Buffer{}, doc, Format("ini"))
	require.Equal(t, ErrFormat, errors.Root(err))
}
