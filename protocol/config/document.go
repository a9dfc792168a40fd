/*
Package config holds the configuration document an interpreter run
is seeded from and serialized back into.

A Document is the logical shape: accounts, application and asset
tables, the transaction group, globals and arguments. Every leaf is
a Value that remembers the encoding it was written in, so a document
that is loaded and saved again keeps its literals.

Documents travel between programs as generic trees (maps, slices,
strings, numbers) via FromTree and Tree, and between files via the
json, yaml, toml and cbor codecs in codec.go.
*/
package config

import "github.com/hashprotocol/AlgoTeal-interpreter/errors"

var (
	// ErrDecode is returned for literals that do not decode
	// under their encoding, or that name no known encoding.
	ErrDecode = errors.New("decode error")

	// ErrDocument is returned for trees that do not have the
	// shape of a configuration document.
	ErrDocument = errors.New("malformed configuration document")

	// ErrFormat is returned for unknown file formats.
	ErrFormat = errors.New("unknown document format")
)

// Table maps names to values, as in application globals,
// asset parameters and the global field table.
type Table map[string]Value

// A Field is a transaction field: a scalar or an array of values.
type Field struct {
	Value   Value
	Array   []Value
	IsArray bool
}

// Scalar makes a scalar Field.
func Scalar(v Value) Field { return Field{Value: v} }

// Array makes an array Field.
func Array(vs ...Value) Field {
	if vs == nil {
		vs = []Value{}
	}
	return Field{Array: vs, IsArray: true}
}

// TxnTable maps transaction field names to fields.
type TxnTable map[string]Field

// Account is a simulated account.
type Account struct {
	Balance    uint64
	MinBalance uint64

	// AppLocals and AssetHoldings are keyed by decimal application
	// or asset id.
	AppLocals     map[string]Table
	AppsOptedIn   []string
	AssetHoldings map[string]Table
}

// Document is a complete configuration document.
type Document struct {
	Args     []Value
	Accounts map[string]*Account

	// keyed by decimal application or asset id
	AppGlobals  map[string]Table
	AppParams   map[string]Table
	AssetParams map[string]Table

	Txn      TxnTable
	Txns     []TxnTable
	Itxn     TxnTable
	LastItxn TxnTable

	// TxnSideEffects holds the scratch space of earlier group
	// transactions, keyed by group index then slot.
	TxnSideEffects map[string]Table
	Gaid           Table
	Globals        Table

	// Scratch seeds scratch slots by decimal index.
	Scratch Table

	// Stack is written by serialization for inspection and
	// ignored when a run is seeded.
	Stack []Value

	ShowCodeCoverage bool
}

// New returns an empty document with every table allocated.
func New() *Document {
	return &Document{
		Accounts:       make(map[string]*Account),
		AppGlobals:     make(map[string]Table),
		AppParams:      make(map[string]Table),
		AssetParams:    make(map[string]Table),
		Txn:            make(TxnTable),
		TxnSideEffects: make(map[string]Table),
		Gaid:           make(Table),
		Globals:        make(Table),
		Scratch:        make(Table),
	}
}

// NewAccount returns an empty account.
func NewAccount() *Account {
	return &Account{
		AppLocals:     make(map[string]Table),
		AssetHoldings: make(map[string]Table),
	}
}
