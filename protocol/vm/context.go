package vm

import (
	"math/big"
	"strconv"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
)

// Table maps names to values.
type Table map[string]Value

// Field is a transaction field: a scalar or an array.
type Field struct {
	Value   Value
	Array   []Value
	IsArray bool
}

// TxnTable maps transaction field names to fields.
type TxnTable map[string]Field

// Account is a simulated account.
type Account struct {
	Balance    uint64
	MinBalance uint64

	// keyed by decimal application or asset id
	AppLocals     map[string]Table
	AppsOptedIn   []string
	AssetHoldings map[string]Table
}

func newAccount() *Account {
	return &Account{
		AppLocals:     make(map[string]Table),
		AssetHoldings: make(map[string]Table),
	}
}

// OptedIn reports whether the account has opted into app.
func (a *Account) OptedIn(app string) bool {
	for _, id := range a.AppsOptedIn {
		if id == app {
			return true
		}
	}
	return false
}

// ScratchSize is the number of scratch slots.
const ScratchSize = 256

// Context is the complete state of one run. It is owned by a single
// Interpreter and is not safe for concurrent use.
type Context struct {
	IP        int
	Stack     []Value // Stack[len(Stack)-1] is the top
	Scratch   [ScratchSize]Value
	CallStack []int

	IntConstants  []*big.Int
	ByteConstants [][]byte

	// Accounts, app and asset tables are keyed by account name
	// (or printable address) and decimal id respectively.
	Accounts    map[string]*Account
	AppGlobals  map[string]Table
	AppParams   map[string]Table
	AssetParams map[string]Table

	Txn  TxnTable
	Txns []TxnTable

	// Itxn is the inner transaction being built, nil outside
	// itxn_begin ... itxn_submit. InnerTxns holds every submitted
	// inner transaction, LastItxn the last of them.
	Itxn      TxnTable
	itxnGroup []TxnTable
	LastItxn  TxnTable
	InnerTxns []TxnTable

	TxnSideEffects map[string]Table
	Gaid           Table
	Globals        Table
	Args           []Value

	Finished bool
	Version  uint64

	BranchTargets map[string]int
	Tokens        []Token

	OnMissing MissingFunc
	missed    map[string]bool
}

// NewContext builds the starting context for prog from doc.
// A nil doc is an empty document.
func NewContext(prog *Program, doc *config.Document) (*Context, error) {
	if doc == nil {
		doc = config.New()
	}
	cx := &Context{
		Accounts:       make(map[string]*Account),
		AppGlobals:     make(map[string]Table),
		AppParams:      make(map[string]Table),
		AssetParams:    make(map[string]Table),
		TxnSideEffects: make(map[string]Table),
		Version:        prog.Version,
		BranchTargets:  prog.BranchTargets,
		Tokens:         prog.Tokens,
		missed:         make(map[string]bool),
	}
	for i := range cx.Scratch {
		cx.Scratch[i] = NewUint64(0)
	}

	d := decoder{}
	cx.Args = d.values(doc.Args, "args")
	for name, a := range doc.Accounts {
		acct := newAccount()
		acct.Balance, acct.MinBalance = a.Balance, a.MinBalance
		acct.AppLocals = d.tables(a.AppLocals, "accounts."+name+".appLocals")
		acct.AssetHoldings = d.tables(a.AssetHoldings, "accounts."+name+".assetHoldings")
		acct.AppsOptedIn = append([]string{}, a.AppsOptedIn...)
		cx.Accounts[name] = acct
	}
	cx.AppGlobals = d.tables(doc.AppGlobals, "appGlobals")
	cx.AppParams = d.tables(doc.AppParams, "appParams")
	cx.AssetParams = d.tables(doc.AssetParams, "assetParams")
	cx.Txn = d.txn(doc.Txn, "txn")
	for i, t := range doc.Txns {
		cx.Txns = append(cx.Txns, d.txn(t, "txns."+strconv.Itoa(i)))
	}
	if doc.Itxn != nil {
		cx.Itxn = d.txn(doc.Itxn, "itxn")
	}
	if doc.LastItxn != nil {
		cx.LastItxn = d.txn(doc.LastItxn, "lastItxn")
	}
	cx.TxnSideEffects = d.tables(doc.TxnSideEffects, "txnSideEffects")
	cx.Gaid = d.table(doc.Gaid, "gaid")
	cx.Globals = d.table(doc.Globals, "globals")
	for slot, p := range doc.Scratch {
		i, perr := strconv.Atoi(slot)
		if perr != nil || i < 0 || i >= ScratchSize {
			return nil, errors.WithDetailf(ErrRange, "scratch slot %q, want 0 to %d", slot, ScratchSize-1)
		}
		cx.Scratch[i] = d.value(p, "scratch."+slot)
	}
	if d.err != nil {
		return nil, d.err
	}
	return cx, nil
}

// decoder converts document values, keeping the first error.
type decoder struct {
	err error
}

func (d *decoder) value(p config.Value, path string) Value {
	v, err := FromPlain(p)
	if err != nil && d.err == nil {
		d.err = errors.WithDetailf(err, "at %s", path)
	}
	return v
}

func (d *decoder) values(ps []config.Value, path string) []Value {
	vs := make([]Value, len(ps))
	for i, p := range ps {
		vs[i] = d.value(p, path+"."+strconv.Itoa(i))
	}
	return vs
}

func (d *decoder) table(t config.Table, path string) Table {
	out := make(Table, len(t))
	for k, p := range t {
		out[k] = d.value(p, path+"."+k)
	}
	return out
}

func (d *decoder) tables(ts map[string]config.Table, path string) map[string]Table {
	out := make(map[string]Table, len(ts))
	for k, t := range ts {
		out[k] = d.table(t, path+"."+k)
	}
	return out
}

func (d *decoder) txn(t config.TxnTable, path string) TxnTable {
	out := make(TxnTable, len(t))
	for k, f := range t {
		if f.IsArray {
			out[k] = Field{Array: d.values(f.Array, path+"."+k), IsArray: true}
		} else {
			out[k] = Field{Value: d.value(f.Value, path+"."+k)}
		}
	}
	return out
}

// group returns the transaction group. A document without a
// group runs as a group of one holding txn.
func (cx *Context) group() []TxnTable {
	if len(cx.Txns) == 0 {
		return []TxnTable{cx.Txn}
	}
	return cx.Txns
}
