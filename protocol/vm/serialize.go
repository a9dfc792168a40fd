package vm

import (
	"strconv"

	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
)

// Serialize converts the live state back into a document. Values
// decoded from a document keep their original literal. Scratch
// slots holding the integer 0 are left out.
func (cx *Context) Serialize() *config.Document {
	doc := config.New()
	doc.Args = plains(cx.Args)
	for name, a := range cx.Accounts {
		out := config.NewAccount()
		out.Balance, out.MinBalance = a.Balance, a.MinBalance
		out.AppLocals = plainTables(a.AppLocals)
		out.AssetHoldings = plainTables(a.AssetHoldings)
		out.AppsOptedIn = append([]string{}, a.AppsOptedIn...)
		doc.Accounts[name] = out
	}
	doc.AppGlobals = plainTables(cx.AppGlobals)
	doc.AppParams = plainTables(cx.AppParams)
	doc.AssetParams = plainTables(cx.AssetParams)
	doc.Txn = plainTxn(cx.Txn)
	for _, t := range cx.Txns {
		doc.Txns = append(doc.Txns, plainTxn(t))
	}
	if cx.Itxn != nil {
		doc.Itxn = plainTxn(cx.Itxn)
	}
	if cx.LastItxn != nil {
		doc.LastItxn = plainTxn(cx.LastItxn)
	}
	doc.TxnSideEffects = plainTables(cx.TxnSideEffects)
	doc.Gaid = plainTable(cx.Gaid)
	doc.Globals = plainTable(cx.Globals)
	for i, v := range cx.Scratch {
		if v.IsInt() && v.bigInt().Sign() == 0 {
			continue
		}
		doc.Scratch[strconv.Itoa(i)] = ToPlain(v)
	}
	doc.Stack = plains(cx.Stack)
	return doc
}

func plains(vs []Value) []config.Value {
	if len(vs) == 0 {
		return nil
	}
	out := make([]config.Value, len(vs))
	for i, v := range vs {
		out[i] = ToPlain(v)
	}
	return out
}

func plainTable(t Table) config.Table {
	out := make(config.Table, len(t))
	for k, v := range t {
		out[k] = ToPlain(v)
	}
	return out
}

func plainTables(ts map[string]Table) map[string]config.Table {
	out := make(map[string]config.Table, len(ts))
	for k, t := range ts {
		out[k] = plainTable(t)
	}
	return out
}

func plainTxn(t TxnTable) config.TxnTable {
	out := make(config.TxnTable, len(t))
	for k, f := range t {
		if f.IsArray {
			out[k] = config.Array(plains(f.Array)...)
		} else {
			out[k] = config.Scalar(ToPlain(f.Value))
		}
	}
	return out
}
