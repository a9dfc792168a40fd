package vm

import (
	"context"
	"strconv"
	"strings"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/log"
)

// MissingFunc is called with the dotted path of state a run needs
// but the context lacks. It may add the state to cx; the lookup is
// retried once after it returns. It is called at most once per
// path in a run.
type MissingFunc func(ctx context.Context, cx *Context, path string) error

// missing gives the host one chance to supply path.
// It reports whether the callback ran.
func (cx *Context) missing(ctx context.Context, path string) (bool, error) {
	if cx.OnMissing == nil || cx.missed[path] {
		return false, nil
	}
	if cx.missed == nil {
		cx.missed = make(map[string]bool)
	}
	cx.missed[path] = true
	log.Write(ctx, "missing", path)
	if err := cx.OnMissing(ctx, cx, path); err != nil {
		return true, errors.Wrapf(err, "resolving %s", path)
	}
	return true, nil
}

func (cx *Context) resolve(ctx context.Context, path string) (Field, bool, error) {
	f, ok := cx.lookup(path)
	if ok {
		return f, true, nil
	}
	ran, err := cx.missing(ctx, path)
	if err != nil || !ran {
		return Field{}, false, err
	}
	f, ok = cx.lookup(path)
	return f, ok, nil
}

// RequestValue returns the scalar at path, asking OnMissing once
// if it is absent. A missing value is not an error.
func (cx *Context) RequestValue(ctx context.Context, path string) (Value, bool, error) {
	f, ok, err := cx.resolve(ctx, path)
	if err != nil || !ok {
		return Value{}, false, err
	}
	if f.IsArray {
		return Value{}, false, errors.WithDetailf(ErrType, "field %q is an array, not a single value", path)
	}
	return f.Value, true, nil
}

// RequestArray is like RequestValue for array fields.
func (cx *Context) RequestArray(ctx context.Context, path string) ([]Value, bool, error) {
	f, ok, err := cx.resolve(ctx, path)
	if err != nil || !ok {
		return nil, false, err
	}
	if !f.IsArray {
		return nil, false, errors.WithDetailf(ErrType, "field %q is a single value, not an array", path)
	}
	return f.Array, true, nil
}

// RequestAccount returns the named account, asking OnMissing once
// with path accounts.<name> if it is absent.
func (cx *Context) RequestAccount(ctx context.Context, name string) (*Account, error) {
	if a := cx.Accounts[name]; a != nil {
		return a, nil
	}
	if _, err := cx.missing(ctx, "accounts."+name); err != nil {
		return nil, err
	}
	return cx.Accounts[name], nil
}

func missingErr(path, opcode string) error {
	err := errors.WithDetailf(ErrMissingConfig,
		"configuration field %q has not been provided (required by opcode %q), please add this field to your configuration",
		path, opcode)
	return errors.WithData(err, "path", path, "opcode", opcode)
}

// RequireValue is RequestValue that fails with ErrMissingConfig
// naming path and opcode when the value stays absent.
func (cx *Context) RequireValue(ctx context.Context, path, opcode string) (Value, error) {
	v, ok, err := cx.RequestValue(ctx, path)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Value{}, missingErr(path, opcode)
	}
	return v, nil
}

// RequireArray is RequestArray that fails when the array stays absent.
func (cx *Context) RequireArray(ctx context.Context, path, opcode string) ([]Value, error) {
	vs, ok, err := cx.RequestArray(ctx, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missingErr(path, opcode)
	}
	return vs, nil
}

// RequireAccount is RequestAccount that fails when the account stays absent.
func (cx *Context) RequireAccount(ctx context.Context, name, opcode string) (*Account, error) {
	a, err := cx.RequestAccount(ctx, name)
	if err != nil {
		return nil, err
	}
	if a == nil {
		err := errors.WithDetailf(ErrMissingConfig,
			"account %q not found (required by opcode %q), please add this account to your configuration",
			name, opcode)
		return nil, errors.WithData(err, "path", "accounts."+name, "opcode", opcode)
	}
	return a, nil
}

func scalar(v Value) (Field, bool) { return Field{Value: v}, true }

// lookup finds path in the live state without side effects.
func (cx *Context) lookup(path string) (Field, bool) {
	segs := strings.Split(path, ".")
	if len(segs) < 2 {
		return Field{}, false
	}
	rest := segs[2:]
	switch segs[0] {
	case "accounts":
		a := cx.Accounts[segs[1]]
		if a == nil {
			return Field{}, false
		}
		return a.lookup(rest)
	case "appGlobals":
		return tableLookup(cx.AppGlobals, segs[1:])
	case "appParams":
		return tableLookup(cx.AppParams, segs[1:])
	case "assetParams":
		return tableLookup(cx.AssetParams, segs[1:])
	case "txnSideEffects":
		return tableLookup(cx.TxnSideEffects, segs[1:])
	case "txn":
		gi := -1
		if len(cx.Txns) == 0 {
			gi = 0
		}
		return cx.txnLookup(cx.Txn, gi, segs[1:])
	case "txns":
		i, ok := index(segs[1], len(cx.group()))
		if !ok {
			return Field{}, false
		}
		return cx.txnLookup(cx.group()[i], i, rest)
	case "itxn":
		if cx.Itxn == nil {
			return Field{}, false
		}
		return cx.txnLookup(cx.Itxn, -1, segs[1:])
	case "lastItxn":
		if cx.LastItxn == nil {
			return Field{}, false
		}
		return cx.txnLookup(cx.LastItxn, -1, segs[1:])
	case "gaid":
		if len(rest) != 0 {
			return Field{}, false
		}
		v, ok := cx.Gaid[segs[1]]
		return Field{Value: v}, ok
	case "globals":
		if len(rest) != 0 {
			return Field{}, false
		}
		return cx.globalLookup(segs[1])
	case "args":
		i, ok := index(segs[1], len(cx.Args))
		if !ok || len(rest) != 0 {
			return Field{}, false
		}
		return scalar(cx.Args[i])
	case "scratch":
		i, ok := index(segs[1], ScratchSize)
		if !ok || len(rest) != 0 {
			return Field{}, false
		}
		return scalar(cx.Scratch[i])
	}
	return Field{}, false
}

func index(s string, n int) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

func tableLookup(tables map[string]Table, segs []string) (Field, bool) {
	if len(segs) != 2 {
		return Field{}, false
	}
	t := tables[segs[0]]
	if t == nil {
		return Field{}, false
	}
	v, ok := t[segs[1]]
	return Field{Value: v}, ok
}

func (a *Account) lookup(segs []string) (Field, bool) {
	if len(segs) == 0 {
		return Field{}, false
	}
	switch segs[0] {
	case "balance":
		if len(segs) == 1 {
			return scalar(NewUint64(a.Balance))
		}
	case "minBalance":
		if len(segs) == 1 {
			return scalar(NewUint64(a.MinBalance))
		}
	case "appsOptedIn":
		if len(segs) == 1 {
			ids := make([]Value, len(a.AppsOptedIn))
			for i, id := range a.AppsOptedIn {
				ids[i] = appIDValue(id)
			}
			return Field{Array: ids, IsArray: true}, true
		}
	case "appLocals":
		return tableLookup(a.AppLocals, segs[1:])
	case "assetHoldings":
		return tableLookup(a.AssetHoldings, segs[1:])
	}
	return Field{}, false
}

func appIDValue(id string) Value {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return NewUint64(n)
	}
	return NewBytes([]byte(id))
}

// txnLookup reads a field, or one element of an array field, from
// t. Count and enum fields are computed when absent. gi is the
// group index of t, or -1 when unknown.
func (cx *Context) txnLookup(t TxnTable, gi int, segs []string) (Field, bool) {
	if len(segs) == 0 || len(segs) > 2 {
		return Field{}, false
	}
	f, ok := t[segs[0]]
	if !ok {
		f, ok = computedTxnField(t, gi, segs[0])
	}
	if !ok || len(segs) == 1 {
		return f, ok
	}
	if !f.IsArray {
		return Field{}, false
	}
	i, ok := index(segs[1], len(f.Array))
	if !ok {
		return Field{}, false
	}
	return scalar(f.Array[i])
}

var countFields = map[string]string{
	"NumAppArgs":      "ApplicationArgs",
	"NumAccounts":     "Accounts",
	"NumAssets":       "Assets",
	"NumApplications": "Applications",
	"NumLogs":         "Logs",
}

func computedTxnField(t TxnTable, gi int, name string) (Field, bool) {
	if of, ok := countFields[name]; ok {
		return scalar(NewUint64(uint64(len(t[of].Array))))
	}
	switch name {
	case "TypeEnum":
		typ, ok := t["Type"]
		if !ok || !typ.Value.IsBytes() {
			return Field{}, false
		}
		return scalar(NewUint64(txnTypes[string(typ.Value.b)]))
	case "GroupIndex":
		if gi < 0 {
			return Field{}, false
		}
		return scalar(NewUint64(uint64(gi)))
	}
	return Field{}, false
}

func (cx *Context) globalLookup(name string) (Field, bool) {
	if v, ok := cx.Globals[name]; ok {
		return scalar(v)
	}
	switch name {
	case "ZeroAddress":
		return scalar(bytesValue(make([]byte, 32)))
	case "GroupSize":
		return scalar(NewUint64(uint64(len(cx.group()))))
	case "LogicSigVersion":
		return scalar(NewUint64(MaxVersion))
	case "CurrentApplicationID":
		if f, ok := cx.Txn["ApplicationID"]; ok && !f.IsArray {
			return scalar(f.Value)
		}
	}
	return Field{}, false
}
