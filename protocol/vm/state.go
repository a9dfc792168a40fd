package vm

import (
	"context"
	"strconv"

	"github.com/hashprotocol/AlgoTeal-interpreter/encoding/address"
	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// accountName resolves an account operand. A 32-byte string is an
// address, any other string an account name; integer 0 is the
// sender and i indexes the Accounts array from 1.
func (cx *Context) accountName(ctx context.Context, v Value, opcode string) (string, error) {
	if v.IsInt() {
		i, ok := v.Uint64()
		if !ok {
			return "", errors.WithDetailf(ErrArithmetic, "opcode %q account operand is %s, outside the 64-bit range", opcode, v)
		}
		var err error
		if i == 0 {
			v, err = cx.RequireValue(ctx, "txn.Sender", opcode)
		} else {
			v, err = cx.arrayElem(ctx, "txn.Accounts", i-1, opcode)
		}
		if err != nil {
			return "", err
		}
		if v.IsInt() {
			return "", errors.WithDetailf(ErrType, "account operand %d resolves to an integer", i)
		}
	}
	if len(v.b) == address.KeySize {
		return address.MustEncode(v.b), nil
	}
	return string(v.b), nil
}

// arrayElem reads element i of an array field, failing with
// ErrRange when the array is present but too short.
func (cx *Context) arrayElem(ctx context.Context, path string, i uint64, opcode string) (Value, error) {
	arr, ok, err := cx.RequestArray(ctx, path)
	if err != nil {
		return Value{}, err
	}
	if ok && i >= uint64(len(arr)) {
		return Value{}, outOfRange("%s index %d, array has %d entries", path, i, len(arr))
	}
	return cx.RequireValue(ctx, path+"."+strconv.FormatUint(i, 10), opcode)
}

func idString(v Value, field string) (string, error) {
	n, ok := v.Uint64()
	if !ok {
		return "", errors.WithDetailf(ErrType, "%s holds %s, want uint64", field, v.Type())
	}
	return strconv.FormatUint(n, 10), nil
}

func (cx *Context) currentApp(ctx context.Context, opcode string) (string, error) {
	v, err := cx.RequireValue(ctx, "txn.ApplicationID", opcode)
	if err != nil {
		return "", err
	}
	return idString(v, "txn.ApplicationID")
}

// appID resolves an application operand: 0 is the current
// application, 1 through len(Applications) index that array from
// 1, and anything else is a literal id.
func (cx *Context) appID(ctx context.Context, n uint64, opcode string) (string, error) {
	if n == 0 {
		return cx.currentApp(ctx, opcode)
	}
	apps, _, err := cx.RequestArray(ctx, "txn.Applications")
	if err != nil {
		return "", err
	}
	if n <= uint64(len(apps)) {
		return idString(apps[n-1], "txn.Applications")
	}
	return strconv.FormatUint(n, 10), nil
}

// assetID resolves an asset operand: an index into Assets when in
// range, otherwise a literal id.
func (cx *Context) assetID(ctx context.Context, n uint64) (string, error) {
	assets, _, err := cx.RequestArray(ctx, "txn.Assets")
	if err != nil {
		return "", err
	}
	if n < uint64(len(assets)) {
		return idString(assets[n], "txn.Assets")
	}
	return strconv.FormatUint(n, 10), nil
}

func (cx *Context) account(ctx context.Context, v Value, opcode string) (*Account, error) {
	name, err := cx.accountName(ctx, v, opcode)
	if err != nil {
		return nil, err
	}
	return cx.RequireAccount(ctx, name, opcode)
}

func opBalance(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushInt(a.Balance)
	return advance, nil
}

func opMinBalance(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushInt(a.MinBalance)
	return advance, nil
}

func opAppOptedIn(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	appArg := cx.popInt()
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	app, err := cx.appID(ctx, appArg, in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushBool(a.OptedIn(app))
	return advance, nil
}

// pushLookup pushes the value of key in t, or 0 when absent. With
// exists it also pushes 1 or 0.
func (cx *Context) pushLookup(t Table, key []byte, exists bool) {
	v, ok := t[string(key)]
	if !ok {
		v = NewUint64(0)
	}
	cx.push(v)
	if exists {
		cx.pushBool(ok)
	}
}

func opAppLocalGet(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	key := cx.popBytes()
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	app, err := cx.currentApp(ctx, in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushLookup(a.AppLocals[app], key, false)
	return advance, nil
}

func opAppLocalGetEx(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	key := cx.popBytes()
	appArg := cx.popInt()
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	app, err := cx.appID(ctx, appArg, in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushLookup(a.AppLocals[app], key, true)
	return advance, nil
}

func opAppLocalPut(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	v := cx.pop()
	key := cx.popBytes()
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	app, err := cx.currentApp(ctx, in.Opcode)
	if err != nil {
		return advance, err
	}
	ensureTable(a.AppLocals, app)[string(key)] = v
	return advance, nil
}

func opAppLocalDel(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	key := cx.popBytes()
	a, err := cx.account(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	app, err := cx.currentApp(ctx, in.Opcode)
	if err != nil {
		return advance, err
	}
	delete(a.AppLocals[app], string(key))
	return advance, nil
}

func opAppGlobalGet(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	key := cx.popBytes()
	app, err := cx.currentApp(ctx, in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushLookup(cx.AppGlobals[app], key, false)
	return advance, nil
}

func opAppGlobalGetEx(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	key := cx.popBytes()
	app, err := cx.appID(ctx, cx.popInt(), in.Opcode)
	if err != nil {
		return advance, err
	}
	cx.pushLookup(cx.AppGlobals[app], key, true)
	return advance, nil
}

func opAppGlobalPut(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	v := cx.pop()
	key := cx.popBytes()
	app, err := cx.currentApp(ctx, in.Opcode)
	if err != nil {
		return advance, err
	}
	ensureTable(cx.AppGlobals, app)[string(key)] = v
	return advance, nil
}

func opAppGlobalDel(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	key := cx.popBytes()
	app, err := cx.currentApp(ctx, in.Opcode)
	if err != nil {
		return advance, err
	}
	delete(cx.AppGlobals[app], string(key))
	return advance, nil
}

// pushParam pushes field f of the table at path along with 1, or
// 0, 0 when the table does not exist.
func (cx *Context) pushParam(ctx context.Context, t Table, path string, f *fieldSpec, opcode string) (Directive, error) {
	if t == nil {
		cx.pushInt(0)
		cx.pushInt(0)
		return advance, nil
	}
	path += "." + f.name
	v, err := cx.RequireValue(ctx, path, opcode)
	if err != nil {
		return advance, err
	}
	if v.Type() != f.typ {
		return advance, errors.WithDetailf(ErrType, "field %q holds %s, want %s", path, v.Type(), f.typ)
	}
	cx.push(v)
	cx.pushInt(1)
	return advance, nil
}

func opAssetHoldingGet(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	assetArg := cx.popInt()
	name, err := cx.accountName(ctx, cx.pop(), in.Opcode)
	if err != nil {
		return advance, err
	}
	a, err := cx.RequireAccount(ctx, name, in.Opcode)
	if err != nil {
		return advance, err
	}
	asset, err := cx.assetID(ctx, assetArg)
	if err != nil {
		return advance, err
	}
	path := "accounts." + name + ".assetHoldings." + asset
	return cx.pushParam(ctx, a.AssetHoldings[asset], path, in.field, in.Opcode)
}

func opAssetParamsGet(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	asset, err := cx.assetID(ctx, cx.popInt())
	if err != nil {
		return advance, err
	}
	return cx.pushParam(ctx, cx.AssetParams[asset], "assetParams."+asset, in.field, in.Opcode)
}

func opAppParamsGet(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	app, err := cx.appID(ctx, cx.popInt(), in.Opcode)
	if err != nil {
		return advance, err
	}
	return cx.pushParam(ctx, cx.AppParams[app], "appParams."+app, in.field, in.Opcode)
}
