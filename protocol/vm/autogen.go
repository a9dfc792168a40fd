package vm

import (
	"context"
	"strconv"
	"strings"
)

// MaxGeneratedIndex is the highest argument, array element or group
// index AutoGenerate will synthesize. Requests beyond it fail with
// ErrRange instead of growing the context.
const MaxGeneratedIndex = 255

// addressFields hold 32-byte addresses; they are generated as the
// zero address rather than as empty bytes.
var addressFields = map[string]bool{
	"Sender": true, "Receiver": true, "CloseRemainderTo": true,
	"AssetSender": true, "AssetReceiver": true, "AssetCloseTo": true,
	"RekeyTo": true, "FreezeAssetAccount": true, "Accounts": true,
	"ConfigAssetManager": true, "ConfigAssetReserve": true,
	"ConfigAssetFreeze": true, "ConfigAssetClawback": true,
	"ZeroAddress": true, "CreatorAddress": true, "CurrentApplicationAddress": true,
	"AssetManager": true, "AssetReserve": true, "AssetFreeze": true,
	"AssetClawback": true, "AssetCreator": true,
	"AppCreator": true, "AppAddress": true,
}

// AutoGenerate returns a MissingFunc that fills every missing
// path with a zero value of the right shape, creating accounts,
// tables, arguments and group members as needed.
func AutoGenerate() MissingFunc {
	return func(ctx context.Context, cx *Context, path string) error {
		return cx.generate(strings.Split(path, "."))
	}
}

func zeroField(f *fieldSpec) Field {
	switch {
	case f.array:
		return Field{Array: []Value{}, IsArray: true}
	case f.typ == StackUint64:
		return Field{Value: NewUint64(0)}
	case addressFields[f.name]:
		return Field{Value: bytesValue(make([]byte, 32))}
	}
	return Field{Value: bytesValue(nil)}
}

func zeroIn(g FieldGroup, name string) (Value, bool) {
	f, ok := lookupField(g, name)
	if !ok {
		return Value{}, false
	}
	return zeroField(f).Value, true
}

func ensureTable(m map[string]Table, key string) Table {
	t := m[key]
	if t == nil {
		t = make(Table)
		m[key] = t
	}
	return t
}

// generatedIndex parses an index segment. ok is false when seg is
// not an index; err is set when it is one beyond MaxGeneratedIndex.
func generatedIndex(seg string) (i int, ok bool, err error) {
	n, perr := strconv.ParseUint(seg, 10, 64)
	if perr != nil {
		return 0, false, nil
	}
	if n > MaxGeneratedIndex {
		return 0, false, outOfRange("cannot generate index %d, limit %d", n, MaxGeneratedIndex)
	}
	return int(n), true, nil
}

func (cx *Context) generate(segs []string) error {
	if len(segs) < 2 {
		return nil
	}
	rest := segs[2:]
	switch segs[0] {
	case "accounts":
		a := cx.Accounts[segs[1]]
		if a == nil {
			a = newAccount()
			cx.Accounts[segs[1]] = a
		}
		if len(rest) == 3 && rest[0] == "assetHoldings" {
			if v, ok := zeroIn(AssetHoldingFields, rest[2]); ok {
				ensureTable(a.AssetHoldings, rest[1])[rest[2]] = v
			}
		}
		if len(rest) == 3 && rest[0] == "appLocals" {
			ensureTable(a.AppLocals, rest[1])[rest[2]] = NewUint64(0)
		}
	case "appParams":
		if v, ok := zeroIn(AppParamsFields, last(segs)); ok && len(segs) == 3 {
			ensureTable(cx.AppParams, segs[1])[segs[2]] = v
		}
	case "assetParams":
		if v, ok := zeroIn(AssetParamsFields, last(segs)); ok && len(segs) == 3 {
			ensureTable(cx.AssetParams, segs[1])[segs[2]] = v
		}
	case "appGlobals":
		if len(segs) == 3 {
			ensureTable(cx.AppGlobals, segs[1])[segs[2]] = NewUint64(0)
		}
	case "txnSideEffects":
		if len(segs) == 3 {
			ensureTable(cx.TxnSideEffects, segs[1])[segs[2]] = NewUint64(0)
		}
	case "gaid":
		if cx.Gaid == nil {
			cx.Gaid = make(Table)
		}
		cx.Gaid[segs[1]] = NewUint64(0)
	case "globals":
		if v, ok := zeroIn(GlobalFields, segs[1]); ok {
			if cx.Globals == nil {
				cx.Globals = make(Table)
			}
			cx.Globals[segs[1]] = v
		}
	case "args":
		i, ok, err := generatedIndex(segs[1])
		if !ok {
			return err
		}
		for len(cx.Args) <= i {
			cx.Args = append(cx.Args, bytesValue(nil))
		}
	case "txn":
		if cx.Txn == nil {
			cx.Txn = make(TxnTable)
		}
		return generateTxn(cx.Txn, segs[1:])
	case "txns":
		i, ok, err := generatedIndex(segs[1])
		if !ok {
			return err
		}
		if len(cx.Txns) == 0 {
			cx.Txns = []TxnTable{cx.Txn}
		}
		for len(cx.Txns) <= i {
			cx.Txns = append(cx.Txns, make(TxnTable))
		}
		return generateTxn(cx.Txns[i], rest)
	case "lastItxn":
		if cx.LastItxn == nil {
			cx.LastItxn = make(TxnTable)
		}
		return generateTxn(cx.LastItxn, segs[1:])
	}
	return nil
}

func last(segs []string) string { return segs[len(segs)-1] }

// generateTxn fills a missing field, or extends an array field
// with zero elements so that the requested index exists.
func generateTxn(t TxnTable, segs []string) error {
	if len(segs) == 0 {
		return nil
	}
	f, ok := lookupField(TxnFields, segs[0])
	if !ok {
		return nil
	}
	cur, present := t[f.name]
	if !present {
		cur = zeroField(f)
	}
	if f.array && len(segs) == 2 {
		i, ok, err := generatedIndex(segs[1])
		if err != nil {
			return err
		}
		if ok {
			elem := zeroField(&fieldSpec{name: f.name, typ: f.typ})
			for len(cur.Array) <= i {
				cur.Array = append(cur.Array, elem.Value)
			}
		}
	}
	t[f.name] = cur
	return nil
}
