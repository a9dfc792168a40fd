package config

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// Document keys as they appear in a tree.
const (
	keyArgs             = "args"
	keyAccounts         = "accounts"
	keyAppGlobals       = "appGlobals"
	keyAppParams        = "appParams"
	keyAssetParams      = "assetParams"
	keyTxn              = "txn"
	keyTxns             = "txns"
	keyGtxn             = "gtxn" // older spelling of txns
	keyItxn             = "itxn"
	keyLastItxn         = "lastItxn"
	keyTxnSideEffects   = "txnSideEffects"
	keyGaid             = "gaid"
	keyGlobals          = "globals"
	keyScratch          = "scratch"
	keyStack            = "stack"
	keyShowCodeCoverage = "showCodeCoverage"

	keyBalance       = "balance"
	keyMinBalance    = "minBalance"
	keyAppLocals     = "appLocals"
	keyAppsOptedIn   = "appsOptedIn"
	keyAssetHoldings = "assetHoldings"

	keyEncoding = "encoding"
	keyValue    = "value"
)

// FromTree builds a Document from a generic decoded tree, such as
// the result of unmarshaling json, yaml, toml or cbor into an
// interface{}. A nil tree yields an empty document.
func FromTree(tree interface{}) (*Document, error) {
	doc := New()
	if tree == nil {
		return doc, nil
	}
	top, err := asMap(normalize(tree), "")
	if err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(top) {
		v := top[k]
		switch k {
		case keyArgs, keyStack:
			vals, err := values(v, k)
			if err != nil {
				return nil, err
			}
			if k == keyArgs {
				doc.Args = vals
			} else {
				doc.Stack = vals
			}
		case keyAccounts:
			m, err := asMap(v, k)
			if err != nil {
				return nil, err
			}
			for name, a := range m {
				acct, err := account(a, k+"."+name)
				if err != nil {
					return nil, err
				}
				doc.Accounts[name] = acct
			}
		case keyAppGlobals, keyAppParams, keyAssetParams, keyTxnSideEffects:
			tables, err := nestedTables(v, k)
			if err != nil {
				return nil, err
			}
			switch k {
			case keyAppGlobals:
				doc.AppGlobals = tables
			case keyAppParams:
				doc.AppParams = tables
			case keyAssetParams:
				doc.AssetParams = tables
			case keyTxnSideEffects:
				doc.TxnSideEffects = tables
			}
		case keyTxn, keyItxn, keyLastItxn:
			t, err := txnTable(v, k)
			if err != nil {
				return nil, err
			}
			switch k {
			case keyTxn:
				doc.Txn = t
			case keyItxn:
				doc.Itxn = t
			case keyLastItxn:
				doc.LastItxn = t
			}
		case keyTxns, keyGtxn:
			list, ok := v.([]interface{})
			if !ok {
				return nil, shapeErr(k, "an array of transactions", v)
			}
			doc.Txns = make([]TxnTable, 0, len(list))
			for i, item := range list {
				t, err := txnTable(item, k+"."+strconv.Itoa(i))
				if err != nil {
					return nil, err
				}
				doc.Txns = append(doc.Txns, t)
			}
		case keyGaid, keyGlobals, keyScratch:
			t, err := table(v, k)
			if err != nil {
				return nil, err
			}
			switch k {
			case keyGaid:
				doc.Gaid = t
			case keyGlobals:
				doc.Globals = t
			case keyScratch:
				doc.Scratch = t
			}
		case keyShowCodeCoverage:
			b, ok := v.(bool)
			if !ok {
				return nil, shapeErr(k, "a boolean", v)
			}
			doc.ShowCodeCoverage = b
		default:
			return nil, errors.WithDetailf(ErrDocument, "unknown key %q", k)
		}
	}
	return doc, nil
}

func shapeErr(path, want string, got interface{}) error {
	return errors.WithDetailf(ErrDocument, "%s: want %s, have %T", path, want, got)
}

// normalize rewrites the map and slice types produced by the
// various decoders into map[string]interface{} and []interface{}.
func normalize(x interface{}) interface{} {
	switch x := x.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalize(v)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			m[k] = normalize(v)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(x))
		for i, v := range x {
			s[i] = normalize(v)
		}
		return s
	case []map[string]interface{}:
		s := make([]interface{}, len(x))
		for i, v := range x {
			s[i] = normalize(v)
		}
		return s
	}
	return x
}

func asMap(x interface{}, path string) (map[string]interface{}, error) {
	if x == nil {
		return map[string]interface{}{}, nil
	}
	m, ok := x.(map[string]interface{})
	if !ok {
		if path == "" {
			path = "document"
		}
		return nil, shapeErr(path, "a mapping", x)
	}
	return m, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// number converts any decoded numeric type to a non-negative big.Int.
func number(x interface{}) (*big.Int, bool) {
	switch n := x.(type) {
	case int:
		return big.NewInt(int64(n)), n >= 0
	case int32:
		return big.NewInt(int64(n)), n >= 0
	case int64:
		return big.NewInt(n), n >= 0
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case float64:
		if n < 0 || n != math.Trunc(n) || math.IsInf(n, 0) {
			return nil, false
		}
		i, _ := big.NewFloat(n).Int(nil)
		return i, true
	case json.Number:
		i, ok := new(big.Int).SetString(string(n), 10)
		return i, ok && i.Sign() >= 0
	case *big.Int:
		return new(big.Int).Set(n), n.Sign() >= 0
	}
	return nil, false
}

func value(x interface{}, path string) (Value, error) {
	switch v := x.(type) {
	case string:
		return Infer(v), nil
	case map[string]interface{}:
		enc, ok := v[keyEncoding].(string)
		if !ok || len(v) != 2 {
			return Value{}, shapeErr(path, `a mapping with "encoding" and "value"`, x)
		}
		var lit string
		switch l := v[keyValue].(type) {
		case string:
			lit = l
		default:
			n, ok := number(l)
			if !ok {
				return Value{}, shapeErr(path+"."+keyValue, "a string or non-negative integer", l)
			}
			lit = n.String()
		}
		val := Value{Encoding(enc), lit}
		if err := val.Check(); err != nil {
			return Value{}, errors.WithDetailf(err, "at %s", path)
		}
		return val, nil
	}
	if n, ok := number(x); ok {
		return Int(n), nil
	}
	return Value{}, shapeErr(path, "a string, non-negative integer or encoded value", x)
}

func values(x interface{}, path string) ([]Value, error) {
	list, ok := x.([]interface{})
	if !ok {
		return nil, shapeErr(path, "an array", x)
	}
	vals := make([]Value, 0, len(list))
	for i, item := range list {
		v, err := value(item, path+"."+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func table(x interface{}, path string) (Table, error) {
	m, err := asMap(x, path)
	if err != nil {
		return nil, err
	}
	t := make(Table, len(m))
	for k, item := range m {
		v, err := value(item, path+"."+k)
		if err != nil {
			return nil, err
		}
		t[k] = v
	}
	return t, nil
}

func nestedTables(x interface{}, path string) (map[string]Table, error) {
	m, err := asMap(x, path)
	if err != nil {
		return nil, err
	}
	tables := make(map[string]Table, len(m))
	for k, item := range m {
		t, err := table(item, path+"."+k)
		if err != nil {
			return nil, err
		}
		tables[k] = t
	}
	return tables, nil
}

func txnTable(x interface{}, path string) (TxnTable, error) {
	m, err := asMap(x, path)
	if err != nil {
		return nil, err
	}
	t := make(TxnTable, len(m))
	for k, item := range m {
		if _, ok := item.([]interface{}); ok {
			vals, err := values(item, path+"."+k)
			if err != nil {
				return nil, err
			}
			t[k] = Array(vals...)
			continue
		}
		v, err := value(item, path+"."+k)
		if err != nil {
			return nil, err
		}
		t[k] = Scalar(v)
	}
	return t, nil
}

func account(x interface{}, path string) (*Account, error) {
	m, err := asMap(x, path)
	if err != nil {
		return nil, err
	}
	acct := NewAccount()
	for _, k := range sortedKeys(m) {
		v := m[k]
		p := path + "." + k
		switch k {
		case keyBalance, keyMinBalance:
			n, ok := number(v)
			if !ok || !n.IsUint64() {
				return nil, shapeErr(p, "a 64-bit unsigned integer", v)
			}
			if k == keyBalance {
				acct.Balance = n.Uint64()
			} else {
				acct.MinBalance = n.Uint64()
			}
		case keyAppLocals, keyAssetHoldings:
			tables, err := nestedTables(v, p)
			if err != nil {
				return nil, err
			}
			if k == keyAppLocals {
				acct.AppLocals = tables
			} else {
				acct.AssetHoldings = tables
			}
		case keyAppsOptedIn:
			list, ok := v.([]interface{})
			if !ok {
				return nil, shapeErr(p, "an array of application ids", v)
			}
			for _, id := range list {
				if n, ok := number(id); ok {
					acct.AppsOptedIn = append(acct.AppsOptedIn, n.String())
				} else if s, ok := id.(string); ok {
					acct.AppsOptedIn = append(acct.AppsOptedIn, s)
				} else {
					return nil, shapeErr(p, "an array of application ids", v)
				}
			}
		default:
			return nil, errors.WithDetailf(ErrDocument, "unknown account key %q at %s", k, path)
		}
	}
	return acct, nil
}

// Tree returns the document as a generic tree of
// map[string]interface{}, []interface{}, string, int64 and bool,
// suitable for any of the supported encoders. Empty sections
// are omitted.
func (d *Document) Tree() map[string]interface{} {
	out := make(map[string]interface{})
	putList := func(k string, vs []Value) {
		if len(vs) > 0 {
			out[k] = valueList(vs)
		}
	}
	putTables := func(k string, ts map[string]Table) {
		if len(ts) > 0 {
			out[k] = tablesTree(ts)
		}
	}
	putTable := func(k string, t Table) {
		if len(t) > 0 {
			out[k] = tableTree(t)
		}
	}

	putList(keyArgs, d.Args)
	if len(d.Accounts) > 0 {
		accts := make(map[string]interface{}, len(d.Accounts))
		for name, a := range d.Accounts {
			accts[name] = a.tree()
		}
		out[keyAccounts] = accts
	}
	putTables(keyAppGlobals, d.AppGlobals)
	putTables(keyAppParams, d.AppParams)
	putTables(keyAssetParams, d.AssetParams)
	if len(d.Txn) > 0 {
		out[keyTxn] = d.Txn.tree()
	}
	if len(d.Txns) > 0 {
		list := make([]interface{}, len(d.Txns))
		for i, t := range d.Txns {
			list[i] = t.tree()
		}
		out[keyTxns] = list
	}
	if d.Itxn != nil {
		out[keyItxn] = d.Itxn.tree()
	}
	if len(d.LastItxn) > 0 {
		out[keyLastItxn] = d.LastItxn.tree()
	}
	putTables(keyTxnSideEffects, d.TxnSideEffects)
	putTable(keyGaid, d.Gaid)
	putTable(keyGlobals, d.Globals)
	putTable(keyScratch, d.Scratch)
	putList(keyStack, d.Stack)
	if d.ShowCodeCoverage {
		out[keyShowCodeCoverage] = true
	}
	return out
}

// Tree returns the plain form of v: a bare string or integer when
// that reads back as the same Value, otherwise an explicit
// encoding/value mapping.
func (v Value) Tree() interface{} {
	if v.bare() {
		if v.Encoding == EncInt {
			n, _ := strconv.ParseInt(v.Literal, 10, 64)
			return n
		}
		return v.Literal
	}
	return map[string]interface{}{
		keyEncoding: string(v.Encoding),
		keyValue:    v.Literal,
	}
}

func valueList(vs []Value) []interface{} {
	list := make([]interface{}, len(vs))
	for i, v := range vs {
		list[i] = v.Tree()
	}
	return list
}

func tableTree(t Table) map[string]interface{} {
	m := make(map[string]interface{}, len(t))
	for k, v := range t {
		m[k] = v.Tree()
	}
	return m
}

func tablesTree(ts map[string]Table) map[string]interface{} {
	m := make(map[string]interface{}, len(ts))
	for k, t := range ts {
		m[k] = tableTree(t)
	}
	return m
}

func (t TxnTable) tree() map[string]interface{} {
	m := make(map[string]interface{}, len(t))
	for k, f := range t {
		if f.IsArray {
			m[k] = valueList(f.Array)
		} else {
			m[k] = f.Value.Tree()
		}
	}
	return m
}

func (a *Account) tree() map[string]interface{} {
	m := map[string]interface{}{
		keyBalance:    int64(a.Balance),
		keyMinBalance: int64(a.MinBalance),
	}
	if a.Balance > math.MaxInt64 {
		m[keyBalance] = a.Balance
	}
	if a.MinBalance > math.MaxInt64 {
		m[keyMinBalance] = a.MinBalance
	}
	if len(a.AppLocals) > 0 {
		m[keyAppLocals] = tablesTree(a.AppLocals)
	}
	if len(a.AppsOptedIn) > 0 {
		ids := make([]interface{}, len(a.AppsOptedIn))
		for i, id := range a.AppsOptedIn {
			ids[i] = id
		}
		m[keyAppsOptedIn] = ids
	}
	if len(a.AssetHoldings) > 0 {
		m[keyAssetHoldings] = tablesTree(a.AssetHoldings)
	}
	return m
}
