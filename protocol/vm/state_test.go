package vm

import (
	"context"
	"testing"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

const stateDoc = `
accounts:
  alice:
    balance: 1000
    minBalance: 100
    appsOptedIn: [5]
    appLocals:
      "5": {count: 3}
    assetHoldings:
      "31": {AssetBalance: 40, AssetFrozen: 0}
  bob:
    balance: 7
appGlobals:
  "5": {counter: 11, name: teal}
  "9": {other: 1}
appParams:
  "9": {AppGlobalNumUint: 4}
assetParams:
  "31": {AssetTotal: 1000000, AssetName: gold}
txn:
  Sender: alice
  ApplicationID: 5
  Accounts: [bob]
  Applications: [9]
  Assets: [31]
`

func text(s string) Value { return NewBytes([]byte(s)) }

func TestAccountOps(t *testing.T) {
	doc := yamlDoc(t, stateDoc)
	runCases(t, []runCase{
		{src: program("int 0", "balance", "int 1", "balance", `byte "bob"`, "balance"), doc: doc, wantStack: ints(1000, 7, 7)},
		{src: program("int 0", "min_balance"), doc: doc, wantStack: ints(100)},
		{src: program("int 0", "int 0", "app_opted_in", "int 1", "int 1", "app_opted_in"), doc: doc, wantStack: ints(1, 0)},
		{src: program(`byte "carol"`, "balance"), doc: doc, wantErr: ErrMissingConfig},
		{src: program("int 2", "balance"), doc: doc, wantErr: ErrRange},
	})
}

func TestLocalState(t *testing.T) {
	doc := yamlDoc(t, stateDoc)
	runCases(t, []runCase{
		{src: program("int 0", `byte "count"`, "app_local_get"), doc: doc, wantStack: ints(3)},
		{src: program("int 0", `byte "nope"`, "app_local_get"), doc: doc, wantStack: ints(0)},
		{src: program("int 0", "int 5", `byte "count"`, "app_local_get_ex"), doc: doc, wantStack: ints(3, 1)},
		{src: program("int 0", "int 1", `byte "count"`, "app_local_get_ex"), doc: doc, wantStack: ints(0, 0)},
		{
			src:       program("int 0", `byte "count"`, "int 9", "app_local_put", "int 0", `byte "count"`, "app_local_get"),
			doc:       doc,
			wantStack: ints(9),
		},
		{
			src:       program("int 0", `byte "count"`, "app_local_del", "int 0", "int 0", `byte "count"`, "app_local_get_ex"),
			doc:       doc,
			wantStack: ints(0, 0),
		},
		{
			src:       program("int 1", `byte "fresh"`, `byte "v"`, "app_local_put", "int 1", `byte "fresh"`, "app_local_get"),
			doc:       doc,
			wantStack: []Value{text("v")},
		},
	})
}

func TestGlobalState(t *testing.T) {
	doc := yamlDoc(t, stateDoc)
	runCases(t, []runCase{
		{src: program(`byte "counter"`, "app_global_get", `byte "name"`, "app_global_get"), doc: doc, wantStack: []Value{NewUint64(11), text("teal")}},
		{src: program("int 1", `byte "other"`, "app_global_get_ex"), doc: doc, wantStack: ints(1, 1)},
		{src: program("int 0", `byte "x"`, "app_global_get_ex"), doc: doc, wantStack: ints(0, 0)},
		{
			src:       program(`byte "counter"`, "int 12", "app_global_put", `byte "counter"`, "app_global_get"),
			doc:       doc,
			wantStack: ints(12),
		},
		{
			src:       program(`byte "counter"`, "app_global_del", `byte "counter"`, "app_global_get"),
			doc:       doc,
			wantStack: ints(0),
		},
		{src: program(`byte "counter"`, "app_global_get"), wantErr: ErrMissingConfig},
	})
}

func TestParamOps(t *testing.T) {
	doc := yamlDoc(t, stateDoc)
	runCases(t, []runCase{
		{src: program("int 0", "int 0", "asset_holding_get AssetBalance"), doc: doc, wantStack: ints(40, 1)},
		{src: program("int 1", "int 0", "asset_holding_get AssetBalance"), doc: doc, wantStack: ints(0, 0)},
		{src: program("int 0", "asset_params_get AssetTotal"), doc: doc, wantStack: ints(1000000, 1)},
		{src: program("int 0", "asset_params_get AssetName"), doc: doc, wantStack: []Value{text("gold"), NewUint64(1)}},
		{src: program("int 99", "asset_params_get AssetTotal"), doc: doc, wantStack: ints(0, 0)},
		{src: program("int 0", "asset_params_get AssetDecimals"), doc: doc, wantErr: ErrMissingConfig},
		{src: program("int 1", "app_params_get AppGlobalNumUint"), doc: doc, wantStack: ints(4, 1)},
		{src: program("int 0", "app_params_get AppGlobalNumUint"), doc: doc, wantStack: ints(0, 0)},
		{src: "asset_params_get Bogus", doc: doc, wantErr: ErrOperand},
	})
}

func TestStateSerialized(t *testing.T) {
	doc := yamlDoc(t, stateDoc)
	cx, err := Execute(context.Background(), program(`byte "counter"`, "int 12", "app_global_put", "int 0", `byte "count"`, "app_local_del"), doc)
	if err != nil {
		t.Fatal(err)
	}
	out := cx.Serialize()
	if got := out.AppGlobals["5"]["counter"].Literal; got != "12" {
		t.Errorf("appGlobals.5.counter = %q want 12", got)
	}
	if _, ok := out.Accounts["alice"].AppLocals["5"]["count"]; ok {
		t.Errorf("accounts.alice.appLocals.5.count survived app_local_del")
	}
	if doc.AppGlobals["5"]["counter"].Literal != "11" {
		t.Errorf("input document was modified")
	}
}

func TestMissingAccountDetail(t *testing.T) {
	_, err := Execute(context.Background(), program(`byte "carol"`, "balance"), yamlDoc(t, stateDoc))
	want := `account "carol" not found (required by opcode "balance"), please add this account to your configuration`
	if got := errors.Detail(err.(Error).Err); got != want {
		t.Errorf("detail = %q\nwant %q", got, want)
	}
}

func TestAccountOperandBeyond64Bits(t *testing.T) {
	doc := yamlDoc(t, `
accounts:
  alice:
    balance: 42
txn:
  Sender: alice
scratch:
  "0": {encoding: int, value: "18446744073709551616"}
`)
	runCases(t, []runCase{
		{src: program("load 0", "balance"), doc: doc, wantErr: ErrArithmetic},
		{src: program("load 0", "min_balance"), doc: doc, wantErr: ErrArithmetic},
		{src: program("int 0", "balance"), doc: doc, wantStack: ints(42)},
	})
}
