package vm

import "sort"

func stack(args ...StackType) []StackType { return args }

var (
	anyV  = StackAny
	intV  = StackUint64
	byteV = StackBytes
)

// field operand shapes
var (
	globalField = fieldImmediate(GlobalFields, 0, false)
	arrayField  = fieldImmediate(TxnFields, 0, true)
	gArrayField = fieldImmediate(TxnFields, 1, true)
)

var opList = []opSpec{
	// arithmetic, comparison and logic
	{name: "+", version: 1, args: stack(intV, intV), exec: binaryInt(add)},
	{name: "-", version: 1, args: stack(intV, intV), exec: binaryInt(sub)},
	{name: "*", version: 1, args: stack(intV, intV), exec: binaryInt(mul)},
	{name: "/", version: 1, args: stack(intV, intV), exec: binaryInt(div)},
	{name: "%", version: 1, args: stack(intV, intV), exec: binaryInt(mod)},
	{name: "<", version: 1, args: stack(intV, intV), exec: binaryInt(lt)},
	{name: ">", version: 1, args: stack(intV, intV), exec: binaryInt(gt)},
	{name: "<=", version: 1, args: stack(intV, intV), exec: binaryInt(le)},
	{name: ">=", version: 1, args: stack(intV, intV), exec: binaryInt(ge)},
	{name: "&&", version: 1, args: stack(intV, intV), exec: binaryInt(and)},
	{name: "||", version: 1, args: stack(intV, intV), exec: binaryInt(or)},
	{name: "==", version: 1, args: stack(anyV, anyV), check: sameTags, exec: opEqual},
	{name: "!=", version: 1, args: stack(anyV, anyV), check: sameTags, exec: opNotEqual},
	{name: "!", version: 1, args: stack(intV), exec: unaryInt(not)},
	{name: "~", version: 1, args: stack(intV), exec: unaryInt(bitNot)},
	{name: "|", version: 1, args: stack(intV, intV), exec: binaryInt(bitOr)},
	{name: "&", version: 1, args: stack(intV, intV), exec: binaryInt(bitAnd)},
	{name: "^", version: 1, args: stack(intV, intV), exec: binaryInt(bitXor)},
	{name: "mulw", version: 1, args: stack(intV, intV), exec: opMulw},
	{name: "addw", version: 2, args: stack(intV, intV), exec: opAddw},
	{name: "shl", version: 4, args: stack(intV, intV), exec: binaryInt(shl)},
	{name: "shr", version: 4, args: stack(intV, intV), exec: binaryInt(shr)},
	{name: "sqrt", version: 4, args: stack(intV), exec: unaryInt(sqrt)},
	{name: "bitlen", version: 4, args: stack(anyV), exec: opBitlen},
	{name: "exp", version: 4, args: stack(intV, intV), exec: binaryInt(exp)},
	{name: "expw", version: 4, args: stack(intV, intV), exec: opExpw},
	{name: "divmodw", version: 4, args: stack(intV, intV, intV, intV), exec: opDivmodw},

	// byte strings
	{name: "len", version: 1, args: stack(byteV), exec: opLen},
	{name: "itob", version: 1, args: stack(intV), exec: opItob},
	{name: "btoi", version: 1, args: stack(byteV), exec: opBtoi},
	{name: "concat", version: 2, args: stack(byteV, byteV), exec: binaryBytes(concat)},
	{name: "substring", version: 2, minOperands: 2, maxOperands: 2, args: stack(byteV), operands: uintImmediates, exec: opSubstring},
	{name: "substring3", version: 2, args: stack(byteV, intV, intV), exec: opSubstring3},
	{name: "getbit", version: 3, args: stack(anyV, intV), exec: opGetbit},
	{name: "setbit", version: 3, args: stack(anyV, intV, intV), exec: opSetbit},
	{name: "getbyte", version: 3, args: stack(byteV, intV), exec: opGetbyte},
	{name: "setbyte", version: 3, args: stack(byteV, intV, intV), exec: opSetbyte},
	{name: "bzero", version: 4, args: stack(intV), exec: opBzero},
	{name: "extract", version: 5, minOperands: 2, maxOperands: 2, args: stack(byteV), operands: uintImmediates, exec: opExtract},
	{name: "extract3", version: 5, args: stack(byteV, intV, intV), exec: opExtract3},
	{name: "extract_uint16", version: 5, args: stack(byteV, intV), exec: extractUint(2)},
	{name: "extract_uint32", version: 5, args: stack(byteV, intV), exec: extractUint(4)},
	{name: "extract_uint64", version: 5, args: stack(byteV, intV), exec: extractUint(8)},
	{name: "replace2", version: 7, minOperands: 1, maxOperands: 1, args: stack(byteV, byteV), operands: uintImmediates, exec: opReplace2},
	{name: "replace3", version: 7, args: stack(byteV, intV, byteV), exec: opReplace3},

	// byte math
	{name: "b+", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: binaryBytes(bAdd)},
	{name: "b-", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: binaryBytes(bSub)},
	{name: "b*", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: binaryBytes(bMul)},
	{name: "b/", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: binaryBytes(bDiv)},
	{name: "b%", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: binaryBytes(bMod)},
	{name: "b<", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: bCompare(func(c int) bool { return c < 0 })},
	{name: "b>", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: bCompare(func(c int) bool { return c > 0 })},
	{name: "b<=", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: bCompare(func(c int) bool { return c <= 0 })},
	{name: "b>=", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: bCompare(func(c int) bool { return c >= 0 })},
	{name: "b==", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: bCompare(func(c int) bool { return c == 0 })},
	{name: "b!=", version: 4, args: stack(byteV, byteV), check: byteMathLimit(2), exec: bCompare(func(c int) bool { return c != 0 })},
	{name: "b|", version: 4, args: stack(byteV, byteV), exec: binaryBytes(bOr)},
	{name: "b&", version: 4, args: stack(byteV, byteV), exec: binaryBytes(bAnd)},
	{name: "b^", version: 4, args: stack(byteV, byteV), exec: binaryBytes(bXor)},
	{name: "b~", version: 4, args: stack(byteV), exec: unaryBytes(bNot)},

	// crypto
	{name: "sha256", version: 1, args: stack(byteV), exec: unaryBytes(sha256Digest)},
	{name: "keccak256", version: 1, args: stack(byteV), exec: unaryBytes(keccak256Digest)},
	{name: "sha512_256", version: 1, args: stack(byteV), exec: unaryBytes(sha512_256Digest)},
	{name: "sha3_256", version: 7, args: stack(byteV), exec: unaryBytes(sha3Digest)},
	{name: "ed25519verify", version: 1, args: stack(byteV, byteV, byteV), exec: opEd25519verify},
	{name: "ecdsa_verify", version: 5, minOperands: 1, maxOperands: 1, args: stack(byteV, byteV, byteV, byteV, byteV), operands: curveImmediate, exec: opEcdsaVerify},
	{name: "ecdsa_pk_decompress", version: 5, minOperands: 1, maxOperands: 1, args: stack(byteV), operands: curveImmediate, exec: opEcdsaPkDecompress},
	{name: "ecdsa_pk_recover", version: 5, minOperands: 1, maxOperands: 1, args: stack(byteV, intV, byteV, byteV), operands: curveImmediate, exec: opEcdsaPkRecover},

	// constants and arguments
	{name: "intcblock", version: 1, maxOperands: unlimited, operands: intcblockImmediates, exec: opIntcblock},
	{name: "intc", version: 1, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkIntc, exec: opIntc},
	{name: "intc_0", version: 1, operands: fixedImmediate(0), check: checkIntc, exec: opIntc},
	{name: "intc_1", version: 1, operands: fixedImmediate(1), check: checkIntc, exec: opIntc},
	{name: "intc_2", version: 1, operands: fixedImmediate(2), check: checkIntc, exec: opIntc},
	{name: "intc_3", version: 1, operands: fixedImmediate(3), check: checkIntc, exec: opIntc},
	{name: "bytecblock", version: 1, maxOperands: unlimited, operands: bytecblockImmediates, exec: opBytecblock},
	{name: "bytec", version: 1, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkBytec, exec: opBytec},
	{name: "bytec_0", version: 1, operands: fixedImmediate(0), check: checkBytec, exec: opBytec},
	{name: "bytec_1", version: 1, operands: fixedImmediate(1), check: checkBytec, exec: opBytec},
	{name: "bytec_2", version: 1, operands: fixedImmediate(2), check: checkBytec, exec: opBytec},
	{name: "bytec_3", version: 1, operands: fixedImmediate(3), check: checkBytec, exec: opBytec},
	{name: "int", version: 1, minOperands: 1, maxOperands: 1, operands: intImmediate, exec: opInt},
	{name: "pushint", version: 3, minOperands: 1, maxOperands: 1, operands: intImmediate, exec: opInt},
	{name: "byte", version: 1, minOperands: 1, maxOperands: 2, operands: byteImmediate, exec: opByte},
	{name: "pushbytes", version: 3, minOperands: 1, maxOperands: 2, operands: byteImmediate, exec: opByte},
	{name: "addr", version: 1, minOperands: 1, maxOperands: 1, operands: addrImmediate, exec: opByte},
	{name: "method", version: 5, minOperands: 1, maxOperands: 1, operands: methodImmediate, exec: opByte},
	{name: "arg", version: 1, minOperands: 1, maxOperands: 1, operands: uintImmediates, exec: opArg},
	{name: "arg_0", version: 1, operands: fixedImmediate(0), exec: opArg},
	{name: "arg_1", version: 1, operands: fixedImmediate(1), exec: opArg},
	{name: "arg_2", version: 1, operands: fixedImmediate(2), exec: opArg},
	{name: "arg_3", version: 1, operands: fixedImmediate(3), exec: opArg},
	{name: "args", version: 5, args: stack(intV), exec: opArgs},

	// stack
	{name: "pop", version: 1, args: stack(anyV), exec: opPop},
	{name: "dup", version: 1, args: stack(anyV), exec: opDup},
	{name: "dup2", version: 2, args: stack(anyV, anyV), exec: opDup2},
	{name: "dig", version: 3, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkDepth, exec: opDig},
	{name: "swap", version: 3, args: stack(anyV, anyV), exec: opSwap},
	{name: "select", version: 3, args: stack(anyV, anyV, intV), exec: opSelect},
	{name: "cover", version: 5, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkDepth, exec: opCover},
	{name: "uncover", version: 5, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkDepth, exec: opUncover},

	// scratch space
	{name: "load", version: 1, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkSlotImmediate, exec: opLoad},
	{name: "store", version: 1, minOperands: 1, maxOperands: 1, args: stack(anyV), operands: uintImmediates, check: checkSlotImmediate, exec: opStore},
	{name: "loads", version: 5, args: stack(intV), check: checkLoads, exec: opLoads},
	{name: "stores", version: 5, args: stack(intV, anyV), check: checkStores, exec: opStores},
	{name: "gload", version: 4, minOperands: 2, maxOperands: 2, operands: uintImmediates, check: checkGload, exec: opGload},
	{name: "gloads", version: 4, minOperands: 1, maxOperands: 1, args: stack(intV), operands: uintImmediates, check: checkGloads, exec: opGloads},
	{name: "gloadss", version: 6, args: stack(intV, intV), check: checkGloadss, exec: opGloadss},
	{name: "gaid", version: 4, minOperands: 1, maxOperands: 1, operands: uintImmediates, check: checkGroupImmediate, exec: opGaid},
	{name: "gaids", version: 4, args: stack(intV), check: checkGroupTop, exec: opGaids},

	// transaction and group fields
	{name: "txn", version: 1, minOperands: 1, maxOperands: 2, operands: txnFieldImmediate(0), exec: opTxn},
	{name: "txna", version: 2, minOperands: 2, maxOperands: 2, operands: arrayField, exec: opTxn},
	{name: "txnas", version: 5, minOperands: 1, maxOperands: 1, args: stack(intV), operands: arrayField, exec: opTxnas},
	{name: "gtxn", version: 1, minOperands: 2, maxOperands: 3, operands: txnFieldImmediate(1), check: checkGroupImmediate, exec: opGtxn},
	{name: "gtxna", version: 2, minOperands: 3, maxOperands: 3, operands: gArrayField, check: checkGroupImmediate, exec: opGtxn},
	{name: "gtxnas", version: 5, minOperands: 2, maxOperands: 2, args: stack(intV), operands: gArrayField, check: checkGroupImmediate, exec: opGtxnas},
	{name: "gtxns", version: 3, minOperands: 1, maxOperands: 2, args: stack(intV), operands: txnFieldImmediate(0), check: checkGroupTop, exec: opGtxns},
	{name: "gtxnsa", version: 3, minOperands: 2, maxOperands: 2, args: stack(intV), operands: arrayField, check: checkGroupTop, exec: opGtxns},
	{name: "gtxnsas", version: 5, minOperands: 1, maxOperands: 1, args: stack(intV, intV), operands: arrayField, check: checkGtxnsas, exec: opGtxnsas},
	{name: "global", version: 1, minOperands: 1, maxOperands: 1, operands: globalField, exec: opGlobal},
	{name: "log", version: 5, args: stack(byteV), exec: opLog},

	// inner transactions
	{name: "itxn_begin", version: 5, check: checkNotBuilding, exec: opItxnBegin},
	{name: "itxn_field", version: 5, minOperands: 1, maxOperands: 1, args: stack(anyV), operands: innerFieldImmediate, check: checkItxnField, exec: opItxnField},
	{name: "itxn_next", version: 6, check: checkBuilding, exec: opItxnNext},
	{name: "itxn_submit", version: 5, check: checkBuilding, exec: opItxnSubmit},
	{name: "itxn", version: 5, minOperands: 1, maxOperands: 2, operands: txnFieldImmediate(0), exec: opItxn},
	{name: "itxna", version: 5, minOperands: 2, maxOperands: 2, operands: arrayField, exec: opItxn},

	// accounts and application state
	{name: "balance", version: 2, args: stack(anyV), exec: opBalance},
	{name: "min_balance", version: 3, args: stack(anyV), exec: opMinBalance},
	{name: "app_opted_in", version: 2, args: stack(anyV, intV), exec: opAppOptedIn},
	{name: "app_local_get", version: 2, args: stack(anyV, byteV), exec: opAppLocalGet},
	{name: "app_local_get_ex", version: 2, args: stack(anyV, intV, byteV), exec: opAppLocalGetEx},
	{name: "app_global_get", version: 2, args: stack(byteV), exec: opAppGlobalGet},
	{name: "app_global_get_ex", version: 2, args: stack(intV, byteV), exec: opAppGlobalGetEx},
	{name: "app_local_put", version: 2, args: stack(anyV, byteV, anyV), exec: opAppLocalPut},
	{name: "app_global_put", version: 2, args: stack(byteV, anyV), exec: opAppGlobalPut},
	{name: "app_local_del", version: 2, args: stack(anyV, byteV), exec: opAppLocalDel},
	{name: "app_global_del", version: 2, args: stack(byteV), exec: opAppGlobalDel},
	{name: "asset_holding_get", version: 2, minOperands: 1, maxOperands: 1, args: stack(anyV, intV), operands: fieldImmediate(AssetHoldingFields, 0, false), exec: opAssetHoldingGet},
	{name: "asset_params_get", version: 2, minOperands: 1, maxOperands: 1, args: stack(intV), operands: fieldImmediate(AssetParamsFields, 0, false), exec: opAssetParamsGet},
	{name: "app_params_get", version: 5, minOperands: 1, maxOperands: 1, args: stack(intV), operands: fieldImmediate(AppParamsFields, 0, false), exec: opAppParamsGet},

	// control flow
	{name: "err", version: 1, exec: opErr},
	{name: "bnz", version: 1, minOperands: 1, maxOperands: 1, args: stack(intV), operands: labelImmediate, exec: opBnz},
	{name: "bz", version: 2, minOperands: 1, maxOperands: 1, args: stack(intV), operands: labelImmediate, exec: opBz},
	{name: "b", version: 2, minOperands: 1, maxOperands: 1, operands: labelImmediate, exec: opB},
	{name: "return", version: 2, args: stack(anyV), exec: opReturn},
	{name: "assert", version: 3, args: stack(intV), exec: opAssert},
	{name: "callsub", version: 4, minOperands: 1, maxOperands: 1, operands: labelImmediate, exec: opCallsub},
	{name: "retsub", version: 4, check: checkRetsub, exec: opRetsub},
}

var opsByName map[string]*opSpec

func init() {
	opsByName = make(map[string]*opSpec, len(opList))
	for i := range opList {
		op := &opList[i]
		if _, dup := opsByName[op.name]; dup {
			panic("duplicate opcode " + op.name)
		}
		opsByName[op.name] = op
	}
}

// OpInfo describes an opcode for listings.
type OpInfo struct {
	Name    string
	Version uint64
	Args    []StackType
}

// Opcodes lists every opcode sorted by version, then name.
func Opcodes() []OpInfo {
	out := make([]OpInfo, 0, len(opList))
	for _, op := range opList {
		out = append(out, OpInfo{op.name, op.version, op.args})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Version != out[j].Version {
			return out[i].Version < out[j].Version
		}
		return out[i].Name < out[j].Name
	})
	return out
}
