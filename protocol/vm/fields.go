package vm

import "sort"

type fieldSpec struct {
	name    string
	typ     StackType
	array   bool
	version uint64

	// inner reports whether itxn_field may set it
	inner bool
}

// FieldGroup names one of the field namespaces opcodes read from.
type FieldGroup int

const (
	TxnFields FieldGroup = iota
	GlobalFields
	AssetHoldingFields
	AssetParamsFields
	AppParamsFields
)

func (g FieldGroup) String() string {
	switch g {
	case TxnFields:
		return "txn"
	case GlobalFields:
		return "global"
	case AssetHoldingFields:
		return "asset_holding"
	case AssetParamsFields:
		return "asset_params"
	case AppParamsFields:
		return "app_params"
	}
	return "unknown"
}

// FieldInfo describes a field for listings.
type FieldInfo struct {
	Name    string
	Type    StackType
	Array   bool
	Version uint64
}

var txnFieldList = []fieldSpec{
	{"Sender", StackBytes, false, 1, true},
	{"Fee", StackUint64, false, 1, true},
	{"FirstValid", StackUint64, false, 1, false},
	{"FirstValidTime", StackUint64, false, 1, false},
	{"LastValid", StackUint64, false, 1, false},
	{"Note", StackBytes, false, 1, true},
	{"Lease", StackBytes, false, 1, false},
	{"Receiver", StackBytes, false, 1, true},
	{"Amount", StackUint64, false, 1, true},
	{"CloseRemainderTo", StackBytes, false, 1, true},
	{"VotePK", StackBytes, false, 1, true},
	{"SelectionPK", StackBytes, false, 1, true},
	{"VoteFirst", StackUint64, false, 1, true},
	{"VoteLast", StackUint64, false, 1, true},
	{"VoteKeyDilution", StackUint64, false, 1, true},
	{"Type", StackBytes, false, 1, true},
	{"TypeEnum", StackUint64, false, 1, true},
	{"XferAsset", StackUint64, false, 1, true},
	{"AssetAmount", StackUint64, false, 1, true},
	{"AssetSender", StackBytes, false, 1, true},
	{"AssetReceiver", StackBytes, false, 1, true},
	{"AssetCloseTo", StackBytes, false, 1, true},
	{"GroupIndex", StackUint64, false, 1, false},
	{"TxID", StackBytes, false, 1, false},
	{"ApplicationID", StackUint64, false, 2, true},
	{"OnCompletion", StackUint64, false, 2, true},
	{"ApplicationArgs", StackBytes, true, 2, true},
	{"NumAppArgs", StackUint64, false, 2, false},
	{"Accounts", StackBytes, true, 2, true},
	{"NumAccounts", StackUint64, false, 2, false},
	{"ApprovalProgram", StackBytes, false, 2, true},
	{"ClearStateProgram", StackBytes, false, 2, true},
	{"RekeyTo", StackBytes, false, 2, true},
	{"ConfigAsset", StackUint64, false, 2, true},
	{"ConfigAssetTotal", StackUint64, false, 2, true},
	{"ConfigAssetDecimals", StackUint64, false, 2, true},
	{"ConfigAssetDefaultFrozen", StackUint64, false, 2, true},
	{"ConfigAssetUnitName", StackBytes, false, 2, true},
	{"ConfigAssetName", StackBytes, false, 2, true},
	{"ConfigAssetURL", StackBytes, false, 2, true},
	{"ConfigAssetMetadataHash", StackBytes, false, 2, true},
	{"ConfigAssetManager", StackBytes, false, 2, true},
	{"ConfigAssetReserve", StackBytes, false, 2, true},
	{"ConfigAssetFreeze", StackBytes, false, 2, true},
	{"ConfigAssetClawback", StackBytes, false, 2, true},
	{"FreezeAsset", StackUint64, false, 2, true},
	{"FreezeAssetAccount", StackBytes, false, 2, true},
	{"FreezeAssetFrozen", StackUint64, false, 2, true},
	{"Assets", StackUint64, true, 3, true},
	{"NumAssets", StackUint64, false, 3, false},
	{"Applications", StackUint64, true, 3, true},
	{"NumApplications", StackUint64, false, 3, false},
	{"GlobalNumUint", StackUint64, false, 3, true},
	{"GlobalNumByteSlice", StackUint64, false, 3, true},
	{"LocalNumUint", StackUint64, false, 3, true},
	{"LocalNumByteSlice", StackUint64, false, 3, true},
	{"ExtraProgramPages", StackUint64, false, 4, true},
	{"Nonparticipation", StackUint64, false, 5, true},
	{"Logs", StackBytes, true, 5, false},
	{"NumLogs", StackUint64, false, 5, false},
	{"CreatedAssetID", StackUint64, false, 5, false},
	{"CreatedApplicationID", StackUint64, false, 5, false},
}

var globalFieldList = []fieldSpec{
	{"MinTxnFee", StackUint64, false, 1, false},
	{"MinBalance", StackUint64, false, 1, false},
	{"MaxTxnLife", StackUint64, false, 1, false},
	{"ZeroAddress", StackBytes, false, 1, false},
	{"GroupSize", StackUint64, false, 1, false},
	{"LogicSigVersion", StackUint64, false, 2, false},
	{"Round", StackUint64, false, 2, false},
	{"LatestTimestamp", StackUint64, false, 2, false},
	{"CurrentApplicationID", StackUint64, false, 2, false},
	{"CreatorAddress", StackBytes, false, 3, false},
	{"CurrentApplicationAddress", StackBytes, false, 5, false},
	{"GroupID", StackBytes, false, 5, false},
}

var assetHoldingFieldList = []fieldSpec{
	{"AssetBalance", StackUint64, false, 2, false},
	{"AssetFrozen", StackUint64, false, 2, false},
}

var assetParamsFieldList = []fieldSpec{
	{"AssetTotal", StackUint64, false, 2, false},
	{"AssetDecimals", StackUint64, false, 2, false},
	{"AssetDefaultFrozen", StackUint64, false, 2, false},
	{"AssetUnitName", StackBytes, false, 2, false},
	{"AssetName", StackBytes, false, 2, false},
	{"AssetURL", StackBytes, false, 2, false},
	{"AssetMetadataHash", StackBytes, false, 2, false},
	{"AssetManager", StackBytes, false, 2, false},
	{"AssetReserve", StackBytes, false, 2, false},
	{"AssetFreeze", StackBytes, false, 2, false},
	{"AssetClawback", StackBytes, false, 2, false},
	{"AssetCreator", StackBytes, false, 5, false},
}

var appParamsFieldList = []fieldSpec{
	{"AppApprovalProgram", StackBytes, false, 5, false},
	{"AppClearStateProgram", StackBytes, false, 5, false},
	{"AppGlobalNumUint", StackUint64, false, 5, false},
	{"AppGlobalNumByteSlice", StackUint64, false, 5, false},
	{"AppLocalNumUint", StackUint64, false, 5, false},
	{"AppLocalNumByteSlice", StackUint64, false, 5, false},
	{"AppExtraProgramPages", StackUint64, false, 5, false},
	{"AppCreator", StackBytes, false, 5, false},
	{"AppAddress", StackBytes, false, 5, false},
}

var fieldGroups = map[FieldGroup]map[string]*fieldSpec{
	TxnFields:          byName(txnFieldList),
	GlobalFields:       byName(globalFieldList),
	AssetHoldingFields: byName(assetHoldingFieldList),
	AssetParamsFields:  byName(assetParamsFieldList),
	AppParamsFields:    byName(appParamsFieldList),
}

func byName(list []fieldSpec) map[string]*fieldSpec {
	m := make(map[string]*fieldSpec, len(list))
	for i := range list {
		m[list[i].name] = &list[i]
	}
	return m
}

func lookupField(g FieldGroup, name string) (*fieldSpec, bool) {
	f, ok := fieldGroups[g][name]
	return f, ok
}

// Fields lists the fields of a group sorted by name.
func Fields(g FieldGroup) []FieldInfo {
	var out []FieldInfo
	for _, f := range fieldGroups[g] {
		out = append(out, FieldInfo{f.name, f.typ, f.array, f.version})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
