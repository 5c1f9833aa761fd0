package converter

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/shengtuo-tech/equity-contract/common"
)

// Conversion is a stored record of one completed conversion.
type Conversion struct {
	// From is the account whose token was destroyed.
	From interop.Hash160
	// Amount of destroyed token.
	Amount int
	// Document is the fingerprint of the off-chain conversion document.
	Document interop.Hash256
	// Timestamp of the block carrying the conversion, ms.
	Timestamp int
}

const (
	stetContractKey = "equityTokenScriptHash"
	// conversionCountKey must stay outside the conversionPrefix key space,
	// ListConversions iterates over every key under the prefix.
	conversionCountKey = "totalConversions"

	conversionPrefix = 'c'
	// conversionIndexLen is the width of the big-endian record index in the
	// storage key, it keeps Find traversal in insertion order.
	conversionIndexLen = 8

	docHashLen = 32
)

// ErrDocumentFingerprint appears when the document fingerprint is not
// a 32-byte hash.
var ErrDocumentFingerprint = "incorrect length of document fingerprint"

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrSTET interop.Hash160
		owner    interop.Hash160
	})

	if len(args.addrSTET) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}
	common.SetContractOwner(ctx, args.owner)
	storage.Put(ctx, stetContractKey, args.addrSTET)

	runtime.Log("equity converter contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("equity converter contract updated")
}

// Convert destroys amount of the caller's equity token and records the
// association with the fingerprint of an off-chain conversion document.
// The caller must have approved at least amount to this contract on the
// token beforehand; the burn goes through the token's burnFrom, so the
// destroyed token never sits on the converter's own balance. Token errors
// (pause, lists, allowance, balance) propagate as is.
//
// It produces Converted notification.
func Convert(from interop.Hash160, amount int, docHash interop.Hash256) {
	ctx := storage.GetContext()
	if len(from) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if len(docHash) != docHashLen {
		panic(ErrDocumentFingerprint)
	}
	common.CheckWitness(from)

	burn(ctx, from, amount)
	record(ctx, from, amount, docHash)

	runtime.Notify("Converted", from, amount, docHash)
}

// PermitAndConvert collapses the approve-then-convert flow into a single
// transaction: it submits the supplied permit signature to the token with
// this contract as the spender, then burns exactly like Convert. The
// signature follows the token's permit message scheme and is consumed by it,
// resubmitting it fails inside the token with its invalid signature error.
//
// It produces Converted notification.
func PermitAndConvert(from interop.Hash160, amount int, docHash interop.Hash256, deadline int, pub interop.PublicKey, sig interop.Signature) {
	ctx := storage.GetContext()
	if len(from) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if len(docHash) != docHashLen {
		panic(ErrDocumentFingerprint)
	}
	common.CheckWitness(from)

	stet := stetContract(ctx)
	contract.Call(stet, "permit", contract.All,
		from, runtime.GetExecutingScriptHash(), amount, deadline, pub, sig)

	burn(ctx, from, amount)
	record(ctx, from, amount, docHash)

	runtime.Notify("Converted", from, amount, docHash)
}

// StetContract returns the script hash of the equity token this converter
// operates on.
func StetContract() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return stetContract(ctx)
}

// ConversionsCount returns the number of recorded conversions.
func ConversionsCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, conversionCountKey)
}

// ListConversions returns an iterator over all recorded Conversion
// structures.
func ListConversions() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{conversionPrefix},
		storage.ValuesOnly|storage.DeserializeValues)
}

// TransferOwnership hands the administrative role over to newOwner. It can
// be invoked only by the current contract owner.
//
// It produces OwnershipTransferred notification.
func TransferOwnership(newOwner interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	previous := common.ContractOwner(ctx)
	common.SetContractOwner(ctx, newOwner)
	runtime.Notify("OwnershipTransferred", previous, newOwner)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func stetContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, stetContractKey).(interop.Hash160)
}

func burn(ctx storage.Context, from interop.Hash160, amount int) {
	stet := stetContract(ctx)
	contract.Call(stet, "burnFrom", contract.All,
		runtime.GetExecutingScriptHash(), from, amount)
}

func record(ctx storage.Context, from interop.Hash160, amount int, docHash interop.Hash256) {
	n := common.GetInt(ctx, conversionCountKey)
	c := Conversion{
		From:      from,
		Amount:    amount,
		Document:  docHash,
		Timestamp: runtime.GetTime(),
	}
	common.SetSerialized(ctx, recordKey(n), c)
	storage.Put(ctx, conversionCountKey, n+1)
}

func recordKey(n int) []byte {
	key := []byte{conversionPrefix, 0, 0, 0, 0, 0, 0, 0, 0}
	for i := conversionIndexLen; i >= 1; i-- {
		key[i] = byte(n % 256)
		n = n / 256
	}
	return key
}
